package database

import (
	"subman-bot-be/internal/model"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date with the registered models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.SubscriptionPlan{},
		&model.Payment{},
		&model.Code{},
		&model.Admin{},
	)
}
