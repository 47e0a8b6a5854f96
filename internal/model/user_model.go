package model

import "time"

type User struct {
	UserId             int64  `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Username           string `gorm:"type:varchar(255)"`
	FirstName          string `gorm:"type:varchar(255)"`
	LastName           string `gorm:"type:varchar(255)"`
	SubscriptionStatus string `gorm:"type:varchar(20);not null;default:inactive"`
	SubscriptionExpiry *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
