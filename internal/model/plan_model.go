package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Price        float64   `gorm:"type:decimal(10,2);not null"`
	DurationDays int       `gorm:"not null"`
	Active       bool      `gorm:"not null;default:true;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}
