package model

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId           int64     `gorm:"column:user_id;not null;index"`
	PlanId           uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount           float64   `gorm:"type:decimal(10,2);not null"`
	Method           string    `gorm:"column:payment_method;type:varchar(20);not null"`
	Status           string    `gorm:"column:payment_status;type:varchar(20);not null;index"`
	ReceiptMessageId *int64    `gorm:"column:receipt_message_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
