package model

import "time"

type Code struct {
	Code           string `gorm:"type:varchar(32);primaryKey"`
	AssociatedDays int    `gorm:"not null"`
	Used           bool   `gorm:"column:used_status;not null;default:false;index"`
	RedeemedBy     *int64 `gorm:"column:redeemed_by"`
	RedeemedAt     *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Code) TableName() string {
	return "codes"
}
