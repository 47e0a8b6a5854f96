package entity

import "time"

// Code is a single-use redemption code granting subscription days directly,
// bypassing payment. A used code is permanently inert.
type Code struct {
	Code           string
	AssociatedDays int
	Used           bool
	RedeemedBy     *int64
	RedeemedAt     *time.Time
	CreatedAt      time.Time
}
