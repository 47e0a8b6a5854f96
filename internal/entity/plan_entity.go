package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id           uuid.UUID
	Name         string
	Price        float64
	DurationDays int
	// Plans are never hard-deleted once payments may reference them;
	// deactivation hides them from the catalog instead.
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
