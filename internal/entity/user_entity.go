package entity

import (
	"fmt"
	"strings"
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
)

type User struct {
	UserId             int64
	Username           string
	FirstName          string
	LastName           string
	SubscriptionStatus SubscriptionStatus
	SubscriptionExpiry *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ExtendSubscription grants additional days of access and activates the
// subscription. A still-valid expiry is stacked on top of; a missing or
// elapsed expiry restarts from now. Returns the new expiry.
func (u *User) ExtendSubscription(days int, now time.Time) time.Time {
	base := now
	if u.SubscriptionExpiry != nil && u.SubscriptionExpiry.After(now) {
		base = *u.SubscriptionExpiry
	}
	expiry := base.AddDate(0, 0, days)
	u.SubscriptionExpiry = &expiry
	u.SubscriptionStatus = SubscriptionStatusActive
	return expiry
}

// HasActiveSubscription reports whether the user holds unexpired access.
func (u *User) HasActiveSubscription(now time.Time) bool {
	return u.SubscriptionStatus == SubscriptionStatusActive &&
		u.SubscriptionExpiry != nil && u.SubscriptionExpiry.After(now)
}

// DisplayName renders the name shown to admins in approval requests.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = u.Username
	}
	if name == "" {
		return fmt.Sprintf("(%d)", u.UserId)
	}
	return fmt.Sprintf("%s (%d)", name, u.UserId)
}
