package dto

import "time"

// Topics for the in-process advisory bus between the sweep and the notifier.
const (
	TopicSubscriptionExpiring = "SUBSCRIPTION_EXPIRING"
	TopicSubscriptionExpired  = "SUBSCRIPTION_EXPIRED"
)

// SubscriptionExpiringEvent is published for users inside the lookahead
// window. The notifier warns the user and advises admins about renewal.
type SubscriptionExpiringEvent struct {
	UserId      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Expiry      time.Time `json:"expiry"`
	DaysLeft    int       `json:"days_left"`
}

// SubscriptionExpiredEvent is published for users whose expiry has passed.
// The notifier advises admins to remove them; nothing is deactivated here.
type SubscriptionExpiredEvent struct {
	UserId      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Expiry      time.Time `json:"expiry"`
}
