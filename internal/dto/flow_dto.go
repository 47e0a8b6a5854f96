package dto

import (
	"time"

	"subman-bot-be/internal/entity"
)

// ReceiptSubmission is everything the handler needs to fan an approval
// request out to admins after a receipt arrives.
type ReceiptSubmission struct {
	Payment *entity.Payment
	User    *entity.User
	Admins  []*entity.Admin
}

// DecisionOutcome reports what an approve/deny actually did. Applied is
// false when another admin resolved the payment first; the handler then
// informs the late admin instead of the user.
type DecisionOutcome struct {
	Applied         bool
	AlreadyResolved bool
	Approved        bool
	NewExpiry       time.Time
	Payment         *entity.Payment
	User            *entity.User
}

// RedeemOutcome reports a successful code redemption.
type RedeemOutcome struct {
	Code      *entity.Code
	User      *entity.User
	NewExpiry time.Time
}
