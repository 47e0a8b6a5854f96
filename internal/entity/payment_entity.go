package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string
type PaymentStatus string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodDirect PaymentMethod = "direct"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusDenied    PaymentStatus = "denied"
)

type Payment struct {
	Id     uuid.UUID
	UserId int64
	PlanId uuid.UUID
	Amount float64
	Method PaymentMethod
	Status PaymentStatus
	// Gateway message id of the submitted receipt, set once the user
	// sends one.
	ReceiptMessageId *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}
