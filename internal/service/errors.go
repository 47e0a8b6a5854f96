package service

import "errors"

// Sentinel errors the handler maps to user-facing replies. Anything not in
// this list is treated as an internal failure.
var (
	ErrNotAuthorized    = errors.New("sender is not an admin")
	ErrPlanNotFound     = errors.New("subscription plan not found")
	ErrInvalidPlanInput = errors.New("plan input must be: name, price, duration days")
	ErrInvalidDuration  = errors.New("duration must be a positive number of days")
	ErrUserNotFound     = errors.New("user not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrNoPendingPayment = errors.New("no pending payment awaiting a receipt")
	ErrCodeInvalid      = errors.New("code is invalid or already used")
)
