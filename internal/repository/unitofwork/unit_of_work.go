package unitofwork

import (
	"context"

	"subman-bot-be/internal/repository/contract"
)

// UnitOfWork scopes one transaction around a series of repository calls.
// Handlers begin a transaction per inbound event, commit on success and roll
// back on any failure.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PlanRepository() contract.PlanRepository
	PaymentRepository() contract.PaymentRepository
	CodeRepository() contract.CodeRepository
	AdminRepository() contract.AdminRepository
}
