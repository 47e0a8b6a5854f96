package service

import (
	"context"
	"time"

	"subman-bot-be/internal/dto"
	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/specification"
	"subman-bot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IApprovalService resolves pending payments. Exactly one decision wins:
// the pending check and the status flip share a transaction, so a second
// admin pressing the other button gets AlreadyResolved and changes nothing.
type IApprovalService interface {
	Decide(ctx context.Context, adminId int64, approve bool, userId int64, paymentId uuid.UUID) (*dto.DecisionOutcome, error)
}

type approvalService struct {
	uowFactory unitofwork.RepositoryFactory
	now        func() time.Time
}

func NewApprovalService(uowFactory unitofwork.RepositoryFactory) IApprovalService {
	return &approvalService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// NewApprovalServiceWithClock pins the clock for deterministic expiry math.
func NewApprovalServiceWithClock(uowFactory unitofwork.RepositoryFactory, now func() time.Time) IApprovalService {
	return &approvalService{
		uowFactory: uowFactory,
		now:        now,
	}
}

func (s *approvalService) Decide(ctx context.Context, adminId int64, approve bool, userId int64, paymentId uuid.UUID) (*dto.DecisionOutcome, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.AdminRepository().FindOne(ctx, specification.ByAdminID{AdminID: adminId})
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotAuthorized
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: paymentId})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !payment.IsPending() {
		// Another admin got here first.
		return &dto.DecisionOutcome{
			AlreadyResolved: true,
			Approved:        payment.Status == entity.PaymentStatusConfirmed,
			Payment:         payment,
			User:            user,
		}, nil
	}

	now := s.now()
	outcome := &dto.DecisionOutcome{
		Applied:  true,
		Approved: approve,
		Payment:  payment,
		User:     user,
	}

	if approve {
		plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: payment.PlanId})
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, ErrPlanNotFound
		}

		outcome.NewExpiry = user.ExtendSubscription(plan.DurationDays, now)
		user.UpdatedAt = now
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
		payment.Status = entity.PaymentStatusConfirmed
	} else {
		payment.Status = entity.PaymentStatusDenied
	}

	payment.UpdatedAt = now
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return outcome, nil
}
