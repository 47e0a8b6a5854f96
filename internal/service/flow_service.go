package service

import (
	"context"
	"time"

	"subman-bot-be/internal/dto"
	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/memory"
	"subman-bot-be/internal/repository/specification"
	"subman-bot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IFlowService drives the subscribe conversation: plan selection, payment
// method, receipt intake. Conversation position lives in the flow store;
// payments live in the database.
type IFlowService interface {
	SelectPlan(ctx context.Context, userId int64, planId uuid.UUID) (*entity.SubscriptionPlan, error)
	StartDirectPayment(ctx context.Context, userId int64, planId uuid.UUID) (*entity.Payment, *entity.SubscriptionPlan, error)
	SubmitReceipt(ctx context.Context, userId int64, receiptMessageId int64) (*dto.ReceiptSubmission, error)
	AwaitingReceipt(userId int64) bool
}

type flowService struct {
	uowFactory unitofwork.RepositoryFactory
	flowRepo   *memory.FlowRepository
}

func NewFlowService(uowFactory unitofwork.RepositoryFactory, flowRepo *memory.FlowRepository) IFlowService {
	return &flowService{
		uowFactory: uowFactory,
		flowRepo:   flowRepo,
	}
}

func (s *flowService) SelectPlan(ctx context.Context, userId int64, planId uuid.UUID) (*entity.SubscriptionPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.Active {
		// Stale button from a removed plan; reset the conversation.
		s.flowRepo.Delete(userId)
		return nil, ErrPlanNotFound
	}

	s.flowRepo.Save(&entity.FlowState{
		UserId: userId,
		Stage:  entity.FlowStagePlanSelected,
		PlanId: plan.Id,
	})
	return plan, nil
}

func (s *flowService) StartDirectPayment(ctx context.Context, userId int64, planId uuid.UUID) (*entity.Payment, *entity.SubscriptionPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, nil, err
	}
	if plan == nil || !plan.Active {
		s.flowRepo.Delete(userId)
		return nil, nil, ErrPlanNotFound
	}

	payment := &entity.Payment{
		Id:        uuid.New(),
		UserId:    userId,
		PlanId:    plan.Id,
		Amount:    plan.Price,
		Method:    entity.PaymentMethodDirect,
		Status:    entity.PaymentStatusPending,
		CreatedAt: time.Now(),
	}
	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, nil, err
	}

	s.flowRepo.Save(&entity.FlowState{
		UserId: userId,
		Stage:  entity.FlowStageAwaitingReceipt,
		PlanId: plan.Id,
	})
	return payment, plan, nil
}

func (s *flowService) SubmitReceipt(ctx context.Context, userId int64, receiptMessageId int64) (*dto.ReceiptSubmission, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The receipt is matched to the user's most recent pending payment,
	// not to the conversation state; a restart between payment and
	// receipt must not orphan the payment.
	payments, err := uow.PaymentRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.PendingPayments{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 1},
	)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, ErrNoPendingPayment
	}
	payment := payments[0]

	payment.ReceiptMessageId = &receiptMessageId
	payment.UpdatedAt = time.Now()
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	admins, err := uow.AdminRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.flowRepo.Delete(userId)

	return &dto.ReceiptSubmission{
		Payment: payment,
		User:    user,
		Admins:  admins,
	}, nil
}

func (s *flowService) AwaitingReceipt(userId int64) bool {
	state, ok := s.flowRepo.Get(userId)
	return ok && state.Stage == entity.FlowStageAwaitingReceipt
}
