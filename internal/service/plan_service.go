package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/specification"
	"subman-bot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPlanService interface {
	ListActive(ctx context.Context) ([]*entity.SubscriptionPlan, error)
	Get(ctx context.Context, planId uuid.UUID) (*entity.SubscriptionPlan, error)
	Create(ctx context.Context, adminId int64, name string, price float64, durationDays int) (*entity.SubscriptionPlan, error)
	// Deactivate hides a plan from the catalog. The row stays because
	// payments reference it.
	Deactivate(ctx context.Context, adminId int64, planId uuid.UUID) (*entity.SubscriptionPlan, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory) IPlanService {
	return &planService{
		uowFactory: uowFactory,
	}
}

func (s *planService) ListActive(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.PlanRepository().FindAll(ctx,
		specification.ActivePlans{},
		specification.OrderBy{Field: "price"},
	)
}

func (s *planService) Get(ctx context.Context, planId uuid.UUID) (*entity.SubscriptionPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.Active {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (s *planService) Create(ctx context.Context, adminId int64, name string, price float64, durationDays int) (*entity.SubscriptionPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.AdminRepository().FindOne(ctx, specification.ByAdminID{AdminID: adminId})
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotAuthorized
	}

	if name == "" || price <= 0 || durationDays <= 0 {
		return nil, ErrInvalidPlanInput
	}

	plan := &entity.SubscriptionPlan{
		Id:           uuid.New(),
		Name:         name,
		Price:        price,
		DurationDays: durationDays,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := uow.PlanRepository().Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Deactivate(ctx context.Context, adminId int64, planId uuid.UUID) (*entity.SubscriptionPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.AdminRepository().FindOne(ctx, specification.ByAdminID{AdminID: adminId})
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotAuthorized
	}

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.Active {
		return nil, ErrPlanNotFound
	}

	plan.Active = false
	plan.UpdatedAt = time.Now()
	if err := uow.PlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ParsePlanInput splits the "/add_plan name, price, days" argument string.
func ParsePlanInput(input string) (name string, price float64, durationDays int, err error) {
	parts := strings.Split(input, ",")
	if len(parts) != 3 {
		return "", 0, 0, ErrInvalidPlanInput
	}

	name = strings.TrimSpace(parts[0])
	if name == "" {
		return "", 0, 0, ErrInvalidPlanInput
	}

	priceStr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[1]), "$"))
	price, convErr := strconv.ParseFloat(priceStr, 64)
	if convErr != nil || price <= 0 {
		return "", 0, 0, fmt.Errorf("%w: bad price %q", ErrInvalidPlanInput, parts[1])
	}

	durationDays, convErr = strconv.Atoi(strings.TrimSpace(parts[2]))
	if convErr != nil || durationDays <= 0 {
		return "", 0, 0, fmt.Errorf("%w: bad duration %q", ErrInvalidPlanInput, parts[2])
	}

	return name, price, durationDays, nil
}
