package contract

import (
	"context"

	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/specification"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *entity.SubscriptionPlan) error
	Update(ctx context.Context, plan *entity.SubscriptionPlan) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error)
}
