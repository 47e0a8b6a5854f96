package contract

import (
	"context"

	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/specification"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Admin, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Admin, error)
}
