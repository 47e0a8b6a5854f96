package contract

import (
	"context"

	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/specification"
)

type CodeRepository interface {
	Create(ctx context.Context, code *entity.Code) error
	Update(ctx context.Context, code *entity.Code) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Code, error)
}
