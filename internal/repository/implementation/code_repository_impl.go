package implementation

import (
	"context"
	"errors"

	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/mapper"
	"subman-bot-be/internal/model"
	"subman-bot-be/internal/repository/contract"
	"subman-bot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CodeMapper
}

func NewCodeRepository(db *gorm.DB) contract.CodeRepository {
	return &CodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewCodeMapper(),
	}
}

func (r *CodeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CodeRepositoryImpl) Create(ctx context.Context, code *entity.Code) error {
	m := r.mapper.ToModel(code)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*code = *r.mapper.ToEntity(m)
	return nil
}

func (r *CodeRepositoryImpl) Update(ctx context.Context, code *entity.Code) error {
	m := r.mapper.ToModel(code)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*code = *r.mapper.ToEntity(m)
	return nil
}

func (r *CodeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Code, error) {
	var m model.Code
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
