package mapper

import (
	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/model"
)

type CodeMapper struct{}

func NewCodeMapper() *CodeMapper {
	return &CodeMapper{}
}

func (m *CodeMapper) ToEntity(c *model.Code) *entity.Code {
	if c == nil {
		return nil
	}
	return &entity.Code{
		Code:           c.Code,
		AssociatedDays: c.AssociatedDays,
		Used:           c.Used,
		RedeemedBy:     c.RedeemedBy,
		RedeemedAt:     c.RedeemedAt,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *CodeMapper) ToModel(c *entity.Code) *model.Code {
	if c == nil {
		return nil
	}
	return &model.Code{
		Code:           c.Code,
		AssociatedDays: c.AssociatedDays,
		Used:           c.Used,
		RedeemedBy:     c.RedeemedBy,
		RedeemedAt:     c.RedeemedAt,
		CreatedAt:      c.CreatedAt,
	}
}
