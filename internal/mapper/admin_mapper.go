package mapper

import (
	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/model"
)

type AdminMapper struct{}

func NewAdminMapper() *AdminMapper {
	return &AdminMapper{}
}

func (m *AdminMapper) ToEntity(a *model.Admin) *entity.Admin {
	if a == nil {
		return nil
	}
	return &entity.Admin{
		AdminId:     a.AdminId,
		Username:    a.Username,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		IsSuperuser: a.IsSuperuser,
	}
}

func (m *AdminMapper) ToModel(a *entity.Admin) *model.Admin {
	if a == nil {
		return nil
	}
	return &model.Admin{
		AdminId:     a.AdminId,
		Username:    a.Username,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		IsSuperuser: a.IsSuperuser,
	}
}
