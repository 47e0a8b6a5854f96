package mapper

import (
	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		UserId:             u.UserId,
		Username:           u.Username,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		SubscriptionStatus: entity.SubscriptionStatus(u.SubscriptionStatus),
		SubscriptionExpiry: u.SubscriptionExpiry,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		UserId:             u.UserId,
		Username:           u.Username,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		SubscriptionStatus: string(u.SubscriptionStatus),
		SubscriptionExpiry: u.SubscriptionExpiry,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
