package service

import (
	"context"
	"time"

	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/specification"
	"subman-bot-be/internal/repository/unitofwork"
)

type IUserService interface {
	// Register upserts the sender's profile. Returns the user and whether
	// this was a first contact.
	Register(ctx context.Context, userId int64, username, firstName, lastName string) (*entity.User, bool, error)
	Status(ctx context.Context, userId int64) (*entity.User, error)
	IsAdmin(ctx context.Context, userId int64) (bool, error)
	Admins(ctx context.Context) ([]*entity.Admin, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) Register(ctx context.Context, userId int64, username, firstName, lastName string) (*entity.User, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		// Keep the stored profile current; names change on the platform.
		if existing.Username != username || existing.FirstName != firstName || existing.LastName != lastName {
			existing.Username = username
			existing.FirstName = firstName
			existing.LastName = lastName
			existing.UpdatedAt = time.Now()
			if err := uow.UserRepository().Update(ctx, existing); err != nil {
				return nil, false, err
			}
		}
		return existing, false, nil
	}

	user := &entity.User{
		UserId:             userId,
		Username:           username,
		FirstName:          firstName,
		LastName:           lastName,
		SubscriptionStatus: entity.SubscriptionStatusInactive,
		CreatedAt:          time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *userService) Status(ctx context.Context, userId int64) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) IsAdmin(ctx context.Context, userId int64) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.AdminRepository().FindOne(ctx, specification.ByAdminID{AdminID: userId})
	if err != nil {
		return false, err
	}
	return admin != nil, nil
}

func (s *userService) Admins(ctx context.Context) ([]*entity.Admin, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AdminRepository().FindAll(ctx)
}
