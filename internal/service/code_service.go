package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"subman-bot-be/internal/dto"
	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/specification"
	"subman-bot-be/internal/repository/unitofwork"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 10

	// Collisions at this keyspace are vanishingly rare; a handful of
	// retries covers them without a loop bound worth configuring.
	codeGenerateRetries = 5
)

type ICodeService interface {
	Generate(ctx context.Context, adminId int64, days int) (*entity.Code, error)
	Redeem(ctx context.Context, userId int64, rawCode string) (*dto.RedeemOutcome, error)
}

type codeService struct {
	uowFactory unitofwork.RepositoryFactory
	now        func() time.Time
}

func NewCodeService(uowFactory unitofwork.RepositoryFactory) ICodeService {
	return &codeService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func NewCodeServiceWithClock(uowFactory unitofwork.RepositoryFactory, now func() time.Time) ICodeService {
	return &codeService{
		uowFactory: uowFactory,
		now:        now,
	}
}

func (s *codeService) Generate(ctx context.Context, adminId int64, days int) (*entity.Code, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.AdminRepository().FindOne(ctx, specification.ByAdminID{AdminID: adminId})
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotAuthorized
	}

	if days <= 0 {
		return nil, ErrInvalidDuration
	}

	var lastErr error
	for attempt := 0; attempt < codeGenerateRetries; attempt++ {
		text, err := gonanoid.Generate(codeAlphabet, codeLength)
		if err != nil {
			return nil, err
		}

		code := &entity.Code{
			Code:           text,
			AssociatedDays: days,
			CreatedAt:      s.now(),
		}
		err = uow.CodeRepository().Create(ctx, code)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *codeService) Redeem(ctx context.Context, userId int64, rawCode string) (*dto.RedeemOutcome, error) {
	normalized := strings.ToUpper(strings.TrimSpace(rawCode))
	if normalized == "" {
		return nil, ErrCodeInvalid
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// A missing code and a used code answer identically; the reply must
	// not confirm that a guessed code exists.
	code, err := uow.CodeRepository().FindOne(ctx, specification.UnusedCode{Code: normalized})
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrCodeInvalid
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := s.now()
	newExpiry := user.ExtendSubscription(code.AssociatedDays, now)
	user.UpdatedAt = now
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	code.Used = true
	code.RedeemedBy = &userId
	code.RedeemedAt = &now
	if err := uow.CodeRepository().Update(ctx, code); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.RedeemOutcome{
		Code:      code,
		User:      user,
		NewExpiry: newExpiry,
	}, nil
}
