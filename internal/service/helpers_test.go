package service

import (
	"context"
	"testing"
	"time"

	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/model"
	"subman-bot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.SubscriptionPlan{},
		&model.Payment{},
		&model.Code{},
		&model.Admin{},
	)
	require.NoError(t, err)

	return unitofwork.NewRepositoryFactory(db)
}

func seedAdmin(t *testing.T, factory unitofwork.RepositoryFactory, adminId int64) {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)
	err := uow.AdminRepository().Create(ctx, &entity.Admin{
		AdminId:   adminId,
		Username:  "admin",
		FirstName: "Admin",
	})
	require.NoError(t, err)
}

func seedUser(t *testing.T, factory unitofwork.RepositoryFactory, userId int64, expiry *time.Time) *entity.User {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	status := entity.SubscriptionStatusInactive
	if expiry != nil {
		status = entity.SubscriptionStatusActive
	}
	user := &entity.User{
		UserId:             userId,
		Username:           "someone",
		FirstName:          "Some",
		LastName:           "One",
		SubscriptionStatus: status,
		SubscriptionExpiry: expiry,
		CreatedAt:          time.Now(),
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	return user
}

func seedPlan(t *testing.T, factory unitofwork.RepositoryFactory, name string, price float64, days int) *entity.SubscriptionPlan {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	plan := &entity.SubscriptionPlan{
		Id:           uuid.New(),
		Name:         name,
		Price:        price,
		DurationDays: days,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, uow.PlanRepository().Create(ctx, plan))
	return plan
}

func seedPendingPayment(t *testing.T, factory unitofwork.RepositoryFactory, userId int64, plan *entity.SubscriptionPlan) *entity.Payment {
	t.Helper()
	return seedPendingPaymentAt(t, factory, userId, plan, time.Now())
}

func seedPendingPaymentAt(t *testing.T, factory unitofwork.RepositoryFactory, userId int64, plan *entity.SubscriptionPlan, createdAt time.Time) *entity.Payment {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	payment := &entity.Payment{
		Id:        uuid.New(),
		UserId:    userId,
		PlanId:    plan.Id,
		Amount:    plan.Price,
		Method:    entity.PaymentMethodDirect,
		Status:    entity.PaymentStatusPending,
		CreatedAt: createdAt,
	}
	require.NoError(t, uow.PaymentRepository().Create(ctx, payment))
	return payment
}
