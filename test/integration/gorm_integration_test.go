package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/specification"
	"subman-bot-be/internal/repository/unitofwork"
	"subman-bot-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.PaymentRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Transactional Payment Flow", func(t *testing.T) {
		ctx := context.Background()

		userId := time.Now().UnixNano() // unlikely to collide with real data
		user := &entity.User{
			UserId:             userId,
			Username:           "integration-test",
			FirstName:          "Integration",
			SubscriptionStatus: entity.SubscriptionStatusInactive,
			CreatedAt:          time.Now(),
		}

		plan := &entity.SubscriptionPlan{
			Id:           uuid.New(),
			Name:         "Integration Plan",
			Price:        1.00,
			DurationDays: 1,
			Active:       true,
			CreatedAt:    time.Now(),
		}

		txUow := uowFactory.NewUnitOfWork(ctx)
		assert.NoError(t, txUow.Begin(ctx))

		assert.NoError(t, txUow.UserRepository().Create(ctx, user))
		assert.NoError(t, txUow.PlanRepository().Create(ctx, plan))

		payment := &entity.Payment{
			Id:        uuid.New(),
			UserId:    userId,
			PlanId:    plan.Id,
			Amount:    plan.Price,
			Method:    entity.PaymentMethodDirect,
			Status:    entity.PaymentStatusPending,
			CreatedAt: time.Now(),
		}
		assert.NoError(t, txUow.PaymentRepository().Create(ctx, payment))

		found, err := txUow.PaymentRepository().FindOne(ctx, specification.ByID{ID: payment.Id})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		// Leave no integration residue behind.
		assert.NoError(t, txUow.Rollback())

		gone, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: payment.Id})
		assert.NoError(t, err)
		assert.Nil(t, gone)
	})
}
