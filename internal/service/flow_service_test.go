package service

import (
	"context"
	"testing"
	"time"

	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/repository/memory"
	"subman-bot-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectPlanUnknownPlanResetsFlow(t *testing.T) {
	factory := setupTestDB(t)
	flowRepo := memory.NewFlowRepository()
	svc := NewFlowService(factory, flowRepo)

	flowRepo.Save(&entity.FlowState{UserId: testUserId, Stage: entity.FlowStagePlanSelected})

	_, err := svc.SelectPlan(context.Background(), testUserId, uuid.New())
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, ok := flowRepo.Get(testUserId)
	assert.False(t, ok)
}

func TestSelectPlanDeactivatedPlanIsGone(t *testing.T) {
	factory := setupTestDB(t)
	seedAdmin(t, factory, testAdminId)
	flowRepo := memory.NewFlowRepository()
	flowSvc := NewFlowService(factory, flowRepo)
	planSvc := NewPlanService(factory)
	ctx := context.Background()

	plan := seedPlan(t, factory, "Monthly", 9.99, 30)
	_, err := planSvc.Deactivate(ctx, testAdminId, plan.Id)
	require.NoError(t, err)

	// The stale button for the removed plan no longer resolves.
	_, err = flowSvc.SelectPlan(ctx, testUserId, plan.Id)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestStartDirectPaymentCreatesPendingPayment(t *testing.T) {
	factory := setupTestDB(t)
	flowRepo := memory.NewFlowRepository()
	svc := NewFlowService(factory, flowRepo)
	plan := seedPlan(t, factory, "Monthly", 9.99, 30)
	ctx := context.Background()

	payment, gotPlan, err := svc.StartDirectPayment(ctx, testUserId, plan.Id)
	require.NoError(t, err)

	assert.Equal(t, plan.Id, gotPlan.Id)
	assert.Equal(t, entity.PaymentMethodDirect, payment.Method)
	assert.Equal(t, entity.PaymentStatusPending, payment.Status)
	assert.Equal(t, plan.Price, payment.Amount)

	state, ok := flowRepo.Get(testUserId)
	require.True(t, ok)
	assert.Equal(t, entity.FlowStageAwaitingReceipt, state.Stage)
	assert.True(t, svc.AwaitingReceipt(testUserId))
}

func TestSubmitReceiptMatchesLatestPendingPayment(t *testing.T) {
	factory := setupTestDB(t)
	seedAdmin(t, factory, testAdminId)
	seedUser(t, factory, testUserId, nil)
	flowRepo := memory.NewFlowRepository()
	svc := NewFlowService(factory, flowRepo)
	plan := seedPlan(t, factory, "Monthly", 9.99, 30)
	ctx := context.Background()

	// Distinct created_at values pin the ordering.
	older := seedPendingPaymentAt(t, factory, testUserId, plan, time.Now().Add(-1*time.Hour))
	newer := seedPendingPaymentAt(t, factory, testUserId, plan, time.Now())

	flowRepo.Save(&entity.FlowState{UserId: testUserId, Stage: entity.FlowStageAwaitingReceipt, PlanId: plan.Id})

	submission, err := svc.SubmitReceipt(ctx, testUserId, 777)
	require.NoError(t, err)

	assert.Equal(t, newer.Id, submission.Payment.Id)
	require.NotNil(t, submission.Payment.ReceiptMessageId)
	assert.Equal(t, int64(777), *submission.Payment.ReceiptMessageId)
	require.Len(t, submission.Admins, 1)
	assert.Equal(t, testAdminId, submission.Admins[0].AdminId)

	// The conversation is finished once the receipt is in.
	assert.False(t, svc.AwaitingReceipt(testUserId))

	stored, err := factory.NewUnitOfWork(ctx).PaymentRepository().FindOne(ctx, specification.ByID{ID: older.Id})
	require.NoError(t, err)
	assert.Nil(t, stored.ReceiptMessageId)
}

func TestSubmitReceiptWithoutPendingPayment(t *testing.T) {
	factory := setupTestDB(t)
	seedUser(t, factory, testUserId, nil)
	svc := NewFlowService(factory, memory.NewFlowRepository())

	_, err := svc.SubmitReceipt(context.Background(), testUserId, 777)
	assert.ErrorIs(t, err, ErrNoPendingPayment)
}
