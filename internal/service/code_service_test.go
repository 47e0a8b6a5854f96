package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"subman-bot-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequiresAdmin(t *testing.T) {
	factory := setupTestDB(t)
	svc := NewCodeService(factory)

	_, err := svc.Generate(context.Background(), 555, 30)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestGenerateRejectsNonPositiveDuration(t *testing.T) {
	factory := setupTestDB(t)
	seedAdmin(t, factory, testAdminId)
	svc := NewCodeService(factory)

	_, err := svc.Generate(context.Background(), testAdminId, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = svc.Generate(context.Background(), testAdminId, -5)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateProducesRedeemableCode(t *testing.T) {
	factory := setupTestDB(t)
	seedAdmin(t, factory, testAdminId)
	svc := NewCodeService(factory)

	code, err := svc.Generate(context.Background(), testAdminId, 14)
	require.NoError(t, err)

	assert.Len(t, code.Code, 10)
	assert.Equal(t, strings.ToUpper(code.Code), code.Code)
	assert.Equal(t, 14, code.AssociatedDays)
	assert.False(t, code.Used)
}

func TestRedeemExtendsSubscription(t *testing.T) {
	factory := setupTestDB(t)
	seedAdmin(t, factory, testAdminId)
	seedUser(t, factory, testUserId, nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewCodeServiceWithClock(factory, func() time.Time { return now })
	ctx := context.Background()

	code, err := svc.Generate(ctx, testAdminId, 14)
	require.NoError(t, err)

	// Redemption is case-insensitive.
	outcome, err := svc.Redeem(ctx, testUserId, strings.ToLower(code.Code))
	require.NoError(t, err)
	assert.True(t, outcome.NewExpiry.Equal(now.AddDate(0, 0, 14)))

	stored, err := factory.NewUnitOfWork(ctx).CodeRepository().FindOne(ctx,
		specification.Filter("code", code.Code))
	require.NoError(t, err)
	assert.True(t, stored.Used)
	require.NotNil(t, stored.RedeemedBy)
	assert.Equal(t, testUserId, *stored.RedeemedBy)
	require.NotNil(t, stored.RedeemedAt)
}

// A code that never existed and a code already spent answer identically.
func TestRedeemInvalidAndUsedAreIndistinguishable(t *testing.T) {
	factory := setupTestDB(t)
	seedAdmin(t, factory, testAdminId)
	seedUser(t, factory, testUserId, nil)
	otherUser := testUserId + 1
	seedUser(t, factory, otherUser, nil)

	svc := NewCodeService(factory)
	ctx := context.Background()

	_, errUnknown := svc.Redeem(ctx, testUserId, "NEVERWAS99")
	assert.ErrorIs(t, errUnknown, ErrCodeInvalid)

	code, err := svc.Generate(ctx, testAdminId, 7)
	require.NoError(t, err)
	_, err = svc.Redeem(ctx, testUserId, code.Code)
	require.NoError(t, err)

	_, errUsed := svc.Redeem(ctx, otherUser, code.Code)
	assert.ErrorIs(t, errUsed, ErrCodeInvalid)
	assert.Equal(t, errUnknown.Error(), errUsed.Error())
}

func TestRedeemSameCodeOnlyFlipsOnce(t *testing.T) {
	factory := setupTestDB(t)
	seedAdmin(t, factory, testAdminId)
	seedUser(t, factory, testUserId, nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewCodeServiceWithClock(factory, func() time.Time { return now })
	ctx := context.Background()

	code, err := svc.Generate(ctx, testAdminId, 7)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, testUserId, code.Code)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, testUserId, code.Code)
	assert.ErrorIs(t, err, ErrCodeInvalid)

	// Expiry granted exactly once.
	user, err := factory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx,
		specification.ByUserID{UserID: testUserId})
	require.NoError(t, err)
	require.NotNil(t, user.SubscriptionExpiry)
	assert.True(t, user.SubscriptionExpiry.Equal(now.AddDate(0, 0, 7)))
}
