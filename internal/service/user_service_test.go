package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFirstContactCreatesUser(t *testing.T) {
	factory := setupTestDB(t)
	svc := NewUserService(factory)
	ctx := context.Background()

	user, created, err := svc.Register(ctx, testUserId, "someone", "Some", "One")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, testUserId, user.UserId)

	user, created, err = svc.Register(ctx, testUserId, "someone", "Some", "One")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "someone", user.Username)
}

func TestRegisterRefreshesChangedProfile(t *testing.T) {
	factory := setupTestDB(t)
	svc := NewUserService(factory)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, testUserId, "oldname", "Old", "Name")
	require.NoError(t, err)

	user, created, err := svc.Register(ctx, testUserId, "newname", "New", "Name")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "newname", user.Username)

	stored, err := svc.Status(ctx, testUserId)
	require.NoError(t, err)
	assert.Equal(t, "newname", stored.Username)
	assert.Equal(t, "New", stored.FirstName)
}

func TestStatusUnknownUser(t *testing.T) {
	factory := setupTestDB(t)
	svc := NewUserService(factory)

	_, err := svc.Status(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsAdmin(t *testing.T) {
	factory := setupTestDB(t)
	seedAdmin(t, factory, testAdminId)
	svc := NewUserService(factory)
	ctx := context.Background()

	isAdmin, err := svc.IsAdmin(ctx, testAdminId)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.IsAdmin(ctx, testUserId)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}
