package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanInput(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantPrice float64
		wantDays  int
		wantErr   bool
	}{
		{"plain", "Monthly, 9.99, 30", "Monthly", 9.99, 30, false},
		{"dollar sign tolerated", "Yearly, $99, 365", "Yearly", 99, 365, false},
		{"no spaces", "Weekly,2.50,7", "Weekly", 2.50, 7, false},
		{"missing field", "Monthly, 9.99", "", 0, 0, true},
		{"too many fields", "Monthly, 9.99, 30, extra", "", 0, 0, true},
		{"empty name", " , 9.99, 30", "", 0, 0, true},
		{"bad price", "Monthly, free, 30", "", 0, 0, true},
		{"negative price", "Monthly, -5, 30", "", 0, 0, true},
		{"bad duration", "Monthly, 9.99, soon", "", 0, 0, true},
		{"zero duration", "Monthly, 9.99, 0", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, price, days, err := ParsePlanInput(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPlanInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantPrice, price)
			assert.Equal(t, tt.wantDays, days)
		})
	}
}

func TestPlanCreateRequiresAdmin(t *testing.T) {
	factory := setupTestDB(t)
	svc := NewPlanService(factory)

	_, err := svc.Create(context.Background(), 555, "Monthly", 9.99, 30)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestListActiveExcludesDeactivatedPlans(t *testing.T) {
	factory := setupTestDB(t)
	seedAdmin(t, factory, testAdminId)
	svc := NewPlanService(factory)
	ctx := context.Background()

	keep := seedPlan(t, factory, "Monthly", 9.99, 30)
	drop := seedPlan(t, factory, "Yearly", 99, 365)

	_, err := svc.Deactivate(ctx, testAdminId, drop.Id)
	require.NoError(t, err)

	plans, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, keep.Id, plans[0].Id)

	// The deactivated plan can't be fetched for subscribing either.
	_, err = svc.Get(ctx, drop.Id)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	// Deactivating twice reads as not found.
	_, err = svc.Deactivate(ctx, testAdminId, drop.Id)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestListActiveOrdersByPrice(t *testing.T) {
	factory := setupTestDB(t)
	svc := NewPlanService(factory)

	seedPlan(t, factory, "Yearly", 99, 365)
	seedPlan(t, factory, "Weekly", 2.50, 7)
	seedPlan(t, factory, "Monthly", 9.99, 30)

	plans, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "Weekly", plans[0].Name)
	assert.Equal(t, "Monthly", plans[1].Name)
	assert.Equal(t, "Yearly", plans[2].Name)
}
