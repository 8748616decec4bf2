package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/inventory"
)

func TestCheckCounts(t *testing.T) {
	cases := []struct {
		name       string
		counts     models.CakeCountSet
		wantActual int
		wantDiff   int
		wantStatus models.CakeStatus
		wantUnits  int
	}{
		{
			name:       "balanced",
			counts:     models.CakeCountSet{YesterdayStock: 10, TodayStock: 4, MovedOut: 2, Discarded: 1, MachineReported: 7},
			wantActual: 7,
			wantDiff:   0,
			wantStatus: models.CakeBalanced,
		},
		{
			name:       "machine under-reports means shortage",
			counts:     models.CakeCountSet{YesterdayStock: 10, TodayStock: 4, MovedOut: 2, Discarded: 1, MachineReported: 5},
			wantActual: 7,
			wantDiff:   2,
			wantStatus: models.CakeShortage,
			wantUnits:  2,
		},
		{
			name:       "machine over-reports means surplus",
			counts:     models.CakeCountSet{YesterdayStock: 10, TodayStock: 4, MovedOut: 2, Discarded: 1, MachineReported: 9},
			wantActual: 7,
			wantDiff:   -2,
			wantStatus: models.CakeSurplus,
			wantUnits:  2,
		},
		{
			name:       "negative actual consumption still classified",
			counts:     models.CakeCountSet{YesterdayStock: 2, TodayStock: 5, MachineReported: 0},
			wantActual: -3,
			wantDiff:   -3,
			wantStatus: models.CakeSurplus,
			wantUnits:  3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := inventory.CheckCounts(models.CakeLargeBase, tc.counts)

			assert.Equal(t, models.CakeLargeBase, result.SKU)
			assert.Equal(t, tc.wantActual, result.ActualConsumed)
			assert.Equal(t, tc.wantDiff, result.Diff)
			assert.Equal(t, tc.wantStatus, result.Status)
			assert.Equal(t, tc.wantUnits, result.Units)
		})
	}
}

func TestRunCakeCheck_BothSKUsAndAudit(t *testing.T) {
	store := newFakeStore()
	svc := inventory.NewService(store, nil)

	req := models.CakeCheckRequest{
		Store: "q1",
		Date:  "2024-03-09",
		Large: models.CakeCountSet{YesterdayStock: 10, TodayStock: 4, MovedOut: 2, Discarded: 1, MachineReported: 5},
		Small: models.CakeCountSet{YesterdayStock: 6, TodayStock: 2, MachineReported: 4},
	}

	result, err := svc.RunCakeCheck(context.Background(), req, "anna")

	require.NoError(t, err)
	assert.Equal(t, models.CakeShortage, result.Large.Status)
	assert.Equal(t, 2, result.Large.Units)
	assert.Equal(t, models.CakeBalanced, result.Small.Status)
	assert.Equal(t, models.CakeSmallBase, result.Small.SKU)

	require.Len(t, store.cakeAudit, 1)
	audit := store.cakeAudit[0]
	assert.NotEmpty(t, audit.ID)
	assert.Equal(t, "q1", audit.Store)
	assert.Equal(t, "anna", audit.Actor)
	assert.Equal(t, result, audit.Result)
}
