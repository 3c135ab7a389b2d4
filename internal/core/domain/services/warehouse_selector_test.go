package services_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/warehouse"
	"parcelhub/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWarehouseWithLoad(t *testing.T, code, city string, capacity, utilization int64) *warehouse.Warehouse {
	t.Helper()

	c, err := warehouse.CodeFromString(code)
	require.NoError(t, err)
	addr, err := kernel.NewAddress("1 Dock Rd", city, "MA", "02101", "US")
	require.NoError(t, err)

	w, err := warehouse.NewWarehouse(
		kernel.NewUUID(), c, code+" Hub", addr,
		decimal.NewFromInt(capacity), nil, nil, time.Now(),
	)
	require.NoError(t, err)

	if utilization > 0 {
		_, err = w.UpdateUtilization(decimal.NewFromInt(utilization), time.Now())
		require.NoError(t, err)
	}
	return w
}

func TestWarehouseSelector_Select(t *testing.T) {
	selector := services.NewWarehouseSelector()

	t.Run("picks the least utilized admissible warehouse", func(t *testing.T) {
		w1 := newWarehouseWithLoad(t, "WH-1", "Boston", 100, 50)
		w2 := newWarehouseWithLoad(t, "WH-2", "Boston", 100, 20)
		w3 := newWarehouseWithLoad(t, "WH-3", "Boston", 100, 70)

		got, err := selector.Select("Boston", []*warehouse.Warehouse{w1, w2, w3})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(w2))
	})

	t.Run("excludes warehouses at or above the 80 percent threshold", func(t *testing.T) {
		atThreshold := newWarehouseWithLoad(t, "WH-1", "Boston", 100, 80)
		above := newWarehouseWithLoad(t, "WH-2", "Boston", 100, 95)
		below := newWarehouseWithLoad(t, "WH-3", "Boston", 100, 79)

		got, err := selector.Select("Boston", []*warehouse.Warehouse{atThreshold, above, below})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(below))
	})

	t.Run("filters by destination city", func(t *testing.T) {
		boston := newWarehouseWithLoad(t, "WH-BOS", "Boston", 100, 10)
		chicago := newWarehouseWithLoad(t, "WH-CHI", "Chicago", 100, 70)

		got, err := selector.Select("Chicago", []*warehouse.Warehouse{boston, chicago})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(chicago))
	})

	t.Run("falls back to other cities when the destination is saturated", func(t *testing.T) {
		saturated := newWarehouseWithLoad(t, "WH-CHI", "Chicago", 100, 85)
		boston := newWarehouseWithLoad(t, "WH-BOS", "Boston", 100, 40)

		got, err := selector.Select("Chicago", []*warehouse.Warehouse{saturated, boston})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(boston))
	})

	t.Run("empty city disables the filter", func(t *testing.T) {
		boston := newWarehouseWithLoad(t, "WH-BOS", "Boston", 100, 40)
		chicago := newWarehouseWithLoad(t, "WH-CHI", "Chicago", 100, 10)

		got, err := selector.Select("", []*warehouse.Warehouse{boston, chicago})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(chicago))
	})

	t.Run("skips non-active warehouses", func(t *testing.T) {
		maintenance := newWarehouseWithLoad(t, "WH-1", "Boston", 100, 10)
		_, err := maintenance.OverrideStatus(warehouse.StatusMaintenance, time.Now())
		require.NoError(t, err)

		active := newWarehouseWithLoad(t, "WH-2", "Boston", 100, 60)

		got, err := selector.Select("Boston", []*warehouse.Warehouse{maintenance, active})
		require.NoError(t, err)
		assert.True(t, got.IsEqual(active))
	})

	t.Run("returns not found when nothing qualifies", func(t *testing.T) {
		full := newWarehouseWithLoad(t, "WH-1", "Boston", 100, 100)

		_, err := selector.Select("Boston", []*warehouse.Warehouse{full})
		require.ErrorIs(t, err, services.ErrWarehouseNotFound)

		_, err = selector.Select("Boston", nil)
		require.ErrorIs(t, err, services.ErrWarehouseNotFound)
	})
}

func TestWarehouseSelector_Admits(t *testing.T) {
	selector := services.NewWarehouseSelector()

	w := newWarehouseWithLoad(t, "WH-1", "Boston", 100, 79)
	assert.True(t, selector.Admits(w))

	_, err := w.UpdateUtilization(decimal.NewFromInt(80), time.Now())
	require.NoError(t, err)
	assert.False(t, selector.Admits(w))

	_, err = w.UpdateUtilization(decimal.NewFromInt(10), time.Now())
	require.NoError(t, err)
	_, err = w.OverrideStatus(warehouse.StatusInactive, time.Now())
	require.NoError(t, err)
	assert.False(t, selector.Admits(w))
}
