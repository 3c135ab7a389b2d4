package commands_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/warehouse"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func fixtureAddress(t *testing.T, city string) kernel.Address {
	t.Helper()

	addr, err := kernel.NewAddress("1 Main St", city, "MA", "02101", "US")
	require.NoError(t, err)
	return addr
}

func fixtureDimensions(t *testing.T) parcel.Dimensions {
	t.Helper()

	dims, err := parcel.NewDimensions(
		decimal.NewFromInt(2),
		decimal.NewFromInt(10), decimal.NewFromInt(1), decimal.NewFromInt(1),
	)
	require.NoError(t, err)
	return dims
}

func fixtureParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(
		kernel.NewUUID(), parcel.GenerateTrackingNumber(),
		"sender-1", "recipient-1",
		fixtureAddress(t, "Boston"), fixtureAddress(t, "New York"),
		fixtureDimensions(t), time.Now(),
	)
	require.NoError(t, err)
	return p
}

func fixtureWarehouse(t *testing.T, capacity int64) *warehouse.Warehouse {
	t.Helper()

	code, err := warehouse.CodeFromString("WH-TEST")
	require.NoError(t, err)

	w, err := warehouse.NewWarehouse(
		kernel.NewUUID(), code, "Test Hub", fixtureAddress(t, "Boston"),
		decimal.NewFromInt(capacity), nil, nil, time.Now(),
	)
	require.NoError(t, err)
	return w
}
