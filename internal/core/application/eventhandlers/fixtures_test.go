package eventhandlers_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/warehouse"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureAddress(t *testing.T, city string) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress("1 Main St", city, "ST", "10001", "DE")
	require.NoError(t, err)
	return address
}

func fixtureParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	dims, err := parcel.NewDimensions(
		decimal.NewFromInt(2),
		decimal.NewFromInt(10),
		decimal.NewFromInt(1),
		decimal.NewFromInt(1),
	)
	require.NoError(t, err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		parcel.GenerateTrackingNumber(),
		"sender-1", "recipient-1",
		fixtureAddress(t, "Berlin"), fixtureAddress(t, "Hamburg"),
		dims,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return p
}

func fixtureWarehouse(t *testing.T, code string, capacity, utilization int64) *warehouse.Warehouse {
	t.Helper()
	whCode, err := warehouse.CodeFromString(code)
	require.NoError(t, err)

	w, err := warehouse.NewWarehouse(
		kernel.NewUUID(),
		whCode,
		"Test Warehouse",
		fixtureAddress(t, "Hamburg"),
		decimal.NewFromInt(capacity),
		[]string{"STANDARD"},
		[]string{"CONSOLIDATION"},
		time.Now().UTC(),
	)
	require.NoError(t, err)

	if utilization > 0 {
		_, err = w.UpdateUtilization(decimal.NewFromInt(utilization), time.Now().UTC())
		require.NoError(t, err)
	}
	return w
}
