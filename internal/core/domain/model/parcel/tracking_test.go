package parcel_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingNumber(t *testing.T) {
	t.Run("matches the expected format", func(t *testing.T) {
		tn := parcel.GenerateTrackingNumber()
		require.NoError(t, tn.Validate())
		assert.Len(t, tn.String(), 11)
		assert.Equal(t, "TRK", tn.String()[:3])
	})

	t.Run("generates fresh suffixes", func(t *testing.T) {
		seen := make(map[parcel.TrackingNumber]struct{})
		for range 100 {
			seen[parcel.GenerateTrackingNumber()] = struct{}{}
		}
		// Collisions are possible in principle but not across 100 draws.
		assert.Greater(t, len(seen), 95)
	})
}

func TestTrackingNumberFromString(t *testing.T) {
	t.Run("accepts generated format", func(t *testing.T) {
		tn, err := parcel.TrackingNumberFromString("TRK1A2B3C4D")
		require.NoError(t, err)
		assert.Equal(t, "TRK1A2B3C4D", tn.String())
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, bad := range []string{"", "TRK", "trk1a2b3c4d", "TRK1A2B3C4D5", "ABC1A2B3C4D"} {
			_, err := parcel.TrackingNumberFromString(bad)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "value %q", bad)
		}
	})
}

func TestNewTrackingEvent(t *testing.T) {
	t.Run("creates event", func(t *testing.T) {
		ts := time.Now()
		event, err := parcel.NewTrackingEvent(ts, "Boston Hub", parcel.StatusInTransit, "departed")

		require.NoError(t, err)
		assert.Equal(t, ts, event.Timestamp())
		assert.Equal(t, "Boston Hub", event.Location())
		assert.Equal(t, parcel.StatusInTransit, event.Status())
		assert.Equal(t, "departed", event.Description())
	})

	t.Run("rejects zero timestamp", func(t *testing.T) {
		_, err := parcel.NewTrackingEvent(time.Time{}, "Hub", parcel.StatusInTransit, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects blank location", func(t *testing.T) {
		_, err := parcel.NewTrackingEvent(time.Now(), " ", parcel.StatusInTransit, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects blank status", func(t *testing.T) {
		_, err := parcel.NewTrackingEvent(time.Now(), "Hub", "", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("accepts unknown status strings", func(t *testing.T) {
		event, err := parcel.NewTrackingEvent(time.Now(), "Hub", "CUSTOMS_HOLD", "held")
		require.NoError(t, err)
		assert.False(t, event.Status().IsKnown())
	})
}

func TestStatus_IsKnown(t *testing.T) {
	known := []parcel.Status{
		parcel.StatusCreated, parcel.StatusInTransit, parcel.StatusAtWarehouse,
		parcel.StatusOutForDelivery, parcel.StatusDelivered, parcel.StatusConsolidated,
	}
	for _, s := range known {
		assert.True(t, s.IsKnown(), "status %s", s)
	}
	assert.False(t, parcel.Status("LOST").IsKnown())
}
