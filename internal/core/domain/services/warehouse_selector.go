package services

import (
	"errors"

	"parcelhub/internal/core/domain/model/warehouse"

	"github.com/shopspring/decimal"
)

// admissionThreshold is the utilization ratio above which a warehouse no
// longer accepts new consolidation batches.
var admissionThreshold = decimal.NewFromFloat(0.80)

// ErrWarehouseNotFound is returned when no warehouse can admit a batch.
// This occurs when no warehouses are provided, none serve the destination
// city, or every candidate sits at or above the admission threshold.
var ErrWarehouseNotFound = errors.New("warehouse not found")

// WarehouseSelector is a domain service that picks the warehouse to receive
// a consolidation batch.
//
// Business rules:
//   - Only ACTIVE warehouses are considered
//   - A warehouse admits new batches while utilization/capacity is strictly
//     below 80%; the batch's own volume is not part of the admission check
//   - When a destination city is given, warehouses in that city are
//     preferred; when none of them admit, any admissible warehouse serves
//   - Among admissible warehouses the least utilized one (by ratio) wins,
//     first candidate on ties
type WarehouseSelector struct{}

// NewWarehouseSelector creates a new WarehouseSelector instance.
func NewWarehouseSelector() WarehouseSelector {
	return WarehouseSelector{}
}

// Select returns the least-utilized admissible warehouse for a batch bound
// for destinationCity. An empty destinationCity disables the city filter.
// When the destination city has no admissible warehouse the batch routes to
// the least utilized admissible warehouse anywhere; routing out of town
// beats not routing at all. Returns ErrWarehouseNotFound when no candidate
// qualifies.
func (s WarehouseSelector) Select(destinationCity string, warehouses []*warehouse.Warehouse) (*warehouse.Warehouse, error) {
	for _, w := range warehouses {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}

	if destinationCity != "" {
		if best := s.pick(warehouses, destinationCity); best != nil {
			return best, nil
		}
	}

	if best := s.pick(warehouses, ""); best != nil {
		return best, nil
	}

	return nil, ErrWarehouseNotFound
}

func (s WarehouseSelector) pick(warehouses []*warehouse.Warehouse, city string) *warehouse.Warehouse {
	var (
		best      *warehouse.Warehouse
		bestRatio decimal.Decimal
	)

	for _, w := range warehouses {
		if !s.Admits(w) {
			continue
		}

		if city != "" && w.Address().City() != city {
			continue
		}

		ratio := w.UtilizationRatio()
		if best == nil || ratio.LessThan(bestRatio) {
			best = w
			bestRatio = ratio
		}
	}

	return best
}

// Admits reports whether the warehouse currently accepts new batches:
// ACTIVE status and utilization ratio strictly below the 80% threshold.
func (s WarehouseSelector) Admits(w *warehouse.Warehouse) bool {
	if w.Status() != warehouse.StatusActive {
		return false
	}
	return w.UtilizationRatio().LessThan(admissionThreshold)
}
