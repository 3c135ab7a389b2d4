package warehouse

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// EventType classifies a WarehouseCapacityEvent.
type EventType string

const (
	// EventTypeCapacityUpdate records a utilization change.
	EventTypeCapacityUpdate EventType = "CAPACITY_UPDATE"

	// EventTypeStatusChange records an operator status override.
	EventTypeStatusChange EventType = "STATUS_CHANGE"
)

// CapacityEvent is an immutable fact describing one utilization or status
// transition. It is not a persisted entity: it exists only as the wire
// payload of the capacity and status topics, replayed for audit and never
// queried.
type CapacityEvent struct {
	EventID             kernel.UUID
	WarehouseID         kernel.UUID
	WarehouseCode       Code
	Type                EventType
	PreviousCapacity    decimal.Decimal
	NewCapacity         decimal.Decimal
	PreviousUtilization decimal.Decimal
	NewUtilization      decimal.Decimal
	PreviousStatus      Status
	NewStatus           Status
	Timestamp           time.Time
}
