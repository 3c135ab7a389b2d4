package warehouse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrWarehouseIsNotConstructed is returned when a Warehouse was not created
// through NewWarehouse or RestoreWarehouse.
var ErrWarehouseIsNotConstructed = errors.New(
	"Warehouse must be created via NewWarehouse or RestoreWarehouse")

// Warehouse is the aggregate owned by the warehouse capacity manager.
//
// Invariants:
//   - Capacity is strictly positive, utilization is never negative
//   - Status is FULL if and only if utilization has reached capacity,
//     enforced by UpdateUtilization, the single mutation point for
//     utilization
//   - Utilization may transiently exceed capacity; that is an alarm
//     condition rather than a rejected write
type Warehouse struct {
	id                 kernel.UUID
	code               Code
	name               string
	address            kernel.Address
	latitude           *decimal.Decimal
	longitude          *decimal.Decimal
	capacity           decimal.Decimal
	currentUtilization decimal.Decimal
	supportedTypes     []string
	availableServices  []string
	status             Status

	createdAt time.Time
	updatedAt time.Time

	version       int64
	isConstructed bool
}

// NewWarehouse creates a warehouse from an operator action. The warehouse
// starts ACTIVE with zero utilization.
func NewWarehouse(
	id kernel.UUID,
	code Code,
	name string,
	address kernel.Address,
	capacity decimal.Decimal,
	supportedTypes, availableServices []string,
	now time.Time,
) (*Warehouse, error) {
	w := &Warehouse{
		currentUtilization: decimal.Zero,
		supportedTypes:     supportedTypes,
		availableServices:  availableServices,
		status:             StatusActive,
		createdAt:          now,
		updatedAt:          now,
		version:            1,
		isConstructed:      true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setCode(code),
		w.setName(name),
		w.setAddress(address),
		w.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWarehouseParams carries persisted state to rebuild a warehouse.
type RestoreWarehouseParams struct {
	ID                 kernel.UUID
	Code               Code
	Name               string
	Address            kernel.Address
	Latitude           *decimal.Decimal
	Longitude          *decimal.Decimal
	Capacity           decimal.Decimal
	CurrentUtilization decimal.Decimal
	SupportedTypes     []string
	AvailableServices  []string
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
}

// RestoreWarehouse rebuilds a warehouse from persistence.
func RestoreWarehouse(params RestoreWarehouseParams) (*Warehouse, error) {
	w := &Warehouse{
		latitude:           params.Latitude,
		longitude:          params.Longitude,
		currentUtilization: params.CurrentUtilization,
		supportedTypes:     params.SupportedTypes,
		availableServices:  params.AvailableServices,
		status:             params.Status,
		createdAt:          params.CreatedAt,
		updatedAt:          params.UpdatedAt,
		version:            params.Version,
		isConstructed:      true,
	}

	if err := errors.Join(
		w.setID(params.ID),
		w.setCode(params.Code),
		w.setName(params.Name),
		w.setAddress(params.Address),
		w.setCapacity(params.Capacity),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if params.CurrentUtilization.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("currentUtilization",
			fmt.Errorf("%s is negative", params.CurrentUtilization))
	}
	if params.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("warehouse version")
	}

	return w, nil
}

// Validate ensures the Warehouse was created through a constructor.
func (w *Warehouse) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWarehouseIsNotConstructed
	}
	return nil
}

// IsEqual compares warehouses by identifier.
func (w *Warehouse) IsEqual(other *Warehouse) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// UpdateUtilization replaces the current utilization and recomputes the
// status through NextStatus. It is the only operation that writes
// utilization, which is what keeps the FULL-iff-at-capacity invariant.
// Returns the capacity event describing the before/after transition.
func (w *Warehouse) UpdateUtilization(newUtilization decimal.Decimal, now time.Time) (CapacityEvent, error) {
	if newUtilization.IsNegative() {
		return CapacityEvent{}, errs.NewValueIsInvalidErrorWithCause("newUtilization",
			fmt.Errorf("%s is negative", newUtilization))
	}

	event := CapacityEvent{
		EventID:             kernel.NewUUID(),
		WarehouseID:         w.id,
		WarehouseCode:       w.code,
		Type:                EventTypeCapacityUpdate,
		PreviousCapacity:    w.capacity,
		NewCapacity:         w.capacity,
		PreviousUtilization: w.currentUtilization,
		NewUtilization:      newUtilization,
		PreviousStatus:      w.status,
		Timestamp:           now,
	}

	w.currentUtilization = newUtilization
	w.status = NextStatus(w.capacity, newUtilization, w.status)
	w.updatedAt = now

	event.NewStatus = w.status
	return event, nil
}

// OverrideStatus applies an unconditional operator status change, bypassing
// the capacity function. Used for MAINTENANCE and INACTIVE transitions.
// Returns the status-change event capturing the previous and new status.
func (w *Warehouse) OverrideStatus(next Status, now time.Time) (CapacityEvent, error) {
	if err := next.Validate(); err != nil {
		return CapacityEvent{}, err
	}

	event := CapacityEvent{
		EventID:        kernel.NewUUID(),
		WarehouseID:    w.id,
		WarehouseCode:  w.code,
		Type:           EventTypeStatusChange,
		PreviousStatus: w.status,
		NewStatus:      next,
		Timestamp:      now,
	}

	w.status = next
	w.updatedAt = now
	return event, nil
}

// UtilizationRatio returns currentUtilization / capacity.
func (w *Warehouse) UtilizationRatio() decimal.Decimal {
	return w.currentUtilization.Div(w.capacity)
}

// ID returns the warehouse's unique identifier.
func (w *Warehouse) ID() kernel.UUID {
	return w.id
}

// Code returns the human-assigned warehouse code.
func (w *Warehouse) Code() Code {
	return w.code
}

// Name returns the warehouse display name.
func (w *Warehouse) Name() string {
	return w.name
}

// Address returns the warehouse location address.
func (w *Warehouse) Address() kernel.Address {
	return w.address
}

// Latitude returns the optional latitude, nil when unset.
func (w *Warehouse) Latitude() *decimal.Decimal {
	return w.latitude
}

// Longitude returns the optional longitude, nil when unset.
func (w *Warehouse) Longitude() *decimal.Decimal {
	return w.longitude
}

// SetCoordinates records the optional lat/long position.
func (w *Warehouse) SetCoordinates(latitude, longitude decimal.Decimal, now time.Time) {
	w.latitude = &latitude
	w.longitude = &longitude
	w.updatedAt = now
}

// Capacity returns the total cubic capacity.
func (w *Warehouse) Capacity() decimal.Decimal {
	return w.capacity
}

// CurrentUtilization returns the cubic volume currently occupied.
func (w *Warehouse) CurrentUtilization() decimal.Decimal {
	return w.currentUtilization
}

// SupportedParcelTypes returns the parcel types this site accepts.
func (w *Warehouse) SupportedParcelTypes() []string {
	return w.supportedTypes
}

// AvailableServices returns the services offered at this site.
func (w *Warehouse) AvailableServices() []string {
	return w.availableServices
}

// Status returns the current operational status.
func (w *Warehouse) Status() Status {
	return w.status
}

// CreatedAt returns the creation timestamp.
func (w *Warehouse) CreatedAt() time.Time {
	return w.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (w *Warehouse) UpdatedAt() time.Time {
	return w.updatedAt
}

// Version returns the optimistic-concurrency revision of the aggregate.
func (w *Warehouse) Version() int64 {
	return w.version
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Warehouse) setCode(code Code) error {
	if err := code.Validate(); err != nil {
		return err
	}
	w.code = code
	return nil
}

func (w *Warehouse) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

func (w *Warehouse) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	w.address = address
	return nil
}

func (w *Warehouse) setCapacity(capacity decimal.Decimal) error {
	if !capacity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%s is not greater than 0", capacity))
	}
	w.capacity = capacity
	return nil
}
