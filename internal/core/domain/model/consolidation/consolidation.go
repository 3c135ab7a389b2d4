package consolidation

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrConsolidationIsNotConstructed is returned when a Consolidation was
	// not created through NewConsolidation or RestoreConsolidation.
	ErrConsolidationIsNotConstructed = errors.New(
		"Consolidation must be created via NewConsolidation or RestoreConsolidation")

	// ErrNoMemberParcels is returned when a batch would be created from an
	// empty resolved parcel set.
	ErrNoMemberParcels = errors.New("consolidation requires at least one resolvable parcel")
)

// Consolidation is the batch aggregate owned by the consolidation manager:
// a group of parcels shipped together under one aggregate record.
//
// Invariants:
//   - The member set is non-empty and frozen after creation
//   - Total weight and volume equal the sums over the member parcels as
//     resolved at creation time
//   - Status transitions are strictly forward (see Status)
//
// The pending-member list is the persisted marker for the two-phase write:
// the batch row and its members' status updates are not atomic, so member
// ids stay on the pending list until each parcel has been marked
// CONSOLIDATED. A crash mid-update leaves the marker behind, and a sweep
// resumes the remaining updates instead of silently losing them.
type Consolidation struct {
	id               kernel.UUID
	consolidationID  kernel.UUID
	customerID       string
	parcelIDs        []kernel.UUID
	pendingParcelIDs []kernel.UUID
	totalWeight      decimal.Decimal
	totalVolume      decimal.Decimal
	origin           string
	destination      string
	status           Status

	createdAt time.Time
	updatedAt time.Time

	version       int64
	isConstructed bool
}

// NewConsolidation aggregates the resolved member parcels into a new batch.
//
// Totals are arithmetic sums over the members' weight and volume. Origin and
// destination are taken from the first parcel in the supplied order; members
// with differing destinations are accepted. All member ids start on the
// pending list.
func NewConsolidation(
	id kernel.UUID,
	consolidationID kernel.UUID,
	customerID string,
	members []*parcel.Parcel,
	now time.Time,
) (*Consolidation, error) {
	if len(members) == 0 {
		return nil, ErrNoMemberParcels
	}

	c := &Consolidation{
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setConsolidationID(consolidationID),
		c.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	totalWeight := decimal.Zero
	totalVolume := decimal.Zero
	for _, member := range members {
		if err := member.Validate(); err != nil {
			return nil, err
		}
		c.parcelIDs = append(c.parcelIDs, member.ID())
		c.pendingParcelIDs = append(c.pendingParcelIDs, member.ID())
		totalWeight = totalWeight.Add(member.Dimensions().Weight())
		totalVolume = totalVolume.Add(member.Dimensions().Volume())
	}
	c.totalWeight = totalWeight
	c.totalVolume = totalVolume

	first := members[0]
	c.origin = first.SenderAddress().City()
	c.destination = first.RecipientAddress().City()

	return c, nil
}

// RestoreConsolidationParams carries persisted state to rebuild a batch.
type RestoreConsolidationParams struct {
	ID               kernel.UUID
	ConsolidationID  kernel.UUID
	CustomerID       string
	ParcelIDs        []kernel.UUID
	PendingParcelIDs []kernel.UUID
	TotalWeight      decimal.Decimal
	TotalVolume      decimal.Decimal
	Origin           string
	Destination      string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int64
}

// RestoreConsolidation rebuilds a batch from persistence.
func RestoreConsolidation(params RestoreConsolidationParams) (*Consolidation, error) {
	if len(params.ParcelIDs) == 0 {
		return nil, ErrNoMemberParcels
	}

	c := &Consolidation{
		parcelIDs:        params.ParcelIDs,
		pendingParcelIDs: params.PendingParcelIDs,
		totalWeight:      params.TotalWeight,
		totalVolume:      params.TotalVolume,
		origin:           params.Origin,
		destination:      params.Destination,
		status:           params.Status,
		createdAt:        params.CreatedAt,
		updatedAt:        params.UpdatedAt,
		version:          params.Version,
		isConstructed:    true,
	}

	if err := errors.Join(
		c.setID(params.ID),
		c.setConsolidationID(params.ConsolidationID),
		c.setCustomerID(params.CustomerID),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if params.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("consolidation version")
	}

	return c, nil
}

// Validate ensures the Consolidation was created through a constructor.
func (c *Consolidation) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConsolidationIsNotConstructed
	}
	return nil
}

// IsEqual compares batches by internal identifier.
func (c *Consolidation) IsEqual(other *Consolidation) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ChangeStatus applies a strictly forward status transition. On a rejected
// transition the status is left unchanged and an InvalidTransitionError is
// returned.
func (c *Consolidation) ChangeStatus(next Status, now time.Time) error {
	newStatus, err := c.status.TransitionTo(next)
	if err != nil {
		return err
	}

	c.status = newStatus
	c.updatedAt = now
	return nil
}

// MarkMemberUpdated removes a parcel id from the pending-member list once
// the parcel's record has been marked CONSOLIDATED. Unknown ids are ignored
// so a resumed sweep can re-run safely.
func (c *Consolidation) MarkMemberUpdated(parcelID kernel.UUID, now time.Time) {
	remaining := c.pendingParcelIDs[:0]
	for _, id := range c.pendingParcelIDs {
		if !id.IsEqual(parcelID) {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) != len(c.pendingParcelIDs) {
		c.updatedAt = now
	}
	c.pendingParcelIDs = remaining
}

// HasPendingMembers reports whether any member parcel still awaits its
// CONSOLIDATED status update.
func (c *Consolidation) HasPendingMembers() bool {
	return len(c.pendingParcelIDs) > 0
}

// ID returns the batch's internal identifier.
func (c *Consolidation) ID() kernel.UUID {
	return c.id
}

// ConsolidationID returns the externally visible batch identifier.
func (c *Consolidation) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// CustomerID returns the owning customer.
func (c *Consolidation) CustomerID() string {
	return c.customerID
}

// ParcelIDs returns a copy of the member parcel ids in the order supplied
// at creation.
func (c *Consolidation) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.parcelIDs))
	copy(ids, c.parcelIDs)
	return ids
}

// PendingParcelIDs returns a copy of the member ids still awaiting their
// status update.
func (c *Consolidation) PendingParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.pendingParcelIDs))
	copy(ids, c.pendingParcelIDs)
	return ids
}

// TotalWeight returns the sum of member weights at creation time.
func (c *Consolidation) TotalWeight() decimal.Decimal {
	return c.totalWeight
}

// TotalVolume returns the sum of member volumes at creation time.
func (c *Consolidation) TotalVolume() decimal.Decimal {
	return c.totalVolume
}

// Origin returns the batch origin city, taken from the first member parcel.
func (c *Consolidation) Origin() string {
	return c.origin
}

// Destination returns the batch destination city, taken from the first
// member parcel.
func (c *Consolidation) Destination() string {
	return c.destination
}

// Status returns the current batch status.
func (c *Consolidation) Status() Status {
	return c.status
}

// CreatedAt returns the creation timestamp.
func (c *Consolidation) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (c *Consolidation) UpdatedAt() time.Time {
	return c.updatedAt
}

// Version returns the optimistic-concurrency revision of the aggregate.
func (c *Consolidation) Version() int64 {
	return c.version
}

func (c *Consolidation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Consolidation) setConsolidationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.consolidationID = id
	return nil
}

func (c *Consolidation) setCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = customerID
	return nil
}
