package parcel

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrBoundToOtherConsolidation is returned when a parcel already carries
	// a back-reference to a different consolidation batch.
	ErrBoundToOtherConsolidation = errors.New("parcel is already bound to another consolidation")
)

// Parcel is the aggregate root owned by the parcel lifecycle manager. It
// tracks a single shipment from intake to delivery.
//
// Invariants:
//   - The tracking number is assigned once and never changes
//   - Tracking-history entries are append-only, never removed or reordered
//   - Once tracking begins, status equals the status of the latest entry
//   - The consolidation id is a back-reference, not an ownership relation;
//     a parcel points at no more than one batch at a time
//
// The version field supports optimistic concurrency: repositories reject
// updates whose expected version no longer matches the stored row.
type Parcel struct {
	id               kernel.UUID
	trackingNumber   TrackingNumber
	senderID         string
	recipientID      string
	senderAddress    kernel.Address
	recipientAddress kernel.Address
	dimensions       Dimensions
	status           Status
	currentLocation  string
	consolidationID  *kernel.UUID
	trackingHistory  []TrackingEvent

	createdAt         time.Time
	updatedAt         time.Time
	estimatedDelivery *time.Time

	version       int64
	isConstructed bool
}

// NewParcel creates a parcel at intake. The parcel starts in StatusCreated
// with an empty tracking history and version 1.
func NewParcel(
	id kernel.UUID,
	trackingNumber TrackingNumber,
	senderID, recipientID string,
	senderAddress, recipientAddress kernel.Address,
	dims Dimensions,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:        StatusCreated,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setParty(&p.senderID, "senderId", senderID),
		p.setParty(&p.recipientID, "recipientId", recipientID),
		p.setAddress(&p.senderAddress, senderAddress),
		p.setAddress(&p.recipientAddress, recipientAddress),
		p.setDimensions(dims),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcelParams carries the persisted state needed to rebuild a parcel.
type RestoreParcelParams struct {
	ID                kernel.UUID
	TrackingNumber    TrackingNumber
	SenderID          string
	RecipientID       string
	SenderAddress     kernel.Address
	RecipientAddress  kernel.Address
	Dimensions        Dimensions
	Status            Status
	CurrentLocation   string
	ConsolidationID   *kernel.UUID
	TrackingHistory   []TrackingEvent
	CreatedAt         time.Time
	UpdatedAt         time.Time
	EstimatedDelivery *time.Time
	Version           int64
}

// RestoreParcel rebuilds a parcel from persistence. Structural invariants are
// re-checked; free-form fields accepted at write time are trusted.
func RestoreParcel(params RestoreParcelParams) (*Parcel, error) {
	p := &Parcel{
		status:            params.Status,
		currentLocation:   params.CurrentLocation,
		consolidationID:   params.ConsolidationID,
		trackingHistory:   params.TrackingHistory,
		createdAt:         params.CreatedAt,
		updatedAt:         params.UpdatedAt,
		estimatedDelivery: params.EstimatedDelivery,
		version:           params.Version,
		isConstructed:     true,
	}

	if err := errors.Join(
		p.setID(params.ID),
		p.setTrackingNumber(params.TrackingNumber),
		p.setParty(&p.senderID, "senderId", params.SenderID),
		p.setParty(&p.recipientID, "recipientId", params.RecipientID),
		p.setAddress(&p.senderAddress, params.SenderAddress),
		p.setAddress(&p.recipientAddress, params.RecipientAddress),
		p.setDimensions(params.Dimensions),
		p.status.Validate(),
	); err != nil {
		return nil, err
	}

	if params.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("parcel version")
	}

	return p, nil
}

// Validate ensures the Parcel was created through a constructor.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares parcels by identifier.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// RecordTrackingUpdate appends one tracking entry and moves the parcel's
// status and current location to the entry's values. Out-of-order status
// values are accepted; the tracking feed is authoritative.
func (p *Parcel) RecordTrackingUpdate(event TrackingEvent) error {
	p.trackingHistory = append(p.trackingHistory, event)
	p.status = event.Status()
	p.currentLocation = event.Location()
	p.updatedAt = event.Timestamp()
	return nil
}

// AssignToConsolidation sets the batch back-reference and forces the status
// to StatusAtWarehouse. Reassigning to the same batch is a no-op and returns
// false. Assigning while bound to a different batch fails with
// ErrBoundToOtherConsolidation; the caller decides whether the previous
// batch is terminal and may ClearConsolidation first.
func (p *Parcel) AssignToConsolidation(consolidationID kernel.UUID, now time.Time) (bool, error) {
	if err := consolidationID.Validate(); err != nil {
		return false, err
	}

	if p.consolidationID != nil {
		if p.consolidationID.IsEqual(consolidationID) {
			return false, nil
		}
		return false, ErrBoundToOtherConsolidation
	}

	p.consolidationID = &consolidationID
	p.status = StatusAtWarehouse
	p.updatedAt = now
	return true, nil
}

// MarkConsolidated records that the parcel became a member of the given
// batch: the back-reference is set and the status moves to
// StatusConsolidated. Marking with the same batch twice is a no-op, so
// resumed member updates stay idempotent.
func (p *Parcel) MarkConsolidated(consolidationID kernel.UUID, now time.Time) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	if p.consolidationID != nil && !p.consolidationID.IsEqual(consolidationID) {
		return ErrBoundToOtherConsolidation
	}

	if p.consolidationID == nil {
		p.consolidationID = &consolidationID
	}
	p.status = StatusConsolidated
	p.updatedAt = now
	return nil
}

// ClearConsolidation drops the batch back-reference. Used when the previous
// batch has reached a terminal state and the parcel may join a new one.
func (p *Parcel) ClearConsolidation(now time.Time) {
	p.consolidationID = nil
	p.updatedAt = now
}

// SetEstimatedDelivery records the forecast delivery time.
func (p *Parcel) SetEstimatedDelivery(estimate time.Time, now time.Time) {
	p.estimatedDelivery = &estimate
	p.updatedAt = now
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingNumber returns the parcel's immutable business key.
func (p *Parcel) TrackingNumber() TrackingNumber {
	return p.trackingNumber
}

// SenderID returns the sender identifier.
func (p *Parcel) SenderID() string {
	return p.senderID
}

// RecipientID returns the recipient identifier.
func (p *Parcel) RecipientID() string {
	return p.recipientID
}

// SenderAddress returns the origin address.
func (p *Parcel) SenderAddress() kernel.Address {
	return p.senderAddress
}

// RecipientAddress returns the destination address.
func (p *Parcel) RecipientAddress() kernel.Address {
	return p.recipientAddress
}

// Dimensions returns the parcel's physical measurements.
func (p *Parcel) Dimensions() Dimensions {
	return p.dimensions
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// CurrentLocation returns the most recently reported location.
func (p *Parcel) CurrentLocation() string {
	return p.currentLocation
}

// ConsolidationID returns the batch back-reference, nil when unbound.
func (p *Parcel) ConsolidationID() *kernel.UUID {
	return p.consolidationID
}

// TrackingHistory returns a copy of the append-only tracking entries in
// insertion order.
func (p *Parcel) TrackingHistory() []TrackingEvent {
	history := make([]TrackingEvent, len(p.trackingHistory))
	copy(history, p.trackingHistory)
	return history
}

// CreatedAt returns the intake timestamp.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// EstimatedDelivery returns the forecast delivery time, nil when unset.
func (p *Parcel) EstimatedDelivery() *time.Time {
	return p.estimatedDelivery
}

// Version returns the optimistic-concurrency revision of the aggregate.
func (p *Parcel) Version() int64 {
	return p.version
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(tn TrackingNumber) error {
	if err := tn.Validate(); err != nil {
		return err
	}
	p.trackingNumber = tn
	return nil
}

func (p *Parcel) setParty(target *string, name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*target = value
	return nil
}

func (p *Parcel) setAddress(target *kernel.Address, addr kernel.Address) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	*target = addr
	return nil
}

func (p *Parcel) setDimensions(dims Dimensions) error {
	if err := dims.Validate(); err != nil {
		return err
	}
	p.dimensions = dims
	return nil
}
