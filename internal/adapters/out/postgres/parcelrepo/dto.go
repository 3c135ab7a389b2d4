// Package parcelrepo provides data transfer objects and mapping functions
// for parcel persistence. It implements the repository pattern for the
// parcel aggregate, handling conversion between domain entities and
// database representations.
package parcelrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. The version column carries the optimistic concurrency
// revision checked on every update.
type ParcelDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber   string     `gorm:"type:varchar(16);uniqueIndex"`
	SenderID         string     `gorm:"type:varchar(128);index"`
	RecipientID      string     `gorm:"type:varchar(128)"`
	SenderAddress    AddressDTO `gorm:"embedded;embeddedPrefix:sender_"`
	RecipientAddress AddressDTO `gorm:"embedded;embeddedPrefix:recipient_"`

	Weight decimal.Decimal `gorm:"type:numeric(18,4)"`
	Length decimal.Decimal `gorm:"type:numeric(18,4)"`
	Width  decimal.Decimal `gorm:"type:numeric(18,4)"`
	Height decimal.Decimal `gorm:"type:numeric(18,4)"`

	Status          string     `gorm:"type:varchar(64);index"`
	CurrentLocation string     `gorm:"type:varchar(255)"`
	ConsolidationID *uuid.UUID `gorm:"type:uuid;index"`

	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int64

	TrackingEvents []TrackingEventDTO `gorm:"foreignKey:ParcelID;references:ID"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// AddressDTO represents an embedded postal address within a parent table.
type AddressDTO struct {
	Street  string `gorm:"type:varchar(255)"`
	City    string `gorm:"type:varchar(128)"`
	State   string `gorm:"type:varchar(128)"`
	ZipCode string `gorm:"type:varchar(32)"`
	Country string `gorm:"type:varchar(64)"`
}

// TrackingEventDTO represents one append-only tracking history entry. The
// (parcel_id, seq) key makes re-inserting an already stored entry a no-op.
type TrackingEventDTO struct {
	ParcelID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int       `gorm:"primaryKey"`
	Timestamp   time.Time
	Location    string `gorm:"type:varchar(255)"`
	Status      string `gorm:"type:varchar(64)"`
	Description string `gorm:"type:varchar(512)"`
}

// TableName specifies the database table name for tracking history entries.
func (TrackingEventDTO) TableName() string {
	return "parcel_tracking_events"
}

func addressFromDomain(address kernel.Address) AddressDTO {
	return AddressDTO{
		Street:  address.Street(),
		City:    address.City(),
		State:   address.State(),
		ZipCode: address.ZipCode(),
		Country: address.Country(),
	}
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Street, dto.City, dto.State, dto.ZipCode, dto.Country)
}

// fromDomain converts a parcel aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var consolidationID *uuid.UUID
	if id := aggregate.ConsolidationID(); id != nil {
		raw := id.Bytes()
		consolidationID = &raw
	}

	history := aggregate.TrackingHistory()
	events := make([]TrackingEventDTO, 0, len(history))
	for i, event := range history {
		events = append(events, TrackingEventDTO{
			ParcelID:    aggregate.ID().Bytes(),
			Seq:         i + 1,
			Timestamp:   event.Timestamp(),
			Location:    event.Location(),
			Status:      event.Status().String(),
			Description: event.Description(),
		})
	}

	dims := aggregate.Dimensions()
	return ParcelDTO{
		ID:                aggregate.ID().Bytes(),
		TrackingNumber:    aggregate.TrackingNumber().String(),
		SenderID:          aggregate.SenderID(),
		RecipientID:       aggregate.RecipientID(),
		SenderAddress:     addressFromDomain(aggregate.SenderAddress()),
		RecipientAddress:  addressFromDomain(aggregate.RecipientAddress()),
		Weight:            dims.Weight(),
		Length:            dims.Length(),
		Width:             dims.Width(),
		Height:            dims.Height(),
		Status:            aggregate.Status().String(),
		CurrentLocation:   aggregate.CurrentLocation(),
		ConsolidationID:   consolidationID,
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		Version:           aggregate.Version(),
		TrackingEvents:    events,
	}
}

// toDomain converts a database DTO to a parcel aggregate.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingNumber, err := parcel.TrackingNumberFromString(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	senderAddress, err := addressToDomain(dto.SenderAddress)
	if err != nil {
		return nil, err
	}
	recipientAddress, err := addressToDomain(dto.RecipientAddress)
	if err != nil {
		return nil, err
	}

	dims, err := parcel.NewDimensions(dto.Weight, dto.Length, dto.Width, dto.Height)
	if err != nil {
		return nil, err
	}

	var consolidationID *kernel.UUID
	if dto.ConsolidationID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.ConsolidationID)[:])
		if cErr != nil {
			return nil, cErr
		}
		consolidationID = &cID
	}

	history := make([]parcel.TrackingEvent, 0, len(dto.TrackingEvents))
	for _, eventDTO := range dto.TrackingEvents {
		event, eventErr := parcel.RestoreTrackingEvent(
			eventDTO.Timestamp, eventDTO.Location,
			parcel.Status(eventDTO.Status), eventDTO.Description,
		)
		if eventErr != nil {
			return nil, eventErr
		}
		history = append(history, event)
	}

	return parcel.RestoreParcel(parcel.RestoreParcelParams{
		ID:                id,
		TrackingNumber:    trackingNumber,
		SenderID:          dto.SenderID,
		RecipientID:       dto.RecipientID,
		SenderAddress:     senderAddress,
		RecipientAddress:  recipientAddress,
		Dimensions:        dims,
		Status:            parcel.Status(dto.Status),
		CurrentLocation:   dto.CurrentLocation,
		ConsolidationID:   consolidationID,
		TrackingHistory:   history,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		EstimatedDelivery: dto.EstimatedDelivery,
		Version:           dto.Version,
	})
}
