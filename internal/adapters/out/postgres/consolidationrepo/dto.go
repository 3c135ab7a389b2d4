// Package consolidationrepo provides data transfer objects and mapping
// functions for consolidation batch persistence. Member parcels live in a
// child table whose pending flag backs the two-phase creation protocol.
package consolidationrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsolidationDTO represents the database structure for persisting
// consolidation batches.
type ConsolidationDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConsolidationID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CustomerID      string    `gorm:"type:varchar(128);index"`

	TotalWeight decimal.Decimal `gorm:"type:numeric(18,4)"`
	TotalVolume decimal.Decimal `gorm:"type:numeric(18,4)"`

	Origin      string `gorm:"type:varchar(128)"`
	Destination string `gorm:"type:varchar(128)"`
	Status      string `gorm:"type:varchar(32);index"`

	PendingCount int `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64

	Members []MemberDTO `gorm:"foreignKey:ConsolidationID;references:ID"`
}

// TableName specifies the database table name for consolidation batches.
func (ConsolidationDTO) TableName() string {
	return "consolidations"
}

// MemberDTO represents one member parcel of a batch. Pending marks members
// whose parcel row has not been updated yet during two-phase creation.
type MemberDTO struct {
	ConsolidationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Pending         bool
}

// TableName specifies the database table name for batch members.
func (MemberDTO) TableName() string {
	return "consolidation_parcels"
}

// fromDomain converts a consolidation aggregate to its database representation.
func fromDomain(aggregate *consolidation.Consolidation) ConsolidationDTO {
	pending := make(map[kernel.UUID]bool, len(aggregate.PendingParcelIDs()))
	for _, id := range aggregate.PendingParcelIDs() {
		pending[id] = true
	}

	members := make([]MemberDTO, 0, len(aggregate.ParcelIDs()))
	for _, id := range aggregate.ParcelIDs() {
		members = append(members, MemberDTO{
			ConsolidationID: aggregate.ID().Bytes(),
			ParcelID:        id.Bytes(),
			Pending:         pending[id],
		})
	}

	return ConsolidationDTO{
		ID:              aggregate.ID().Bytes(),
		ConsolidationID: aggregate.ConsolidationID().Bytes(),
		CustomerID:      aggregate.CustomerID(),
		TotalWeight:     aggregate.TotalWeight(),
		TotalVolume:     aggregate.TotalVolume(),
		Origin:          aggregate.Origin(),
		Destination:     aggregate.Destination(),
		Status:          aggregate.Status().String(),
		PendingCount:    len(aggregate.PendingParcelIDs()),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Version:         aggregate.Version(),
		Members:         members,
	}
}

// toDomain converts a database DTO to a consolidation aggregate.
func toDomain(dto ConsolidationDTO) (*consolidation.Consolidation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	consolidationID, err := kernel.UUIDFromBytes(dto.ConsolidationID[:])
	if err != nil {
		return nil, err
	}

	parcelIDs := make([]kernel.UUID, 0, len(dto.Members))
	pendingIDs := make([]kernel.UUID, 0, len(dto.Members))
	for _, member := range dto.Members {
		parcelID, memberErr := kernel.UUIDFromBytes(member.ParcelID[:])
		if memberErr != nil {
			return nil, memberErr
		}
		parcelIDs = append(parcelIDs, parcelID)
		if member.Pending {
			pendingIDs = append(pendingIDs, parcelID)
		}
	}

	return consolidation.RestoreConsolidation(consolidation.RestoreConsolidationParams{
		ID:               id,
		ConsolidationID:  consolidationID,
		CustomerID:       dto.CustomerID,
		ParcelIDs:        parcelIDs,
		PendingParcelIDs: pendingIDs,
		TotalWeight:      dto.TotalWeight,
		TotalVolume:      dto.TotalVolume,
		Origin:           dto.Origin,
		Destination:      dto.Destination,
		Status:           consolidation.Status(dto.Status),
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
		Version:          dto.Version,
	})
}
