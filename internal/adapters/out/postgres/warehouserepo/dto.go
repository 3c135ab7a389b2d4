// Package warehouserepo provides data transfer objects and mapping
// functions for warehouse persistence.
package warehouserepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseDTO represents the database structure for persisting warehouse
// aggregates. String lists are stored as JSON columns.
type WarehouseDTO struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code    string     `gorm:"type:varchar(64);uniqueIndex"`
	Name    string     `gorm:"type:varchar(255)"`
	Street  string     `gorm:"type:varchar(255)"`
	City    string     `gorm:"type:varchar(128);index"`
	State   string     `gorm:"type:varchar(128)"`
	ZipCode string     `gorm:"type:varchar(32)"`
	Country string     `gorm:"type:varchar(64)"`

	Latitude  *decimal.Decimal `gorm:"type:numeric(9,6)"`
	Longitude *decimal.Decimal `gorm:"type:numeric(9,6)"`

	Capacity           decimal.Decimal `gorm:"type:numeric(18,4)"`
	CurrentUtilization decimal.Decimal `gorm:"type:numeric(18,4)"`

	SupportedParcelTypes []string `gorm:"serializer:json;type:jsonb"`
	AvailableServices    []string `gorm:"serializer:json;type:jsonb"`

	Status string `gorm:"type:varchar(32);index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

// TableName specifies the database table name for warehouse entities.
func (WarehouseDTO) TableName() string {
	return "warehouses"
}

// fromDomain converts a warehouse aggregate to its database representation.
func fromDomain(aggregate *warehouse.Warehouse) WarehouseDTO {
	address := aggregate.Address()
	return WarehouseDTO{
		ID:                   aggregate.ID().Bytes(),
		Code:                 aggregate.Code().String(),
		Name:                 aggregate.Name(),
		Street:               address.Street(),
		City:                 address.City(),
		State:                address.State(),
		ZipCode:              address.ZipCode(),
		Country:              address.Country(),
		Latitude:             aggregate.Latitude(),
		Longitude:            aggregate.Longitude(),
		Capacity:             aggregate.Capacity(),
		CurrentUtilization:   aggregate.CurrentUtilization(),
		SupportedParcelTypes: aggregate.SupportedParcelTypes(),
		AvailableServices:    aggregate.AvailableServices(),
		Status:               aggregate.Status().String(),
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
		Version:              aggregate.Version(),
	}
}

// toDomain converts a database DTO to a warehouse aggregate.
func toDomain(dto WarehouseDTO) (*warehouse.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := warehouse.CodeFromString(dto.Code)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Street, dto.City, dto.State, dto.ZipCode, dto.Country)
	if err != nil {
		return nil, err
	}

	return warehouse.RestoreWarehouse(warehouse.RestoreWarehouseParams{
		ID:                 id,
		Code:               code,
		Name:               dto.Name,
		Address:            address,
		Latitude:           dto.Latitude,
		Longitude:          dto.Longitude,
		Capacity:           dto.Capacity,
		CurrentUtilization: dto.CurrentUtilization,
		SupportedTypes:     dto.SupportedParcelTypes,
		AvailableServices:  dto.AvailableServices,
		Status:             warehouse.Status(dto.Status),
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
		Version:            dto.Version,
	})
}
