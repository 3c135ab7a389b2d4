package http

import (
	"time"

	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressRequest carries a postal address in a request body.
type AddressRequest struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

func (r AddressRequest) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(r.Street, r.City, r.State, r.ZipCode, r.Country)
}

// DimensionsRequest carries a parcel's physical dimensions.
type DimensionsRequest struct {
	Weight decimal.Decimal `json:"weight" validate:"required"`
	Length decimal.Decimal `json:"length" validate:"required"`
	Width  decimal.Decimal `json:"width" validate:"required"`
	Height decimal.Decimal `json:"height" validate:"required"`
}

func (r DimensionsRequest) toDomain() (parcel.Dimensions, error) {
	return parcel.NewDimensions(r.Weight, r.Length, r.Width, r.Height)
}

// CreateParcelRequest registers a new parcel.
type CreateParcelRequest struct {
	SenderID         string            `json:"senderId" validate:"required"`
	RecipientID      string            `json:"recipientId" validate:"required"`
	SenderAddress    AddressRequest    `json:"senderAddress" validate:"required"`
	RecipientAddress AddressRequest    `json:"recipientAddress" validate:"required"`
	Dimensions       DimensionsRequest `json:"dimensions" validate:"required"`
}

// TrackingUpdateRequest reports a scan or checkpoint for a parcel.
type TrackingUpdateRequest struct {
	Location    string    `json:"location" validate:"required"`
	Status      string    `json:"status" validate:"required"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// CreateConsolidationRequest builds a batch from existing parcels.
type CreateConsolidationRequest struct {
	ConsolidationID string   `json:"consolidationId" validate:"required,uuid"`
	CustomerID      string   `json:"customerId" validate:"required"`
	ParcelIDs       []string `json:"parcelIds" validate:"dive,uuid"`
}

// UpdateConsolidationStatusRequest moves a batch to a new status.
type UpdateConsolidationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateWarehouseRequest registers a warehouse.
type CreateWarehouseRequest struct {
	Code              string          `json:"code" validate:"required"`
	Name              string          `json:"name" validate:"required"`
	Address           AddressRequest  `json:"address" validate:"required"`
	Capacity          decimal.Decimal `json:"capacity" validate:"required"`
	SupportedTypes    []string        `json:"supportedParcelTypes"`
	AvailableServices []string        `json:"availableServices"`
}

// UpdateWarehouseUtilizationRequest sets a warehouse's absolute utilization.
type UpdateWarehouseUtilizationRequest struct {
	CurrentUtilization decimal.Decimal `json:"currentUtilization"`
}

// UpdateWarehouseStatusRequest overrides a warehouse's status.
type UpdateWarehouseStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ParcelCreatedResponse is the body returned on parcel registration.
type ParcelCreatedResponse struct {
	ID             string    `json:"id"`
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TrackingEventResponse is one entry of a parcel's tracking history.
type TrackingEventResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
}

// ParcelResponse is the read model of a parcel.
type ParcelResponse struct {
	ID              string `json:"id"`
	TrackingNumber  string `json:"trackingNumber"`
	SenderID        string `json:"senderId"`
	RecipientID     string `json:"recipientId"`
	Status          string `json:"status"`
	CurrentLocation string `json:"currentLocation,omitempty"`
	ConsolidationID string `json:"consolidationId,omitempty"`

	Weight decimal.Decimal `json:"weight"`
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`

	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	TrackingHistory []TrackingEventResponse `json:"trackingHistory"`
}

func parcelResponseFromQuery(r queries.ParcelQueryResponse) ParcelResponse {
	history := make([]TrackingEventResponse, len(r.TrackingHistory))
	for i, event := range r.TrackingHistory {
		history[i] = TrackingEventResponse{
			Timestamp:   event.Timestamp,
			Location:    event.Location,
			Status:      event.Status,
			Description: event.Description,
		}
	}

	return ParcelResponse{
		ID:                r.ID.String(),
		TrackingNumber:    r.TrackingNumber,
		SenderID:          r.SenderID,
		RecipientID:       r.RecipientID,
		Status:            r.Status,
		CurrentLocation:   r.CurrentLocation,
		ConsolidationID:   r.ConsolidationID,
		Weight:            r.Weight,
		Length:            r.Length,
		Width:             r.Width,
		Height:            r.Height,
		EstimatedDelivery: r.EstimatedDelivery,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		TrackingHistory:   history,
	}
}

// ConsolidationResponse is the read model of a consolidation batch.
type ConsolidationResponse struct {
	ID              string   `json:"id"`
	ConsolidationID string   `json:"consolidationId"`
	CustomerID      string   `json:"customerId"`
	ParcelIDs       []string `json:"parcelIds"`
	Status          string   `json:"status"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`

	TotalWeight decimal.Decimal `json:"totalWeight"`
	TotalVolume decimal.Decimal `json:"totalVolume"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func consolidationResponseFromAggregate(c *consolidation.Consolidation) ConsolidationResponse {
	ids := c.ParcelIDs()
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	return ConsolidationResponse{
		ID:              c.ID().String(),
		ConsolidationID: c.ConsolidationID().String(),
		CustomerID:      c.CustomerID(),
		ParcelIDs:       raw,
		Status:          c.Status().String(),
		Origin:          c.Origin(),
		Destination:     c.Destination(),
		TotalWeight:     c.TotalWeight(),
		TotalVolume:     c.TotalVolume(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

func consolidationResponseFromQuery(r queries.ConsolidationQueryResponse) ConsolidationResponse {
	return ConsolidationResponse{
		ID:              r.ID.String(),
		ConsolidationID: r.ConsolidationID.String(),
		CustomerID:      r.CustomerID,
		ParcelIDs:       r.ParcelIDs,
		Status:          r.Status,
		Origin:          r.Origin,
		Destination:     r.Destination,
		TotalWeight:     r.TotalWeight,
		TotalVolume:     r.TotalVolume,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// WarehouseResponse is the read model of a warehouse.
type WarehouseResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	City   string `json:"city"`
	Status string `json:"status"`

	Capacity           decimal.Decimal `json:"capacity"`
	CurrentUtilization decimal.Decimal `json:"currentUtilization"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func warehouseResponseFromQuery(r queries.WarehouseQueryResponse) WarehouseResponse {
	return WarehouseResponse{
		ID:                 r.ID.String(),
		Code:               r.Code,
		Name:               r.Name,
		City:               r.City,
		Status:             r.Status,
		Capacity:           r.Capacity,
		CurrentUtilization: r.CurrentUtilization,
		UpdatedAt:          r.UpdatedAt,
	}
}
