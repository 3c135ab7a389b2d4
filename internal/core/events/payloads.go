package events

import (
	"time"

	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/warehouse"

	"github.com/shopspring/decimal"
)

// ParcelPayload is the body of parcel.created, parcel.status.updated, and
// parcel.consolidated events.
type ParcelPayload struct {
	ParcelID        string    `json:"parcelId"`
	TrackingNumber  string    `json:"trackingNumber"`
	SenderID        string    `json:"senderId"`
	RecipientID     string    `json:"recipientId"`
	Status          string    `json:"status"`
	CurrentLocation string    `json:"currentLocation,omitempty"`
	ConsolidationID string    `json:"consolidationId,omitempty"`
	DestinationCity string    `json:"destinationCity"`
	OriginCity      string    `json:"originCity"`

	Weight decimal.Decimal `json:"weight"`
	Volume decimal.Decimal `json:"volume"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewParcelPayload captures a parcel's published view.
func NewParcelPayload(p *parcel.Parcel) ParcelPayload {
	payload := ParcelPayload{
		ParcelID:        p.ID().String(),
		TrackingNumber:  p.TrackingNumber().String(),
		SenderID:        p.SenderID(),
		RecipientID:     p.RecipientID(),
		Status:          p.Status().String(),
		CurrentLocation: p.CurrentLocation(),
		DestinationCity: p.RecipientAddress().City(),
		OriginCity:      p.SenderAddress().City(),
		Weight:          p.Dimensions().Weight(),
		Volume:          p.Dimensions().Volume(),
		UpdatedAt:       p.UpdatedAt(),
	}
	if cid := p.ConsolidationID(); cid != nil {
		payload.ConsolidationID = cid.String()
	}
	return payload
}

// ConsolidationPayload is the body of consolidation.status.changed events
// and of parcel.consolidated fan-out context.
type ConsolidationPayload struct {
	ConsolidationID string   `json:"consolidationId"`
	CustomerID      string   `json:"customerId"`
	ParcelIDs       []string `json:"parcelIds"`
	Status          string   `json:"status"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`

	TotalWeight decimal.Decimal `json:"totalWeight"`
	TotalVolume decimal.Decimal `json:"totalVolume"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewConsolidationPayload captures a batch's published view.
func NewConsolidationPayload(c *consolidation.Consolidation) ConsolidationPayload {
	ids := c.ParcelIDs()
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	return ConsolidationPayload{
		ConsolidationID: c.ConsolidationID().String(),
		CustomerID:      c.CustomerID(),
		ParcelIDs:       raw,
		Status:          c.Status().String(),
		Origin:          c.Origin(),
		Destination:     c.Destination(),
		TotalWeight:     c.TotalWeight(),
		TotalVolume:     c.TotalVolume(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

// CapacityEventPayload is the body of warehouse.capacity.changed and
// warehouse.status.changed events.
type CapacityEventPayload struct {
	EventID       string `json:"eventId"`
	WarehouseID   string `json:"warehouseId"`
	WarehouseCode string `json:"warehouseCode"`
	EventType     string `json:"eventType"`

	PreviousCapacity    decimal.Decimal `json:"previousCapacity"`
	NewCapacity         decimal.Decimal `json:"newCapacity"`
	PreviousUtilization decimal.Decimal `json:"previousUtilization"`
	NewUtilization      decimal.Decimal `json:"newUtilization"`

	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewCapacityEventPayload captures a capacity fact's published view.
func NewCapacityEventPayload(e warehouse.CapacityEvent) CapacityEventPayload {
	return CapacityEventPayload{
		EventID:             e.EventID.String(),
		WarehouseID:         e.WarehouseID.String(),
		WarehouseCode:       e.WarehouseCode.String(),
		EventType:           string(e.Type),
		PreviousCapacity:    e.PreviousCapacity,
		NewCapacity:         e.NewCapacity,
		PreviousUtilization: e.PreviousUtilization,
		NewUtilization:      e.NewUtilization,
		PreviousStatus:      e.PreviousStatus.String(),
		NewStatus:           e.NewStatus.String(),
		Timestamp:           e.Timestamp,
	}
}
