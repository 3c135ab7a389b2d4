package eventhandlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"parcelhub/internal/core/events"
)

// ParcelAuditHandler writes a structured audit line for every parcel event.
// It keeps no state and never fails a delivery.
type ParcelAuditHandler struct {
	logger *slog.Logger
}

// NewParcelAuditHandler creates the audit consumer.
func NewParcelAuditHandler(logger *slog.Logger) *ParcelAuditHandler {
	return &ParcelAuditHandler{
		logger: logger.With("component", "parcel_audit_handler"),
	}
}

// Handle logs the parcel event.
func (h *ParcelAuditHandler) Handle(ctx context.Context, envelope events.Envelope) error {
	var payload events.ParcelPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		h.logger.WarnContext(ctx, "Unreadable parcel event payload",
			"topic", envelope.Topic, "eventId", envelope.EventID, "error", err)
		return nil
	}

	h.logger.InfoContext(ctx, "Parcel event",
		"topic", envelope.Topic,
		"parcelId", payload.ParcelID,
		"trackingNumber", payload.TrackingNumber,
		"status", payload.Status,
		"location", payload.CurrentLocation,
		"consolidationId", payload.ConsolidationID,
		"occurredAt", envelope.OccurredAt)

	return nil
}
