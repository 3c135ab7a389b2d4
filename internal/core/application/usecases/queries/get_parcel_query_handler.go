package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelQueryHandler retrieves parcel read models from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelQueryHandler creates a handler for parcel retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle executes the query to retrieve a parcel by identifier.
// Returns an ObjectNotFoundError when no parcel matches.
func (h GetParcelQueryHandler) Handle(
	ctx context.Context,
	query GetParcelQuery,
) (*ParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchParcel(ctx, h.db, `WHERE id = ?`, query.ParcelID().Bytes())
}

// fetchParcel loads one parcel row plus its tracking history. The caller
// supplies the WHERE clause and its argument.
func fetchParcel(ctx context.Context, db *gorm.DB, where string, arg any) (*ParcelQueryResponse, error) {
	row := db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			sender_id,
			recipient_id,
			status,
			current_location,
			consolidation_id,
			weight,
			length,
			width,
			height,
			estimated_delivery,
			created_at,
			updated_at
		FROM parcels
		`+where,
		arg).Row()

	var (
		resp              ParcelQueryResponse
		id                uuid.UUID
		consolidationID   sql.NullString
		currentLocation   sql.NullString
		estimatedDelivery sql.NullTime
	)

	err := row.Scan(
		&id,
		&resp.TrackingNumber,
		&resp.SenderID,
		&resp.RecipientID,
		&resp.Status,
		&currentLocation,
		&consolidationID,
		&resp.Weight,
		&resp.Length,
		&resp.Width,
		&resp.Height,
		&estimatedDelivery,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundErrorWithCause("parcel", arg, err)
	}
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	resp.ID = parcelID
	resp.CurrentLocation = currentLocation.String
	resp.ConsolidationID = consolidationID.String
	if estimatedDelivery.Valid {
		estimate := estimatedDelivery.Time
		resp.EstimatedDelivery = &estimate
	}

	history, err := fetchTrackingHistory(ctx, db, id)
	if err != nil {
		return nil, err
	}
	resp.TrackingHistory = history

	return &resp, nil
}

func fetchTrackingHistory(ctx context.Context, db *gorm.DB, parcelID uuid.UUID) ([]TrackingEventQueryResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			timestamp,
			location,
			status,
			description
		FROM parcel_tracking_events
		WHERE parcel_id = ?
		ORDER BY seq
	`, parcelID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TrackingEventQueryResponse, 0)
	for rows.Next() {
		var (
			event       TrackingEventQueryResponse
			timestamp   time.Time
			description sql.NullString
		)

		if err = rows.Scan(&timestamp, &event.Location, &event.Status, &description); err != nil {
			return nil, err
		}

		event.Timestamp = timestamp
		event.Description = description.String
		history = append(history, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
