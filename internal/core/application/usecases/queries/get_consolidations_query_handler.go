package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetConsolidationsQueryHandler retrieves consolidation batch read models
// from the database.
type GetConsolidationsQueryHandler struct {
	db *gorm.DB
}

// NewGetConsolidationsQueryHandler creates a handler for consolidation
// listing queries.
func NewGetConsolidationsQueryHandler(db *gorm.DB) GetConsolidationsQueryHandler {
	return GetConsolidationsQueryHandler{db: db}
}

// Handle executes the query. Batches are returned newest first; the member
// parcel list is loaded per batch.
func (h GetConsolidationsQueryHandler) Handle(
	ctx context.Context,
	query GetConsolidationsQuery,
) ([]ConsolidationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			consolidation_id,
			customer_id,
			status,
			origin,
			destination,
			total_weight,
			total_volume,
			created_at,
			updated_at
		FROM consolidations
	`
	args := make([]any, 0, 1)
	if query.CustomerID() != "" {
		sql += ` WHERE customer_id = ?`
		args = append(args, query.CustomerID())
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := make([]ConsolidationQueryResponse, 0)
	for rows.Next() {
		var (
			resp            ConsolidationQueryResponse
			id              uuid.UUID
			consolidationID uuid.UUID
		)

		err = rows.Scan(
			&id,
			&consolidationID,
			&resp.CustomerID,
			&resp.Status,
			&resp.Origin,
			&resp.Destination,
			&resp.TotalWeight,
			&resp.TotalVolume,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ConsolidationID, err = kernel.UUIDFromBytes(consolidationID[:]); err != nil {
			return nil, err
		}

		batches = append(batches, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range batches {
		if batches[i].ParcelIDs, err = h.fetchMemberIDs(ctx, batches[i].ID); err != nil {
			return nil, err
		}
	}

	return batches, nil
}

func (h GetConsolidationsQueryHandler) fetchMemberIDs(ctx context.Context, batchID kernel.UUID) ([]string, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT parcel_id
		FROM consolidation_parcels
		WHERE consolidation_id = ?
		ORDER BY parcel_id
	`, batchID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var parcelID uuid.UUID
		if err = rows.Scan(&parcelID); err != nil {
			return nil, err
		}
		ids = append(ids, parcelID.String())
	}

	return ids, rows.Err()
}
