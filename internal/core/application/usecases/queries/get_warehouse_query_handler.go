package queries

import (
	"context"
	"database/sql"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWarehouseQueryHandler retrieves a single warehouse read model from the
// database.
type GetWarehouseQueryHandler struct {
	db *gorm.DB
}

// NewGetWarehouseQueryHandler creates a handler for warehouse retrieval
// queries.
func NewGetWarehouseQueryHandler(db *gorm.DB) GetWarehouseQueryHandler {
	return GetWarehouseQueryHandler{db: db}
}

// Handle executes the query to retrieve a warehouse by identifier.
// Returns an ObjectNotFoundError when no warehouse matches.
func (h GetWarehouseQueryHandler) Handle(
	ctx context.Context,
	query GetWarehouseQuery,
) (*WarehouseQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			name,
			city,
			status,
			capacity,
			current_utilization,
			updated_at
		FROM warehouses
		WHERE id = ?
	`, query.WarehouseID().Bytes()).Row()

	var (
		resp WarehouseQueryResponse
		id   uuid.UUID
	)

	err := row.Scan(
		&id,
		&resp.Code,
		&resp.Name,
		&resp.City,
		&resp.Status,
		&resp.Capacity,
		&resp.CurrentUtilization,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundErrorWithCause("warehouse", query.WarehouseID().String(), err)
	}
	if err != nil {
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}

	return &resp, nil
}
