package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableWarehousesQueryHandler retrieves admissible warehouses from
// the database. The 80% admission threshold is the only filter applied in
// SQL: a warehouse below the threshold is available regardless of its
// operational status.
type GetAvailableWarehousesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableWarehousesQueryHandler creates a handler for warehouse
// availability queries.
func NewGetAvailableWarehousesQueryHandler(db *gorm.DB) GetAvailableWarehousesQueryHandler {
	return GetAvailableWarehousesQueryHandler{db: db}
}

// Handle executes the query. Results are sorted least-utilized first, the
// same order the batch router prefers.
func (h GetAvailableWarehousesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableWarehousesQuery,
) ([]WarehouseQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
		WHERE current_utilization < capacity * 0.80
	`
	args := []any{}
	if query.City() != "" {
		sql += ` AND city = ?`
		args = append(args, query.City())
	}
	sql += ` ORDER BY current_utilization / capacity`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	warehouses := make([]WarehouseQueryResponse, 0)
	for rows.Next() {
		var (
			resp WarehouseQueryResponse
			id   uuid.UUID
		)

		err = rows.Scan(
			&id,
			&resp.Code,
			&resp.Name,
			&resp.City,
			&resp.Status,
			&resp.Capacity,
			&resp.CurrentUtilization,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		warehouses = append(warehouses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return warehouses, nil
}
