package queries

import (
	"context"
	"database/sql"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads active orders straight from the database.
// Read models bypass the aggregate; rehydrating full order graphs for a list
// view would be wasted work.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler over a GORM connection.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns all orders that are neither completed nor canceled, oldest
// first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			public_id,
			status,
			dispatched,
			driver_id,
			scheduled_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at, id
	`, order.Completed.String(), order.Canceled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			publicID    string
			status      string
			dispatched  bool
			driverID    uuid.NullUUID
			scheduledAt sql.NullTime
		)

		if err = rows.Scan(&id, &publicID, &status, &dispatched, &driverID, &scheduledAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp := GetActiveOrdersQueryResponse{
			ID:         orderID,
			PublicID:   publicID,
			Status:     status,
			Dispatched: dispatched,
		}
		if driverID.Valid {
			did, didErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if didErr != nil {
				return nil, didErr
			}
			resp.DriverID = &did
		}
		if scheduledAt.Valid {
			at := scheduledAt.Time.UTC()
			resp.ScheduledAt = &at
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
