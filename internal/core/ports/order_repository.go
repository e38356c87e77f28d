// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work, the activity flow
// provider, and the outbound gateways. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its internal identifier,
	// including its full payload graph and activity timelines.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByPublicID retrieves an order aggregate by its public identifier.
	GetByPublicID(ctx context.Context, publicID kernel.PublicID) (*order.Order, error)

	// GetForUpdate retrieves an order by public identifier with a row lock
	// held for the duration of the surrounding transaction. Lifecycle
	// commands use it to serialize concurrent mutations of one order.
	GetForUpdate(ctx context.Context, publicID kernel.PublicID) (*order.Order, error)

	// GetAllDueForDispatch retrieves undispatched, unstarted orders whose
	// scheduled time is at or before the given instant.
	GetAllDueForDispatch(ctx context.Context, at time.Time) ([]*order.Order, error)
}
