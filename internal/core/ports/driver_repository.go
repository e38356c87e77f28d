package ports

import (
	"context"

	"fleetops/internal/core/domain/model/driver"
	"fleetops/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByPublicID retrieves a driver aggregate by its public identifier.
	GetByPublicID(ctx context.Context, publicID kernel.PublicID) (*driver.Driver, error)
}
