package driver

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when creating a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrDriverIsBusy is returned when assigning a job to a driver who already has one.
	ErrDriverIsBusy = errs.NewConflictError("driver already has a current job")
)

// Driver is the aggregate root for a fleet driver. It tracks the driver's
// identity, last reported location, and the order currently being worked.
// Orders reference drivers by ID only; the link back is currentOrderID.
type Driver struct {
	id       kernel.UUID
	publicID kernel.PublicID
	name     string
	location kernel.Location

	// currentOrderID is the job the driver is working, or nil when idle.
	currentOrderID *kernel.UUID

	isConstructed bool
}

// NewDriver creates a driver at the given starting location.
func NewDriver(id kernel.UUID, name string, location kernel.Location) (*Driver, error) {
	if err := errors.Join(id.Validate(), location.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Driver{
		id:            id,
		publicID:      kernel.NewPublicID("driver"),
		name:          name,
		location:      location,
		isConstructed: true,
	}, nil
}

// RestoreDriver rehydrates a driver aggregate from persistence.
func RestoreDriver(
	id kernel.UUID,
	publicID kernel.PublicID,
	name string,
	location kernel.Location,
	currentOrderID *kernel.UUID,
) (*Driver, error) {
	if err := errors.Join(id.Validate(), publicID.Validate()); err != nil {
		return nil, err
	}

	return &Driver{
		id:             id,
		publicID:       publicID,
		name:           name,
		location:       location,
		currentOrderID: currentOrderID,
		isConstructed:  true,
	}, nil
}

// Validate ensures the aggregate came from a constructor.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

// IsEqual compares drivers by identity.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the internal identifier of the driver.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// PublicID returns the public-facing identifier of the driver.
func (d *Driver) PublicID() kernel.PublicID {
	return d.publicID
}

// Name returns the display name of the driver.
func (d *Driver) Name() string {
	return d.name
}

// Location returns the driver's last reported position.
func (d *Driver) Location() kernel.Location {
	return d.location
}

// CurrentOrder returns the ID of the order being worked, or nil when idle.
func (d *Driver) CurrentOrder() *kernel.UUID {
	return d.currentOrderID
}

// IsIdle reports whether the driver has no current job.
func (d *Driver) IsIdle() bool {
	return d.currentOrderID == nil
}

// SetLocation updates the driver's last reported position.
func (d *Driver) SetLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}

// AssignCurrentJob marks the driver as working the given order. Fails when the
// driver is already working a different order; re-assigning the same order is
// a no-op.
func (d *Driver) AssignCurrentJob(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if d.currentOrderID != nil {
		if d.currentOrderID.IsEqual(orderID) {
			return nil
		}
		return ErrDriverIsBusy
	}

	d.currentOrderID = &orderID
	return nil
}

// UnassignCurrentJob clears the driver's current job.
func (d *Driver) UnassignCurrentJob() {
	d.currentOrderID = nil
}
