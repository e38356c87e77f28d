package order

import (
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// Place is a named geographic stop referenced by payload legs and waypoints.
type Place struct {
	id       kernel.UUID
	publicID kernel.PublicID
	name     string
	location kernel.Location
}

// NewPlace creates a place with a fresh identity.
func NewPlace(name string, location kernel.Location) (Place, error) {
	if name == "" {
		return Place{}, errs.NewValueIsRequiredError("place name")
	}
	if err := location.Validate(); err != nil {
		return Place{}, err
	}

	return Place{
		id:       kernel.NewUUID(),
		publicID: kernel.NewPublicID("place"),
		name:     name,
		location: location,
	}, nil
}

// RestorePlace rehydrates a place from persistence.
func RestorePlace(id kernel.UUID, publicID kernel.PublicID, name string, location kernel.Location) Place {
	return Place{id: id, publicID: publicID, name: name, location: location}
}

// ID returns the internal identifier of the place.
func (p Place) ID() kernel.UUID {
	return p.id
}

// PublicID returns the public-facing identifier of the place.
func (p Place) PublicID() kernel.PublicID {
	return p.publicID
}

// Name returns the display name of the place.
func (p Place) Name() string {
	return p.name
}

// Location returns the geographic position of the place.
func (p Place) Location() kernel.Location {
	return p.location
}

// IsZero reports whether the place is unset.
func (p Place) IsZero() bool {
	return p.id.Validate() != nil
}
