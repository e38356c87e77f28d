package order

import (
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// Entity is a line item (shipped good) tracked within a payload. On a
// single-leg order all entities share the order's activity timeline; on a
// multi-drop order progress is tracked per waypoint instead.
type Entity struct {
	id         kernel.UUID
	publicID   kernel.PublicID
	name       string
	activities []ActivityEntry
}

// NewEntity creates a line item with a fresh identity.
func NewEntity(name string) (*Entity, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("entity name")
	}

	return &Entity{
		id:       kernel.NewUUID(),
		publicID: kernel.NewPublicID("entity"),
		name:     name,
	}, nil
}

// RestoreEntity rehydrates a line item from persistence.
func RestoreEntity(id kernel.UUID, publicID kernel.PublicID, name string, activities []ActivityEntry) *Entity {
	return &Entity{id: id, publicID: publicID, name: name, activities: activities}
}

// ID returns the internal identifier of the entity.
func (e *Entity) ID() kernel.UUID {
	return e.id
}

// PublicID returns the public-facing identifier of the entity.
func (e *Entity) PublicID() kernel.PublicID {
	return e.publicID
}

// Name returns the display name of the entity.
func (e *Entity) Name() string {
	return e.name
}

// Activities returns the entity's recorded timeline.
func (e *Entity) Activities() []ActivityEntry {
	return e.activities
}

// RecordActivity appends an entry to the entity's timeline.
func (e *Entity) RecordActivity(entry ActivityEntry) {
	e.activities = append(e.activities, entry)
}
