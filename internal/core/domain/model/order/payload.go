package order

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

var (
	// ErrPayloadModeConflict is returned when a payload mixes the single-leg
	// (pickup/dropoff) mode with the multi-drop waypoint mode.
	ErrPayloadModeConflict = errors.New("payload is either pickup/dropoff or a waypoint sequence, not both")

	// ErrPayloadHasNoDestination is returned for a payload with neither a
	// pickup/dropoff pair nor any waypoint.
	ErrPayloadHasNoDestination = errors.New("payload requires a pickup/dropoff pair or at least one waypoint")
)

// Payload is the shipment description attached to an order: either a single
// pickup/dropoff(/return) leg or an ordered multi-drop waypoint sequence,
// plus the line items being shipped.
//
// currentWaypointID is a weak reference used for destination tracking on
// multi-drop orders; it always points at one of the payload's own waypoints
// or is unset.
type Payload struct {
	id       kernel.UUID
	pickup   *Place
	dropoff  *Place
	returnTo *Place

	waypoints []*Waypoint
	entities  []*Entity

	currentWaypointID *kernel.UUID
}

// NewPayload creates a payload in one of the two mutually exclusive modes.
// Pass pickup/dropoff (return optional) for a single leg, or a waypoint
// sequence for multi-drop.
func NewPayload(pickup, dropoff, returnTo *Place, waypoints []*Waypoint, entities []*Entity) (*Payload, error) {
	hasLeg := pickup != nil || dropoff != nil || returnTo != nil
	if hasLeg && len(waypoints) > 0 {
		return nil, ErrPayloadModeConflict
	}
	if !hasLeg && len(waypoints) == 0 {
		return nil, ErrPayloadHasNoDestination
	}

	return &Payload{
		id:        kernel.NewUUID(),
		pickup:    pickup,
		dropoff:   dropoff,
		returnTo:  returnTo,
		waypoints: waypoints,
		entities:  entities,
	}, nil
}

// RestorePayload rehydrates a payload from persistence without mode validation.
func RestorePayload(
	id kernel.UUID,
	pickup, dropoff, returnTo *Place,
	waypoints []*Waypoint,
	entities []*Entity,
	currentWaypointID *kernel.UUID,
) *Payload {
	return &Payload{
		id:                id,
		pickup:            pickup,
		dropoff:           dropoff,
		returnTo:          returnTo,
		waypoints:         waypoints,
		entities:          entities,
		currentWaypointID: currentWaypointID,
	}
}

// ID returns the internal identifier of the payload.
func (p *Payload) ID() kernel.UUID {
	return p.id
}

// Pickup returns the pickup place, or nil in waypoint mode.
func (p *Payload) Pickup() *Place {
	return p.pickup
}

// Dropoff returns the dropoff place, or nil in waypoint mode.
func (p *Payload) Dropoff() *Place {
	return p.dropoff
}

// Return returns the return place, or nil.
func (p *Payload) Return() *Place {
	return p.returnTo
}

// Waypoints returns the ordered waypoint sequence (empty for single-leg).
func (p *Payload) Waypoints() []*Waypoint {
	return p.waypoints
}

// Entities returns the payload's line items.
func (p *Payload) Entities() []*Entity {
	return p.entities
}

// IsMultipleDrop reports whether the payload is an ordered waypoint sequence
// rather than a single pickup/dropoff pair. A lone waypoint still behaves as
// a single leg.
func (p *Payload) IsMultipleDrop() bool {
	return len(p.waypoints) > 1
}

// CurrentWaypointID returns the weak reference to the current destination, or nil.
func (p *Payload) CurrentWaypointID() *kernel.UUID {
	return p.currentWaypointID
}

// CurrentWaypoint resolves the weak reference against the waypoint list.
// Returns nil when the pointer is unset or dangling.
func (p *Payload) CurrentWaypoint() *Waypoint {
	if p.currentWaypointID == nil {
		return nil
	}
	for _, w := range p.waypoints {
		if w.ID().IsEqual(*p.currentWaypointID) {
			return w
		}
	}
	return nil
}

// SetCurrentWaypoint points the destination tracker at the given waypoint,
// which must belong to this payload.
func (p *Payload) SetCurrentWaypoint(w *Waypoint) error {
	for _, own := range p.waypoints {
		if own.ID().IsEqual(w.ID()) {
			id := w.ID()
			p.currentWaypointID = &id
			return nil
		}
	}
	return errs.NewValueIsInvalidError("waypoint does not belong to payload")
}

// ClearCurrentWaypoint unsets the destination tracker.
func (p *Payload) ClearCurrentWaypoint() {
	p.currentWaypointID = nil
}

// FindWaypointByRef finds the waypoint identified by ref, matching either the
// waypoint's public ID or its place's public ID. Returns nil if none matches.
func (p *Payload) FindWaypointByRef(ref kernel.PublicID) *Waypoint {
	for _, w := range p.waypoints {
		if w.MatchesRef(ref) {
			return w
		}
	}
	return nil
}

// FindEntityByPublicID finds a line item by its public ID. Returns nil if none matches.
func (p *Payload) FindEntityByPublicID(ref kernel.PublicID) *Entity {
	for _, e := range p.entities {
		if e.PublicID().IsEqual(ref) {
			return e
		}
	}
	return nil
}

// FindEntityByID finds a line item by its internal identifier. Returns nil if none matches.
func (p *Payload) FindEntityByID(id kernel.UUID) *Entity {
	for _, e := range p.entities {
		if e.ID().IsEqual(id) {
			return e
		}
	}
	return nil
}

// NextPendingWaypoint returns the first waypoint, in sequence order, whose
// status is not terminal and which is not the current waypoint. Returns nil
// when every remaining stop is terminal.
func (p *Payload) NextPendingWaypoint() *Waypoint {
	for _, w := range p.waypoints {
		if w.Status().IsTerminal() {
			continue
		}
		if p.currentWaypointID != nil && w.ID().IsEqual(*p.currentWaypointID) {
			continue
		}
		return w
	}
	return nil
}

// FirstPendingWaypoint returns the first non-terminal waypoint in sequence
// order, or nil when none remains.
func (p *Payload) FirstPendingWaypoint() *Waypoint {
	for _, w := range p.waypoints {
		if !w.Status().IsTerminal() {
			return w
		}
	}
	return nil
}

// FirstDestination returns the location fulfillment starts from: the pickup
// place for a single leg, otherwise the first waypoint's place.
func (p *Payload) FirstDestination() *Place {
	if p.pickup != nil {
		return p.pickup
	}
	if len(p.waypoints) > 0 {
		place := p.waypoints[0].Place()
		return &place
	}
	return nil
}
