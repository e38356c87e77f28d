package order

import (
	"fmt"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// WaypointStatus is the per-stop completion state of a multi-drop sequence.
type WaypointStatus string

const (
	WaypointPending   WaypointStatus = "PENDING"
	WaypointEnRoute   WaypointStatus = "EN_ROUTE"
	WaypointCompleted WaypointStatus = "COMPLETED"
	WaypointCanceled  WaypointStatus = "CANCELED"
)

// Validate checks that the status is one of the defined waypoint states.
func (s WaypointStatus) Validate() error {
	switch s {
	case WaypointPending, WaypointEnRoute, WaypointCompleted, WaypointCanceled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("waypoint status", fmt.Errorf("%q is not a valid waypoint status", string(s)))
	}
}

// IsTerminal reports whether the waypoint counts toward order completeness.
// Only COMPLETED is terminal: a CANCELED stop does not satisfy the
// all-waypoints-complete check and blocks order completion. Kept as observed
// behavior pending product clarification.
func (s WaypointStatus) IsTerminal() bool {
	return s == WaypointCompleted
}

// Waypoint is one stop in a multi-drop sequence: a place plus its own
// completion state and activity timeline.
type Waypoint struct {
	id         kernel.UUID
	publicID   kernel.PublicID
	place      Place
	sequence   int
	status     WaypointStatus
	activities []ActivityEntry
}

// NewWaypoint creates a pending waypoint for the given place at the given
// sequence position.
func NewWaypoint(place Place, sequence int) (*Waypoint, error) {
	if place.IsZero() {
		return nil, errs.NewValueIsRequiredError("waypoint place")
	}
	if sequence < 0 {
		return nil, errs.NewValueIsInvalidError("waypoint sequence")
	}

	return &Waypoint{
		id:       kernel.NewUUID(),
		publicID: kernel.NewPublicID("waypoint"),
		place:    place,
		sequence: sequence,
		status:   WaypointPending,
	}, nil
}

// RestoreWaypoint rehydrates a waypoint from persistence.
func RestoreWaypoint(
	id kernel.UUID,
	publicID kernel.PublicID,
	place Place,
	sequence int,
	status WaypointStatus,
	activities []ActivityEntry,
) (*Waypoint, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Waypoint{
		id:         id,
		publicID:   publicID,
		place:      place,
		sequence:   sequence,
		status:     status,
		activities: activities,
	}, nil
}

// ID returns the internal identifier of the waypoint.
func (w *Waypoint) ID() kernel.UUID {
	return w.id
}

// PublicID returns the public-facing identifier of the waypoint.
func (w *Waypoint) PublicID() kernel.PublicID {
	return w.publicID
}

// Place returns the referenced place.
func (w *Waypoint) Place() Place {
	return w.place
}

// Sequence returns the stop's position in the drop sequence.
func (w *Waypoint) Sequence() int {
	return w.sequence
}

// Status returns the waypoint's completion state.
func (w *Waypoint) Status() WaypointStatus {
	return w.status
}

// Activities returns the waypoint's recorded timeline.
func (w *Waypoint) Activities() []ActivityEntry {
	return w.activities
}

// RecordActivity appends an entry to the waypoint's timeline and derives the
// waypoint status from the activity code: completed and canceled codes move
// the stop to their terminal state, anything else marks it en route.
func (w *Waypoint) RecordActivity(entry ActivityEntry) {
	w.activities = append(w.activities, entry)

	switch entry.Activity().Code() {
	case ActivityCompleted:
		w.status = WaypointCompleted
	case ActivityCanceled:
		w.status = WaypointCanceled
	default:
		w.status = WaypointEnRoute
	}
}

// MatchesRef reports whether ref identifies this waypoint, either by the
// waypoint's own public ID or by its place's public ID.
func (w *Waypoint) MatchesRef(ref kernel.PublicID) bool {
	return w.publicID.IsEqual(ref) || w.place.PublicID().IsEqual(ref)
}
