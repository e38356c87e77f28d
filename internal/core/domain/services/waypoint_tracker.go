package services

import (
	"fleetops/internal/core/domain/model/order"
)

// WaypointTracker is the domain service driving per-stop progress on
// multi-drop orders. It owns the completeness rule (every waypoint must reach
// a terminal state before the order may complete) and the current-waypoint
// pointer advancement.
type WaypointTracker struct{}

// NewWaypointTracker creates a new WaypointTracker instance.
func NewWaypointTracker() WaypointTracker {
	return WaypointTracker{}
}

// IsMultiDrop reports whether the order tracks progress per waypoint.
func (t WaypointTracker) IsMultiDrop(o *order.Order) bool {
	return o.Payload().IsMultipleDrop()
}

// AllTerminal reports whether every waypoint of the order has reached a
// terminal state. Vacuously true for orders without waypoints, so single-leg
// orders always pass the completeness check.
func (t WaypointTracker) AllTerminal(o *order.Order) bool {
	for _, w := range o.Payload().Waypoints() {
		if !w.Status().IsTerminal() {
			return false
		}
	}
	return true
}

// SetFirstWaypoint seeds the current-waypoint pointer to the first pending
// stop of a multi-drop order. No-op when the order is not multi-drop or the
// pointer is already set.
func (t WaypointTracker) SetFirstWaypoint(o *order.Order) error {
	payload := o.Payload()
	if !payload.IsMultipleDrop() || payload.CurrentWaypointID() != nil {
		return nil
	}

	first := payload.FirstPendingWaypoint()
	if first == nil {
		return nil
	}
	return payload.SetCurrentWaypoint(first)
}

// RecordCurrentWaypointActivity records the entry on the order's current
// waypoint, deriving the waypoint status from the activity code. No-op when
// the pointer is unset, which is how repeated completion calls on a finished
// sequence stay idempotent.
func (t WaypointTracker) RecordCurrentWaypointActivity(o *order.Order, entry order.ActivityEntry) {
	current := o.Payload().CurrentWaypoint()
	if current == nil {
		return
	}
	current.RecordActivity(entry)
}

// AdvanceToNextWaypoint moves the current-waypoint pointer to the next
// non-terminal stop in sequence order, or clears it when none remains.
// Returns the new current waypoint, or nil when the sequence is exhausted.
func (t WaypointTracker) AdvanceToNextWaypoint(o *order.Order) (*order.Waypoint, error) {
	payload := o.Payload()

	next := payload.NextPendingWaypoint()
	if next == nil {
		payload.ClearCurrentWaypoint()
		return nil, nil
	}

	if err := payload.SetCurrentWaypoint(next); err != nil {
		return nil, err
	}
	return next, nil
}
