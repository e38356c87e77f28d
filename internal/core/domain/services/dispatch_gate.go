package services

import (
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
)

// DispatchGate is the domain service guarding the dispatch transition. Every
// path that dispatches an order, whether directly, on start, or from the
// scheduler, funnels through the gate so the preconditions are checked in one
// place and the dispatched activity lands on the timeline exactly once.
type DispatchGate struct{}

// NewDispatchGate creates a new DispatchGate instance.
func NewDispatchGate() DispatchGate {
	return DispatchGate{}
}

// Dispatch marks the order dispatched and records the dispatched activity.
// Returns order.ErrAlreadyDispatched on a second dispatch and
// order.ErrNoDriverAssigned when the order has no driver and is not adhoc.
func (g DispatchGate) Dispatch(o *order.Order, location kernel.Location, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := o.Dispatch(); err != nil {
		return err
	}

	activity, err := order.NewActivity("Order dispatched", "Order has been dispatched to driver", order.ActivityDispatched)
	if err != nil {
		return err
	}
	entry, err := order.NewActivityEntry(activity, location, nil, at)
	if err != nil {
		return err
	}

	// Dispatching records progress but does not imply fulfillment has started.
	o.RecordActivity(entry)
	return nil
}
