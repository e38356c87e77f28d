package commands

import (
	"context"
	"errors"
	"time"

	"fleetops/internal/core/domain/events"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
)

// activityDeps bundles the collaborators every lifecycle handler needs to
// drive an order through its activity flow.
type activityDeps struct {
	flow      ports.FlowProvider
	publisher ports.EventPublisher
	gate      services.DispatchGate
	tracker   services.WaypointTracker
}

func newActivityDeps(flow ports.FlowProvider, publisher ports.EventPublisher) activityDeps {
	return activityDeps{
		flow:      flow,
		publisher: publisher,
		gate:      services.NewDispatchGate(),
		tracker:   services.NewWaypointTracker(),
	}
}

// applyActivity is the core of the lifecycle engine. It resolves the activity
// to apply (consulting the flow when none is given), routes dispatch codes
// through the gate, drives multi-drop waypoint progression with a fresh
// re-read before the completeness re-check, fans single-leg activities out to
// the line items, and persists the result.
//
// A partial waypoint advance returns the freshly read order with its overall
// status unchanged; that is the expected multi-drop result, not an error.
func (d activityDeps) applyActivity(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	activity order.Activity,
	proofID *kernel.UUID,
	skipDispatch bool,
	location kernel.Location,
	at time.Time,
) (*order.Order, error) {
	if o.Status() == order.Completed {
		return nil, order.ErrAlreadyCompleted
	}
	if o.Status() == order.Created && !o.IsStarted() {
		if err := o.MarkStarted(at); err != nil {
			return nil, err
		}
	}

	if activity.IsZero() {
		next, err := d.flow.NextActivity(o)
		if err != nil {
			return nil, err
		}
		activity = next
	}
	if skipDispatch && activity.Code() == order.ActivityDispatched {
		afterNext, err := d.flow.AfterNextActivity(o)
		if err != nil {
			return nil, err
		}
		activity = afterNext
	}

	orderRepo := uow.OrderRepository()

	// Dispatch codes route through the gate and end the call here.
	if activity.Code() == order.ActivityDispatched {
		if err := d.gate.Dispatch(o, location, at); err != nil {
			if errors.Is(err, order.ErrNoDriverAssigned) {
				d.publisher.Publish(ctx, events.OrderDispatchFailed{
					OrderID:  o.ID(),
					PublicID: o.PublicID(),
					Reason:   err.Error(),
				})
			}
			return nil, err
		}
		if err := orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
		d.publisher.Publish(ctx, events.OrderDispatched{
			OrderID:  o.ID(),
			PublicID: o.PublicID(),
			DriverID: o.Driver(),
		})
		return o, nil
	}

	entry, err := order.NewActivityEntry(activity, location, proofID, at)
	if err != nil {
		return nil, err
	}

	if d.tracker.IsMultiDrop(o) {
		if err := d.tracker.SetFirstWaypoint(o); err != nil {
			return nil, err
		}
	}

	if activity.Code() == order.ActivityCompleted && d.tracker.IsMultiDrop(o) && !d.tracker.AllTerminal(o) {
		d.tracker.RecordCurrentWaypointActivity(o, entry)
		if _, err := d.tracker.AdvanceToNextWaypoint(o); err != nil {
			return nil, err
		}
		if err := orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}

		// Completeness must be judged against persisted state, not the
		// aggregate mutated above.
		fresh, err := orderRepo.Get(ctx, o.ID())
		if err != nil {
			return nil, err
		}
		if !d.tracker.AllTerminal(fresh) {
			return fresh, nil
		}
		o = fresh
	}

	if d.tracker.IsMultiDrop(o) {
		d.tracker.RecordCurrentWaypointActivity(o, entry)
	} else {
		// Single-leg orders share one physical leg, so every line item
		// receives the same activity.
		for _, e := range o.Payload().Entities() {
			e.RecordActivity(entry)
		}
	}

	if err := o.ApplyActivity(entry); err != nil {
		return nil, err
	}

	if activity.Code() == order.ActivityCompleted {
		if err := d.unassignDriver(ctx, uow, o); err != nil {
			return nil, err
		}
		d.publisher.Publish(ctx, events.OrderCompleted{OrderID: o.ID(), PublicID: o.PublicID()})
	}

	if err := orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// unassignDriver clears the assigned driver's current job reference.
func (d activityDeps) unassignDriver(ctx context.Context, uow UoW, o *order.Order) error {
	if o.Driver() == nil {
		return nil
	}

	driverRepo := uow.DriverRepository()
	drv, err := driverRepo.Get(ctx, *o.Driver())
	if err != nil {
		return err
	}

	drv.UnassignCurrentJob()
	return driverRepo.Update(ctx, drv)
}

// lastKnownLocation picks the best location for an activity entry: the caller
// supplied position when given, otherwise the first destination of the
// payload.
func lastKnownLocation(o *order.Order, provided kernel.Location) kernel.Location {
	if !provided.IsZero() {
		return provided
	}
	if dest := o.Payload().FirstDestination(); dest != nil {
		return dest.Location()
	}
	return kernel.Location{}
}
