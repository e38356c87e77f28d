package commands

import (
	"context"
	"time"

	"fleetops/internal/core/domain/events"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
)

// CompleteOrderCommandHandler finishes an order outright. Unlike the activity
// path, completion here never advances waypoints; every stop must already be
// terminal or the command is rejected with IncompleteWaypoints.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	tracker    services.WaypointTracker
}

// NewCompleteOrderCommandHandler creates a handler for explicit completion.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		tracker:    services.NewWaypointTracker(),
	}
}

// Handle completes the order under a row lock: verifies waypoint
// completeness, unassigns the driver's current job, records the final
// activity, and publishes OrderCompleted.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderRef())
	if err != nil {
		return nil, err
	}

	if !h.tracker.AllTerminal(o) {
		return nil, order.ErrIncompleteWaypoints
	}

	if o.Driver() != nil {
		driverRepo := uow.DriverRepository()
		drv, err := driverRepo.Get(ctx, *o.Driver())
		if err != nil {
			return nil, err
		}
		drv.UnassignCurrentJob()
		if err = driverRepo.Update(ctx, drv); err != nil {
			return nil, err
		}
	}

	activity, err := order.NewActivity("Order completed", "Order has been completed", order.ActivityCompleted)
	if err != nil {
		return nil, err
	}
	entry, err := order.NewActivityEntry(activity, lastKnownLocation(o, cmd.Location()), nil, time.Now())
	if err != nil {
		return nil, err
	}
	if err = o.ApplyActivity(entry); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, events.OrderCompleted{OrderID: o.ID(), PublicID: o.PublicID()})
	return o, nil
}
