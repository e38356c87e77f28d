package commands

import (
	"context"
	"time"

	"fleetops/internal/core/domain/events"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/ports"
)

// StartOrderCommandHandler handles the start operation: driver resolution,
// dispatch-state verification, and delegation into the activity flow for the
// first fulfillment step.
type StartOrderCommandHandler struct {
	uowFactory UoWFactory
	deps       activityDeps
}

// NewStartOrderCommandHandler creates a handler for starting orders.
func NewStartOrderCommandHandler(uowFactory UoWFactory, flow ports.FlowProvider, publisher ports.EventPublisher) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
		deps:       newActivityDeps(flow, publisher),
	}
}

// Handle starts fulfillment of the order under a row lock.
//
// Preconditions, in order: the order must not have started; adhoc orders need
// the accepting driver from the command (AdhocDriverRequired), other orders
// need a pre-assigned driver (NoDriverAssigned); an undispatched order is
// rejected (NotDispatchedYet) unless the caller skips dispatch, in which case
// the flow's after-next activity substitutes for the dispatch step.
func (h *StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) (*order.Order, error) {
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

	if o.IsStarted() {
		return nil, order.ErrAlreadyStarted
	}

	if o.IsAdhoc() && cmd.AssignDriverID() != nil {
		if err = o.AssignDriver(*cmd.AssignDriverID()); err != nil {
			return nil, err
		}
	}
	if o.Driver() == nil {
		if o.IsAdhoc() {
			return nil, order.ErrAdhocDriverRequired
		}
		return nil, order.ErrNoDriverAssigned
	}

	next, err := h.deps.flow.NextActivity(o)
	if err != nil {
		return nil, err
	}

	notDispatched := next.Code() == order.ActivityDispatched || !o.IsDispatched()
	if notDispatched && !cmd.SkipDispatch() {
		return nil, order.ErrNotDispatchedYet
	}
	if cmd.SkipDispatch() && next.Code() == order.ActivityDispatched {
		if next, err = h.deps.flow.AfterNextActivity(o); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err = o.MarkStarted(now); err != nil {
		return nil, err
	}

	// Starting is the driver picking up the job.
	driverRepo := uow.DriverRepository()
	drv, err := driverRepo.Get(ctx, *o.Driver())
	if err != nil {
		return nil, err
	}
	if err = drv.AssignCurrentJob(o.ID()); err != nil {
		return nil, err
	}
	if err = driverRepo.Update(ctx, drv); err != nil {
		return nil, err
	}

	if err = h.deps.tracker.SetFirstWaypoint(o); err != nil {
		return nil, err
	}

	location := lastKnownLocation(o, cmd.Location())
	o, err = h.deps.applyActivity(ctx, uow, o, next, nil, cmd.SkipDispatch(), location, now)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.deps.publisher.Publish(ctx, events.OrderStarted{OrderID: o.ID(), PublicID: o.PublicID(), DriverID: o.Driver()})
	return o, nil
}
