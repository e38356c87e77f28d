package commands

import (
	"context"
	"time"

	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/ports"
)

// UpdateActivityCommandHandler progresses an order to its next fulfillment
// step. The heavy lifting lives in applyActivity, shared with the start
// handler that delegates here after its own preconditions.
type UpdateActivityCommandHandler struct {
	uowFactory UoWFactory
	deps       activityDeps
}

// NewUpdateActivityCommandHandler creates a handler for activity updates.
func NewUpdateActivityCommandHandler(uowFactory UoWFactory, flow ports.FlowProvider, publisher ports.EventPublisher) UpdateActivityCommandHandler {
	return UpdateActivityCommandHandler{
		uowFactory: uowFactory,
		deps:       newActivityDeps(flow, publisher),
	}
}

// Handle applies the activity update under a row lock. A multi-drop order
// whose waypoints are not yet all terminal returns with unchanged overall
// status after advancing the current waypoint; that partial advance is a
// success, not an error.
func (h *UpdateActivityCommandHandler) Handle(ctx context.Context, cmd UpdateActivityCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	activity, err := cmd.Activity().domainActivity()
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderRef())
	if err != nil {
		return nil, err
	}

	location := lastKnownLocation(o, cmd.Location())
	o, err = h.deps.applyActivity(ctx, uow, o, activity, cmd.ProofID(), cmd.SkipDispatch(), location, time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
