package commands

import (
	"context"

	"fleetops/internal/core/domain/model/order"
)

// SetDestinationCommandHandler changes the current destination of an order.
type SetDestinationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetDestinationCommandHandler creates a handler for destination changes.
func NewSetDestinationCommandHandler(uowFactory OrderUoWFactory) SetDestinationCommandHandler {
	return SetDestinationCommandHandler{uowFactory: uowFactory}
}

// Handle sets the current waypoint under a row lock. Fails with
// InvalidDestination when the referenced place matches none of the order's
// waypoints; the current waypoint is left untouched in that case.
func (h *SetDestinationCommandHandler) Handle(ctx context.Context, cmd SetDestinationCommand) (*order.Order, error) {
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

	if err = o.SetDestination(cmd.PlaceRef()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
