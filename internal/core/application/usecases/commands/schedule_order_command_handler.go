package commands

import (
	"context"

	"fleetops/internal/core/domain/model/order"
)

// ScheduleOrderCommandHandler records the planned dispatch time of an order.
type ScheduleOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewScheduleOrderCommandHandler creates a handler for order scheduling.
func NewScheduleOrderCommandHandler(uowFactory OrderUoWFactory) ScheduleOrderCommandHandler {
	return ScheduleOrderCommandHandler{uowFactory: uowFactory}
}

// Handle stamps the scheduled time under a row lock. Already-dispatched
// orders are rejected; there is nothing left to schedule.
func (h *ScheduleOrderCommandHandler) Handle(ctx context.Context, cmd ScheduleOrderCommand) (*order.Order, error) {
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

	if o.IsDispatched() {
		return nil, order.ErrAlreadyDispatched
	}
	o.Schedule(cmd.At())

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
