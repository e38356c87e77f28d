package commands

import (
	"context"
	"errors"
	"time"

	"fleetops/internal/core/domain/events"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
)

// DispatchOrderCommandHandler handles the explicit dispatch operation. The
// dispatch gate enforces the preconditions; the handler owns the transaction
// and the event fan-out.
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	gate       services.DispatchGate
}

// NewDispatchOrderCommandHandler creates a handler for explicit dispatch.
func NewDispatchOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		gate:       services.NewDispatchGate(),
	}
}

// Handle dispatches the order under a row lock. Publishes OrderDispatched on
// success and OrderDispatchFailed when the gate rejects for lack of a driver.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (*order.Order, error) {
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

	if err = h.gate.Dispatch(o, lastKnownLocation(o, cmd.Location()), time.Now()); err != nil {
		if errors.Is(err, order.ErrNoDriverAssigned) {
			h.publisher.Publish(ctx, events.OrderDispatchFailed{
				OrderID:  o.ID(),
				PublicID: o.PublicID(),
				Reason:   err.Error(),
			})
		}
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, events.OrderDispatched{OrderID: o.ID(), PublicID: o.PublicID(), DriverID: o.Driver()})
	return o, nil
}
