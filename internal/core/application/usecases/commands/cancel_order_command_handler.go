package commands

import (
	"context"
	"time"

	"fleetops/internal/core/domain/events"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order unconditionally and frees the
// assigned driver.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle cancels the order under a row lock. The transition has no status
// guard; even a completed order moves to canceled.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	o.Cancel(lastKnownLocation(o, cmd.Location()), time.Now())

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

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, events.OrderCanceled{OrderID: o.ID(), PublicID: o.PublicID()})
	return o, nil
}
