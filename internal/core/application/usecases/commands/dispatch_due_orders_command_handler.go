package commands

import (
	"context"
	"errors"

	"fleetops/internal/core/domain/events"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
)

// DispatchDueOrdersCommandHandler dispatches every scheduled order whose time
// has come. One order failing its gate does not stop the sweep; the failure
// is published and the sweep moves on.
type DispatchDueOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	gate       services.DispatchGate
}

// NewDispatchDueOrdersCommandHandler creates a handler for the dispatch sweep.
func NewDispatchDueOrdersCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) DispatchDueOrdersCommandHandler {
	return DispatchDueOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		gate:       services.NewDispatchGate(),
	}
}

// Handle dispatches all due orders in one transaction and returns how many
// were dispatched. The repository only yields undispatched, unstarted orders,
// so the sweep never touches orders already in flight. Adhoc orders are
// skipped even if yielded; without an accepting driver there is nobody to
// dispatch to.
func (h *DispatchDueOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchDueOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	due, err := orderRepo.GetAllDueForDispatch(ctx, cmd.Now())
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, o := range due {
		if o.IsAdhoc() {
			continue
		}
		if err := h.gate.Dispatch(o, lastKnownLocation(o, kernel.Location{}), cmd.Now()); err != nil {
			if errors.Is(err, order.ErrNoDriverAssigned) || errors.Is(err, order.ErrAlreadyDispatched) {
				h.publisher.Publish(ctx, events.OrderDispatchFailed{
					OrderID:  o.ID(),
					PublicID: o.PublicID(),
					Reason:   err.Error(),
				})
				continue
			}
			return 0, err
		}
		if err := orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
		h.publisher.Publish(ctx, events.OrderDispatched{OrderID: o.ID(), PublicID: o.PublicID(), DriverID: o.Driver()})
		dispatched++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return dispatched, nil
}
