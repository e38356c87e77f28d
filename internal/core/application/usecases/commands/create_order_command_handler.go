package commands

import (
	"context"
	"fmt"
	"time"

	"fleetops/internal/core/domain/events"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
)

// CreateOrderCommandHandler handles order registration: payload assembly,
// optional driver pre-assignment, optional integrated-vendor booking, and
// optional immediate dispatch.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	vendor     ports.VendorGateway
	publisher  ports.EventPublisher
	gate       services.DispatchGate
	tracker    services.WaypointTracker
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, vendor ports.VendorGateway, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		vendor:     vendor,
		publisher:  publisher,
		gate:       services.NewDispatchGate(),
		tracker:    services.NewWaypointTracker(),
	}
}

// Handle builds the order aggregate from the command, books it with the
// integrated vendor when requested (bounded by the gateway's retry policy),
// and persists it. The vendor call happens before the transaction opens so a
// slow vendor never holds a database transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.buildOrder(cmd)
	if err != nil {
		return nil, err
	}

	if cmd.vendorBooking {
		ref, err := h.vendor.Dispatch(ctx, o)
		if err != nil {
			return nil, err
		}
		o.AttachVendorReference(ref)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.driverID != nil {
		// The driver must exist before the order references it.
		if _, err = uow.DriverRepository().Get(ctx, *cmd.driverID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if cmd.dispatchNow {
		if err = h.gate.Dispatch(o, lastKnownLocation(o, kernel.Location{}), now); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, events.OrderReady{OrderID: o.ID(), PublicID: o.PublicID()})
	if cmd.driverID != nil {
		h.publisher.Publish(ctx, events.DriverAssigned{OrderID: o.ID(), DriverID: *cmd.driverID})
	}
	if o.IsDispatched() {
		h.publisher.Publish(ctx, events.OrderDispatched{OrderID: o.ID(), PublicID: o.PublicID(), DriverID: o.Driver()})
	}

	return o, nil
}

func (h *CreateOrderCommandHandler) buildOrder(cmd CreateOrderCommand) (*order.Order, error) {
	pickup, err := placeFromSpec(cmd.pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := placeFromSpec(cmd.dropoff)
	if err != nil {
		return nil, err
	}
	returnTo, err := placeFromSpec(cmd.returnTo)
	if err != nil {
		return nil, err
	}

	waypoints := make([]*order.Waypoint, 0, len(cmd.waypoints))
	for i, spec := range cmd.waypoints {
		location, err := kernel.NewLocation(spec.Latitude, spec.Longitude)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		place, err := order.NewPlace(spec.Name, location)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		w, err := order.NewWaypoint(place, i)
		if err != nil {
			return nil, err
		}
		waypoints = append(waypoints, w)
	}

	entities := make([]*order.Entity, 0, len(cmd.entities))
	for _, name := range cmd.entities {
		e, err := order.NewEntity(name)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}

	payload, err := order.NewPayload(pickup, dropoff, returnTo, waypoints, entities)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.orderID, cmd.orderType, payload)
	if err != nil {
		return nil, err
	}

	if cmd.adhoc {
		if err = o.MarkAdhoc(cmd.adhocDistance); err != nil {
			return nil, err
		}
	}
	if cmd.podMethod != "" {
		if err = o.RequireProofOfDelivery(cmd.podMethod); err != nil {
			return nil, err
		}
	}
	if cmd.scheduledAt != nil {
		o.Schedule(*cmd.scheduledAt)
	}
	if cmd.driverID != nil {
		if err = o.AssignDriver(*cmd.driverID); err != nil {
			return nil, err
		}
	}
	if err = h.tracker.SetFirstWaypoint(o); err != nil {
		return nil, err
	}

	return o, nil
}

func placeFromSpec(spec *PlaceSpec) (*order.Place, error) {
	if spec == nil {
		return nil, nil
	}
	location, err := kernel.NewLocation(spec.Latitude, spec.Longitude)
	if err != nil {
		return nil, err
	}
	place, err := order.NewPlace(spec.Name, location)
	if err != nil {
		return nil, err
	}
	return &place, nil
}
