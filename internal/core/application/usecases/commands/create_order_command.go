package commands

import (
	"errors"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrPayloadIsRequired = errors.New("a pickup/dropoff pair or waypoints are required")
)

// PlaceSpec describes a stop to be created with the order.
type PlaceSpec struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// CreateOrderCommand represents a request to register a new fulfillment order
// with its payload, either a pickup/dropoff(/return) leg or an ordered
// waypoint sequence, plus line items. Optional aspects (driver, adhoc mode,
// proof of delivery, scheduling, vendor booking, immediate dispatch) are set
// through the With methods.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	orderType string

	pickup    *PlaceSpec
	dropoff   *PlaceSpec
	returnTo  *PlaceSpec
	waypoints []PlaceSpec
	entities  []string

	driverID      *kernel.UUID
	adhoc         bool
	adhocDistance int
	podMethod     string
	scheduledAt   *time.Time
	vendorBooking bool
	dispatchNow   bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order. Exactly one
// payload mode must be supplied: a pickup/dropoff pair or a waypoint list.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderType string,
	pickup, dropoff, returnTo *PlaceSpec,
	waypoints []PlaceSpec,
	entities []string,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	hasLeg := pickup != nil || dropoff != nil || returnTo != nil
	if !hasLeg && len(waypoints) == 0 {
		return CreateOrderCommand{}, ErrPayloadIsRequired
	}

	return CreateOrderCommand{
		orderID:   orderID,
		orderType: orderType,
		pickup:    pickup,
		dropoff:   dropoff,
		returnTo:  returnTo,
		waypoints: waypoints,
		entities:  entities,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// WithDriver pre-assigns the driver working the order.
func (c CreateOrderCommand) WithDriver(driverID kernel.UUID) CreateOrderCommand {
	c.driverID = &driverID
	return c
}

// WithAdhoc flags the order for adhoc dispatch within the given radius (meters).
func (c CreateOrderCommand) WithAdhoc(distance int) CreateOrderCommand {
	c.adhoc = true
	c.adhocDistance = distance
	return c
}

// WithProofOfDelivery requires POD capture via the given method.
func (c CreateOrderCommand) WithProofOfDelivery(method string) CreateOrderCommand {
	c.podMethod = method
	return c
}

// WithSchedule plans dispatch for the given time.
func (c CreateOrderCommand) WithSchedule(at time.Time) CreateOrderCommand {
	c.scheduledAt = &at
	return c
}

// WithVendorBooking books the order through the integrated vendor on creation.
func (c CreateOrderCommand) WithVendorBooking() CreateOrderCommand {
	c.vendorBooking = true
	return c
}

// WithImmediateDispatch dispatches the order in the same transaction that
// creates it.
func (c CreateOrderCommand) WithImmediateDispatch() CreateOrderCommand {
	c.dispatchNow = true
	return c
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderType returns the flow key for the new order.
func (c CreateOrderCommand) OrderType() string {
	return c.orderType
}
