package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand represents a request to dispatch an order to its
// assigned driver (or to the adhoc pool).
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef kernel.PublicID
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to dispatch the given order.
// The location is optional; pass the zero value when the caller has none.
func NewDispatchOrderCommand(orderRef kernel.PublicID, location kernel.Location) (DispatchOrderCommand, error) {
	if err := orderRef.Validate(); err != nil {
		return DispatchOrderCommand{}, err
	}

	return DispatchOrderCommand{
		orderRef: orderRef,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderRef returns the public identifier of the order to dispatch.
func (c DispatchOrderCommand) OrderRef() kernel.PublicID {
	return c.orderRef
}

// Location returns the caller-supplied position, possibly zero.
func (c DispatchOrderCommand) Location() kernel.Location {
	return c.location
}
