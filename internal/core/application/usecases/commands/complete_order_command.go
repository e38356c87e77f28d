package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents a request to finish an order outright,
// subject to the all-waypoints-terminal rule.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef kernel.PublicID
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to complete the given order.
func NewCompleteOrderCommand(orderRef kernel.PublicID, location kernel.Location) (CompleteOrderCommand, error) {
	if err := orderRef.Validate(); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		orderRef: orderRef,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderRef returns the public identifier of the order to complete.
func (c CompleteOrderCommand) OrderRef() kernel.PublicID {
	return c.orderRef
}

// Location returns the caller-supplied position, possibly zero.
func (c CompleteOrderCommand) Location() kernel.Location {
	return c.location
}
