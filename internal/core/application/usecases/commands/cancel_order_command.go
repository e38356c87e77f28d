package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order. Cancellation
// always succeeds, whatever the current status.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef kernel.PublicID
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel the given order.
func NewCancelOrderCommand(orderRef kernel.PublicID, location kernel.Location) (CancelOrderCommand, error) {
	if err := orderRef.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderRef: orderRef,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderRef returns the public identifier of the order to cancel.
func (c CancelOrderCommand) OrderRef() kernel.PublicID {
	return c.orderRef
}

// Location returns the caller-supplied position, possibly zero.
func (c CancelOrderCommand) Location() kernel.Location {
	return c.location
}
