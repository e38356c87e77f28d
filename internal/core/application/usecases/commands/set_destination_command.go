package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrSetDestinationCommandIsNotConstructed = errors.New(
	"SetDestinationCommand must be created via NewSetDestinationCommand constructor",
)

// SetDestinationCommand represents a request to point a multi-drop order's
// current destination at one of its waypoints, referenced by the waypoint's
// or its place's public identifier.
type SetDestinationCommand struct { //nolint:recvcheck //using for validation
	orderRef kernel.PublicID
	placeRef kernel.PublicID

	guard guard.ConstructorGuard
}

// NewSetDestinationCommand creates a command to change the order's destination.
func NewSetDestinationCommand(orderRef, placeRef kernel.PublicID) (SetDestinationCommand, error) {
	if err := errors.Join(orderRef.Validate(), placeRef.Validate()); err != nil {
		return SetDestinationCommand{}, err
	}

	return SetDestinationCommand{
		orderRef: orderRef,
		placeRef: placeRef,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDestinationCommand) Validate() error {
	return c.guard.Validate(ErrSetDestinationCommandIsNotConstructed)
}

// OrderRef returns the public identifier of the order.
func (c SetDestinationCommand) OrderRef() kernel.PublicID {
	return c.orderRef
}

// PlaceRef returns the public identifier of the destination place or waypoint.
func (c SetDestinationCommand) PlaceRef() kernel.PublicID {
	return c.placeRef
}
