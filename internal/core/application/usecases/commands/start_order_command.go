package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrStartOrderCommandIsNotConstructed = errors.New(
	"StartOrderCommand must be created via NewStartOrderCommand constructor",
)

// StartOrderCommand represents a request to begin fulfillment of an order.
// skipDispatch lets the caller start an undispatched order, jumping over the
// dispatch step of the flow; assignDriverID lets a driver accept an adhoc
// order at start time.
type StartOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef       kernel.PublicID
	skipDispatch   bool
	assignDriverID *kernel.UUID
	location       kernel.Location

	guard guard.ConstructorGuard
}

// NewStartOrderCommand creates a command to start the given order.
func NewStartOrderCommand(orderRef kernel.PublicID, skipDispatch bool, assignDriverID *kernel.UUID, location kernel.Location) (StartOrderCommand, error) {
	if err := orderRef.Validate(); err != nil {
		return StartOrderCommand{}, err
	}
	if assignDriverID != nil {
		if err := assignDriverID.Validate(); err != nil {
			return StartOrderCommand{}, err
		}
	}

	return StartOrderCommand{
		orderRef:       orderRef,
		skipDispatch:   skipDispatch,
		assignDriverID: assignDriverID,
		location:       location,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

// OrderRef returns the public identifier of the order to start.
func (c StartOrderCommand) OrderRef() kernel.PublicID {
	return c.orderRef
}

// SkipDispatch reports whether the dispatch step may be jumped over.
func (c StartOrderCommand) SkipDispatch() bool {
	return c.skipDispatch
}

// AssignDriverID returns the driver accepting the order, or nil.
func (c StartOrderCommand) AssignDriverID() *kernel.UUID {
	return c.assignDriverID
}

// Location returns the caller-supplied position, possibly zero.
func (c StartOrderCommand) Location() kernel.Location {
	return c.location
}
