package commands

import (
	"errors"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var (
	ErrScheduleOrderCommandIsNotConstructed = errors.New(
		"ScheduleOrderCommand must be created via NewScheduleOrderCommand constructor",
	)
	ErrScheduleTimeIsRequired = errors.New("schedule time is required")
)

// ScheduleOrderCommand represents a request to plan an order's dispatch for a
// future time; the scheduled-dispatch job picks it up when due.
type ScheduleOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef kernel.PublicID
	at       time.Time

	guard guard.ConstructorGuard
}

// NewScheduleOrderCommand creates a command to schedule the given order.
func NewScheduleOrderCommand(orderRef kernel.PublicID, at time.Time) (ScheduleOrderCommand, error) {
	if err := orderRef.Validate(); err != nil {
		return ScheduleOrderCommand{}, err
	}
	if at.IsZero() {
		return ScheduleOrderCommand{}, ErrScheduleTimeIsRequired
	}

	return ScheduleOrderCommand{
		orderRef: orderRef,
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ScheduleOrderCommand) Validate() error {
	return c.guard.Validate(ErrScheduleOrderCommandIsNotConstructed)
}

// OrderRef returns the public identifier of the order to schedule.
func (c ScheduleOrderCommand) OrderRef() kernel.PublicID {
	return c.orderRef
}

// At returns the planned dispatch time.
func (c ScheduleOrderCommand) At() time.Time {
	return c.at
}
