package commands

import (
	"errors"
	"time"

	"fleetops/internal/pkg/guard"
)

var ErrDispatchDueOrdersCommandIsNotConstructed = errors.New(
	"DispatchDueOrdersCommand must be created via NewDispatchDueOrdersCommand constructor",
)

// DispatchDueOrdersCommand represents a sweep over scheduled orders whose
// dispatch time has arrived. Issued periodically by the scheduled-dispatch job.
type DispatchDueOrdersCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewDispatchDueOrdersCommand creates a sweep command for the given instant.
func NewDispatchDueOrdersCommand(now time.Time) (DispatchDueOrdersCommand, error) {
	if now.IsZero() {
		return DispatchDueOrdersCommand{}, ErrScheduleTimeIsRequired
	}

	return DispatchDueOrdersCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchDueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchDueOrdersCommandIsNotConstructed)
}

// Now returns the sweep instant.
func (c DispatchDueOrdersCommand) Now() time.Time {
	return c.now
}
