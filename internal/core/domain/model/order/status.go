package order

import (
	"fmt"

	"fleetops/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Created ──> Started ──> Completed
//	   │           │            │
//	   └───────────┴────────────┴──> Canceled
//
// Forward transitions are monotonic; Cancel is reachable from every status,
// including Completed (force-override, kept as observed in production).
type Status int

const (
	// Unknown represents an invalid or undefined status and catches
	// uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status: the order exists but fulfillment has not begun.
	Created

	// Started indicates the driver has begun working the order.
	Started

	// Completed indicates the order was delivered. Terminal.
	Completed

	// Canceled indicates the order was canceled. Terminal.
	Canceled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Created:   "created",
		Started:   "started",
		Completed: "completed",
		Canceled:  "canceled",
	}
}

// StatusFromString parses a persisted status string.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that the Status holds one of the defined lifecycle values.
func (s Status) Validate() error {
	if s < Created || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire-level name of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no forward transition remains.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// Start transitions the status to Started.
//
// Valid transitions:
//   - Created -> Started
//   - Started -> Started (idempotent for the implicit start on update-activity)
func (s Status) Start() (Status, error) {
	if s != Created && s != Started {
		return Unknown, errs.NewConflictErrorWithCause(
			"order cannot be started",
			fmt.Errorf("%s is not a valid status to start from", s),
		)
	}
	return Started, nil
}

// Complete transitions the status to Completed. Only a started order can complete.
func (s Status) Complete() (Status, error) {
	if s != Started {
		return Unknown, errs.NewConflictErrorWithCause(
			"order cannot be completed",
			fmt.Errorf("%s is not a valid status to complete from", s),
		)
	}
	return Completed, nil
}

// Cancel transitions the status to Canceled from any status, including
// Completed. There is deliberately no guard here; see CancelOrder handler tests
// documenting this behavior.
func (s Status) Cancel() Status {
	return Canceled
}
