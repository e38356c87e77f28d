package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/pkg/guard"
)

var ErrUpdateActivityCommandIsNotConstructed = errors.New(
	"UpdateActivityCommand must be created via NewUpdateActivityCommand constructor",
)

// ActivitySpec describes an activity supplied by the caller. A zero spec
// means "resolve the next activity from the flow".
type ActivitySpec struct {
	Status  string
	Details string
	Code    string
}

// IsZero reports whether the caller supplied no activity.
func (s ActivitySpec) IsZero() bool {
	return s.Code == ""
}

// UpdateActivityCommand represents a request to progress an order to its next
// fulfillment step, optionally carrying an explicit activity and a proof
// reference to stamp on the recorded entry.
type UpdateActivityCommand struct { //nolint:recvcheck //using for validation
	orderRef     kernel.PublicID
	activity     ActivitySpec
	proofID      *kernel.UUID
	skipDispatch bool
	location     kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateActivityCommand creates a command to progress the given order.
func NewUpdateActivityCommand(
	orderRef kernel.PublicID,
	activity ActivitySpec,
	proofID *kernel.UUID,
	skipDispatch bool,
	location kernel.Location,
) (UpdateActivityCommand, error) {
	if err := orderRef.Validate(); err != nil {
		return UpdateActivityCommand{}, err
	}
	if proofID != nil {
		if err := proofID.Validate(); err != nil {
			return UpdateActivityCommand{}, err
		}
	}

	return UpdateActivityCommand{
		orderRef:     orderRef,
		activity:     activity,
		proofID:      proofID,
		skipDispatch: skipDispatch,
		location:     location,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateActivityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateActivityCommandIsNotConstructed)
}

// OrderRef returns the public identifier of the order to progress.
func (c UpdateActivityCommand) OrderRef() kernel.PublicID {
	return c.orderRef
}

// Activity returns the caller-supplied activity, possibly zero.
func (c UpdateActivityCommand) Activity() ActivitySpec {
	return c.activity
}

// ProofID returns the proof record to stamp on the entry, or nil.
func (c UpdateActivityCommand) ProofID() *kernel.UUID {
	return c.proofID
}

// SkipDispatch reports whether the dispatch step may be jumped over.
func (c UpdateActivityCommand) SkipDispatch() bool {
	return c.skipDispatch
}

// Location returns the caller-supplied position, possibly zero.
func (c UpdateActivityCommand) Location() kernel.Location {
	return c.location
}

// domainActivity converts the request payload into a domain activity, or the
// zero value when the payload is empty.
func (s ActivitySpec) domainActivity() (order.Activity, error) {
	if s.IsZero() {
		return order.Activity{}, nil
	}
	status := s.Status
	if status == "" {
		status = s.Code
	}
	return order.NewActivity(status, s.Details, order.ActivityCode(s.Code))
}
