package order

import (
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// ActivityCode identifies a step in an order's fulfillment flow.
type ActivityCode string

// Activity codes of the default fulfillment flow. Flows are configurable per
// order type, but these codes carry special meaning to the lifecycle engine:
// ActivityDispatched routes through the dispatch gate and ActivityCompleted
// triggers the completion path.
const (
	ActivityCreated       ActivityCode = "created"
	ActivityDispatched    ActivityCode = "dispatched"
	ActivityDriverEnRoute ActivityCode = "driver_enroute"
	ActivityCompleted     ActivityCode = "completed"
	ActivityCanceled      ActivityCode = "canceled"
)

// Activity is a step descriptor {status, details, code} in an order's,
// waypoint's, or entity's progress timeline. It is a value object; recorded
// occurrences are ActivityEntry values.
type Activity struct {
	status  string
	details string
	code    ActivityCode
}

// NewActivity creates an activity descriptor. Status and code are required.
func NewActivity(status, details string, code ActivityCode) (Activity, error) {
	if status == "" {
		return Activity{}, errs.NewValueIsRequiredError("activity status")
	}
	if code == "" {
		return Activity{}, errs.NewValueIsRequiredError("activity code")
	}
	return Activity{status: status, details: details, code: code}, nil
}

// Status returns the human-readable status line of the activity.
func (a Activity) Status() string {
	return a.status
}

// Details returns the descriptive details of the activity.
func (a Activity) Details() string {
	return a.details
}

// Code returns the machine-readable activity code.
func (a Activity) Code() ActivityCode {
	return a.code
}

// IsZero reports whether the descriptor is empty.
func (a Activity) IsZero() bool {
	return a.code == ""
}

// ActivityEntry is one recorded occurrence of an activity on a timeline,
// stamped with the location it happened at and optionally linked to a
// proof-of-delivery record.
type ActivityEntry struct {
	activity  Activity
	location  kernel.Location
	proofID   *kernel.UUID
	createdAt time.Time
}

// NewActivityEntry records an activity occurrence.
func NewActivityEntry(activity Activity, location kernel.Location, proofID *kernel.UUID, at time.Time) (ActivityEntry, error) {
	if activity.IsZero() {
		return ActivityEntry{}, errs.NewValueIsRequiredError("activity")
	}
	return ActivityEntry{
		activity:  activity,
		location:  location,
		proofID:   proofID,
		createdAt: at,
	}, nil
}

// RestoreActivityEntry rehydrates an entry from persistence without validation.
func RestoreActivityEntry(activity Activity, location kernel.Location, proofID *kernel.UUID, at time.Time) ActivityEntry {
	return ActivityEntry{activity: activity, location: location, proofID: proofID, createdAt: at}
}

// Activity returns the recorded descriptor.
func (e ActivityEntry) Activity() Activity {
	return e.activity
}

// Location returns where the activity was recorded.
func (e ActivityEntry) Location() kernel.Location {
	return e.location
}

// ProofID returns the linked proof record, or nil.
func (e ActivityEntry) ProofID() *kernel.UUID {
	return e.proofID
}

// CreatedAt returns when the activity was recorded.
func (e ActivityEntry) CreatedAt() time.Time {
	return e.createdAt
}
