package order

import (
	"errors"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// Domain errors for order lifecycle operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyDispatched is returned when dispatching an order a second time.
	ErrAlreadyDispatched = errs.NewConflictError("order has already been dispatched")

	// ErrNoDriverAssigned is returned when an operation requires a driver and the
	// order has none and is not adhoc.
	ErrNoDriverAssigned = errs.NewConflictError("no driver assigned to order")

	// ErrAdhocDriverRequired is returned when starting an adhoc order without an
	// accepting driver.
	ErrAdhocDriverRequired = errs.NewConflictError("a driver must accept the adhoc order before it can start")

	// ErrNotDispatchedYet is returned when starting an undispatched order without
	// requesting a dispatch skip.
	ErrNotDispatchedYet = errs.NewConflictError("order has not been dispatched yet and cannot be started")

	// ErrAlreadyStarted is returned when starting an order twice.
	ErrAlreadyStarted = errs.NewConflictError("order has already started")

	// ErrAlreadyCompleted is returned when updating activity on a completed order.
	ErrAlreadyCompleted = errs.NewConflictError("order is already completed")

	// ErrIncompleteWaypoints is returned when completing a multi-drop order whose
	// waypoints are not all terminal.
	ErrIncompleteWaypoints = errs.NewConflictError("not all waypoints completed for order")

	// ErrInvalidDestination is returned when setting the order destination to a
	// place outside the payload's waypoints.
	ErrInvalidDestination = errs.NewValueIsInvalidError("place is not a valid destination for order")
)

// Order is the aggregate root of the fulfillment state machine. It owns its
// payload (waypoints, entities) and activity timeline; the assigned driver is
// referenced by ID only and lives in its own aggregate.
type Order struct {
	id       kernel.UUID
	publicID kernel.PublicID

	// orderType selects the activity flow the order progresses through.
	orderType string

	status     Status
	dispatched bool
	started    bool
	startedAt  *time.Time

	// adhoc orders may dispatch without a pre-assigned driver; any eligible
	// driver within adhocDistance meters can accept.
	adhoc         bool
	adhocDistance int

	driverID *kernel.UUID
	payload  *Payload

	scheduledAt *time.Time

	podRequired bool
	podMethod   string

	vendorRef string

	activities []ActivityEntry

	isConstructed bool
}

// NewOrder creates an order in Created status owning the given payload.
func NewOrder(id kernel.UUID, orderType string, payload *Payload) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderType == "" {
		orderType = "default"
	}
	if payload == nil {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Order{
		id:            id,
		publicID:      kernel.NewPublicID("order"),
		orderType:     orderType,
		status:        Created,
		payload:       payload,
		isConstructed: true,
	}, nil
}

// RestoreOrder rehydrates an order aggregate from persistence.
func RestoreOrder(
	id kernel.UUID,
	publicID kernel.PublicID,
	orderType string,
	status Status,
	dispatched bool,
	started bool,
	startedAt *time.Time,
	adhoc bool,
	adhocDistance int,
	driverID *kernel.UUID,
	payload *Payload,
	scheduledAt *time.Time,
	podRequired bool,
	podMethod string,
	vendorRef string,
	activities []ActivityEntry,
) (*Order, error) {
	if err := errors.Join(id.Validate(), publicID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Order{
		id:            id,
		publicID:      publicID,
		orderType:     orderType,
		status:        status,
		dispatched:    dispatched,
		started:       started,
		startedAt:     startedAt,
		adhoc:         adhoc,
		adhocDistance: adhocDistance,
		driverID:      driverID,
		payload:       payload,
		scheduledAt:   scheduledAt,
		podRequired:   podRequired,
		podMethod:     podMethod,
		vendorRef:     vendorRef,
		activities:    activities,
		isConstructed: true,
	}, nil
}

// Validate ensures the aggregate came from a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the internal identifier of the order.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// PublicID returns the public-facing identifier of the order.
func (o *Order) PublicID() kernel.PublicID {
	return o.publicID
}

// Type returns the order type used to select its activity flow.
func (o *Order) Type() string {
	return o.orderType
}

// Status returns the lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// IsDispatched reports whether the order has been dispatched.
func (o *Order) IsDispatched() bool {
	return o.dispatched
}

// IsStarted reports whether fulfillment has begun.
func (o *Order) IsStarted() bool {
	return o.started
}

// StartedAt returns when fulfillment began, or nil.
func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

// IsAdhoc reports whether the order dispatches without a pre-assigned driver.
func (o *Order) IsAdhoc() bool {
	return o.adhoc
}

// AdhocDistance returns the acceptance radius in meters for adhoc dispatch.
func (o *Order) AdhocDistance() int {
	return o.adhocDistance
}

// Driver returns the assigned driver's ID, or nil.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Payload returns the owned shipment description.
func (o *Order) Payload() *Payload {
	return o.payload
}

// ScheduledAt returns the scheduled dispatch time, or nil.
func (o *Order) ScheduledAt() *time.Time {
	return o.scheduledAt
}

// PodRequired reports whether proof of delivery is required.
func (o *Order) PodRequired() bool {
	return o.podRequired
}

// PodMethod returns the required proof-of-delivery method ("qr", "signature").
func (o *Order) PodMethod() string {
	return o.podMethod
}

// VendorRef returns the integrated vendor's order reference, if booked externally.
func (o *Order) VendorRef() string {
	return o.vendorRef
}

// Activities returns the order-level activity timeline.
func (o *Order) Activities() []ActivityEntry {
	return o.activities
}

// LastActivity returns the most recent order-level entry, or a zero entry.
func (o *Order) LastActivity() ActivityEntry {
	if len(o.activities) == 0 {
		return ActivityEntry{}
	}
	return o.activities[len(o.activities)-1]
}

// MarkAdhoc flags the order for adhoc dispatch within the given radius (meters).
func (o *Order) MarkAdhoc(distance int) error {
	if distance < 0 {
		return errs.NewValueIsInvalidError("adhoc distance")
	}
	o.adhoc = true
	o.adhocDistance = distance
	return nil
}

// RequireProofOfDelivery flags the order as requiring POD via the given method.
func (o *Order) RequireProofOfDelivery(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("pod method")
	}
	o.podRequired = true
	o.podMethod = method
	return nil
}

// Schedule sets the planned dispatch time.
func (o *Order) Schedule(at time.Time) {
	t := at
	o.scheduledAt = &t
}

// AttachVendorReference records the external order reference returned by an
// integrated vendor booking.
func (o *Order) AttachVendorReference(ref string) {
	o.vendorRef = ref
}

// AssignDriver assigns (or reassigns) the driver working the order.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewConflictError("cannot assign driver to a finished order")
	}

	o.driverID = &driverID
	return nil
}

// Dispatch marks the order dispatched after checking the gate preconditions:
// not dispatched yet, and a driver assigned unless the order is adhoc.
func (o *Order) Dispatch() error {
	if o.dispatched {
		return ErrAlreadyDispatched
	}
	if o.driverID == nil && !o.adhoc {
		return ErrNoDriverAssigned
	}

	o.dispatched = true
	return nil
}

// MarkStarted flags fulfillment as begun and moves a Created order to Started.
func (o *Order) MarkStarted(at time.Time) error {
	if o.started {
		return ErrAlreadyStarted
	}

	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.started = true
	t := at
	o.startedAt = &t
	o.status = newStatus
	return nil
}

// ApplyActivity appends an entry to the order timeline and advances the status
// the entry implies: a completed code completes the order, a canceled code
// cancels it, any other code on a created order implies it has started.
func (o *Order) ApplyActivity(entry ActivityEntry) error {
	switch entry.Activity().Code() {
	case ActivityCompleted:
		newStatus, err := o.status.Complete()
		if err != nil {
			return err
		}
		o.status = newStatus
	case ActivityCanceled:
		o.status = o.status.Cancel()
	default:
		if o.status == Created {
			newStatus, err := o.status.Start()
			if err != nil {
				return err
			}
			o.status = newStatus
		}
	}

	o.activities = append(o.activities, entry)
	return nil
}

// RecordActivity appends an entry to the order timeline without touching the
// lifecycle status. Used for dispatch, which must not imply fulfillment has
// started.
func (o *Order) RecordActivity(entry ActivityEntry) {
	o.activities = append(o.activities, entry)
}

// Cancel unconditionally transitions the order to Canceled and records the
// cancellation on the timeline. No status guard: a completed order can still
// be force-canceled, matching observed behavior.
func (o *Order) Cancel(location kernel.Location, at time.Time) {
	o.status = o.status.Cancel()

	activity, _ := NewActivity("Order canceled", "Order has been canceled", ActivityCanceled)
	entry := RestoreActivityEntry(activity, location, nil, at)
	o.activities = append(o.activities, entry)
}

// SetDestination points the payload's current waypoint at the waypoint
// matching placeRef. Returns ErrInvalidDestination when the place does not
// belong to the order's waypoints.
func (o *Order) SetDestination(placeRef kernel.PublicID) error {
	w := o.payload.FindWaypointByRef(placeRef)
	if w == nil {
		return ErrInvalidDestination
	}
	return o.payload.SetCurrentWaypoint(w)
}
