package flow

import (
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/pkg/errs"
)

// Provider resolves order activity flows from an in-memory registry. Flows
// are registered per order type at startup; unknown types fall back to the
// default flow.
type Provider struct {
	flows map[string][]order.Activity
}

// NewProvider creates a provider seeded with the default fulfillment flow:
// created, dispatched, driver_enroute, completed. Cancellation is out of band
// and never appears in a flow.
func NewProvider() *Provider {
	p := &Provider{flows: make(map[string][]order.Activity)}
	p.Register("default", defaultFlow())
	return p
}

// Register installs the activity sequence for an order type, replacing any
// previous registration. Call during composition; the registry is not safe
// for concurrent mutation.
func (p *Provider) Register(orderType string, activities []order.Activity) {
	p.flows[orderType] = activities
}

// NextActivity returns the flow step after the order's last recorded
// activity, clamped to the end of the flow.
func (p *Provider) NextActivity(o *order.Order) (order.Activity, error) {
	steps, err := p.flowFor(o)
	if err != nil {
		return order.Activity{}, err
	}
	return steps[clamp(p.lastIndex(steps, o.Activities())+1, len(steps))], nil
}

// AfterNextActivity returns the flow step two ahead of the order's last
// recorded activity, clamped to the end of the flow.
func (p *Provider) AfterNextActivity(o *order.Order) (order.Activity, error) {
	steps, err := p.flowFor(o)
	if err != nil {
		return order.Activity{}, err
	}
	return steps[clamp(p.lastIndex(steps, o.Activities())+2, len(steps))], nil
}

// WaypointActivity returns the flow step matching a waypoint's own progress.
// A stop with no recorded activity starts just past the dispatch step; the
// order-level dispatch covers all stops.
func (p *Provider) WaypointActivity(o *order.Order, w *order.Waypoint) (order.Activity, error) {
	steps, err := p.flowFor(o)
	if err != nil {
		return order.Activity{}, err
	}

	recorded := w.Activities()
	if len(recorded) == 0 {
		return steps[clamp(p.dispatchIndex(steps)+1, len(steps))], nil
	}
	return steps[clamp(p.lastIndex(steps, recorded)+1, len(steps))], nil
}

func (p *Provider) flowFor(o *order.Order) ([]order.Activity, error) {
	steps, ok := p.flows[o.Type()]
	if !ok {
		steps = p.flows["default"]
	}
	if len(steps) == 0 {
		return nil, errs.NewValueIsRequiredError("activity flow")
	}
	return steps, nil
}

// lastIndex locates the flow position of the most recent recorded activity
// that belongs to the flow. Out-of-flow entries, like cancellations, are
// ignored. Returns 0 when nothing in the timeline matches: a fresh order sits
// on the first step of its flow.
func (p *Provider) lastIndex(steps []order.Activity, recorded []order.ActivityEntry) int {
	for i := len(recorded) - 1; i >= 0; i-- {
		code := recorded[i].Activity().Code()
		for j, step := range steps {
			if step.Code() == code {
				return j
			}
		}
	}
	return 0
}

func (p *Provider) dispatchIndex(steps []order.Activity) int {
	for i, step := range steps {
		if step.Code() == order.ActivityDispatched {
			return i
		}
	}
	return 0
}

func clamp(i, n int) int {
	if i > n-1 {
		return n - 1
	}
	return i
}

func defaultFlow() []order.Activity {
	return []order.Activity{
		mustActivity("created", "Order created", order.ActivityCreated),
		mustActivity("dispatched", "Order dispatched", order.ActivityDispatched),
		mustActivity("driver_enroute", "Driver en route", order.ActivityDriverEnRoute),
		mustActivity("completed", "Order completed", order.ActivityCompleted),
	}
}

func mustActivity(status, details string, code order.ActivityCode) order.Activity {
	a, err := order.NewActivity(status, details, code)
	if err != nil {
		panic(err)
	}
	return a
}
