package ports

import (
	"fleetops/internal/core/domain/model/order"
)

// FlowProvider resolves the configured activity flow for an order type and
// answers "what comes next" questions against an order's recorded timeline.
type FlowProvider interface {
	// NextActivity returns the activity immediately after the order's last
	// recorded activity in its flow. At the end of the flow the final
	// activity is returned again.
	NextActivity(o *order.Order) (order.Activity, error)

	// AfterNextActivity returns the activity two steps ahead of the order's
	// last recorded activity, clamped to the end of the flow. Used to skip
	// over the dispatch step when a dispatch skip is requested.
	AfterNextActivity(o *order.Order) (order.Activity, error)

	// WaypointActivity returns the flow activity matching a waypoint's
	// current progress state.
	WaypointActivity(o *order.Order, w *order.Waypoint) (order.Activity, error)
}
