// Package order contains the order aggregate: the order root with its fulfillment
// state machine, the payload (single pickup/dropoff leg or an ordered multi-drop
// waypoint sequence), line-item entities, and the activity timeline.
//
// The aggregate enforces the fulfillment invariants:
//   - order status only moves forward (created -> started -> completed), except an
//     explicit cancel which is allowed from any status
//   - dispatching requires an assigned driver unless the order is adhoc
//   - a multi-drop order only completes once every waypoint is terminal
//
// Orders can only be created through NewOrder or rehydrated through RestoreOrder;
// persistence adapters must never build the struct directly.
package order
