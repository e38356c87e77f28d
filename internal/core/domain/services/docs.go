// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the fulfillment system.
//
// The package includes:
//   - DispatchGate: guards the dispatch transition and records its activity
//   - WaypointTracker: drives per-stop progress on multi-drop orders
//
// Domain services coordinate between aggregates, implementing business logic
// that does not naturally belong to a single aggregate root.
package services
