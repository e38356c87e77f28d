// Package events defines the domain events emitted by lifecycle commands
// after their transaction commits.
package events

import (
	"fleetops/internal/core/domain/model/kernel"
)

// DomainEvent is implemented by every event emitted from the core.
type DomainEvent interface {
	// Name returns the stable event name used for routing and logging.
	Name() string
}

// OrderReady is emitted when a new order has been created and persisted.
type OrderReady struct {
	OrderID  kernel.UUID
	PublicID kernel.PublicID
}

func (OrderReady) Name() string { return "order.ready" }

// OrderDispatched is emitted when an order passes the dispatch gate.
type OrderDispatched struct {
	OrderID  kernel.UUID
	PublicID kernel.PublicID
	DriverID *kernel.UUID
}

func (OrderDispatched) Name() string { return "order.dispatched" }

// OrderDispatchFailed is emitted when a dispatch attempt is rejected, for
// example when no driver is assigned to a non-adhoc order.
type OrderDispatchFailed struct {
	OrderID  kernel.UUID
	PublicID kernel.PublicID
	Reason   string
}

func (OrderDispatchFailed) Name() string { return "order.dispatch_failed" }

// OrderStarted is emitted when fulfillment of an order begins.
type OrderStarted struct {
	OrderID  kernel.UUID
	PublicID kernel.PublicID
	DriverID *kernel.UUID
}

func (OrderStarted) Name() string { return "order.started" }

// OrderCompleted is emitted when an order reaches the Completed status.
type OrderCompleted struct {
	OrderID  kernel.UUID
	PublicID kernel.PublicID
}

func (OrderCompleted) Name() string { return "order.completed" }

// OrderCanceled is emitted when an order is canceled.
type OrderCanceled struct {
	OrderID  kernel.UUID
	PublicID kernel.PublicID
}

func (OrderCanceled) Name() string { return "order.canceled" }

// DriverAssigned is emitted when a driver is assigned to an order.
type DriverAssigned struct {
	OrderID  kernel.UUID
	DriverID kernel.UUID
}

func (DriverAssigned) Name() string { return "order.driver_assigned" }
