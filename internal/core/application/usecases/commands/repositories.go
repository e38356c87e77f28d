// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence. Lifecycle commands load the order with a row lock so at
// most one state transition commits per logical call.
package commands

import (
	"context"

	"fleetops/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// ProofRepoFactory provides access to the proof repository within a transaction.
	ProofRepoFactory interface {
		ProofRepository() ports.ProofRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across order and driver aggregates.
	// Lifecycle commands use it because completion and start touch both.
	UoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}

	// ProofUoW manages transactions for proof capture, which reads the order
	// and appends proof records.
	ProofUoW interface {
		TxManager
		OrderRepoFactory
		ProofRepoFactory
	}

	// ProofUoWFactory creates new proof unit of work instances.
	ProofUoWFactory interface {
		Create() ProofUoW
	}
)
