package ports

import (
	"context"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/proof"
)

// ProofRepository defines the persistence contract for proof-of-delivery
// records. Proofs are append-only; captured records are never updated except
// through Add after file linking.
type ProofRepository interface {
	// Add persists a new proof record to storage.
	Add(ctx context.Context, record *proof.Proof) error

	// Get retrieves a proof record by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*proof.Proof, error)
}
