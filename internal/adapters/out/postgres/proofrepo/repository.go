package proofrepo

import (
	"context"
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/proof"
	"fleetops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProofRepository implements ProofRepository using GORM.
type GormProofRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProofRepository creates a new GORM proof repository.
func NewGormProofRepository(db *gorm.DB, tracker aggregateTracker) *GormProofRepository {
	return &GormProofRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a captured proof record.
func (r *GormProofRepository) Add(ctx context.Context, record *proof.Proof) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Get retrieves a proof record by internal ID.
func (r *GormProofRepository) Get(ctx context.Context, id kernel.UUID) (*proof.Proof, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProofDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("proof", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
