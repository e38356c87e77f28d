// Package proofrepo persists proof-of-delivery records. The table is append
// only: records are captured once and never modified.
package proofrepo

import (
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/proof"

	"github.com/google/uuid"
)

// ProofDTO represents the database structure for persisting proof records.
type ProofDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PublicID    string    `gorm:"uniqueIndex"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	SubjectType string
	SubjectID   uuid.UUID `gorm:"type:uuid;index"`
	Method      string
	RawData     string
	Remarks     string
	Data        string
	FileID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming convention to use "proofs".
func (ProofDTO) TableName() string {
	return "proofs"
}

func fromDomain(record *proof.Proof) ProofDTO {
	var fileID *uuid.UUID
	if id := record.FileID(); id != nil {
		raw := id.Bytes()
		fileID = &raw
	}

	return ProofDTO{
		ID:          record.ID().Bytes(),
		PublicID:    record.PublicID().String(),
		OrderID:     record.OrderID().Bytes(),
		SubjectType: string(record.SubjectType()),
		SubjectID:   record.SubjectID().Bytes(),
		Method:      string(record.Method()),
		RawData:     record.RawData(),
		Remarks:     record.Remarks(),
		Data:        record.Data(),
		FileID:      fileID,
		CreatedAt:   record.CreatedAt(),
	}
}

func toDomain(dto ProofDTO) (*proof.Proof, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	publicID, err := kernel.PublicIDFromString(dto.PublicID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	subjectID, err := kernel.UUIDFromBytes(dto.SubjectID[:])
	if err != nil {
		return nil, err
	}

	var fileID *kernel.UUID
	if dto.FileID != nil {
		fID, fileErr := kernel.UUIDFromBytes((*dto.FileID)[:])
		if fileErr != nil {
			return nil, fileErr
		}
		fileID = &fID
	}

	return proof.RestoreProof(
		id,
		publicID,
		orderID,
		proof.SubjectType(dto.SubjectType),
		subjectID,
		proof.Method(dto.Method),
		dto.RawData,
		dto.Remarks,
		dto.Data,
		fileID,
		dto.CreatedAt,
	)
}
