package proof

import (
	"errors"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// Method identifies how a proof of delivery was captured.
type Method string

const (
	MethodQRCode    Method = "qr_code"
	MethodSignature Method = "signature"
)

// SubjectType identifies what a proof record attests delivery of.
type SubjectType string

const (
	SubjectOrder    SubjectType = "order"
	SubjectWaypoint SubjectType = "waypoint"
	SubjectEntity   SubjectType = "entity"
)

// Domain errors for proof capture.
var (
	// ErrProofIsNotConstructed is returned when using an improperly initialized Proof.
	ErrProofIsNotConstructed = errors.New("Proof must be created via NewProof constructor")

	// ErrSubjectNotResolved is returned when a capture request references a
	// subject that cannot be found on the order.
	ErrSubjectNotResolved = errs.NewValueIsInvalidError("proof subject could not be resolved on order")

	// ErrValidationFailed is returned when a scanned code does not match the
	// subject it was scanned against. Nothing is persisted on this path.
	ErrValidationFailed = errs.NewValueIsInvalidError("scanned code does not match the expected subject")
)

// Proof is an immutable capture record attesting that a delivery subject was
// handed over: a validated QR scan or a captured signature image. Once
// created it never changes, except for linking the stored signature file.
type Proof struct {
	id       kernel.UUID
	publicID kernel.PublicID

	orderID     kernel.UUID
	subjectType SubjectType
	subjectID   kernel.UUID

	method Method

	// rawData is the scanned code for QR proofs; empty for signatures.
	rawData string

	// remarks is free-form operator commentary captured with the proof.
	remarks string

	// data carries opaque caller-supplied capture metadata, typically JSON.
	data string

	// fileID links the stored signature image; nil for QR proofs.
	fileID *kernel.UUID

	createdAt time.Time

	isConstructed bool
}

// NewProof creates a capture record for the given subject.
func NewProof(orderID kernel.UUID, subjectType SubjectType, subjectID kernel.UUID, method Method, rawData, remarks, data string, at time.Time) (*Proof, error) {
	if err := errors.Join(orderID.Validate(), subjectID.Validate()); err != nil {
		return nil, err
	}
	switch subjectType {
	case SubjectOrder, SubjectWaypoint, SubjectEntity:
	default:
		return nil, errs.NewValueIsInvalidError("proof subject type")
	}
	switch method {
	case MethodQRCode, MethodSignature:
	default:
		return nil, errs.NewValueIsInvalidError("proof method")
	}

	return &Proof{
		id:            kernel.NewUUID(),
		publicID:      kernel.NewPublicID("proof"),
		orderID:       orderID,
		subjectType:   subjectType,
		subjectID:     subjectID,
		method:        method,
		rawData:       rawData,
		remarks:       remarks,
		data:          data,
		createdAt:     at,
		isConstructed: true,
	}, nil
}

// RestoreProof rehydrates a capture record from persistence.
func RestoreProof(
	id kernel.UUID,
	publicID kernel.PublicID,
	orderID kernel.UUID,
	subjectType SubjectType,
	subjectID kernel.UUID,
	method Method,
	rawData, remarks, data string,
	fileID *kernel.UUID,
	createdAt time.Time,
) (*Proof, error) {
	if err := errors.Join(id.Validate(), publicID.Validate()); err != nil {
		return nil, err
	}

	return &Proof{
		id:            id,
		publicID:      publicID,
		orderID:       orderID,
		subjectType:   subjectType,
		subjectID:     subjectID,
		method:        method,
		rawData:       rawData,
		remarks:       remarks,
		data:          data,
		fileID:        fileID,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the record came from a constructor.
func (p *Proof) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProofIsNotConstructed
	}
	return nil
}

// ID returns the internal identifier of the proof.
func (p *Proof) ID() kernel.UUID {
	return p.id
}

// PublicID returns the public-facing identifier of the proof.
func (p *Proof) PublicID() kernel.PublicID {
	return p.publicID
}

// OrderID returns the order the proof was captured for.
func (p *Proof) OrderID() kernel.UUID {
	return p.orderID
}

// SubjectType returns what kind of subject the proof attests.
func (p *Proof) SubjectType() SubjectType {
	return p.subjectType
}

// SubjectID returns the internal identifier of the attested subject.
func (p *Proof) SubjectID() kernel.UUID {
	return p.subjectID
}

// Method returns how the proof was captured.
func (p *Proof) Method() Method {
	return p.method
}

// RawData returns the scanned code for QR proofs, empty otherwise.
func (p *Proof) RawData() string {
	return p.rawData
}

// Remarks returns operator commentary captured with the proof.
func (p *Proof) Remarks() string {
	return p.remarks
}

// Data returns opaque caller-supplied capture metadata.
func (p *Proof) Data() string {
	return p.data
}

// FileID returns the stored signature image reference, or nil.
func (p *Proof) FileID() *kernel.UUID {
	return p.fileID
}

// CreatedAt returns when the proof was captured.
func (p *Proof) CreatedAt() time.Time {
	return p.createdAt
}

// AttachFile links the stored signature image to the record.
func (p *Proof) AttachFile(fileID kernel.UUID) error {
	if err := fileID.Validate(); err != nil {
		return err
	}
	p.fileID = &fileID
	return nil
}
