package commands

import (
	"context"
	"time"

	"fleetops/internal/core/domain/model/proof"
)

// qrScanRemarks is stamped on every proof captured through a QR scan.
const qrScanRemarks = "Verified by QR Code Scan"

// CaptureQrScanCommandHandler validates and records QR proofs of delivery.
type CaptureQrScanCommandHandler struct {
	uowFactory ProofUoWFactory
}

// NewCaptureQrScanCommandHandler creates a handler for QR proof capture.
func NewCaptureQrScanCommandHandler(uowFactory ProofUoWFactory) CaptureQrScanCommandHandler {
	return CaptureQrScanCommandHandler{uowFactory: uowFactory}
}

// Handle resolves the scanned subject on the order and requires exact
// equality between the scanned code and the subject's internal identifier.
// A mismatch fails with ValidationFailed and persists nothing; a match
// persists exactly one proof record.
func (h *CaptureQrScanCommandHandler) Handle(ctx context.Context, cmd CaptureQrScanCommand) (*proof.Proof, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByPublicID(ctx, cmd.OrderRef())
	if err != nil {
		return nil, err
	}

	subjectType, subjectID, err := resolveProofSubject(o, cmd.SubjectRef())
	if err != nil {
		return nil, err
	}
	if cmd.Code() != subjectID.String() {
		return nil, proof.ErrValidationFailed
	}

	record, err := proof.NewProof(o.ID(), subjectType, subjectID, proof.MethodQRCode, cmd.rawData, qrScanRemarks, cmd.data, time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.ProofRepository().Add(ctx, record); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return record, nil
}
