package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"fleetops/internal/core/domain/model/proof"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
)

// CaptureSignatureCommandHandler records signature proofs of delivery and
// stores the decoded image in the file store.
type CaptureSignatureCommandHandler struct {
	uowFactory ProofUoWFactory
	files      ports.FileStore
}

// NewCaptureSignatureCommandHandler creates a handler for signature capture.
func NewCaptureSignatureCommandHandler(uowFactory ProofUoWFactory, files ports.FileStore) CaptureSignatureCommandHandler {
	return CaptureSignatureCommandHandler{
		uowFactory: uowFactory,
		files:      files,
	}
}

// Handle resolves the signed subject by public identifier, decodes the
// signature, stores the image, and persists the proof with the stored file
// linked. Any decodable payload is accepted once the subject resolves.
func (h *CaptureSignatureCommandHandler) Handle(ctx context.Context, cmd CaptureSignatureCommand) (*proof.Proof, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	image, err := base64.StdEncoding.DecodeString(cmd.Signature())
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("signature", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	record, err := proof.NewProof(o.ID(), subjectType, subjectID, proof.MethodSignature, "", cmd.remarks, cmd.data, time.Now())
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("uploads/signatures/%s.png", record.PublicID())
	stored, err := h.files.Put(ctx, name, image)
	if err != nil {
		return nil, err
	}
	if err = record.AttachFile(stored.ID); err != nil {
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
