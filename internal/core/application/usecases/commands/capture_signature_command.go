package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var (
	ErrCaptureSignatureCommandIsNotConstructed = errors.New(
		"CaptureSignatureCommand must be created via NewCaptureSignatureCommand constructor",
	)
	ErrSignatureIsRequired = errors.New("signature payload is required")
)

// CaptureSignatureCommand represents a request to record a signature proof of
// delivery. The signature arrives base64-encoded; the image content itself is
// not validated, only that the subject resolves and the payload decodes.
type CaptureSignatureCommand struct { //nolint:recvcheck //using for validation
	orderRef   kernel.PublicID
	subjectRef string
	signature  string
	remarks    string
	data       string

	guard guard.ConstructorGuard
}

// NewCaptureSignatureCommand creates a command to record a signature.
func NewCaptureSignatureCommand(orderRef kernel.PublicID, subjectRef, signature, remarks, data string) (CaptureSignatureCommand, error) {
	if err := orderRef.Validate(); err != nil {
		return CaptureSignatureCommand{}, err
	}
	if signature == "" {
		return CaptureSignatureCommand{}, ErrSignatureIsRequired
	}

	return CaptureSignatureCommand{
		orderRef:   orderRef,
		subjectRef: subjectRef,
		signature:  signature,
		remarks:    remarks,
		data:       data,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CaptureSignatureCommand) Validate() error {
	return c.guard.Validate(ErrCaptureSignatureCommandIsNotConstructed)
}

// OrderRef returns the public identifier of the order signed for.
func (c CaptureSignatureCommand) OrderRef() kernel.PublicID {
	return c.orderRef
}

// SubjectRef returns the reference of the signed subject, possibly empty.
func (c CaptureSignatureCommand) SubjectRef() string {
	return c.subjectRef
}

// Signature returns the base64-encoded signature image.
func (c CaptureSignatureCommand) Signature() string {
	return c.signature
}
