package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var (
	ErrCaptureQrScanCommandIsNotConstructed = errors.New(
		"CaptureQrScanCommand must be created via NewCaptureQrScanCommand constructor",
	)
	ErrScanCodeIsRequired = errors.New("scan code is required")
)

// CaptureQrScanCommand represents a request to record a QR proof of delivery.
// subjectRef selects what was scanned (the order, a waypoint/place, or a line
// item); code carries the scanned payload, which must equal the subject's
// internal identifier to validate.
type CaptureQrScanCommand struct { //nolint:recvcheck //using for validation
	orderRef   kernel.PublicID
	subjectRef string
	code       string
	rawData    string
	data       string

	guard guard.ConstructorGuard
}

// NewCaptureQrScanCommand creates a command to record a QR scan.
func NewCaptureQrScanCommand(orderRef kernel.PublicID, subjectRef, code, rawData, data string) (CaptureQrScanCommand, error) {
	if err := orderRef.Validate(); err != nil {
		return CaptureQrScanCommand{}, err
	}
	if code == "" {
		return CaptureQrScanCommand{}, ErrScanCodeIsRequired
	}

	return CaptureQrScanCommand{
		orderRef:   orderRef,
		subjectRef: subjectRef,
		code:       code,
		rawData:    rawData,
		data:       data,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CaptureQrScanCommand) Validate() error {
	return c.guard.Validate(ErrCaptureQrScanCommandIsNotConstructed)
}

// OrderRef returns the public identifier of the order scanned against.
func (c CaptureQrScanCommand) OrderRef() kernel.PublicID {
	return c.orderRef
}

// SubjectRef returns the reference of the scanned subject, possibly empty.
func (c CaptureQrScanCommand) SubjectRef() string {
	return c.subjectRef
}

// Code returns the scanned payload.
func (c CaptureQrScanCommand) Code() string {
	return c.code
}
