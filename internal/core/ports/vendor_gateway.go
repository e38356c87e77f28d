package ports

import (
	"context"
	"errors"

	"fleetops/internal/core/domain/model/order"
)

// ErrIntegratedVendorDispatchFailed is returned when an integrated vendor
// rejects or fails a dispatch request after all attempts.
var ErrIntegratedVendorDispatchFailed = errors.New("integrated vendor dispatch failed")

// VendorGateway books dispatches with an external integrated vendor for
// orders fulfilled outside the own fleet.
type VendorGateway interface {
	// Dispatch books the order with the vendor and returns the vendor's
	// order reference.
	Dispatch(ctx context.Context, o *order.Order) (string, error)
}
