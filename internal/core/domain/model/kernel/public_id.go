package kernel

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"fleetops/internal/pkg/errs"
)

// ErrPublicIDIsNotConstructed indicates a zero-value PublicID.
var ErrPublicIDIsNotConstructed = errs.NewValueIsRequiredError("PublicID must be created via NewPublicID or PublicIDFromString")

const publicIDSuffixBytes = 6

// PublicID is the externally visible identifier of a resource, shaped as
// "<type>_<suffix>" (order_1a2b3c…, driver_9f8e7d…, waypoint_…). The type prefix
// lets API callers reference heterogeneous subjects with a single string; proof
// capture uses it to resolve whether evidence targets the order, a waypoint, or
// an entity.
type PublicID struct {
	value string
}

// NewPublicID generates a fresh public ID for the given resource type.
func NewPublicID(resourceType string) PublicID {
	buf := make([]byte, publicIDSuffixBytes)
	_, _ = rand.Read(buf)
	return PublicID{value: resourceType + "_" + hex.EncodeToString(buf)}
}

// PublicIDFromString validates and wraps an existing public ID string.
func PublicIDFromString(s string) (PublicID, error) {
	if s == "" {
		return PublicID{}, errs.NewValueIsRequiredError("public ID")
	}
	if !strings.Contains(s, "_") {
		return PublicID{}, errs.NewValueIsInvalidError("public ID must have a type prefix")
	}
	return PublicID{value: s}, nil
}

// Type returns the resource-type prefix, e.g. "waypoint" for "waypoint_1a2b3c".
// An empty string is returned for the zero value.
func (p PublicID) Type() string {
	prefix, _, _ := strings.Cut(p.value, "_")
	return prefix
}

// String returns the full public ID.
func (p PublicID) String() string {
	return p.value
}

// IsEqual reports whether two public IDs are identical.
func (p PublicID) IsEqual(other PublicID) bool {
	return p.value == other.value
}

// Validate returns ErrPublicIDIsNotConstructed for the zero value.
func (p PublicID) Validate() error {
	if p.value == "" {
		return ErrPublicIDIsNotConstructed
	}
	return nil
}
