package queries

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrGetNextActivityQueryIsNotConstructed = errors.New(
	"GetNextActivityQuery must be created via NewGetNextActivityQuery constructor",
)

// GetNextActivityQuery asks what the next flow activity for an order would be,
// without recording anything. When a waypoint reference is given the answer is
// scoped to that stop; multi-drop orders progress each stop independently.
type GetNextActivityQuery struct {
	orderRef    kernel.PublicID
	waypointRef string

	guard guard.ConstructorGuard
}

// NewGetNextActivityQuery creates a query for the given order. waypointRef may
// be empty to ask at the order level.
func NewGetNextActivityQuery(orderRef kernel.PublicID, waypointRef string) (GetNextActivityQuery, error) {
	if err := orderRef.Validate(); err != nil {
		return GetNextActivityQuery{}, err
	}

	return GetNextActivityQuery{
		orderRef:    orderRef,
		waypointRef: waypointRef,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetNextActivityQuery) OrderRef() kernel.PublicID { return q.orderRef }

func (q GetNextActivityQuery) WaypointRef() string { return q.waypointRef }

func (q GetNextActivityQuery) Validate() error {
	return q.guard.Validate(ErrGetNextActivityQueryIsNotConstructed)
}

// GetNextActivityQueryResponse is the activity the flow would record next.
type GetNextActivityQueryResponse struct {
	Status  string
	Details string
	Code    string
}
