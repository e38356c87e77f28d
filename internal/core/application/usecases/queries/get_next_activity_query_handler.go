package queries

import (
	"context"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/ports"
)

// GetNextActivityQueryHandler resolves the upcoming flow activity for an
// order. It reads through the repository and never mutates state, so no unit
// of work is involved.
type GetNextActivityQueryHandler struct {
	orderRepo ports.OrderRepository
	flow      ports.FlowProvider
}

// NewGetNextActivityQueryHandler creates a handler for next-activity lookups.
func NewGetNextActivityQueryHandler(orderRepo ports.OrderRepository, flow ports.FlowProvider) GetNextActivityQueryHandler {
	return GetNextActivityQueryHandler{orderRepo: orderRepo, flow: flow}
}

// Handle returns the activity the flow would record next. With a waypoint
// reference on a multi-drop order the answer tracks that stop's own progress
// rather than the order timeline.
func (h GetNextActivityQueryHandler) Handle(ctx context.Context, query GetNextActivityQuery) (GetNextActivityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNextActivityQueryResponse{}, err
	}

	o, err := h.orderRepo.GetByPublicID(ctx, query.OrderRef())
	if err != nil {
		return GetNextActivityQueryResponse{}, err
	}

	activity, err := h.resolve(o, query.WaypointRef())
	if err != nil {
		return GetNextActivityQueryResponse{}, err
	}

	return GetNextActivityQueryResponse{
		Status:  activity.Status(),
		Details: activity.Details(),
		Code:    string(activity.Code()),
	}, nil
}

func (h GetNextActivityQueryHandler) resolve(o *order.Order, waypointRef string) (order.Activity, error) {
	if waypointRef == "" || !o.Payload().IsMultipleDrop() {
		return h.flow.NextActivity(o)
	}

	ref, err := kernel.PublicIDFromString(waypointRef)
	if err != nil {
		return order.Activity{}, order.ErrInvalidDestination
	}
	w := o.Payload().FindWaypointByRef(ref)
	if w == nil {
		return order.Activity{}, order.ErrInvalidDestination
	}
	return h.flow.WaypointActivity(o, w)
}
