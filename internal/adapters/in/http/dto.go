package http

import (
	"time"

	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/proof"
)

// Error is the error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceRequest describes a place in a create request.
type PlaceRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationRequest is an optional caller position on lifecycle requests.
type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Type          string         `json:"type"`
	Pickup        *PlaceRequest  `json:"pickup"`
	Dropoff       *PlaceRequest  `json:"dropoff"`
	Return        *PlaceRequest  `json:"return"`
	Waypoints     []PlaceRequest `json:"waypoints"`
	Entities      []string       `json:"entities"`
	DriverID      string         `json:"driver_id"`
	Adhoc         bool           `json:"adhoc"`
	AdhocDistance int            `json:"adhoc_distance"`
	PodMethod     string         `json:"pod_method"`
	ScheduledAt   *time.Time     `json:"scheduled_at"`
	VendorBooking bool           `json:"vendor_booking"`
	DispatchNow   bool           `json:"dispatch_now"`
}

// StartOrderRequest is the body of POST /orders/:id/start.
type StartOrderRequest struct {
	SkipDispatch bool             `json:"skip_dispatch"`
	DriverID     string           `json:"driver_id"`
	Location     *LocationRequest `json:"location"`
}

// UpdateActivityRequest is the body of POST /orders/:id/activity.
type UpdateActivityRequest struct {
	Status       string           `json:"status"`
	Details      string           `json:"details"`
	Code         string           `json:"code"`
	ProofID      string           `json:"proof_id"`
	SkipDispatch bool             `json:"skip_dispatch"`
	Location     *LocationRequest `json:"location"`
}

// LocationBodyRequest is the body of dispatch, complete and cancel requests.
type LocationBodyRequest struct {
	Location *LocationRequest `json:"location"`
}

// SetDestinationRequest is the body of PUT /orders/:id/destination.
type SetDestinationRequest struct {
	Place string `json:"place"`
}

// ScheduleOrderRequest is the body of PUT /orders/:id/schedule.
type ScheduleOrderRequest struct {
	At time.Time `json:"at"`
}

// CaptureQrScanRequest is the body of POST /orders/:id/proofs/qr.
type CaptureQrScanRequest struct {
	Subject string `json:"subject"`
	Code    string `json:"code"`
	RawData string `json:"raw_data"`
	Data    string `json:"data"`
}

// CaptureSignatureRequest is the body of POST /orders/:id/proofs/signature.
type CaptureSignatureRequest struct {
	Subject   string `json:"subject"`
	Signature string `json:"signature"`
	Remarks   string `json:"remarks"`
	Data      string `json:"data"`
}

// ActivityResponse is one recorded timeline entry.
type ActivityResponse struct {
	Status    string    `json:"status"`
	Details   string    `json:"details,omitempty"`
	Code      string    `json:"code"`
	ProofID   string    `json:"proof_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WaypointResponse is one stop of a multi-drop order.
type WaypointResponse struct {
	ID       string  `json:"id"`
	Place    string  `json:"place"`
	Name     string  `json:"name"`
	Sequence int     `json:"sequence"`
	Status   string  `json:"status"`
	Current  bool    `json:"current"`
	Lat      float64 `json:"latitude"`
	Lon      float64 `json:"longitude"`
}

// OrderResponse is the full representation returned by lifecycle endpoints.
type OrderResponse struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Status      string             `json:"status"`
	Dispatched  bool               `json:"dispatched"`
	Started     bool               `json:"started"`
	Adhoc       bool               `json:"adhoc"`
	DriverID    string             `json:"driver_id,omitempty"`
	ScheduledAt *time.Time         `json:"scheduled_at,omitempty"`
	PodRequired bool               `json:"pod_required"`
	PodMethod   string             `json:"pod_method,omitempty"`
	VendorRef   string             `json:"vendor_ref,omitempty"`
	Waypoints   []WaypointResponse `json:"waypoints,omitempty"`
	Activities  []ActivityResponse `json:"activities"`
}

// NextActivityResponse is the answer of GET /orders/:id/next-activity.
type NextActivityResponse struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code"`
}

// ProofResponse is the representation of a captured proof record.
type ProofResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	SubjectType string    `json:"subject_type"`
	SubjectID   string    `json:"subject_id"`
	Method      string    `json:"method"`
	Remarks     string    `json:"remarks,omitempty"`
	FileID      string    `json:"file_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActiveOrderResponse is one row of GET /orders/active.
type ActiveOrderResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Dispatched  bool       `json:"dispatched"`
	DriverID    string     `json:"driver_id,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

func placeSpec(req *PlaceRequest) *commands.PlaceSpec {
	if req == nil {
		return nil
	}
	return &commands.PlaceSpec{Name: req.Name, Latitude: req.Latitude, Longitude: req.Longitude}
}

func placeSpecs(reqs []PlaceRequest) []commands.PlaceSpec {
	if len(reqs) == 0 {
		return nil
	}
	specs := make([]commands.PlaceSpec, 0, len(reqs))
	for _, r := range reqs {
		specs = append(specs, commands.PlaceSpec{Name: r.Name, Latitude: r.Latitude, Longitude: r.Longitude})
	}
	return specs
}

func locationFrom(req *LocationRequest) (kernel.Location, error) {
	if req == nil {
		return kernel.Location{}, nil
	}
	return kernel.NewLocation(req.Latitude, req.Longitude)
}

func orderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:          o.PublicID().String(),
		Type:        o.Type(),
		Status:      o.Status().String(),
		Dispatched:  o.IsDispatched(),
		Started:     o.IsStarted(),
		Adhoc:       o.IsAdhoc(),
		ScheduledAt: o.ScheduledAt(),
		PodRequired: o.PodRequired(),
		PodMethod:   o.PodMethod(),
		VendorRef:   o.VendorRef(),
		Activities:  activityResponses(o.Activities()),
	}
	if driverID := o.Driver(); driverID != nil {
		resp.DriverID = driverID.String()
	}

	current := o.Payload().CurrentWaypointID()
	for _, w := range o.Payload().Waypoints() {
		isCurrent := current != nil && current.IsEqual(w.ID())
		resp.Waypoints = append(resp.Waypoints, WaypointResponse{
			ID:       w.PublicID().String(),
			Place:    w.Place().PublicID().String(),
			Name:     w.Place().Name(),
			Sequence: w.Sequence(),
			Status:   string(w.Status()),
			Current:  isCurrent,
			Lat:      w.Place().Location().Latitude(),
			Lon:      w.Place().Location().Longitude(),
		})
	}
	return resp
}

func activityResponses(entries []order.ActivityEntry) []ActivityResponse {
	resp := make([]ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		a := ActivityResponse{
			Status:    entry.Activity().Status(),
			Details:   entry.Activity().Details(),
			Code:      string(entry.Activity().Code()),
			CreatedAt: entry.CreatedAt(),
		}
		if proofID := entry.ProofID(); proofID != nil {
			a.ProofID = proofID.String()
		}
		resp = append(resp, a)
	}
	return resp
}

func proofResponse(record *proof.Proof) ProofResponse {
	resp := ProofResponse{
		ID:          record.PublicID().String(),
		OrderID:     record.OrderID().String(),
		SubjectType: string(record.SubjectType()),
		SubjectID:   record.SubjectID().String(),
		Method:      string(record.Method()),
		Remarks:     record.Remarks(),
		CreatedAt:   record.CreatedAt(),
	}
	if fileID := record.FileID(); fileID != nil {
		resp.FileID = fileID.String()
	}
	return resp
}
