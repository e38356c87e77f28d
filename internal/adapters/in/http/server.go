// Package http exposes the order fulfillment API over echo.
package http

import (
	"errors"
	"net/http"

	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler      commands.CreateOrderCommandHandler
	dispatchOrderHandler    commands.DispatchOrderCommandHandler
	startOrderHandler       commands.StartOrderCommandHandler
	updateActivityHandler   commands.UpdateActivityCommandHandler
	completeOrderHandler    commands.CompleteOrderCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	setDestinationHandler   commands.SetDestinationCommandHandler
	scheduleOrderHandler    commands.ScheduleOrderCommandHandler
	captureQrScanHandler    commands.CaptureQrScanCommandHandler
	captureSignatureHandler commands.CaptureSignatureCommandHandler

	getNextActivityHandler queries.GetNextActivityQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	startOrderHandler commands.StartOrderCommandHandler,
	updateActivityHandler commands.UpdateActivityCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	setDestinationHandler commands.SetDestinationCommandHandler,
	scheduleOrderHandler commands.ScheduleOrderCommandHandler,
	captureQrScanHandler commands.CaptureQrScanCommandHandler,
	captureSignatureHandler commands.CaptureSignatureCommandHandler,
	getNextActivityHandler queries.GetNextActivityQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		dispatchOrderHandler:    dispatchOrderHandler,
		startOrderHandler:       startOrderHandler,
		updateActivityHandler:   updateActivityHandler,
		completeOrderHandler:    completeOrderHandler,
		cancelOrderHandler:      cancelOrderHandler,
		setDestinationHandler:   setDestinationHandler,
		scheduleOrderHandler:    scheduleOrderHandler,
		captureQrScanHandler:    captureQrScanHandler,
		captureSignatureHandler: captureSignatureHandler,
		getNextActivityHandler:  getNextActivityHandler,
		getActiveOrdersHandler:  getActiveOrdersHandler,
	}
}

// RegisterRoutes mounts all order endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.POST("/orders/:id/dispatch", s.DispatchOrder)
	api.POST("/orders/:id/start", s.StartOrder)
	api.POST("/orders/:id/activity", s.UpdateActivity)
	api.GET("/orders/:id/next-activity", s.GetNextActivity)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.PUT("/orders/:id/destination", s.SetDestination)
	api.PUT("/orders/:id/schedule", s.ScheduleOrder)
	api.POST("/orders/:id/proofs/qr", s.CaptureQrScan)
	api.POST("/orders/:id/proofs/signature", s.CaptureSignature)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		req.Type,
		placeSpec(req.Pickup),
		placeSpec(req.Dropoff),
		placeSpec(req.Return),
		placeSpecs(req.Waypoints),
		req.Entities,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if req.DriverID != "" {
		driverID, idErr := kernel.UUIDFromString(req.DriverID)
		if idErr != nil {
			return badRequest(ctx, "Invalid driver id")
		}
		cmd = cmd.WithDriver(driverID)
	}
	if req.Adhoc {
		cmd = cmd.WithAdhoc(req.AdhocDistance)
	}
	if req.PodMethod != "" {
		cmd = cmd.WithProofOfDelivery(req.PodMethod)
	}
	if req.ScheduledAt != nil {
		cmd = cmd.WithSchedule(*req.ScheduledAt)
	}
	if req.VendorBooking {
		cmd = cmd.WithVendorBooking()
	}
	if req.DispatchNow {
		cmd = cmd.WithImmediateDispatch()
	}

	o, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponse(o))
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req LocationBodyRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	location, err := locationFrom(req.Location)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDispatchOrderCommand(ref, location)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(o))
}

// StartOrder handles POST /api/v1/orders/:id/start.
func (s *Server) StartOrder(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req StartOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	location, err := locationFrom(req.Location)
	if err != nil {
		return writeError(ctx, err)
	}

	var driverID *kernel.UUID
	if req.DriverID != "" {
		id, idErr := kernel.UUIDFromString(req.DriverID)
		if idErr != nil {
			return badRequest(ctx, "Invalid driver id")
		}
		driverID = &id
	}

	cmd, err := commands.NewStartOrderCommand(ref, req.SkipDispatch, driverID, location)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.startOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(o))
}

// UpdateActivity handles POST /api/v1/orders/:id/activity.
func (s *Server) UpdateActivity(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateActivityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	location, err := locationFrom(req.Location)
	if err != nil {
		return writeError(ctx, err)
	}

	var proofID *kernel.UUID
	if req.ProofID != "" {
		id, idErr := kernel.UUIDFromString(req.ProofID)
		if idErr != nil {
			return badRequest(ctx, "Invalid proof id")
		}
		proofID = &id
	}

	cmd, err := commands.NewUpdateActivityCommand(
		ref,
		commands.ActivitySpec{Status: req.Status, Details: req.Details, Code: req.Code},
		proofID,
		req.SkipDispatch,
		location,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.updateActivityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(o))
}

// GetNextActivity handles GET /api/v1/orders/:id/next-activity.
func (s *Server) GetNextActivity(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetNextActivityQuery(ref, ctx.QueryParam("waypoint"))
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getNextActivityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, NextActivityResponse{
		Status:  resp.Status,
		Details: resp.Details,
		Code:    resp.Code,
	})
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req LocationBodyRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	location, err := locationFrom(req.Location)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(ref, location)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(o))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req LocationBodyRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	location, err := locationFrom(req.Location)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(ref, location)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(o))
}

// SetDestination handles PUT /api/v1/orders/:id/destination.
func (s *Server) SetDestination(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req SetDestinationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	placeRef, err := kernel.PublicIDFromString(req.Place)
	if err != nil {
		return badRequest(ctx, "Invalid place id")
	}

	cmd, err := commands.NewSetDestinationCommand(ref, placeRef)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.setDestinationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(o))
}

// ScheduleOrder handles PUT /api/v1/orders/:id/schedule.
func (s *Server) ScheduleOrder(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ScheduleOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewScheduleOrderCommand(ref, req.At)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.scheduleOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(o))
}

// CaptureQrScan handles POST /api/v1/orders/:id/proofs/qr.
func (s *Server) CaptureQrScan(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CaptureQrScanRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCaptureQrScanCommand(ref, req.Subject, req.Code, req.RawData, req.Data)
	if err != nil {
		return writeError(ctx, err)
	}

	record, err := s.captureQrScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, proofResponse(record))
}

// CaptureSignature handles POST /api/v1/orders/:id/proofs/signature.
func (s *Server) CaptureSignature(ctx echo.Context) error {
	ref, err := orderRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CaptureSignatureRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCaptureSignatureCommand(ref, req.Subject, req.Signature, req.Remarks, req.Data)
	if err != nil {
		return writeError(ctx, err)
	}

	record, err := s.captureSignatureHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, proofResponse(record))
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	resp := make([]ActiveOrderResponse, 0, len(orders))
	for _, o := range orders {
		row := ActiveOrderResponse{
			ID:          o.PublicID,
			Status:      o.Status,
			Dispatched:  o.Dispatched,
			ScheduledAt: o.ScheduledAt,
		}
		if o.DriverID != nil {
			row.DriverID = o.DriverID.String()
		}
		resp = append(resp, row)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func orderRef(ctx echo.Context) (kernel.PublicID, error) {
	return kernel.PublicIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// writeError maps domain and application errors onto the HTTP error envelope.
func writeError(ctx echo.Context, err error) error {
	var (
		notFound *errs.ObjectNotFoundError
		conflict *errs.ConflictError
		invalid  *errs.ValueIsInvalidError
		required *errs.ValueIsRequiredError
		outRange *errs.ValueIsOutOfRangeError
	)

	switch {
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()})
	case errors.As(err, &conflict):
		return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: err.Error()})
	case errors.As(err, &invalid), errors.As(err, &required), errors.As(err, &outRange):
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	case errors.Is(err, ports.ErrIntegratedVendorDispatchFailed):
		return ctx.JSON(http.StatusBadGateway, Error{Code: http.StatusBadGateway, Message: err.Error()})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: "Internal server error"})
	}
}
