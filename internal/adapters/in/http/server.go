// Package http exposes the application's use cases over a REST API built on
// echo. Handlers translate between the wire DTOs and the command/query
// layer; domain error families map to HTTP statuses in one place.
package http

import (
	"net/http"
	"strings"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/warehouse"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// requestValidator plugs go-playground/validator into echo's binding flow.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// NewEcho creates an echo instance configured for the server's request
// validation.
func NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	return e
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createParcelHandler               commands.CreateParcelCommandHandler
	recordTrackingUpdateHandler       commands.RecordTrackingUpdateCommandHandler
	assignToConsolidationHandler      commands.AssignToConsolidationCommandHandler
	createConsolidationHandler        commands.CreateConsolidationCommandHandler
	updateConsolidationStatusHandler  commands.UpdateConsolidationStatusCommandHandler
	createWarehouseHandler            commands.CreateWarehouseCommandHandler
	updateWarehouseUtilizationHandler commands.UpdateWarehouseUtilizationCommandHandler
	updateWarehouseStatusHandler      commands.UpdateWarehouseStatusCommandHandler

	// Query handlers
	getParcelHandler              queries.GetParcelQueryHandler
	getParcelByTrackingHandler    queries.GetParcelByTrackingNumberQueryHandler
	getConsolidationsHandler      queries.GetConsolidationsQueryHandler
	getWarehouseHandler           queries.GetWarehouseQueryHandler
	getAvailableWarehousesHandler queries.GetAvailableWarehousesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	recordTrackingUpdateHandler commands.RecordTrackingUpdateCommandHandler,
	assignToConsolidationHandler commands.AssignToConsolidationCommandHandler,
	createConsolidationHandler commands.CreateConsolidationCommandHandler,
	updateConsolidationStatusHandler commands.UpdateConsolidationStatusCommandHandler,
	createWarehouseHandler commands.CreateWarehouseCommandHandler,
	updateWarehouseUtilizationHandler commands.UpdateWarehouseUtilizationCommandHandler,
	updateWarehouseStatusHandler commands.UpdateWarehouseStatusCommandHandler,
	getParcelHandler queries.GetParcelQueryHandler,
	getParcelByTrackingHandler queries.GetParcelByTrackingNumberQueryHandler,
	getConsolidationsHandler queries.GetConsolidationsQueryHandler,
	getWarehouseHandler queries.GetWarehouseQueryHandler,
	getAvailableWarehousesHandler queries.GetAvailableWarehousesQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:               createParcelHandler,
		recordTrackingUpdateHandler:       recordTrackingUpdateHandler,
		assignToConsolidationHandler:      assignToConsolidationHandler,
		createConsolidationHandler:        createConsolidationHandler,
		updateConsolidationStatusHandler:  updateConsolidationStatusHandler,
		createWarehouseHandler:            createWarehouseHandler,
		updateWarehouseUtilizationHandler: updateWarehouseUtilizationHandler,
		updateWarehouseStatusHandler:      updateWarehouseStatusHandler,
		getParcelHandler:                  getParcelHandler,
		getParcelByTrackingHandler:        getParcelByTrackingHandler,
		getConsolidationsHandler:          getConsolidationsHandler,
		getWarehouseHandler:               getWarehouseHandler,
		getAvailableWarehousesHandler:     getAvailableWarehousesHandler,
	}
}

// RegisterRoutes binds every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/parcels", s.CreateParcel)
	v1.GET("/parcels/:parcelId", s.GetParcel)
	v1.GET("/parcels/tracking/:trackingNumber", s.GetParcelByTrackingNumber)
	v1.POST("/parcels/:parcelId/tracking", s.RecordTrackingUpdate)
	v1.PATCH("/parcels/:parcelId/consolidation/:consolidationId", s.AssignToConsolidation)

	v1.POST("/consolidations", s.CreateConsolidation)
	v1.GET("/consolidations", s.GetConsolidations)
	v1.PUT("/consolidations/:consolidationId/status", s.UpdateConsolidationStatus)

	v1.POST("/warehouses", s.CreateWarehouse)
	v1.GET("/warehouses/available", s.GetAvailableWarehouses)
	v1.GET("/warehouses/:warehouseId", s.GetWarehouse)
	v1.PUT("/warehouses/:warehouseId/utilization", s.UpdateWarehouseUtilization)
	v1.PUT("/warehouses/:warehouseId/status", s.UpdateWarehouseStatus)
}

// CreateParcel handles POST /api/v1/parcels - registers a new parcel.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var req CreateParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	senderAddress, err := req.SenderAddress.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	recipientAddress, err := req.RecipientAddress.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	dims, err := req.Dimensions.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateParcelCommand(
		kernel.NewUUID(), req.SenderID, req.RecipientID, senderAddress, recipientAddress, dims,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ParcelCreatedResponse{
		ID:             created.ID().String(),
		TrackingNumber: created.TrackingNumber().String(),
		Status:         created.Status().String(),
		CreatedAt:      created.CreatedAt(),
	})
}

// GetParcel handles GET /api/v1/parcels/:parcelId - retrieves a parcel with
// its tracking history.
func (s *Server) GetParcel(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetParcelQuery(parcelID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelResponseFromQuery(*response))
}

// GetParcelByTrackingNumber handles GET /api/v1/parcels/tracking/:trackingNumber.
func (s *Server) GetParcelByTrackingNumber(ctx echo.Context) error {
	trackingNumber, err := parcel.TrackingNumberFromString(ctx.Param("trackingNumber"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetParcelByTrackingNumberQuery(trackingNumber)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getParcelByTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelResponseFromQuery(*response))
}

// RecordTrackingUpdate handles POST /api/v1/parcels/:parcelId/tracking -
// appends a tracking event. Status is free-form: carriers report stages
// outside the canonical set.
func (s *Server) RecordTrackingUpdate(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req TrackingUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRecordTrackingUpdateCommand(
		parcelID, req.Location, parcel.Status(req.Status), req.Description, req.Timestamp,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.recordTrackingUpdateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignToConsolidation handles
// PATCH /api/v1/parcels/:parcelId/consolidation/:consolidationId - binds a
// single parcel to a batch and moves it to AT_WAREHOUSE.
func (s *Server) AssignToConsolidation(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return writeError(ctx, err)
	}
	consolidationID, err := kernel.UUIDFromString(ctx.Param("consolidationId"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignToConsolidationCommand(parcelID, consolidationID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.assignToConsolidationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateConsolidation handles POST /api/v1/consolidations - builds a batch
// from existing parcels. Repeating a consolidation id returns the already
// created batch.
func (s *Server) CreateConsolidation(ctx echo.Context) error {
	var req CreateConsolidationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	consolidationID, err := kernel.UUIDFromString(req.ConsolidationID)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelIDs := make([]kernel.UUID, len(req.ParcelIDs))
	for i, raw := range req.ParcelIDs {
		parcelIDs[i], err = kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	cmd, err := commands.NewCreateConsolidationCommand(consolidationID, req.CustomerID, parcelIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	batch, err := s.createConsolidationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, consolidationResponseFromAggregate(batch))
}

// GetConsolidations handles GET /api/v1/consolidations?customerId= -
// retrieves batches, optionally filtered by owning customer.
func (s *Server) GetConsolidations(ctx echo.Context) error {
	query := queries.NewGetConsolidationsQuery(ctx.QueryParam("customerId"))

	batches, err := s.getConsolidationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ConsolidationResponse, len(batches))
	for i, batch := range batches {
		response[i] = consolidationResponseFromQuery(batch)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateConsolidationStatus handles PUT /api/v1/consolidations/:consolidationId/status.
func (s *Server) UpdateConsolidationStatus(ctx echo.Context) error {
	consolidationID, err := kernel.UUIDFromString(ctx.Param("consolidationId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateConsolidationStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	status := consolidation.Status(strings.ToUpper(req.Status))
	cmd, err := commands.NewUpdateConsolidationStatusCommand(consolidationID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateConsolidationStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateWarehouse handles POST /api/v1/warehouses - registers a warehouse.
func (s *Server) CreateWarehouse(ctx echo.Context) error {
	var req CreateWarehouseRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	code, err := warehouse.CodeFromString(req.Code)
	if err != nil {
		return writeError(ctx, err)
	}
	address, err := req.Address.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateWarehouseCommand(
		kernel.NewUUID(), code, req.Name, address, req.Capacity,
		req.SupportedTypes, req.AvailableServices,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createWarehouseHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetAvailableWarehouses handles
// GET /api/v1/warehouses/available?city=&requiredCapacity= - retrieves
// warehouses that still admit parcels. requiredCapacity is accepted but
// does not narrow the result.
func (s *Server) GetAvailableWarehouses(ctx echo.Context) error {
	requiredCapacity := decimal.Zero
	if raw := ctx.QueryParam("requiredCapacity"); raw != "" {
		var err error
		if requiredCapacity, err = decimal.NewFromString(raw); err != nil {
			return writeBadRequest(ctx, "Invalid requiredCapacity")
		}
	}

	query := queries.NewGetAvailableWarehousesQuery(ctx.QueryParam("city"), requiredCapacity)

	warehouses, err := s.getAvailableWarehousesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]WarehouseResponse, len(warehouses))
	for i, w := range warehouses {
		response[i] = warehouseResponseFromQuery(w)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWarehouse handles GET /api/v1/warehouses/:warehouseId.
func (s *Server) GetWarehouse(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("warehouseId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetWarehouseQuery(warehouseID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getWarehouseHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, warehouseResponseFromQuery(*response))
}

// UpdateWarehouseUtilization handles PUT /api/v1/warehouses/:warehouseId/utilization.
func (s *Server) UpdateWarehouseUtilization(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("warehouseId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateWarehouseUtilizationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateWarehouseUtilizationCommand(warehouseID, req.CurrentUtilization)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateWarehouseUtilizationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateWarehouseStatus handles PUT /api/v1/warehouses/:warehouseId/status.
func (s *Server) UpdateWarehouseStatus(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("warehouseId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateWarehouseStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	status := warehouse.Status(strings.ToUpper(req.Status))
	cmd, err := commands.NewUpdateWarehouseStatusCommand(warehouseID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateWarehouseStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
