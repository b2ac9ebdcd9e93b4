package http

import (
	"errors"
	"net/http"
	"time"

	"stitchfactory/internal/core/application/usecases/commands"
	"stitchfactory/internal/core/application/usecases/queries"
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/domain/model/unit"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP API of the fulfillment system.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	processOrderHandler     commands.ProcessOrderCommandHandler
	addInventoryUnitHandler commands.AddInventoryUnitCommandHandler

	// Query handlers
	getOpenOrdersHandler        queries.GetOpenOrdersQueryHandler
	getPendingProductionHandler queries.GetPendingProductionQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	processOrderHandler commands.ProcessOrderCommandHandler,
	addInventoryUnitHandler commands.AddInventoryUnitCommandHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getPendingProductionHandler queries.GetPendingProductionQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		processOrderHandler:         processOrderHandler,
		addInventoryUnitHandler:     addInventoryUnitHandler,
		getOpenOrdersHandler:        getOpenOrdersHandler,
		getPendingProductionHandler: getPendingProductionHandler,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.POST("/api/v1/orders/:id/process", s.ProcessOrder)
	e.GET("/api/v1/orders/open", s.GetOpenOrders)
	e.POST("/api/v1/units", s.AddInventoryUnit)
	e.GET("/api/v1/production-requests", s.GetPendingProduction)
}

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one requested variant with its quantity.
type NewOrderItem struct {
	Sku      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// NewOrder is the request body for order creation.
type NewOrder struct {
	ID    string         `json:"id"`
	Items []NewOrderItem `json:"items"`
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(newOrder.ID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	items := make([]commands.OrderItemInput, len(newOrder.Items))
	for i, item := range newOrder.Items {
		items[i] = commands.OrderItemInput{SkuCode: item.Sku, Quantity: item.Quantity}
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, commands.ErrOrderAlreadyExists) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order already exists",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.NoContent(http.StatusCreated)
}

// LineItemOutcome is the per-item result of an allocation pass.
type LineItemOutcome struct {
	LineItemID string  `json:"lineItemId"`
	Outcome    string  `json:"outcome"`
	UnitID     *string `json:"unitId,omitempty"`
	Error      *string `json:"error,omitempty"`
}

// ProcessOrderResponse reports the outcome of an allocation pass.
type ProcessOrderResponse struct {
	Success     bool              `json:"success"`
	OrderStatus string            `json:"orderStatus"`
	LineItems   []LineItemOutcome `json:"lineItems"`
}

// ProcessOrder handles POST /api/v1/orders/:id/process - runs an allocation
// pass over the order's line items.
func (s *Server) ProcessOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	cmd, err := commands.NewProcessOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	result, err := s.processOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrOrderNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to process order",
		})
	}

	response := ProcessOrderResponse{
		Success:     result.Success,
		OrderStatus: result.OrderStatus.String(),
		LineItems:   make([]LineItemOutcome, len(result.LineItemResults)),
	}
	for i, r := range result.LineItemResults {
		response.LineItems[i] = lineItemOutcome(r)
	}

	return ctx.JSON(http.StatusOK, response)
}

func lineItemOutcome(r commands.LineItemResult) LineItemOutcome {
	out := LineItemOutcome{LineItemID: r.LineItemID.String()}

	switch outcome := r.Outcome.(type) {
	case commands.DirectAssignment:
		unitID := outcome.UnitID.String()
		out.Outcome = "assigned"
		out.UnitID = &unitID
	case commands.UniversalAssignment:
		unitID := outcome.UnitID.String()
		out.Outcome = "assignedUniversal"
		out.UnitID = &unitID
	case commands.QueuedForProduction:
		out.Outcome = "queuedForProduction"
	case commands.Failed:
		msg := outcome.Err.Error()
		out.Outcome = "failed"
		out.Error = &msg
	}

	return out
}

// NewInventoryUnit is the request body for inventory intake.
type NewInventoryUnit struct {
	ID       string `json:"id"`
	Sku      string `json:"sku"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

// AddInventoryUnit handles POST /api/v1/units - registers a physical unit,
// either on the shelf or scheduled on the production line.
func (s *Server) AddInventoryUnit(ctx echo.Context) error {
	var newUnit NewInventoryUnit
	if err := ctx.Bind(&newUnit); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	unitID, err := kernel.UUIDFromString(newUnit.ID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid unit id: " + err.Error(),
		})
	}

	var primaryStatus unit.PrimaryStatus
	switch newUnit.Status {
	case "STOCK":
		primaryStatus = unit.Stock
	case "PRODUCTION":
		primaryStatus = unit.Production
	default:
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Status must be STOCK or PRODUCTION",
		})
	}

	cmd, err := commands.NewAddInventoryUnitCommand(unitID, newUnit.Sku, primaryStatus, newUnit.Location)
	if err != nil {
		if errors.Is(err, sku.ErrMalformedSku) {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Malformed sku: " + err.Error(),
			})
		}
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid unit data: " + err.Error(),
		})
	}

	if handleErr := s.addInventoryUnitHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to add inventory unit",
		})
	}

	return ctx.NoContent(http.StatusCreated)
}

// OpenOrderLineItem is the allocation state of one line item.
type OpenOrderLineItem struct {
	ID               string  `json:"id"`
	Sku              string  `json:"sku"`
	Status           string  `json:"status"`
	AssignedUnitID   *string `json:"assignedUnitId,omitempty"`
	WaitlistPosition *int64  `json:"waitlistPosition,omitempty"`
}

// OpenOrder is one order that is not fully fulfilled yet.
type OpenOrder struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	LineItems []OpenOrderLineItem `json:"lineItems"`
}

// GetOpenOrders handles GET /api/v1/orders/open - retrieves all orders with
// line items not yet hard-assigned to a unit.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve open orders",
		})
	}

	response := make([]OpenOrder, len(orders))
	for i, o := range orders {
		lineItems := make([]OpenOrderLineItem, len(o.LineItems))
		for j, li := range o.LineItems {
			item := OpenOrderLineItem{
				ID:               li.ID.String(),
				Sku:              li.Sku,
				Status:           li.Status,
				WaitlistPosition: li.WaitlistPosition,
			}
			if li.AssignedUnitID != nil {
				unitID := li.AssignedUnitID.String()
				item.AssignedUnitID = &unitID
			}
			lineItems[j] = item
		}

		response[i] = OpenOrder{
			ID:        o.ID.String(),
			Status:    o.Status,
			LineItems: lineItems,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ProductionRequest is one pending manufacturing request.
type ProductionRequest struct {
	ID         string `json:"id"`
	Sku        string `json:"sku"`
	Quantity   int    `json:"quantity"`
	OrderCount int    `json:"orderCount"`
	CreatedAt  string `json:"createdAt"`
}

// GetPendingProduction handles GET /api/v1/production-requests - retrieves
// all pending manufacturing demand, oldest first.
func (s *Server) GetPendingProduction(ctx echo.Context) error {
	query := queries.NewGetPendingProductionQuery()

	requests, err := s.getPendingProductionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve production requests",
		})
	}

	response := make([]ProductionRequest, len(requests))
	for i, r := range requests {
		response[i] = ProductionRequest{
			ID:         r.ID.String(),
			Sku:        r.Sku,
			Quantity:   r.Quantity,
			OrderCount: r.OrderCount,
			CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
