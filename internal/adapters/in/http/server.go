// Package http exposes the delivery API over REST. Handlers are thin
// translators between the wire DTOs and application commands/queries; all
// business rules live in the core.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createCourierHandler   commands.CreateCourierCommandHandler
	addStoragePlaceHandler commands.AddStoragePlaceCommandHandler
	createOrderHandler     commands.CreateOrderCommandHandler

	getAllCouriersHandler       queries.GetAllCouriersQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	createCourierHandler commands.CreateCourierCommandHandler,
	addStoragePlaceHandler commands.AddStoragePlaceCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
) *Server {
	return &Server{
		createCourierHandler:        createCourierHandler,
		addStoragePlaceHandler:      addStoragePlaceHandler,
		createOrderHandler:          createOrderHandler,
		getAllCouriersHandler:       getAllCouriersHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/couriers", s.CreateCourier)
	api.POST("/couriers/:courierId/storage-places", s.AddStoragePlace)
	api.GET("/couriers", s.GetCouriers)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetOrders)
}

// Wire DTOs.

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type locationResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type newCourierRequest struct {
	Name  string `json:"name"`
	Speed int    `json:"speed"`
}

type newStoragePlaceRequest struct {
	Name        string `json:"name"`
	TotalVolume int    `json:"totalVolume"`
}

type newOrderRequest struct {
	BasketID string `json:"basketId"`
	Street   string `json:"street"`
	Volume   int    `json:"volume"`
}

type courierResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Location locationResponse `json:"location"`
}

type orderResponse struct {
	ID       string           `json:"id"`
	Location locationResponse `json:"location"`
}

// CreateCourier handles POST /api/v1/couriers.
// New couriers start at a random location on the grid.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var request newCourierRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewRandomLocation()
	if err != nil {
		return internalError(ctx, "failed to generate courier location")
	}

	cmd, err := commands.NewCreateCourierCommand(request.Name, request.Speed, location)
	if err != nil {
		return badRequest(ctx, "invalid courier data: "+err.Error())
	}

	if err = s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "failed to create courier")
	}

	return ctx.NoContent(http.StatusCreated)
}

// AddStoragePlace handles POST /api/v1/couriers/:courierId/storage-places.
func (s *Server) AddStoragePlace(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("courierId"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var request newStoragePlaceRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAddStoragePlaceCommand(courierID, request.Name, request.TotalVolume)
	if err != nil {
		return badRequest(ctx, "invalid storage place data: "+err.Error())
	}

	if err = s.addStoragePlaceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "failed to add storage place")
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	query := queries.NewGetAllCouriersQuery()

	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve couriers")
	}

	response := make([]courierResponse, len(couriers))
	for i, courier := range couriers {
		response[i] = courierResponse{
			ID:   courier.ID.String(),
			Name: courier.Name,
			Location: locationResponse{
				X: int(courier.Location.X()),
				Y: int(courier.Location.Y()),
			},
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
// The basket id becomes the order id, so retrying the request is safe.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request newOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	basketID, err := kernel.UUIDFromString(request.BasketID)
	if err != nil {
		return badRequest(ctx, "invalid basket id")
	}

	cmd, err := commands.NewCreateOrderCommand(basketID, request.Street, request.Volume)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "failed to create order")
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOrders handles GET /api/v1/orders/active.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve orders")
	}

	response := make([]orderResponse, len(orders))
	for i, order := range orders {
		response[i] = orderResponse{
			ID: order.ID.String(),
			Location: locationResponse{
				X: int(order.Location.X()),
				Y: int(order.Location.Y()),
			},
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
