// Package http exposes the marketplace over a REST API built on Echo.
// Handlers translate requests into commands and queries, and core errors
// into HTTP status codes; no business rules live here.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server wires the HTTP routes to the application use cases.
type Server struct {
	upsertCartLineHandler   commands.UpsertCartLineCommandHandler
	removeCartLineHandler   commands.RemoveCartLineCommandHandler
	clearCartHandler        commands.ClearCartCommandHandler
	checkoutHandler         commands.CheckoutCommandHandler
	acceptOrderHandler      commands.AcceptOrderCommandHandler
	startDeliveryHandler    commands.StartDeliveryCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	rateOrderHandler        commands.RateOrderCommandHandler

	getCartHandler            queries.GetCartQueryHandler
	getOrderHistoryHandler    queries.GetOrderHistoryQueryHandler
	getOrderDetailsHandler    queries.GetOrderDetailsQueryHandler
	getOrderChatHandler       queries.GetOrderChatQueryHandler
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	getCourierOrdersHandler   queries.GetCourierOrdersQueryHandler
}

// NewServer creates an HTTP server with the required handlers.
func NewServer(
	upsertCartLineHandler commands.UpsertCartLineCommandHandler,
	removeCartLineHandler commands.RemoveCartLineCommandHandler,
	clearCartHandler commands.ClearCartCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	startDeliveryHandler commands.StartDeliveryCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	rateOrderHandler commands.RateOrderCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getOrderDetailsHandler queries.GetOrderDetailsQueryHandler,
	getOrderChatHandler queries.GetOrderChatQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getCourierOrdersHandler queries.GetCourierOrdersQueryHandler,
) *Server {
	return &Server{
		upsertCartLineHandler:     upsertCartLineHandler,
		removeCartLineHandler:     removeCartLineHandler,
		clearCartHandler:          clearCartHandler,
		checkoutHandler:           checkoutHandler,
		acceptOrderHandler:        acceptOrderHandler,
		startDeliveryHandler:      startDeliveryHandler,
		completeDeliveryHandler:   completeDeliveryHandler,
		cancelOrderHandler:        cancelOrderHandler,
		rateOrderHandler:          rateOrderHandler,
		getCartHandler:            getCartHandler,
		getOrderHistoryHandler:    getOrderHistoryHandler,
		getOrderDetailsHandler:    getOrderDetailsHandler,
		getOrderChatHandler:       getOrderChatHandler,
		getAvailableOrdersHandler: getAvailableOrdersHandler,
		getCourierOrdersHandler:   getCourierOrdersHandler,
	}
}

// RegisterRoutes attaches the API routes to the given group. The group is
// expected to carry AccountMiddleware.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.GET("/cart", s.GetCart)
	g.PUT("/cart/items/:productID", s.UpsertCartLine)
	g.DELETE("/cart/items/:productID", s.RemoveCartLine)
	g.DELETE("/cart", s.ClearCart)

	g.POST("/orders", s.Checkout)
	g.GET("/orders", s.GetOrderHistory)
	g.GET("/orders/:orderID", s.GetOrderDetails)
	g.POST("/orders/:orderID/cancel", s.CancelOrder)
	g.POST("/orders/:orderID/rating", s.RateOrder)
	g.GET("/orders/:orderID/chat", s.GetOrderChat)

	g.GET("/courier/orders/available", s.GetAvailableOrders)
	g.GET("/courier/orders", s.GetCourierOrders)
	g.POST("/courier/orders/:orderID/accept", s.AcceptOrder)
	g.POST("/courier/orders/:orderID/start", s.StartDelivery)
	g.POST("/courier/orders/:orderID/complete", s.CompleteDelivery)
}

// GetCart handles GET /cart - returns the customer's active cart.
func (s *Server) GetCart(ctx echo.Context) error {
	customer, err := s.customer(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetCartQuery(customer)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpsertCartLineRequest is the body of PUT /cart/items/:productID.
// Quantity zero removes the line.
type UpsertCartLineRequest struct {
	Quantity int `json:"quantity"`
}

// UpsertCartLine handles PUT /cart/items/:productID - sets a line quantity.
func (s *Server) UpsertCartLine(ctx echo.Context) error {
	customer, err := s.customer(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	productID, err := pathUUID(ctx, "productID")
	if err != nil {
		return s.fail(ctx, err)
	}

	var request UpsertCartLineRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewUpsertCartLineCommand(customer, productID, request.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.upsertCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartLine handles DELETE /cart/items/:productID.
func (s *Server) RemoveCartLine(ctx echo.Context) error {
	customer, err := s.customer(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	productID, err := pathUUID(ctx, "productID")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveCartLineCommand(customer, productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.removeCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClearCart handles DELETE /cart - removes every line from the active cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	customer, err := s.customer(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewClearCartCommand(customer)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.clearCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CheckoutRequest is the body of POST /orders.
type CheckoutRequest struct {
	Mode          string `json:"mode"`
	ReceiverName  string `json:"receiver_name"`
	ReceiverPhone string `json:"receiver_phone"`
	Address       string `json:"address"`
	Description   string `json:"description"`
}

// CheckoutResponse returns the id of the placed order.
type CheckoutResponse struct {
	ID string `json:"id"`
}

// Checkout handles POST /orders - places an order from the active cart.
func (s *Server) Checkout(ctx echo.Context) error {
	customer, err := s.customer(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var request CheckoutRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	mode, err := order.ModeFromString(request.Mode)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(customer, orderID, mode,
		request.ReceiverName, request.ReceiverPhone, request.Address, request.Description)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{ID: orderID.String()})
}

// GetOrderHistory handles GET /orders - the customer's orders, newest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	customer, err := s.customer(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(customer)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrderDetails handles GET /orders/:orderID - full order view for a participant.
func (s *Server) GetOrderDetails(ctx echo.Context) error {
	acc, err := s.account(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderDetailsQuery(acc.ID(), orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.getOrderDetailsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CancelOrder handles POST /orders/:orderID/cancel - cancels and refunds.
func (s *Server) CancelOrder(ctx echo.Context) error {
	customer, err := s.customer(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(customer, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RateOrderRequest is the body of POST /orders/:orderID/rating.
type RateOrderRequest struct {
	Rating int `json:"rating"`
}

// RateOrder handles POST /orders/:orderID/rating - rates a delivered order.
func (s *Server) RateOrder(ctx echo.Context) error {
	customer, err := s.customer(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.fail(ctx, err)
	}

	var request RateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewRateOrderCommand(customer, orderID, request.Rating)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.rateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderChat handles GET /orders/:orderID/chat - the delivery chat channel.
func (s *Server) GetOrderChat(ctx echo.Context) error {
	acc, err := s.account(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderChatQuery(acc.ID(), orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.getOrderChatHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAvailableOrders handles GET /courier/orders/available - claimable orders.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	courier, err := s.courier(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetAvailableOrdersQuery(courier)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetCourierOrders handles GET /courier/orders?scope=active|completed.
func (s *Server) GetCourierOrders(ctx echo.Context) error {
	courier, err := s.courier(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	scope := queries.CourierOrdersScope(ctx.QueryParam("scope"))
	query, err := queries.NewGetCourierOrdersQuery(courier, scope)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.getCourierOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// AcceptOrder handles POST /courier/orders/:orderID/accept - claims an order.
// A lost claim race returns 409.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	courier, err := s.courier(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(courier, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartDelivery handles POST /courier/orders/:orderID/start.
func (s *Server) StartDelivery(ctx echo.Context) error {
	courier, err := s.courier(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(courier, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.startDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /courier/orders/:orderID/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	courier, err := s.courier(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(courier, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status, body := errorResponse(err)
	return ctx.JSON(status, body)
}

func (s *Server) account(ctx echo.Context) (*account.Account, error) {
	acc, ok := requestAccount(ctx)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized)
	}
	return acc, nil
}

func (s *Server) customer(ctx echo.Context) (account.Customer, error) {
	acc, err := s.account(ctx)
	if err != nil {
		return account.Customer{}, err
	}
	return acc.AsCustomer()
}

func (s *Server) courier(ctx echo.Context) (account.Courier, error) {
	acc, err := s.account(ctx)
	if err != nil {
		return account.Courier{}, err
	}
	return acc.AsCourier()
}

// pathUUID parses a uuid path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}
