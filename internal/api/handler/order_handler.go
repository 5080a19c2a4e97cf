package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for storefront orders.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /v1/orders.
//
// @Summary      Record a storefront order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order to record"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	order, err := h.service.Create(c.Request().Context(), toCreateOrderInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// Get handles GET /v1/orders/:id.
//
// @Summary      Fetch a single order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// List handles GET /v1/orders.
//
// @Summary      List orders, newest first
// @Tags         orders
// @Produce      json
// @Success      200  {object}  listOrdersResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listOrdersResponse{Data: orders, Total: len(orders)})
}

// UpdateStatus handles PUT /v1/orders/:id/status.
//
// @Summary      Advance an order through its lifecycle
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Order ID"
// @Param        body  body      updateOrderStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}
