package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
	"github.com/aslamtailor/storefront-api/internal/infrastructure/shiprocket"
)

// ShippingHandler exposes the courier relay endpoints consumed by the
// storefront checkout. The paths and error bodies predate the v1 API and are
// kept for compatibility with the deployed frontend.
type ShippingHandler struct {
	service ports.ShippingService
}

func NewShippingHandler(service ports.ShippingService) *ShippingHandler {
	return &ShippingHandler{service: service}
}

// relayError is the legacy error envelope of the relay endpoints.
type relayError struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Login handles POST /login-shiprocket.
//
// @Summary      Authenticate against the courier provider
// @Tags         shipping
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  relayError
// @Router       /login-shiprocket [post]
func (h *ShippingHandler) Login(c echo.Context) error {
	token, err := h.service.Login(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, relayError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}

// CreateOrder handles POST /create-order.
//
// @Summary      Relay an order to the courier provider
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        body  body      createShippingOrderRequest  true  "Order to relay"
// @Success      200   {object}  map[string]any  "Provider response, passed through"
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  relayError
// @Failure      500   {object}  relayError
// @Router       /create-order [post]
func (h *ShippingHandler) CreateOrder(c echo.Context) error {
	var req createShippingOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	raw, err := h.service.RelayOrder(c.Request().Context(), toShippingOrderInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRelay) {
			return c.JSON(http.StatusConflict, relayError{Message: "order already relayed to courier"})
		}
		return c.JSON(http.StatusInternalServerError, toRelayError("Failed to create shipping order", err))
	}

	return c.JSONBlob(http.StatusOK, raw)
}

// CheckCourier handles POST /check-courier.
//
// @Summary      Check courier serviceability for a route
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        body  body      checkCourierRequest  true  "Route and package details"
// @Success      200   {object}  map[string]any  "Provider response, passed through"
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  relayError
// @Router       /check-courier [post]
func (h *ShippingHandler) CheckCourier(c echo.Context) error {
	var req checkCourierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	raw, err := h.service.CheckCourier(c.Request().Context(), toServiceabilityInput(req))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, toRelayError("Failed to check courier serviceability", err))
	}

	return c.JSONBlob(http.StatusOK, raw)
}

// toRelayError maps relay failures onto the legacy envelope: provider error
// details are surfaced when available, otherwise the transport error text.
func toRelayError(message string, err error) relayError {
	var ue *shiprocket.UpstreamError
	if errors.As(err, &ue) {
		return relayError{Message: message, Details: ue.Detail()}
	}
	return relayError{Message: message, Details: err.Error()}
}
