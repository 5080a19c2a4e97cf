package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aslamtailor/storefront-api/internal/core/ports"
)

// DashboardHandler serves the aggregated back-office dashboard report.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Metrics handles GET /v1/dashboard/metrics.
//
// @Summary      Aggregated storefront metrics
// @Description  Income, order counts and cancellations bucketed by day, week,
// @Description  month and year, plus top products and top customers.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  ports.DashboardReport
// @Router       /v1/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c echo.Context) error {
	report, err := h.service.Report(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
