package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sla-mart/internal/services"
	"sla-mart/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (c *DashboardController) GetDashboard(ctx echo.Context) error {
	filter := parseReportFilter(ctx)
	c.logger.Debug("Запрос витрины", zap.Any("filters", filter))

	dashboard, err := c.dashboardService.GetDashboard(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dashboard, "Витрина успешно получена", http.StatusOK, dashboard.Total)
}
