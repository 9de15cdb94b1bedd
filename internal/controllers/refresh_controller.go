package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sla-mart/internal/services"
	"sla-mart/pkg/utils"
)

type RefreshController struct {
	refreshService services.RefreshServiceInterface
	logger         *zap.Logger
}

func NewRefreshController(refreshService services.RefreshServiceInterface, logger *zap.Logger) *RefreshController {
	return &RefreshController{refreshService: refreshService, logger: logger}
}

// Refresh запускает полный пересчет витрины. Вызывается внешним
// планировщиком или администратором вручную.
func (c *RefreshController) Refresh(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("Пересчет витрины запрошен через API", zap.Int("user_id", userID))

	result, err := c.refreshService.Refresh(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, result, "Пересчет витрины выполнен", http.StatusOK)
}
