package controllers

import (
	"net/http"

	"workshop-system/internal/services"
	"workshop-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReferenceController struct {
	referenceService services.ReferenceServiceInterface
	logger           *zap.Logger
}

func NewReferenceController(referenceService services.ReferenceServiceInterface, logger *zap.Logger) *ReferenceController {
	return &ReferenceController{referenceService: referenceService, logger: logger}
}

func (c *ReferenceController) GetManufacturers(ctx echo.Context) error {
	list, err := c.referenceService.GetManufacturers(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Список производителей успешно получен", http.StatusOK)
}

func (c *ReferenceController) GetCategories(ctx echo.Context) error {
	list, err := c.referenceService.GetCategories(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Список категорий успешно получен", http.StatusOK)
}

func (c *ReferenceController) GetModels(ctx echo.Context) error {
	list, err := c.referenceService.GetModels(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Список моделей успешно получен", http.StatusOK)
}
