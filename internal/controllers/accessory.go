package controllers

import (
	"net/http"
	"strconv"

	"workshop-system/internal/dto"
	"workshop-system/internal/services"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AccessoryController struct {
	accessoryService services.AccessoryServiceInterface
	logger           *zap.Logger
}

func NewAccessoryController(accessoryService services.AccessoryServiceInterface, logger *zap.Logger) *AccessoryController {
	return &AccessoryController{accessoryService: accessoryService, logger: logger}
}

func (c *AccessoryController) GetSuggestions(ctx echo.Context) error {
	suggestions, err := c.accessoryService.GetSuggestions(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, suggestions, "Список подсказок успешно получен", http.StatusOK)
}

func (c *AccessoryController) AddSuggestion(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateSuggestionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	suggestion, err := c.accessoryService.AddSuggestion(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, suggestion, "Подсказка успешно добавлена", http.StatusCreated)
}

func (c *AccessoryController) RemoveSuggestion(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			c.logger,
		)
	}

	if err := c.accessoryService.RemoveSuggestion(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Подсказка успешно удалена", http.StatusOK)
}
