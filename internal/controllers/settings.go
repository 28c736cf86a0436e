package controllers

import (
	"net/http"

	"workshop-system/internal/dto"
	"workshop-system/internal/services"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SettingsController struct {
	settingsService services.SettingsServiceInterface
	logger          *zap.Logger
}

func NewSettingsController(settingsService services.SettingsServiceInterface, logger *zap.Logger) *SettingsController {
	return &SettingsController{settingsService: settingsService, logger: logger}
}

func (c *SettingsController) GetSettings(ctx echo.Context) error {
	settings, err := c.settingsService.GetSettings(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, settings, "Настройки успешно получены", http.StatusOK)
}

func (c *SettingsController) GetSetting(ctx echo.Context) error {
	key := ctx.Param("key")
	if key == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не указан ключ настройки", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}

	setting, err := c.settingsService.GetSetting(ctx.Request().Context(), key)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, setting, "Настройка успешно получена", http.StatusOK)
}

func (c *SettingsController) SetSetting(ctx echo.Context) error {
	key := ctx.Param("key")
	if key == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не указан ключ настройки", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}

	var payload dto.SetSettingDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.settingsService.SetSetting(ctx.Request().Context(), key, payload.Value); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.SettingDTO{Key: key, Value: payload.Value}, "Настройка успешно сохранена", http.StatusOK)
}
