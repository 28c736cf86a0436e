package controllers

import (
	"context"
	"net/http"
	"strconv"

	"workshop-system/internal/dto"
	"workshop-system/internal/services"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SheetController struct {
	sheetService services.SheetServiceInterface
	logger       *zap.Logger
}

func NewSheetController(sheetService services.SheetServiceInterface, logger *zap.Logger) *SheetController {
	return &SheetController{sheetService: sheetService, logger: logger}
}

func (c *SheetController) GetSheets(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	sheets, total, err := c.sheetService.GetSheets(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, sheets, "Реестр квитанций успешно получен", http.StatusOK, total)
}

func (c *SheetController) FindSheet(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := c.sheetID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	sheet, err := c.sheetService.FetchCompleteSheet(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, sheet, "Квитанция успешно найдена", http.StatusOK)
}

func (c *SheetController) CreateSheet(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateSheetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	orderNumber, err := c.sheetService.CreateSheet(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx,
		map[string]any{"order_number": orderNumber},
		"Квитанция успешно создана", http.StatusCreated)
}

func (c *SheetController) UpdateSheet(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := c.sheetID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateOpenSheetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.sheetService.UpdateOpenSheet(reqCtx, id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Квитанция успешно обновлена", http.StatusOK)
}

func (c *SheetController) CloseSheet(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := c.sheetID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CloseSheetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.sheetService.CloseSheet(reqCtx, id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Квитанция успешно закрыта", http.StatusOK)
}

func (c *SheetController) ReviseOpenSheet(ctx echo.Context) error {
	return c.revise(ctx, c.sheetService.ReviseOpenSheet)
}

func (c *SheetController) ReviseClosedSheet(ctx echo.Context) error {
	return c.revise(ctx, c.sheetService.ReviseClosedSheet)
}

func (c *SheetController) revise(
	ctx echo.Context,
	fn func(reqCtx context.Context, previousID uint64, payload dto.ReviseSheetDTO) (string, error),
) error {
	reqCtx := ctx.Request().Context()
	id, err := c.sheetID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ReviseSheetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	orderNumber, err := fn(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx,
		map[string]any{"order_number": orderNumber},
		"Ревизия квитанции успешно создана", http.StatusCreated)
}

func (c *SheetController) sheetID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный ID",
			err,
			map[string]interface{}{"param": ctx.Param("id")},
		)
	}
	return id, nil
}
