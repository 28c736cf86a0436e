package routes

import (
	"workshop-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runSheetRouter(g *echo.Group, ctrl *controllers.SheetController) {
	g.GET("/sheets", ctrl.GetSheets)
	g.GET("/sheets/:id", ctrl.FindSheet)
	g.POST("/sheets", ctrl.CreateSheet)
	g.PUT("/sheets/:id", ctrl.UpdateSheet)
	g.POST("/sheets/:id/close", ctrl.CloseSheet)
	g.POST("/sheets/:id/revise", ctrl.ReviseOpenSheet)
	g.POST("/sheets/:id/revise-closed", ctrl.ReviseClosedSheet)
}
