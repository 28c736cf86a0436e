package routes

import (
	"workshop-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runSettingsRouter(g *echo.Group, ctrl *controllers.SettingsController) {
	g.GET("/settings", ctrl.GetSettings)
	g.GET("/settings/:key", ctrl.GetSetting)
	g.PUT("/settings/:key", ctrl.SetSetting)
}
