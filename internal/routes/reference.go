package routes

import (
	"workshop-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runReferenceRouter(g *echo.Group, ctrl *controllers.ReferenceController) {
	g.GET("/manufacturers", ctrl.GetManufacturers)
	g.GET("/categories", ctrl.GetCategories)
	g.GET("/models", ctrl.GetModels)
}
