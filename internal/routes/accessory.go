package routes

import (
	"workshop-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAccessoryRouter(g *echo.Group, ctrl *controllers.AccessoryController) {
	g.GET("/accessories", ctrl.GetSuggestions)
	g.POST("/accessories", ctrl.AddSuggestion)
	g.DELETE("/accessories/:id", ctrl.RemoveSuggestion)
}
