package routes

import (
	"workshop-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runClientRouter(g *echo.Group, ctrl *controllers.ClientController) {
	g.GET("/clients", ctrl.GetClients)
	g.GET("/clients/:id", ctrl.FindClient)
	g.PUT("/clients/:id", ctrl.UpdateClient)
}
