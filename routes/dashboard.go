package routes

import (
	"gso-inventory-backend/controllers"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes configures the dashboard route
func SetupDashboardRoutes(app *fiber.App, dashboardController *controllers.DashboardController) {
	app.Get("/api/dashboard", utils.AuthMiddleware, dashboardController.GetDashboardData)
}
