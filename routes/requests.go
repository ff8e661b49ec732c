package routes

import (
	"gso-inventory-backend/controllers"
	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupRequestRoutes configures department requisition routes
func SetupRequestRoutes(app *fiber.App, requestController *controllers.RequestController) {
	manager := utils.RequireRole(models.RoleAdmin, models.RoleManager)
	requests := app.Group("/api/requests", utils.AuthMiddleware, manager)

	requests.Get("/", requestController.ListRequests) // GET /api/requests?status=
	requests.Get("/:id", requestController.GetRequest)
	requests.Post("/", requestController.CreateRequest)
	requests.Put("/:id/status", requestController.UpdateStatus)
	requests.Delete("/:id", requestController.DeleteRequest)
}
