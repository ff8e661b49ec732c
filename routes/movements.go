package routes

import (
	"gso-inventory-backend/controllers"
	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupMovementRoutes configures the stock ledger routes
func SetupMovementRoutes(app *fiber.App, movementController *controllers.MovementController) {
	movements := app.Group("/api/movements", utils.AuthMiddleware)

	movements.Get("/", movementController.ListMovements) // GET /api/movements?type=&item_id=

	staff := utils.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleStaff)
	movements.Post("/receive", staff, movementController.Receive)
	movements.Post("/issue", staff, movementController.Issue)
	movements.Delete("/:id", staff, movementController.DeleteMovement)
}
