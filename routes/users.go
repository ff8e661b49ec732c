package routes

import (
	"gso-inventory-backend/controllers"
	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes configures account administration routes (admin only)
func SetupUserRoutes(app *fiber.App, userController *controllers.UserController) {
	admin := utils.RequireRole(models.RoleAdmin)
	users := app.Group("/api/users", utils.AuthMiddleware, admin)

	users.Get("/", userController.ListUsers)
	users.Post("/", userController.CreateUser)
	users.Put("/:id/role", userController.UpdateRole)
	users.Put("/:id", userController.UpdateUser)
}
