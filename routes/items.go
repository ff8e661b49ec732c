package routes

import (
	"gso-inventory-backend/controllers"
	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupItemRoutes configures the supply catalog routes. Reads are open to
// every authenticated role; writes require staff or above.
func SetupItemRoutes(app *fiber.App, itemController *controllers.ItemController) {
	items := app.Group("/api/items", utils.AuthMiddleware)

	items.Get("/", itemController.ListItems)
	items.Get("/:id", itemController.GetItem)

	staff := utils.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleStaff)
	items.Post("/", staff, itemController.CreateItem)
	items.Put("/:id", staff, itemController.UpdateItem)
	items.Delete("/:id", staff, itemController.DeleteItem)
}
