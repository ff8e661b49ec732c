package routes

import (
	"gso-inventory-backend/controllers"
	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupCountRoutes configures physical count routes. Counting is staff
// work; the reconcile repair pass is reserved for managers and admins.
func SetupCountRoutes(app *fiber.App, countController *controllers.CountController) {
	staff := utils.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleStaff)
	counts := app.Group("/api/physical-counts", utils.AuthMiddleware, staff)

	counts.Get("/", countController.ListCounts)
	counts.Post("/", countController.ScheduleCount)
	counts.Get("/:id", countController.GetCount)
	counts.Put("/:id/progress", countController.SaveProgress)
	counts.Post("/:id/finalize", countController.FinalizeCount)

	manager := utils.RequireRole(models.RoleAdmin, models.RoleManager)
	counts.Post("/:id/reconcile", manager, countController.ReconcileCount)
}
