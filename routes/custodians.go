package routes

import (
	"gso-inventory-backend/controllers"
	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupCustodianRoutes configures custodian routes
func SetupCustodianRoutes(app *fiber.App, custodianController *controllers.CustodianController) {
	custodians := app.Group("/api/custodians", utils.AuthMiddleware)

	custodians.Get("/", custodianController.ListCustodians)
	custodians.Get("/:id", custodianController.GetCustodian)

	staff := utils.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleStaff)
	custodians.Post("/", staff, custodianController.CreateCustodian)
	custodians.Put("/:id", staff, custodianController.UpdateCustodian)
	custodians.Delete("/:id", staff, custodianController.DeleteCustodian)
}
