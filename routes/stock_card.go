package routes

import (
	"gso-inventory-backend/controllers"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupStockCardRoutes configures the stock card route
func SetupStockCardRoutes(app *fiber.App, stockCardController *controllers.StockCardController) {
	app.Get("/api/stock-card/:itemId", utils.AuthMiddleware, stockCardController.GetStockCard)
}
