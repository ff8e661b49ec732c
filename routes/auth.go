package routes

import (
	"gso-inventory-backend/controllers"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes configures authentication routes
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/api/auth")

	auth.Post("/login", authController.Login)     // POST /api/auth/login
	auth.Post("/refresh", authController.Refresh) // POST /api/auth/refresh - rotate refresh token
	auth.Post("/logout", authController.Logout)   // POST /api/auth/logout - revoke refresh token
	auth.Get("/me", utils.AuthMiddleware, authController.Me)
}
