package main

import (
	"log"
	"os"
	"time"

	"gso-inventory-backend/controllers"
	"gso-inventory-backend/models"
	"gso-inventory-backend/routes"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	// Load .env when present; real deployments use environment variables
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Database initialization
	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migration
	db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.Item{}, &models.StockMovement{}, &models.Custodian{}, &models.PhysicalCount{}, &models.PhysicalCountItem{}, &models.DepartmentRequest{}, &models.RequestItem{})

	// Seed the default supply catalog and the initial admin account
	initDefaultCatalog(db)
	initDefaultAdmin(db)

	// Fiber application
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	// CORS for the SPA
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Controllers
	authController := controllers.NewAuthController(db)
	itemController := controllers.NewItemController(db)
	movementController := controllers.NewMovementController(db)
	stockCardController := controllers.NewStockCardController(db)
	custodianController := controllers.NewCustodianController(db)
	countController := controllers.NewCountController(db)
	requestController := controllers.NewRequestController(db)
	dashboardController := controllers.NewDashboardController(db)
	userController := controllers.NewUserController(db)

	// Routes
	routes.SetupAuthRoutes(app, authController)
	routes.SetupItemRoutes(app, itemController)
	routes.SetupMovementRoutes(app, movementController)
	routes.SetupStockCardRoutes(app, stockCardController)
	routes.SetupCustodianRoutes(app, custodianController)
	routes.SetupCountRoutes(app, countController)
	routes.SetupRequestRoutes(app, requestController)
	routes.SetupDashboardRoutes(app, dashboardController)
	routes.SetupUserRoutes(app, userController)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "GSO Inventory Backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// initDefaultCatalog seeds the base office-supply catalog on first boot
func initDefaultCatalog(db *gorm.DB) {
	defaultCatalog := []models.Item{
		{ItemCode: "OS-001", ItemName: "Bond Paper A4", Category: "Paper", Unit: "ream", UnitCost: decimal.NewFromFloat(245.00), ReorderLevel: 20, Location: "Shelf A-1"},
		{ItemCode: "OS-002", ItemName: "Bond Paper Legal", Category: "Paper", Unit: "ream", UnitCost: decimal.NewFromFloat(265.00), ReorderLevel: 20, Location: "Shelf A-1"},
		{ItemCode: "OS-003", ItemName: "Ballpen Black", Category: "Writing", Unit: "box", UnitCost: decimal.NewFromFloat(85.00), ReorderLevel: 10, Location: "Shelf B-2"},
		{ItemCode: "OS-004", ItemName: "Ballpen Blue", Category: "Writing", Unit: "box", UnitCost: decimal.NewFromFloat(85.00), ReorderLevel: 10, Location: "Shelf B-2"},
		{ItemCode: "OS-005", ItemName: "Pencil No. 2", Category: "Writing", Unit: "box", UnitCost: decimal.NewFromFloat(60.00), ReorderLevel: 5, Location: "Shelf B-2"},
		{ItemCode: "OS-006", ItemName: "Stapler Heavy Duty", Category: "Fasteners", Unit: "piece", UnitCost: decimal.NewFromFloat(320.00), ReorderLevel: 3, Location: "Shelf B-3"},
		{ItemCode: "OS-007", ItemName: "Staple Wire #35", Category: "Fasteners", Unit: "box", UnitCost: decimal.NewFromFloat(45.00), ReorderLevel: 10, Location: "Shelf B-3"},
		{ItemCode: "OS-008", ItemName: "Paper Clip Large", Category: "Fasteners", Unit: "box", UnitCost: decimal.NewFromFloat(25.00), ReorderLevel: 10, Location: "Shelf B-3"},
		{ItemCode: "OS-009", ItemName: "Folder Long Brown", Category: "Filing", Unit: "piece", UnitCost: decimal.NewFromFloat(8.50), ReorderLevel: 50, Location: "Shelf C-1"},
		{ItemCode: "OS-010", ItemName: "Expanding Envelope", Category: "Filing", Unit: "piece", UnitCost: decimal.NewFromFloat(15.00), ReorderLevel: 30, Location: "Shelf C-1"},
		{ItemCode: "OS-011", ItemName: "Record Book 500pp", Category: "Filing", Unit: "piece", UnitCost: decimal.NewFromFloat(145.00), ReorderLevel: 5, Location: "Shelf C-2"},
		{ItemCode: "OS-012", ItemName: "Correction Tape", Category: "Writing", Unit: "piece", UnitCost: decimal.NewFromFloat(35.00), ReorderLevel: 12, Location: "Shelf B-2"},
		{ItemCode: "OS-013", ItemName: "Printer Ink Black 003", Category: "Consumables", Unit: "bottle", UnitCost: decimal.NewFromFloat(295.00), ReorderLevel: 6, Location: "Cabinet D-1"},
		{ItemCode: "OS-014", ItemName: "Printer Ink Cyan 003", Category: "Consumables", Unit: "bottle", UnitCost: decimal.NewFromFloat(295.00), ReorderLevel: 4, Location: "Cabinet D-1"},
		{ItemCode: "OS-015", ItemName: "Alcohol 70% 500ml", Category: "Janitorial", Unit: "bottle", UnitCost: decimal.NewFromFloat(95.00), ReorderLevel: 12, Location: "Cabinet D-2"},
	}

	var count int64
	db.Model(&models.Item{}).Count(&count)

	if count == 0 {
		log.Println("Seeding default supply catalog...")
		for _, item := range defaultCatalog {
			if err := db.Create(&item).Error; err != nil {
				log.Printf("Failed to seed item '%s': %v", item.ItemName, err)
			}
		}
		log.Printf("Default supply catalog seeded (%d items)", len(defaultCatalog))
	} else {
		log.Printf("Supply catalog already present (%d items)", count)
	}
}

// initDefaultAdmin creates the initial admin account when no users exist.
// The password comes from ADMIN_PASSWORD, defaulting for development.
func initDefaultAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         "GSO Administrator",
		Email:        "admin@gso.local",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Department:   "General Services Office",
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to create admin account: %v", err)
		return
	}

	log.Println("Created default admin account admin@gso.local")
}
