package controllers

import (
	"sort"

	"gso-inventory-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardController serves the aggregate figures for the dashboard
type DashboardController struct {
	DB *gorm.DB
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetDashboardData returns inventory totals, low-stock items, recent
// movements, and open request/count counts. All value figures are
// computed from current quantities and unit costs, never read from
// stored aggregates.
func (dc *DashboardController) GetDashboardData(c *fiber.Ctx) error {
	var items []models.Item
	if err := dc.DB.Find(&items).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to load dashboard data",
		})
	}

	totalQuantity := 0
	totalValue := decimal.Zero
	lowStock := []ItemResponse{}

	for _, item := range items {
		totalQuantity += item.Quantity
		totalValue = totalValue.Add(item.TotalValue())
		if item.Quantity <= item.ReorderLevel {
			lowStock = append(lowStock, itemResponse(item))
		}
	}

	// Most urgent first: smallest quantity relative to its reorder level
	sort.SliceStable(lowStock, func(i, j int) bool {
		return ratio(lowStock[i].Item) < ratio(lowStock[j].Item)
	})

	var custodianCount int64
	dc.DB.Model(&models.Custodian{}).Count(&custodianCount)

	var pendingRequests int64
	dc.DB.Model(&models.DepartmentRequest{}).Where("status = ?", models.RequestPending).Count(&pendingRequests)

	var openCounts int64
	dc.DB.Model(&models.PhysicalCount{}).Where("status != ?", models.CountCompleted).Count(&openCounts)

	var recentMovements []models.StockMovement
	dc.DB.Preload("Item").Preload("Custodian").
		Order("date DESC, id DESC").
		Limit(10).
		Find(&recentMovements)

	return c.JSON(fiber.Map{
		"total_items":      len(items),
		"total_quantity":   totalQuantity,
		"total_value":      totalValue,
		"low_stock_count":  len(lowStock),
		"low_stock_items":  lowStock,
		"custodians":       custodianCount,
		"pending_requests": pendingRequests,
		"open_counts":      openCounts,
		"recent_movements": recentMovements,
	})
}

// ratio orders low-stock items by urgency. Items with a zero reorder
// level are already out of stock when listed here.
func ratio(item models.Item) float64 {
	if item.ReorderLevel == 0 {
		return 0
	}
	return float64(item.Quantity) / float64(item.ReorderLevel)
}
