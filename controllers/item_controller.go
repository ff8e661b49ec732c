package controllers

import (
	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemController handles the supply catalog
type ItemController struct {
	DB *gorm.DB
}

// NewItemController creates a new ItemController
func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

// CreateItemRequest is the payload for adding a catalog item
type CreateItemRequest struct {
	ItemCode     string          `json:"item_code" validate:"required,max=50"`
	ItemName     string          `json:"item_name" validate:"required,max=255"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
	Location     string          `json:"location"`
}

// UpdateItemRequest is the partial-update payload. Nil fields are left
// unchanged; status is always recomputed, never accepted from the caller.
type UpdateItemRequest struct {
	ItemName     *string          `json:"item_name"`
	Category     *string          `json:"category"`
	Unit         *string          `json:"unit"`
	Quantity     *int             `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	ReorderLevel *int             `json:"reorder_level"`
	Location     *string          `json:"location"`
}

// ItemResponse is an item with its computed total value
type ItemResponse struct {
	models.Item
	TotalValue decimal.Decimal `json:"total_value"`
}

func itemResponse(item models.Item) ItemResponse {
	return ItemResponse{Item: item, TotalValue: item.TotalValue()}
}

// ListItems returns the full catalog
func (ic *ItemController) ListItems(c *fiber.Ctx) error {
	var items []models.Item
	if err := ic.DB.Order("item_code ASC").Find(&items).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to load items",
		})
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, itemResponse(item))
	}

	return c.JSON(responses)
}

// GetItem returns one item by id
func (ic *ItemController) GetItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid item id",
		})
	}

	var item models.Item
	if err := ic.DB.First(&item, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Item not found",
		})
	}

	return c.JSON(itemResponse(item))
}

// CreateItem adds a new catalog item
func (ic *ItemController) CreateItem(c *fiber.Ctx) error {
	var req CreateItemRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}

	if req.UnitCost.IsNegative() {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Unit cost cannot be negative",
		})
	}

	var existing models.Item
	if err := ic.DB.Where("item_code = ?", req.ItemCode).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{
			"error":   true,
			"message": "An item with this code already exists",
		})
	}

	item := models.Item{
		ItemCode:     req.ItemCode,
		ItemName:     req.ItemName,
		Category:     req.Category,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		ReorderLevel: req.ReorderLevel,
		Location:     req.Location,
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to create item",
		})
	}

	return c.Status(201).JSON(itemResponse(item))
}

// UpdateItem applies a partial update and recomputes the derived status
func (ic *ItemController) UpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid item id",
		})
	}

	var item models.Item
	if err := ic.DB.First(&item, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Item not found",
		})
	}

	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Quantity cannot be negative",
		})
	}
	if req.UnitCost != nil && req.UnitCost.IsNegative() {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Unit cost cannot be negative",
		})
	}
	if req.ReorderLevel != nil && *req.ReorderLevel < 0 {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Reorder level cannot be negative",
		})
	}

	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		item.UnitCost = *req.UnitCost
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.Location != nil {
		item.Location = *req.Location
	}

	item.Status = models.ComputeStatus(item.Quantity, item.ReorderLevel)

	if err := ic.DB.Save(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to update item",
		})
	}

	return c.JSON(itemResponse(item))
}

// DeleteItem removes a catalog item
func (ic *ItemController) DeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid item id",
		})
	}

	var item models.Item
	if err := ic.DB.First(&item, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Item not found",
		})
	}

	if err := ic.DB.Delete(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to delete item",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item deleted",
	})
}
