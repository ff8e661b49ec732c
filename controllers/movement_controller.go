package controllers

import (
	"errors"
	"time"

	"gso-inventory-backend/models"
	"gso-inventory-backend/services"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MovementController handles the stock ledger: receiving, issuance, and
// movement corrections
type MovementController struct {
	DB    *gorm.DB
	stock *services.StockService
}

// NewMovementController creates a new MovementController
func NewMovementController(db *gorm.DB) *MovementController {
	return &MovementController{DB: db, stock: services.NewStockService(db)}
}

// ReceiveRequest is the payload for recording received stock
type ReceiveRequest struct {
	ItemID    uint   `json:"item_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required"` // YYYY-MM-DD
	Reference string `json:"reference" validate:"required,max=100"`
}

// IssueRequest is the payload for issuing stock to a custodian
type IssueRequest struct {
	ItemID      uint   `json:"item_id" validate:"required"`
	CustodianID uint   `json:"custodian_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required"` // YYYY-MM-DD
	Reference   string `json:"reference" validate:"required,max=100"` // RIS number
}

// ListMovements returns ledger rows, optionally filtered by type and item
func (mc *MovementController) ListMovements(c *fiber.Ctx) error {
	query := mc.DB.Preload("Item").Preload("Custodian").Order("date DESC, id DESC")

	if movementType := c.Query("type"); movementType != "" {
		query = query.Where("type = ?", movementType)
	}
	if itemID := c.QueryInt("item_id"); itemID > 0 {
		query = query.Where("item_id = ?", itemID)
	}

	var movements []models.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to load movements",
		})
	}

	return c.JSON(movements)
}

// Receive records received stock and increases the item quantity
func (mc *MovementController) Receive(c *fiber.Ctx) error {
	var req ReceiveRequest

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

	date, err := parseMovementDate(req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid date, expected YYYY-MM-DD",
		})
	}

	movement, err := mc.stock.Receive(req.ItemID, req.Quantity, date, req.Reference)
	if err != nil {
		return mc.movementError(c, err)
	}

	return c.Status(201).JSON(movement)
}

// Issue records issued stock and decreases the item quantity
func (mc *MovementController) Issue(c *fiber.Ctx) error {
	var req IssueRequest

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

	date, err := parseMovementDate(req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid date, expected YYYY-MM-DD",
		})
	}

	movement, err := mc.stock.Issue(req.ItemID, req.CustodianID, req.Quantity, date, req.Reference)
	if err != nil {
		return mc.movementError(c, err)
	}

	return c.Status(201).JSON(movement)
}

// DeleteMovement removes a ledger row as a correction. The item quantity
// is not adjusted.
func (mc *MovementController) DeleteMovement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid movement id",
		})
	}

	if err := mc.stock.DeleteMovement(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"error":   true,
				"message": "Movement not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to delete movement",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Movement deleted",
	})
}

// movementError maps stock service errors to HTTP responses
func (mc *MovementController) movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrCustodianRequired):
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Item or custodian not found",
		})
	default:
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to record movement",
		})
	}
}

func parseMovementDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
