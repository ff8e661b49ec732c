package controllers

import (
	"errors"

	"gso-inventory-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StockCardController serves the per-item ledger replay
type StockCardController struct {
	DB    *gorm.DB
	cards *services.StockCardService
}

// NewStockCardController creates a new StockCardController
func NewStockCardController(db *gorm.DB) *StockCardController {
	return &StockCardController{DB: db, cards: services.NewStockCardService(db)}
}

// GetStockCard returns the stock card for one item
func (sc *StockCardController) GetStockCard(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid item id",
		})
	}

	card, err := sc.cards.GetStockCard(uint(itemID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"error":   true,
				"message": "Item not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to build stock card",
		})
	}

	return c.JSON(card)
}
