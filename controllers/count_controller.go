package controllers

import (
	"errors"
	"time"

	"gso-inventory-backend/services"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CountController handles physical count sessions and their
// reconciliation against the item registry
type CountController struct {
	DB     *gorm.DB
	counts *services.CountService
}

// NewCountController creates a new CountController
func NewCountController(db *gorm.DB) *CountController {
	return &CountController{DB: db, counts: services.NewCountService(db)}
}

// ScheduleCountRequest is the payload for scheduling a count
type ScheduleCountRequest struct {
	CountDate string `json:"count_date" validate:"required"` // YYYY-MM-DD
	CountedBy string `json:"counted_by" validate:"required,max=255"`
	Location  string `json:"location" validate:"required,max=255"`
	Notes     string `json:"notes"`
}

// CountEntry is one submitted count line. A nil counted quantity means
// the field was left blank; an explicit zero is a real entry.
type CountEntry struct {
	ItemID          uint `json:"item_id" validate:"required"`
	CountedQuantity *int `json:"counted_quantity"`
}

// CountEntriesRequest carries the entered counts for save or finalize
type CountEntriesRequest struct {
	Entries []CountEntry `json:"entries"`
}

// ListCounts returns all count sessions
func (cc *CountController) ListCounts(c *fiber.Ctx) error {
	counts, err := cc.counts.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to load physical counts",
		})
	}
	return c.JSON(counts)
}

// GetCount returns one count session with its lines
func (cc *CountController) GetCount(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid count id",
		})
	}

	count, err := cc.counts.Get(uint(id))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Physical count not found",
		})
	}

	return c.JSON(count)
}

// ScheduleCount creates a new session in the Scheduled state
func (cc *CountController) ScheduleCount(c *fiber.Ctx) error {
	var req ScheduleCountRequest

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

	countDate, err := time.Parse("2006-01-02", req.CountDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid count date, expected YYYY-MM-DD",
		})
	}

	count, err := cc.counts.Schedule(countDate, req.CountedBy, req.Location, req.Notes)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to schedule physical count",
		})
	}

	return c.Status(201).JSON(count)
}

// SaveProgress stores the entered counts without touching the registry
func (cc *CountController) SaveProgress(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid count id",
		})
	}

	entries, ok := cc.parseEntries(c)
	if !ok {
		return nil
	}

	count, err := cc.counts.SaveProgress(uint(id), entries)
	if err != nil {
		return cc.countError(c, err)
	}

	return c.JSON(count)
}

// FinalizeCount reconciles the entered counts against the registry,
// applies adjustments, and freezes the session
func (cc *CountController) FinalizeCount(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid count id",
		})
	}

	entries, ok := cc.parseEntries(c)
	if !ok {
		return nil
	}

	actedBy, _ := c.Locals("user_email").(string)

	result, err := cc.counts.Finalize(uint(id), entries, actedBy)
	if err != nil {
		return cc.countError(c, err)
	}

	return c.JSON(result)
}

// ReconcileCount re-applies a session's saved lines against the current
// registry to repair a partially applied finalize
func (cc *CountController) ReconcileCount(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid count id",
		})
	}

	result, err := cc.counts.Reconcile(uint(id))
	if err != nil {
		return cc.countError(c, err)
	}

	return c.JSON(result)
}

// parseEntries reads the entries payload, dropping blank lines and
// rejecting negative ones. Writes the error response itself on failure.
func (cc *CountController) parseEntries(c *fiber.Ctx) (map[uint]int, bool) {
	var req CountEntriesRequest
	if err := c.BodyParser(&req); err != nil {
		c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
		return nil, false
	}

	entries := make(map[uint]int, len(req.Entries))
	for _, entry := range req.Entries {
		if entry.CountedQuantity == nil {
			continue // blank input, not a zero count
		}
		if *entry.CountedQuantity < 0 {
			c.Status(400).JSON(fiber.Map{
				"error":   true,
				"message": services.ErrNegativeCount.Error(),
			})
			return nil, false
		}
		entries[entry.ItemID] = *entry.CountedQuantity
	}

	return entries, true
}

// countError maps count service errors to HTTP responses
func (cc *CountController) countError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCountCompleted):
		return c.Status(409).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrNegativeCount), errors.Is(err, services.ErrNoSavedEntries):
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Physical count not found",
		})
	default:
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to process physical count",
		})
	}
}
