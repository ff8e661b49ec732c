package controllers

import (
	"gso-inventory-backend/models"
	"gso-inventory-backend/services"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CustodianController handles custodian records. Items assigned and total
// value are recomputed from the issued movements on every read.
type CustodianController struct {
	DB    *gorm.DB
	stock *services.StockService
}

// NewCustodianController creates a new CustodianController
func NewCustodianController(db *gorm.DB) *CustodianController {
	return &CustodianController{DB: db, stock: services.NewStockService(db)}
}

// CustodianRequest is the create/update payload
type CustodianRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Department string `json:"department" validate:"required,max=255"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
}

// CustodianResponse is a custodian with the computed holdings
type CustodianResponse struct {
	models.Custodian
	models.CustodianSummary
}

// ListCustodians returns all custodians with computed holdings
func (cc *CustodianController) ListCustodians(c *fiber.Ctx) error {
	var custodians []models.Custodian
	if err := cc.DB.Order("name ASC").Find(&custodians).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to load custodians",
		})
	}

	responses := make([]CustodianResponse, 0, len(custodians))
	for _, custodian := range custodians {
		summary, err := cc.stock.CustodianSummary(custodian.ID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{
				"error":   true,
				"message": "Failed to compute custodian holdings",
			})
		}
		responses = append(responses, CustodianResponse{Custodian: custodian, CustodianSummary: summary})
	}

	return c.JSON(responses)
}

// GetCustodian returns one custodian with computed holdings
func (cc *CustodianController) GetCustodian(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid custodian id",
		})
	}

	var custodian models.Custodian
	if err := cc.DB.First(&custodian, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Custodian not found",
		})
	}

	summary, err := cc.stock.CustodianSummary(custodian.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to compute custodian holdings",
		})
	}

	return c.JSON(CustodianResponse{Custodian: custodian, CustodianSummary: summary})
}

// CreateCustodian adds a custodian
func (cc *CustodianController) CreateCustodian(c *fiber.Ctx) error {
	var req CustodianRequest

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

	custodian := models.Custodian{
		Name:       req.Name,
		Department: req.Department,
		Email:      req.Email,
		Phone:      req.Phone,
	}

	if err := cc.DB.Create(&custodian).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to create custodian",
		})
	}

	return c.Status(201).JSON(custodian)
}

// UpdateCustodian updates a custodian's contact fields
func (cc *CustodianController) UpdateCustodian(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid custodian id",
		})
	}

	var custodian models.Custodian
	if err := cc.DB.First(&custodian, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Custodian not found",
		})
	}

	var req CustodianRequest
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

	custodian.Name = req.Name
	custodian.Department = req.Department
	custodian.Email = req.Email
	custodian.Phone = req.Phone

	if err := cc.DB.Save(&custodian).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to update custodian",
		})
	}

	return c.JSON(custodian)
}

// DeleteCustodian removes a custodian
func (cc *CustodianController) DeleteCustodian(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid custodian id",
		})
	}

	var custodian models.Custodian
	if err := cc.DB.First(&custodian, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Custodian not found",
		})
	}

	if err := cc.DB.Delete(&custodian).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to delete custodian",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Custodian deleted",
	})
}
