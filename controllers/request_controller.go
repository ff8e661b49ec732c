package controllers

import (
	"time"

	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequestController handles department requisition requests
type RequestController struct {
	DB *gorm.DB
}

// NewRequestController creates a new RequestController
func NewRequestController(db *gorm.DB) *RequestController {
	return &RequestController{DB: db}
}

// RequestLine is one requested item in the create payload
type RequestLine struct {
	ItemID   uint   `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Purpose  string `json:"purpose"`
}

// CreateRequestRequest is the payload for filing a requisition
type CreateRequestRequest struct {
	Department  string        `json:"department" validate:"required,max=255"`
	RequestedBy string        `json:"requested_by" validate:"required,max=255"`
	RequestDate string        `json:"request_date" validate:"required"` // YYYY-MM-DD
	Remarks     string        `json:"remarks"`
	Items       []RequestLine `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest moves a request through its lifecycle
type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected fulfilled"`
	Remarks string `json:"remarks"`
}

// ListRequests returns all requisitions, newest first
func (rc *RequestController) ListRequests(c *fiber.Ctx) error {
	query := rc.DB.Preload("Items.Item").Order("request_date DESC, id DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.DepartmentRequest
	if err := query.Find(&requests).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to load requests",
		})
	}

	return c.JSON(requests)
}

// GetRequest returns one requisition with its lines
func (rc *RequestController) GetRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request id",
		})
	}

	var request models.DepartmentRequest
	if err := rc.DB.Preload("Items.Item").First(&request, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Request not found",
		})
	}

	return c.JSON(request)
}

// CreateRequest files a new requisition in the pending state
func (rc *RequestController) CreateRequest(c *fiber.Ctx) error {
	var req CreateRequestRequest

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

	requestDate, err := time.Parse("2006-01-02", req.RequestDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request date, expected YYYY-MM-DD",
		})
	}

	// All referenced items must exist before anything is written
	for _, line := range req.Items {
		var item models.Item
		if err := rc.DB.First(&item, line.ItemID).Error; err != nil {
			return c.Status(404).JSON(fiber.Map{
				"error":   true,
				"message": "Requested item not found",
			})
		}
	}

	request := models.DepartmentRequest{
		Department:  req.Department,
		RequestedBy: req.RequestedBy,
		RequestDate: requestDate,
		Status:      models.RequestPending,
		Remarks:     req.Remarks,
	}

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		for _, line := range req.Items {
			item := models.RequestItem{
				DepartmentRequestID: request.ID,
				ItemID:              line.ItemID,
				Quantity:            line.Quantity,
				Purpose:             line.Purpose,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to create request",
		})
	}

	rc.DB.Preload("Items.Item").First(&request, request.ID)
	return c.Status(201).JSON(request)
}

// UpdateStatus advances a requisition through its lifecycle. Transitions
// only move forward: pending → approved or rejected, approved → fulfilled.
func (rc *RequestController) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request id",
		})
	}

	var request models.DepartmentRequest
	if err := rc.DB.First(&request, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Request not found",
		})
	}

	var req UpdateStatusRequest
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

	if !request.CanTransitionTo(req.Status) {
		return c.Status(409).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid status transition from " + request.Status + " to " + req.Status,
		})
	}

	updates := map[string]interface{}{
		"status":     req.Status,
		"updated_at": time.Now(),
	}
	if req.Remarks != "" {
		updates["remarks"] = req.Remarks
	}

	if err := rc.DB.Model(&request).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to update request",
		})
	}

	rc.DB.Preload("Items.Item").First(&request, request.ID)
	return c.JSON(request)
}

// DeleteRequest removes a requisition that is still pending
func (rc *RequestController) DeleteRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request id",
		})
	}

	var request models.DepartmentRequest
	if err := rc.DB.First(&request, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "Request not found",
		})
	}

	if request.Status != models.RequestPending {
		return c.Status(409).JSON(fiber.Map{
			"error":   true,
			"message": "Only pending requests can be deleted",
		})
	}

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_request_id = ?", request.ID).Delete(&models.RequestItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&request).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to delete request",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Request deleted",
	})
}
