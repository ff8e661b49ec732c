package controllers

import (
	"strings"
	"time"

	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController handles account and role administration
type UserController struct {
	DB *gorm.DB
}

// NewUserController creates a new UserController
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// CreateUserRequest is the payload for provisioning an account
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"required,oneof=admin manager staff viewer"`
	Department string `json:"department"`
}

// UpdateRoleRequest changes an account's role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager staff viewer"`
}

// UpdateUserRequest activates/deactivates an account or edits its profile
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	IsActive   *bool   `json:"is_active"`
}

// ListUsers returns all accounts
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("name ASC").Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to load users",
		})
	}
	return c.JSON(users)
}

// CreateUser provisions a new account
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest

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

	var existing models.User
	if err := uc.DB.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{
			"error":   true,
			"message": "A user with this email already exists",
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to create user",
		})
	}

	user := models.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		Department:   req.Department,
		IsActive:     true,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to create user",
		})
	}

	return c.Status(201).JSON(user)
}

// UpdateRole changes an account's role
func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid user id",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "User not found",
		})
	}

	var req UpdateRoleRequest
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

	if err := uc.DB.Model(&user).Updates(map[string]interface{}{
		"role":       req.Role,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to update role",
		})
	}

	user.Role = req.Role
	return c.JSON(user)
}

// UpdateUser edits an account's profile or active flag
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid user id",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "User not found",
		})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to update user",
		})
	}

	return c.JSON(user)
}
