package controllers

import (
	"strconv"
	"strings"
	"time"

	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// refreshTokenTTL is how long a refresh token stays exchangeable.
const refreshTokenTTL = 30 * 24 * time.Hour

// AuthController handles login and refresh-token rotation
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController creates a new AuthController
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token being exchanged
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is the token pair returned on login and refresh
type AuthResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user,omitempty"`
}

// Login verifies credentials and issues an access/refresh token pair
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	var user models.User
	if err := ac.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Invalid email or password",
		})
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Invalid email or password",
		})
	}

	if !user.IsActive {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Account is deactivated",
		})
	}

	return ac.issueTokens(c, &user, "Login successful")
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. A revoked or expired token is rejected.
func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	token, err := ac.lookupRefreshToken(req.RefreshToken)
	if err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Invalid refresh token",
		})
	}

	var user models.User
	if err := ac.DB.First(&user, token.UserID).Error; err != nil || !user.IsActive {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Invalid refresh token",
		})
	}

	// Rotation: the old token can never be exchanged again
	if err := ac.DB.Model(token).Update("revoked", true).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Failed to rotate refresh token",
		})
	}

	return ac.issueTokens(c, &user, "Token refreshed")
}

// Logout revokes the presented refresh token
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	var req RefreshRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	if token, err := ac.lookupRefreshToken(req.RefreshToken); err == nil {
		ac.DB.Model(token).Update("revoked", true)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

// Me returns the authenticated user's profile
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(uint)

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error":   true,
			"message": "User not found",
		})
	}

	return c.JSON(user)
}

// issueTokens creates an access token and a new refresh-token row.
// The refresh token is returned as "<row id>.<opaque value>" so the row
// can be looked up directly; only a bcrypt hash of the value is stored.
func (ac *AuthController) issueTokens(c *fiber.Ctx, user *models.User, message string) error {
	accessToken, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Failed to create token",
		})
	}

	raw := uuid.NewString()
	hash, err := utils.HashPassword(raw)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Failed to create refresh token",
		})
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := ac.DB.Create(&refreshToken).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Failed to create refresh token",
		})
	}

	resp := AuthResponse{
		Success:      true,
		Message:      message,
		Token:        accessToken,
		RefreshToken: strconv.FormatUint(uint64(refreshToken.ID), 10) + "." + raw,
	}
	resp.User.ID = user.ID
	resp.User.Name = user.Name
	resp.User.Email = user.Email
	resp.User.Role = user.Role

	return c.JSON(resp)
}

// lookupRefreshToken resolves a presented "<id>.<value>" refresh token to
// a stored row that is unrevoked, unexpired, and hash-matches the value.
func (ac *AuthController) lookupRefreshToken(presented string) (*models.RefreshToken, error) {
	parts := strings.SplitN(presented, ".", 2)
	if len(parts) != 2 {
		return nil, gorm.ErrRecordNotFound
	}

	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var token models.RefreshToken
	if err := ac.DB.First(&token, uint(id)).Error; err != nil {
		return nil, err
	}

	if !token.Valid() || !utils.CheckPasswordHash(parts[1], token.TokenHash) {
		return nil, gorm.ErrRecordNotFound
	}

	return &token, nil
}
