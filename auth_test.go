package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"gso-inventory-backend/controllers"
	"gso-inventory-backend/models"
	"gso-inventory-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupAuthTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	return app
}

func TestLogin(t *testing.T) {
	db := setupTestDB()
	createTestUser(db, "staff@gso.local", models.RoleStaff)
	app := setupAuthTestApp(db)

	tests := []struct {
		name            string
		request         controllers.LoginRequest
		expectedStatus  int
		expectedSuccess bool
	}{
		{
			name:            "Successful login",
			request:         controllers.LoginRequest{Email: "staff@gso.local", Password: "password123"},
			expectedStatus:  200,
			expectedSuccess: true,
		},
		{
			name:            "Wrong password",
			request:         controllers.LoginRequest{Email: "staff@gso.local", Password: "wrong"},
			expectedStatus:  401,
			expectedSuccess: false,
		},
		{
			name:            "Unknown user",
			request:         controllers.LoginRequest{Email: "nobody@gso.local", Password: "password123"},
			expectedStatus:  401,
			expectedSuccess: false,
		},
		{
			name:            "Invalid email format",
			request:         controllers.LoginRequest{Email: "not-an-email", Password: "password123"},
			expectedStatus:  400,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonData, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var response controllers.AuthResponse
			err = json.NewDecoder(resp.Body).Decode(&response)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSuccess, response.Success)

			if tt.expectedSuccess {
				assert.NotEmpty(t, response.Token)
				assert.NotEmpty(t, response.RefreshToken)
				assert.Equal(t, models.RoleStaff, response.User.Role)
			}
		})
	}
}

func TestLoginInactiveUser(t *testing.T) {
	db := setupTestDB()
	user, _ := createTestUser(db, "inactive@gso.local", models.RoleStaff)
	db.Model(&user).Update("is_active", false)
	app := setupAuthTestApp(db)

	jsonData, _ := json.Marshal(controllers.LoginRequest{Email: "inactive@gso.local", Password: "password123"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRefreshRotation(t *testing.T) {
	db := setupTestDB()
	createTestUser(db, "staff@gso.local", models.RoleStaff)
	app := setupAuthTestApp(db)

	// Login to obtain the first refresh token
	jsonData, _ := json.Marshal(controllers.LoginRequest{Email: "staff@gso.local", Password: "password123"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)

	var loginResp controllers.AuthResponse
	json.NewDecoder(resp.Body).Decode(&loginResp)
	firstToken := loginResp.RefreshToken
	assert.NotEmpty(t, firstToken)

	// Exchange it
	jsonData, _ = json.Marshal(controllers.RefreshRequest{RefreshToken: firstToken})
	req = httptest.NewRequest("POST", "/api/auth/refresh", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var refreshResp controllers.AuthResponse
	json.NewDecoder(resp.Body).Decode(&refreshResp)
	assert.True(t, refreshResp.Success)
	assert.NotEmpty(t, refreshResp.RefreshToken)
	assert.NotEqual(t, firstToken, refreshResp.RefreshToken)

	// The rotated-out token must be rejected on replay
	jsonData, _ = json.Marshal(controllers.RefreshRequest{RefreshToken: firstToken})
	req = httptest.NewRequest("POST", "/api/auth/refresh", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db := setupTestDB()
	createTestUser(db, "staff@gso.local", models.RoleStaff)
	app := setupAuthTestApp(db)

	jsonData, _ := json.Marshal(controllers.LoginRequest{Email: "staff@gso.local", Password: "password123"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)

	var loginResp controllers.AuthResponse
	json.NewDecoder(resp.Body).Decode(&loginResp)

	jsonData, _ = json.Marshal(controllers.RefreshRequest{RefreshToken: loginResp.RefreshToken})
	req = httptest.NewRequest("POST", "/api/auth/logout", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// The revoked token can no longer be exchanged
	jsonData, _ = json.Marshal(controllers.RefreshRequest{RefreshToken: loginResp.RefreshToken})
	req = httptest.NewRequest("POST", "/api/auth/refresh", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestMe(t *testing.T) {
	db := setupTestDB()
	user, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	app := setupAuthTestApp(db)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var me models.User
	json.NewDecoder(resp.Body).Decode(&me)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, user.Email, me.Email)

	// No token
	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	resp, _ = app.Test(req)
	assert.Equal(t, 401, resp.StatusCode)
}
