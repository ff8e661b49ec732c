package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"gso-inventory-backend/controllers"
	"gso-inventory-backend/models"
	"gso-inventory-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupCustodianTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	routes.SetupCustodianRoutes(app, controllers.NewCustodianController(db))
	return app
}

func TestCreateCustodian(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	app := setupCustodianTestApp(db)

	tests := []struct {
		name           string
		request        controllers.CustodianRequest
		expectedStatus int
	}{
		{
			name:           "Valid custodian",
			request:        controllers.CustodianRequest{Name: "Maria Santos", Department: "Accounting", Email: "msantos@gso.local"},
			expectedStatus: 201,
		},
		{
			name:           "Missing department",
			request:        controllers.CustodianRequest{Name: "Maria Santos"},
			expectedStatus: 400,
		},
		{
			name:           "Bad email",
			request:        controllers.CustodianRequest{Name: "Maria Santos", Department: "Accounting", Email: "not-an-email"},
			expectedStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonData, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/api/custodians/", bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// Holdings are recomputed from the issued movements on every read, never
// stored on the custodian row.
func TestCustodianComputedHoldings(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "viewer@gso.local", models.RoleViewer)
	itemA := createTestItem(db, "OS-001", 100, 5, 245.50)
	itemB := createTestItem(db, "OS-002", 100, 5, 30)
	custodian := createTestCustodian(db, "Maria Santos", "Accounting")
	other := createTestCustodian(db, "Pedro Cruz", "Engineering")

	createTestMovement(db, itemA.ID, models.MovementIssued, 4, mustDate("2026-08-01"), "RIS-1", &custodian.ID)
	createTestMovement(db, itemB.ID, models.MovementIssued, 10, mustDate("2026-08-02"), "RIS-2", &custodian.ID)
	createTestMovement(db, itemA.ID, models.MovementIssued, 2, mustDate("2026-08-03"), "RIS-3", &other.ID)
	// Received rows never count toward holdings
	createTestMovement(db, itemA.ID, models.MovementReceived, 50, mustDate("2026-08-04"), "PO-1", nil)
	app := setupCustodianTestApp(db)

	req := httptest.NewRequest("GET", "/api/custodians/"+strconv.Itoa(int(custodian.ID)), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response controllers.CustodianResponse
	json.NewDecoder(resp.Body).Decode(&response)
	assert.Equal(t, 14, response.ItemsAssigned)
	// 4 × 245.50 + 10 × 30 = 1282.00
	assert.True(t, response.TotalValue.Equal(decimal.NewFromFloat(1282.00)))
}

func TestUpdateCustodian(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	custodian := createTestCustodian(db, "Maria Santos", "Accounting")
	app := setupCustodianTestApp(db)

	jsonData, _ := json.Marshal(controllers.CustodianRequest{
		Name: "Maria Santos-Reyes", Department: "Treasury",
	})
	req := httptest.NewRequest("PUT", "/api/custodians/"+strconv.Itoa(int(custodian.ID)), bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.Custodian
	db.First(&updated, custodian.ID)
	assert.Equal(t, "Maria Santos-Reyes", updated.Name)
	assert.Equal(t, "Treasury", updated.Department)
}

func TestCustodianWriteRequiresStaff(t *testing.T) {
	db := setupTestDB()
	_, viewerToken := createTestUser(db, "viewer@gso.local", models.RoleViewer)
	app := setupCustodianTestApp(db)

	jsonData, _ := json.Marshal(controllers.CustodianRequest{Name: "Maria Santos", Department: "Accounting"})
	req := httptest.NewRequest("POST", "/api/custodians/", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+viewerToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}
