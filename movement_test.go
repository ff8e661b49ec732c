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
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupMovementTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	routes.SetupMovementRoutes(app, controllers.NewMovementController(db))
	return app
}

func TestReceiveStock(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	item := createTestItem(db, "OS-001", 3, 5, 100)
	app := setupMovementTestApp(db)

	jsonData, _ := json.Marshal(controllers.ReceiveRequest{
		ItemID: item.ID, Quantity: 20, Date: "2026-08-01", Reference: "PO-2026-014",
	})
	req := httptest.NewRequest("POST", "/api/movements/receive", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var movement models.StockMovement
	json.NewDecoder(resp.Body).Decode(&movement)
	assert.Equal(t, models.MovementReceived, movement.Type)
	assert.Equal(t, 20, movement.Quantity)

	// The registry is updated and the status leaves Low Stock
	var updated models.Item
	db.First(&updated, item.ID)
	assert.Equal(t, 23, updated.Quantity)
	assert.Equal(t, models.StatusInStock, updated.Status)
}

func TestReceiveRejectsBadInput(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	item := createTestItem(db, "OS-001", 3, 5, 100)
	app := setupMovementTestApp(db)

	tests := []struct {
		name           string
		request        controllers.ReceiveRequest
		expectedStatus int
	}{
		{"Zero quantity", controllers.ReceiveRequest{ItemID: item.ID, Quantity: 0, Date: "2026-08-01", Reference: "PO-1"}, 400},
		{"Negative quantity", controllers.ReceiveRequest{ItemID: item.ID, Quantity: -5, Date: "2026-08-01", Reference: "PO-1"}, 400},
		{"Bad date", controllers.ReceiveRequest{ItemID: item.ID, Quantity: 5, Date: "01/08/2026", Reference: "PO-1"}, 400},
		{"Unknown item", controllers.ReceiveRequest{ItemID: 9999, Quantity: 5, Date: "2026-08-01", Reference: "PO-1"}, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonData, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/api/movements/receive", bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	// None of the rejected requests touched the registry or the ledger
	var updated models.Item
	db.First(&updated, item.ID)
	assert.Equal(t, 3, updated.Quantity)

	var count int64
	db.Model(&models.StockMovement{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestIssueStock(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	item := createTestItem(db, "OS-001", 20, 5, 100)
	custodian := createTestCustodian(db, "Maria Santos", "Accounting")
	app := setupMovementTestApp(db)

	jsonData, _ := json.Marshal(controllers.IssueRequest{
		ItemID: item.ID, CustodianID: custodian.ID, Quantity: 15, Date: "2026-08-02", Reference: "RIS-2026-033",
	})
	req := httptest.NewRequest("POST", "/api/movements/issue", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var movement models.StockMovement
	json.NewDecoder(resp.Body).Decode(&movement)
	assert.Equal(t, models.MovementIssued, movement.Type)
	assert.NotNil(t, movement.CustodianID)
	assert.Equal(t, custodian.ID, *movement.CustodianID)

	// Quantity drops to the reorder level, so the status becomes Low Stock
	var updated models.Item
	db.First(&updated, item.ID)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, models.StatusLowStock, updated.Status)
}

func TestIssueInsufficientStock(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	item := createTestItem(db, "OS-001", 8, 5, 100)
	custodian := createTestCustodian(db, "Maria Santos", "Accounting")
	app := setupMovementTestApp(db)

	jsonData, _ := json.Marshal(controllers.IssueRequest{
		ItemID: item.ID, CustodianID: custodian.ID, Quantity: 9, Date: "2026-08-02", Reference: "RIS-2026-034",
	})
	req := httptest.NewRequest("POST", "/api/movements/issue", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	// The rejection happened before any write: no ledger row, quantity intact
	var count int64
	db.Model(&models.StockMovement{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var updated models.Item
	db.First(&updated, item.ID)
	assert.Equal(t, 8, updated.Quantity)
}

func TestIssueToExactBalance(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	item := createTestItem(db, "OS-001", 8, 5, 100)
	custodian := createTestCustodian(db, "Maria Santos", "Accounting")
	app := setupMovementTestApp(db)

	jsonData, _ := json.Marshal(controllers.IssueRequest{
		ItemID: item.ID, CustodianID: custodian.ID, Quantity: 8, Date: "2026-08-02", Reference: "RIS-2026-035",
	})
	req := httptest.NewRequest("POST", "/api/movements/issue", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var updated models.Item
	db.First(&updated, item.ID)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, models.StatusOutOfStock, updated.Status)
}

func TestIssueRequiresCustodian(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	item := createTestItem(db, "OS-001", 8, 5, 100)
	app := setupMovementTestApp(db)

	// Missing custodian fails validation
	jsonData, _ := json.Marshal(map[string]interface{}{
		"item_id": item.ID, "quantity": 2, "date": "2026-08-02", "reference": "RIS-1",
	})
	req := httptest.NewRequest("POST", "/api/movements/issue", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	// An unknown custodian is a 404
	jsonData, _ = json.Marshal(controllers.IssueRequest{
		ItemID: item.ID, CustodianID: 9999, Quantity: 2, Date: "2026-08-02", Reference: "RIS-1",
	})
	req = httptest.NewRequest("POST", "/api/movements/issue", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteMovementLeavesQuantity(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "staff@gso.local", models.RoleStaff)
	item := createTestItem(db, "OS-001", 3, 5, 100)
	app := setupMovementTestApp(db)

	// Receive through the API so item quantity moves to 23
	jsonData, _ := json.Marshal(controllers.ReceiveRequest{
		ItemID: item.ID, Quantity: 20, Date: "2026-08-01", Reference: "PO-2026-014",
	})
	req := httptest.NewRequest("POST", "/api/movements/receive", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req)

	var movement models.StockMovement
	json.NewDecoder(resp.Body).Decode(&movement)

	// Deleting the movement is a ledger correction only
	req = httptest.NewRequest("DELETE", "/api/movements/"+strconv.Itoa(int(movement.ID)), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var count int64
	db.Model(&models.StockMovement{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var updated models.Item
	db.First(&updated, item.ID)
	assert.Equal(t, 23, updated.Quantity)
}

func TestListMovementsFilters(t *testing.T) {
	db := setupTestDB()
	_, token := createTestUser(db, "viewer@gso.local", models.RoleViewer)
	itemA := createTestItem(db, "OS-001", 10, 5, 100)
	itemB := createTestItem(db, "OS-002", 10, 5, 50)
	custodian := createTestCustodian(db, "Maria Santos", "Accounting")
	createTestMovement(db, itemA.ID, models.MovementReceived, 10, mustDate("2026-08-01"), "PO-1", nil)
	createTestMovement(db, itemA.ID, models.MovementIssued, 4, mustDate("2026-08-02"), "RIS-1", &custodian.ID)
	createTestMovement(db, itemB.ID, models.MovementReceived, 10, mustDate("2026-08-03"), "PO-2", nil)
	app := setupMovementTestApp(db)

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"All movements", "", 3},
		{"By type", "?type=received", 2},
		{"By item", "?item_id=" + strconv.Itoa(int(itemA.ID)), 2},
		{"By type and item", "?type=issued&item_id=" + strconv.Itoa(int(itemA.ID)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/movements/"+tt.query, nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)

			var movements []models.StockMovement
			json.NewDecoder(resp.Body).Decode(&movements)
			assert.Len(t, movements, tt.expected)
		})
	}
}
