package main

import (
	"time"

	"gso-inventory-backend/models"
	"gso-inventory-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory test database with the full schema
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Item{},
		&models.StockMovement{},
		&models.Custodian{},
		&models.PhysicalCount{},
		&models.PhysicalCountItem{},
		&models.DepartmentRequest{},
		&models.RequestItem{},
	)
	return db
}

// createTestUser creates a user with the given role and returns it with a
// valid access token
func createTestUser(db *gorm.DB, email, role string) (models.User, string) {
	hash, _ := utils.HashPassword("password123")
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	db.Create(&user)

	token, _ := utils.GenerateJWT(user.ID, user.Email, user.Role)
	return user, token
}

// createTestItem creates a catalog item with the given stock figures
func createTestItem(db *gorm.DB, code string, quantity, reorderLevel int, unitCost float64) models.Item {
	item := models.Item{
		ItemCode:     code,
		ItemName:     "Test Item " + code,
		Category:     "Test",
		Unit:         "piece",
		Quantity:     quantity,
		UnitCost:     decimal.NewFromFloat(unitCost),
		ReorderLevel: reorderLevel,
		Location:     "Shelf T-1",
	}
	db.Create(&item)
	return item
}

// createTestCustodian creates a custodian record
func createTestCustodian(db *gorm.DB, name, department string) models.Custodian {
	custodian := models.Custodian{
		Name:       name,
		Department: department,
		Email:      "custodian@test.local",
		Phone:      "0917-000-0000",
	}
	db.Create(&custodian)
	return custodian
}

// mustDate parses a YYYY-MM-DD fixture date
func mustDate(value string) time.Time {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return date
}

// createTestMovement appends a ledger row directly, bypassing the stock
// service, for tests that need a raw ledger state
func createTestMovement(db *gorm.DB, itemID uint, movementType string, quantity int, date time.Time, reference string, custodianID *uint) models.StockMovement {
	movement := models.StockMovement{
		ItemID:      itemID,
		Type:        movementType,
		Quantity:    quantity,
		Date:        date,
		Reference:   reference,
		CustodianID: custodianID,
	}
	db.Create(&movement)
	return movement
}
