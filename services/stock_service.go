package services

import (
	"errors"
	"time"

	"gso-inventory-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Validation errors surfaced to callers before any write happens.
var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock for the requested issuance")
	ErrCustodianRequired = errors.New("custodian is required for issuance")
)

// StockService records receiving and issuance movements and keeps the
// item registry in step with them. The ledger is append-only; the only
// mutation of an existing movement is deletion, used as a correction.
type StockService struct {
	db *gorm.DB
}

// NewStockService creates a new stock service
func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// Receive appends a received movement and increases the item quantity.
func (s *StockService) Receive(itemID uint, quantity int, date time.Time, reference string) (*models.StockMovement, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var item models.Item
	if err := s.db.First(&item, itemID).Error; err != nil {
		return nil, err
	}

	movement := models.StockMovement{
		ItemID:    itemID,
		Type:      models.MovementReceived,
		Quantity:  quantity,
		Date:      date,
		Reference: reference,
	}
	if err := s.db.Create(&movement).Error; err != nil {
		return nil, err
	}

	newQuantity := item.Quantity + quantity
	if err := s.applyQuantity(&item, newQuantity); err != nil {
		return nil, err
	}

	return &movement, nil
}

// Issue appends an issued movement to a custodian and decreases the item
// quantity. An issuance that would drive the quantity negative is
// rejected before anything is written.
func (s *StockService) Issue(itemID, custodianID uint, quantity int, date time.Time, reference string) (*models.StockMovement, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if custodianID == 0 {
		return nil, ErrCustodianRequired
	}

	var item models.Item
	if err := s.db.First(&item, itemID).Error; err != nil {
		return nil, err
	}

	var custodian models.Custodian
	if err := s.db.First(&custodian, custodianID).Error; err != nil {
		return nil, err
	}

	if quantity > item.Quantity {
		return nil, ErrInsufficientStock
	}

	movement := models.StockMovement{
		ItemID:      itemID,
		Type:        models.MovementIssued,
		Quantity:    quantity,
		Date:        date,
		Reference:   reference,
		CustodianID: &custodianID,
	}
	if err := s.db.Create(&movement).Error; err != nil {
		return nil, err
	}

	newQuantity := item.Quantity - quantity
	if err := s.applyQuantity(&item, newQuantity); err != nil {
		return nil, err
	}

	movement.Custodian = &custodian
	return &movement, nil
}

// DeleteMovement removes a ledger row. The item quantity is deliberately
// left alone: deletion is a ledger correction, and the stock card simply
// reflects the edited history.
func (s *StockService) DeleteMovement(movementID uint) error {
	var movement models.StockMovement
	if err := s.db.First(&movement, movementID).Error; err != nil {
		return err
	}
	return s.db.Delete(&movement).Error
}

// CustodianSummary recomputes a custodian's holdings from the issued
// movements. These are projections, not stored fields, so drift between
// a stored copy and the ledger cannot occur.
func (s *StockService) CustodianSummary(custodianID uint) (models.CustodianSummary, error) {
	summary := models.CustodianSummary{TotalValue: decimal.Zero}

	var movements []models.StockMovement
	err := s.db.Preload("Item").
		Where("custodian_id = ? AND type = ?", custodianID, models.MovementIssued).
		Find(&movements).Error
	if err != nil {
		return summary, err
	}

	for _, movement := range movements {
		summary.ItemsAssigned += movement.Quantity
		if movement.Item != nil {
			value := movement.Item.UnitCost.Mul(decimal.NewFromInt(int64(movement.Quantity)))
			summary.TotalValue = summary.TotalValue.Add(value)
		}
	}

	return summary, nil
}

// applyQuantity writes an absolute quantity to the registry and recomputes
// the derived status with the same rule used everywhere else.
func (s *StockService) applyQuantity(item *models.Item, quantity int) error {
	return s.db.Model(item).Updates(map[string]interface{}{
		"quantity":   quantity,
		"status":     models.ComputeStatus(quantity, item.ReorderLevel),
		"updated_at": time.Now(),
	}).Error
}
