package models

import (
	"time"

	"gorm.io/gorm"
)

// Movement types. A received movement increases the balance, an issued
// movement decreases it; the quantity itself is always positive.
const (
	MovementReceived = "received"
	MovementIssued   = "issued"
)

// StockMovement represents one row in the append-only stock ledger.
// Movements are never updated once created; deleting one is the supported
// correction mechanism and does not touch Item.Quantity.
type StockMovement struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ItemID      uint       `json:"item_id" gorm:"not null;index"`
	Type        string     `json:"type" gorm:"not null;size:20"`
	Quantity    int        `json:"quantity" gorm:"not null"` // strictly positive
	Date        time.Time  `json:"date" gorm:"not null"`
	Reference   string     `json:"reference" gorm:"not null;size:100"` // PO / RIS number
	CustodianID *uint      `json:"custodian_id"`                       // required for issued
	CreatedAt   time.Time  `json:"created_at"`

	// Associations
	Item      *Item      `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Custodian *Custodian `json:"custodian,omitempty" gorm:"foreignKey:CustodianID"`
}

// BeforeCreate sets the creation timestamp
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now()
	return nil
}
