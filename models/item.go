package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock status values derived from quantity and reorder level.
const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"
)

// Item represents one entry in the office-supply catalog. Quantity is the
// authoritative on-hand count; Status is always recomputed from Quantity
// and ReorderLevel on write, never edited directly.
type Item struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	ItemCode     string          `json:"item_code" gorm:"uniqueIndex;not null;size:50"`
	ItemName     string          `json:"item_name" gorm:"not null;size:255"`
	Category     string          `json:"category" gorm:"default:''"`
	Unit         string          `json:"unit" gorm:"default:''"` // e.g. "box", "ream", "piece"
	Quantity     int             `json:"quantity" gorm:"not null;default:0"`
	UnitCost     decimal.Decimal `json:"unit_cost" gorm:"type:decimal(12,2);not null"`
	ReorderLevel int             `json:"reorder_level" gorm:"not null;default:0"`
	Location     string          `json:"location" gorm:"default:''"`
	Status       string          `json:"status" gorm:"not null;default:'In Stock'"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ComputeStatus derives the stock status from a quantity and reorder level.
// Zero quantity wins over the reorder comparison.
func ComputeStatus(quantity, reorderLevel int) string {
	if quantity == 0 {
		return StatusOutOfStock
	}
	if quantity <= reorderLevel {
		return StatusLowStock
	}
	return StatusInStock
}

// TotalValue returns quantity × unit cost. Computed on read; never stored.
func (i *Item) TotalValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// BeforeCreate sets the creation timestamps and derives the initial status
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	i.Status = ComputeStatus(i.Quantity, i.ReorderLevel)
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate refreshes the update timestamp
func (i *Item) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}
