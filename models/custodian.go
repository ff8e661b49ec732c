package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Custodian represents a person or office holding issued supplies.
// ItemsAssigned and TotalValue are projections over the issued movements
// and are recomputed on every read; they are intentionally not columns.
type Custodian struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null;size:255"`
	Department string    `json:"department" gorm:"not null;size:255"`
	Email      string    `json:"email" gorm:"default:''"`
	Phone      string    `json:"phone" gorm:"default:''"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CustodianSummary carries the computed holdings of one custodian.
type CustodianSummary struct {
	ItemsAssigned int             `json:"items_assigned"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// BeforeCreate sets the creation timestamps
func (c *Custodian) BeforeCreate(tx *gorm.DB) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate refreshes the update timestamp
func (c *Custodian) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}
