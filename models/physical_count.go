package models

import (
	"time"

	"gorm.io/gorm"
)

// Physical count session states. The machine only moves forward:
// Scheduled → In Progress → Completed, and Completed is terminal.
const (
	CountScheduled  = "Scheduled"
	CountInProgress = "In Progress"
	CountCompleted  = "Completed"
)

// PhysicalCount represents one physical counting exercise. ItemsCounted
// and DiscrepanciesFound stay zero until finalization.
type PhysicalCount struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	CountDate          time.Time `json:"count_date" gorm:"not null"`
	CountedBy          string    `json:"counted_by" gorm:"not null;size:255"`
	Location           string    `json:"location" gorm:"not null;size:255"`
	Status             string    `json:"status" gorm:"not null;default:'Scheduled'"`
	ItemsCounted       int       `json:"items_counted" gorm:"default:0"`
	DiscrepanciesFound int       `json:"discrepancies_found" gorm:"default:0"`
	Notes              string    `json:"notes" gorm:"type:text;default:''"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Items []PhysicalCountItem `json:"items" gorm:"foreignKey:PhysicalCountID"`
}

// PhysicalCountItem is one line of a count session: the counted quantity
// entered for an item against the system quantity at entry time.
// CountedQuantity nil means "not entered", which is distinct from an
// explicit zero count.
type PhysicalCountItem struct {
	ID              uint `json:"id" gorm:"primaryKey"`
	PhysicalCountID uint `json:"physical_count_id" gorm:"not null;index"`
	ItemID          uint `json:"item_id" gorm:"not null"`
	CountedQuantity *int `json:"counted_quantity"`
	SystemQuantity  int  `json:"system_quantity" gorm:"not null"`
	Discrepancy     int  `json:"discrepancy" gorm:"default:0"` // counted − system

	Item *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}

// Editable reports whether count entries may still be changed.
// Only Scheduled and In Progress sessions accept edits.
func (pc *PhysicalCount) Editable() bool {
	return pc.Status == CountScheduled || pc.Status == CountInProgress
}

// BeforeCreate sets the creation timestamps
func (pc *PhysicalCount) BeforeCreate(tx *gorm.DB) error {
	if pc.Status == "" {
		pc.Status = CountScheduled
	}
	pc.CreatedAt = time.Now()
	pc.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate refreshes the update timestamp
func (pc *PhysicalCount) BeforeUpdate(tx *gorm.DB) error {
	pc.UpdatedAt = time.Now()
	return nil
}
