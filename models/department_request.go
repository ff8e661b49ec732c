package models

import (
	"time"

	"gorm.io/gorm"
)

// Department request states.
const (
	RequestPending   = "pending"
	RequestApproved  = "approved"
	RequestRejected  = "rejected"
	RequestFulfilled = "fulfilled"
)

// DepartmentRequest represents a requisition filed by a department for
// supplies from the GSO stock room.
type DepartmentRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Department  string    `json:"department" gorm:"not null;size:255"`
	RequestedBy string    `json:"requested_by" gorm:"not null;size:255"`
	RequestDate time.Time `json:"request_date" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null;default:'pending'"`
	Remarks     string    `json:"remarks" gorm:"type:text;default:''"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Items []RequestItem `json:"items" gorm:"foreignKey:DepartmentRequestID"`
}

// RequestItem is one requested line: an item and the quantity wanted.
type RequestItem struct {
	ID                  uint   `json:"id" gorm:"primaryKey"`
	DepartmentRequestID uint   `json:"department_request_id" gorm:"not null;index"`
	ItemID              uint   `json:"item_id" gorm:"not null"`
	Quantity            int    `json:"quantity" gorm:"not null"`
	Purpose             string `json:"purpose" gorm:"default:''"`

	Item *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}

// CanTransitionTo reports whether the request may move to next.
// pending → approved|rejected, approved → fulfilled; everything else is
// frozen.
func (r *DepartmentRequest) CanTransitionTo(next string) bool {
	switch r.Status {
	case RequestPending:
		return next == RequestApproved || next == RequestRejected
	case RequestApproved:
		return next == RequestFulfilled
	}
	return false
}

// BeforeCreate sets the creation timestamps
func (r *DepartmentRequest) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = RequestPending
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate refreshes the update timestamp
func (r *DepartmentRequest) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}
