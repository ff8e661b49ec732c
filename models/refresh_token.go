package models

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken represents one refresh token issued to a user. Only a
// bcrypt hash of the opaque value is stored; rotation revokes the old row
// and inserts a new one, so a replayed token is detectable.
type RefreshToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	TokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// Valid reports whether the token may still be exchanged.
func (t *RefreshToken) Valid() bool {
	return !t.Revoked && time.Now().Before(t.ExpiresAt)
}

// BeforeCreate sets the creation timestamp
func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	t.CreatedAt = time.Now()
	return nil
}
