package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Creator represents a recipient-side account owning an inbox of messages.
// In the single-admin deployment there is exactly one row, created at boot
// from the configured credential pair.
type Creator struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	DisplayName  string    `json:"display_name" gorm:"size:255;not null"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	PasscodeHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Creator) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
