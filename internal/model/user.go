package model

import "time"

// User represents a registered sender identity. Rows are immutable after
// creation except for the Verified flag.
type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	FullName          string    `json:"full_name" gorm:"size:255;not null"`
	// Email is empty for direct-mode registrations, so uniqueness is
	// enforced in the service rather than by a unique index.
	Email             string    `json:"email" gorm:"index;size:255"`
	CollegeUID        string    `json:"college_uid" gorm:"uniqueIndex;size:32;not null"`
	MobileNumber      string    `json:"mobile_number" gorm:"size:20;not null"`
	InstagramUsername string    `json:"instagram_username" gorm:"size:30;not null"`
	Verified          bool      `json:"verified" gorm:"default:false"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
