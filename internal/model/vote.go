package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteValue is a yes/no answer to "would they say yes?".
type VoteValue string

const (
	VoteYes VoteValue = "yes"
	VoteNo  VoteValue = "no"
)

// Vote records one reader's answer for a message. The unique index on
// (message_id, voter_key) is what makes a repeat vote from the same identity
// an update instead of a second row, including under concurrent double-clicks.
type Vote struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	MessageID uuid.UUID `json:"message_id" gorm:"type:char(36);not null;uniqueIndex:idx_votes_message_voter"`
	VoterKey  string    `json:"-" gorm:"size:64;not null;uniqueIndex:idx_votes_message_voter"`
	Vote      VoteValue `json:"vote" gorm:"type:varchar(8);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Message Message `json:"-" gorm:"foreignKey:MessageID"`
}

// BeforeCreate sets UUID before creating the record.
func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Tally aggregates votes for one message. MyVote is the caller's own prior
// vote, when present, so the UI can highlight the already-selected option.
type Tally struct {
	Yes    int        `json:"yes"`
	No     int        `json:"no"`
	Total  int        `json:"total"`
	MyVote *VoteValue `json:"my_vote,omitempty"`
}
