package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageType distinguishes the two payload shapes a message can carry.
type MessageType string

const (
	MessageTypeConfession MessageType = "confession"
	MessageTypeBouquet    MessageType = "bouquet"
)

// DatePreference indicates whether the sender targets a specific person.
type DatePreference string

const (
	DatePreferenceRandom   DatePreference = "random"
	DatePreferenceSpecific DatePreference = "specific"
)

// GenderPreference is the sender's stated preference for a random match.
type GenderPreference string

const (
	GenderPreferenceAny    GenderPreference = "any"
	GenderPreferenceMale   GenderPreference = "male"
	GenderPreferenceFemale GenderPreference = "female"
)

// Message represents a confession or bouquet submitted to a creator's inbox.
// The type determines which payload columns are populated: confessions carry
// Vibe/Content and never a bouquet id, bouquets carry BouquetID/Note and
// never free text. Rows are append-only for senders; IsPublic, IsRead and
// IsArchived are the only fields an admin may mutate afterwards.
type Message struct {
	ID        uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	CreatorID uuid.UUID   `json:"creator_id" gorm:"type:char(36);not null;index"`
	Type      MessageType `json:"type" gorm:"type:varchar(20);not null;index"`

	// Confession payload
	Vibe    string `json:"vibe,omitempty" gorm:"size:32"`
	Content string `json:"content,omitempty" gorm:"type:text"`

	// Bouquet payload
	BouquetID string `json:"bouquet_id,omitempty" gorm:"size:32"`
	Note      string `json:"note,omitempty" gorm:"type:text"`

	// Sender metadata, visible only to the inbox owner
	SenderInstagram string    `json:"sender_instagram,omitempty" gorm:"size:30"`
	SenderUserID    *uint     `json:"sender_user_id,omitempty" gorm:"index"`
	SenderDevice    string    `json:"sender_device,omitempty" gorm:"size:512"`
	SenderLocation  string    `json:"sender_location,omitempty" gorm:"size:255"`
	SenderIP        string    `json:"sender_ip,omitempty" gorm:"size:64"`
	SenderTimestamp time.Time `json:"sender_timestamp" gorm:"index;not null"`

	// Targeting metadata
	RecipientName      string           `json:"recipient_name,omitempty" gorm:"size:255"`
	DatePreference     DatePreference   `json:"date_preference,omitempty" gorm:"type:varchar(20)"`
	RecipientInstagram string           `json:"recipient_instagram,omitempty" gorm:"size:30"`
	GenderPreference   GenderPreference `json:"gender_preference,omitempty" gorm:"type:varchar(20)"`

	IsPublic   bool `json:"is_public" gorm:"default:false;index"`
	IsRead     bool `json:"is_read" gorm:"default:false"`
	IsArchived bool `json:"is_archived" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Creator Creator `json:"-" gorm:"foreignKey:CreatorID"`
}

// BeforeCreate sets UUID and submission timestamp before creating the record.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.SenderTimestamp.IsZero() {
		m.SenderTimestamp = time.Now()
	}
	return nil
}

// PublicMessage is the projection served on the public feed. It deliberately
// carries no sender handle, device, location, network address, user reference
// or recipient-targeting detail, so the anonymity guarantee holds even when
// those columns are populated in storage.
type PublicMessage struct {
	ID              uuid.UUID   `json:"id"`
	Type            MessageType `json:"type"`
	Vibe            string      `json:"vibe,omitempty"`
	Content         string      `json:"content,omitempty"`
	BouquetID       string      `json:"bouquet_id,omitempty"`
	Note            string      `json:"note,omitempty"`
	SenderTimestamp time.Time   `json:"sender_timestamp"`
}

// Public returns the feed projection of the message.
func (m *Message) Public() PublicMessage {
	return PublicMessage{
		ID:              m.ID,
		Type:            m.Type,
		Vibe:            m.Vibe,
		Content:         m.Content,
		BouquetID:       m.BouquetID,
		Note:            m.Note,
		SenderTimestamp: m.SenderTimestamp,
	}
}
