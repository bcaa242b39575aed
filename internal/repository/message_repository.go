package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"premam/internal/model"
)

// MessageRepository defines message persistence operations. Creation is
// append-only; the moderation flags are the only columns Update* touch.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error)
	ListForCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Message, error)
	ListPublic(ctx context.Context) ([]model.Message, error)
	SetVisibility(ctx context.Context, id uuid.UUID, public bool) error
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create creates a new message.
func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByID finds a message by ID.
func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListForCreator lists all messages for a creator, newest first.
func (r *messageRepository) ListForCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("sender_timestamp DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListPublic lists messages promoted to the public feed, newest first.
func (r *messageRepository) ListPublic(ctx context.Context) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("sender_timestamp DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// SetVisibility flips the moderation flag.
func (r *messageRepository) SetVisibility(ctx context.Context, id uuid.UUID, public bool) error {
	return r.updateFlag(ctx, id, "is_public", public)
}

// SetRead flips the read flag.
func (r *messageRepository) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	return r.updateFlag(ctx, id, "is_read", read)
}

// SetArchived flips the archive flag.
func (r *messageRepository) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	return r.updateFlag(ctx, id, "is_archived", archived)
}

func (r *messageRepository) updateFlag(ctx context.Context, id uuid.UUID, column string, value bool) error {
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL reports rows changed, not rows matched, so a same-value
		// re-toggle also lands here. Only a missing row is an error.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Message{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Delete hard-removes a message and its votes.
func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Message{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
