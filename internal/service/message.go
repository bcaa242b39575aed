package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"premam/internal/cache"
	"premam/internal/config"
	apperrors "premam/internal/errors"
	"premam/internal/model"
	"premam/internal/repository"
)

const (
	publicFeedCacheKey = "feed:public"
	publicFeedCacheTTL = 30 * time.Second
)

// CreateMessageInput is the sender submission payload.
type CreateMessageInput struct {
	CreatorID uuid.UUID
	Type      model.MessageType

	Vibe    string
	Content string

	BouquetID string
	Note      string

	SenderInstagram string
	SenderUserID    *uint
	SenderDevice    string
	SenderLocation  string
	RemoteAddr      string

	RecipientName      string
	DatePreference     model.DatePreference
	RecipientInstagram string
	GenderPreference   model.GenderPreference
}

// MessageService is the message store: append-only creation for senders,
// projections for readers, flag mutations and deletion for the admin.
type MessageService interface {
	Create(ctx context.Context, input CreateMessageInput) (*model.Message, error)
	ListForCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Message, error)
	ListPublic(ctx context.Context) ([]model.PublicMessage, error)
	SetVisibility(ctx context.Context, id uuid.UUID, public bool) error
	MarkRead(ctx context.Context, id uuid.UUID, read bool) error
	Archive(ctx context.Context, id uuid.UUID, archived bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type messageService struct {
	cfg      *config.Config
	messages repository.MessageRepository
	creators repository.CreatorRepository
	ipLookup IPLookup
	cache    *cache.Client

	// defaultCreatorID is the provisioned admin inbox in single-admin mode.
	defaultCreatorID uuid.UUID
}

// NewMessageService creates the message service. defaultCreatorID may be
// uuid.Nil in multi-tenant mode.
func NewMessageService(
	cfg *config.Config,
	messages repository.MessageRepository,
	creators repository.CreatorRepository,
	ipLookup IPLookup,
	cache *cache.Client,
	defaultCreatorID uuid.UUID,
) MessageService {
	return &messageService{
		cfg:              cfg,
		messages:         messages,
		creators:         creators,
		ipLookup:         ipLookup,
		cache:            cache,
		defaultCreatorID: defaultCreatorID,
	}
}

func validatePayload(input CreateMessageInput) error {
	switch input.Type {
	case model.MessageTypeConfession:
		if input.Content == "" {
			return apperrors.NewValidationError("content", "please write a message first")
		}
		if input.BouquetID != "" || input.Note != "" {
			return apperrors.NewValidationError("bouquet_id", "confession messages cannot carry a bouquet")
		}
	case model.MessageTypeBouquet:
		if input.BouquetID == "" {
			return apperrors.NewValidationError("bouquet_id", "please select a bouquet")
		}
		if input.Content != "" || input.Vibe != "" {
			return apperrors.NewValidationError("content", "bouquet messages cannot carry free text")
		}
	default:
		return apperrors.NewValidationError("type", "type must be confession or bouquet")
	}

	switch input.DatePreference {
	case "", model.DatePreferenceRandom, model.DatePreferenceSpecific:
	default:
		return apperrors.NewValidationError("date_preference", "date preference must be random or specific")
	}
	if input.RecipientInstagram != "" && input.DatePreference != model.DatePreferenceSpecific {
		return apperrors.NewValidationError("recipient_instagram", "recipient handle requires a specific date preference")
	}

	switch input.GenderPreference {
	case "", model.GenderPreferenceAny, model.GenderPreferenceMale, model.GenderPreferenceFemale:
	default:
		return apperrors.NewValidationError("gender_preference", "unknown gender preference")
	}
	return nil
}

// Create validates the type-appropriate payload shape, resolves the sender
// address best-effort and inserts the row. In multi-tenant mode the creator
// reference must resolve; the single-admin inbox is a constant and skips
// the lookup.
func (s *messageService) Create(ctx context.Context, input CreateMessageInput) (*model.Message, error) {
	if err := validatePayload(input); err != nil {
		return nil, err
	}

	creatorID := input.CreatorID
	if s.cfg.DeployMode == config.DeploySingle {
		creatorID = s.defaultCreatorID
	} else {
		if creatorID == uuid.Nil {
			return nil, apperrors.NewValidationError("creator_id", "creator id is required")
		}
		if _, err := s.creators.FindByID(ctx, creatorID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrCreatorNotFound
			}
			return nil, fmt.Errorf("find creator: %w", err)
		}
	}

	message := &model.Message{
		CreatorID:          creatorID,
		Type:               input.Type,
		Vibe:               input.Vibe,
		Content:            input.Content,
		BouquetID:          input.BouquetID,
		Note:               input.Note,
		SenderInstagram:    input.SenderInstagram,
		SenderUserID:       input.SenderUserID,
		SenderDevice:       input.SenderDevice,
		SenderLocation:     input.SenderLocation,
		SenderIP:           s.ipLookup.Resolve(ctx, input.RemoteAddr),
		RecipientName:      input.RecipientName,
		DatePreference:     input.DatePreference,
		RecipientInstagram: input.RecipientInstagram,
		GenderPreference:   input.GenderPreference,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return message, nil
}

// ListForCreator is the private inbox listing, newest first.
func (s *messageService) ListForCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Message, error) {
	return s.messages.ListForCreator(ctx, creatorID)
}

// ListPublic returns the anonymized feed. The projection strips every
// sender-identifying field even though storage has them, so querying this
// path can never leak who sent what.
func (s *messageService) ListPublic(ctx context.Context) ([]model.PublicMessage, error) {
	if data, _ := s.cache.Get(ctx, publicFeedCacheKey); data != nil {
		var cached []model.PublicMessage
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	messages, err := s.messages.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]model.PublicMessage, 0, len(messages))
	for i := range messages {
		feed = append(feed, messages[i].Public())
	}

	if payload, err := json.Marshal(feed); err == nil {
		_ = s.cache.Set(ctx, publicFeedCacheKey, payload, publicFeedCacheTTL)
	}
	return feed, nil
}

// SetVisibility toggles Hidden<->Public. Idempotent: last write wins.
func (s *messageService) SetVisibility(ctx context.Context, id uuid.UUID, public bool) error {
	if err := s.messages.SetVisibility(ctx, id, public); err != nil {
		return mapMessageErr(err)
	}
	_ = s.cache.Delete(ctx, publicFeedCacheKey)
	return nil
}

// MarkRead toggles the read flag.
func (s *messageService) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {
	return mapMessageErr(s.messages.SetRead(ctx, id, read))
}

// Archive toggles the archive flag.
func (s *messageService) Archive(ctx context.Context, id uuid.UUID, archived bool) error {
	return mapMessageErr(s.messages.SetArchived(ctx, id, archived))
}

// Delete hard-removes the message. Terminal.
func (s *messageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return mapMessageErr(err)
	}
	_ = s.cache.Delete(ctx, publicFeedCacheKey)
	return nil
}

func mapMessageErr(err error) error {
	if err == gorm.ErrRecordNotFound {
		return apperrors.ErrMessageNotFound
	}
	return err
}
