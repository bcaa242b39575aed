package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "premam/internal/errors"
	"premam/internal/model"
	"premam/internal/service"
)

// MessageHandler handles message submission, feeds and moderation.
type MessageHandler struct {
	messages service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messages service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// SendMessageRequest represents a confession/bouquet submission.
type SendMessageRequest struct {
	CreatorID string `json:"creator_id"`
	Type      string `json:"type" validate:"required,oneof=confession bouquet"`

	Vibe    string `json:"vibe"`
	Content string `json:"content"`

	BouquetID string `json:"bouquet_id"`
	Note      string `json:"note"`

	SenderInstagram string `json:"sender_instagram"`
	SenderUserID    *uint  `json:"sender_user_id"`
	SenderDevice    string `json:"sender_device"`
	SenderLocation  string `json:"sender_location"`

	RecipientName      string `json:"recipient_name"`
	DatePreference     string `json:"date_preference" validate:"omitempty,oneof=random specific"`
	RecipientInstagram string `json:"recipient_instagram"`
	GenderPreference   string `json:"gender_preference" validate:"omitempty,oneof=any male female"`
}

// Send godoc
// @Summary Submit a confession or bouquet
// @Tags messages
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message data"
// @Success 201 {object} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	var creatorID uuid.UUID
	if req.CreatorID != "" {
		parsed, err := uuid.Parse(req.CreatorID)
		if err != nil {
			return respondError(c, apperrors.NewValidationError("creator_id", "creator id must be a UUID"))
		}
		creatorID = parsed
	}

	device := req.SenderDevice
	if device == "" {
		device = c.Request().UserAgent()
	}

	message, err := h.messages.Create(c.Request().Context(), service.CreateMessageInput{
		CreatorID:          creatorID,
		Type:               model.MessageType(req.Type),
		Vibe:               req.Vibe,
		Content:            req.Content,
		BouquetID:          req.BouquetID,
		Note:               req.Note,
		SenderInstagram:    req.SenderInstagram,
		SenderUserID:       req.SenderUserID,
		SenderDevice:       device,
		SenderLocation:     req.SenderLocation,
		RemoteAddr:         c.RealIP(),
		RecipientName:      req.RecipientName,
		DatePreference:     model.DatePreference(req.DatePreference),
		RecipientInstagram: req.RecipientInstagram,
		GenderPreference:   model.GenderPreference(req.GenderPreference),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, message)
}

// ListPublic godoc
// @Summary Anonymized public feed
// @Tags messages
// @Produce json
// @Success 200 {array} model.PublicMessage
// @Router /messages/public [get]
func (h *MessageHandler) ListPublic(c echo.Context) error {
	feed, err := h.messages.ListPublic(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, feed)
}

// Inbox godoc
// @Summary Private inbox listing
// @Tags messages
// @Produce json
// @Param id path string true "Creator ID"
// @Success 200 {array} model.Message
// @Failure 401 {object} errors.ErrorResponse
// @Router /creators/{id}/messages [get]
func (h *MessageHandler) Inbox(c echo.Context) error {
	creatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.NewValidationError("id", "creator id must be a UUID"))
	}

	// A session only opens its own inbox.
	session := sessionFromContext(c)
	if session == nil || session.CreatorID != creatorID {
		return respondError(c, apperrors.ErrUnauthorized)
	}

	messages, err := h.messages.ListForCreator(c.Request().Context(), creatorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messages)
}

// FlagRequest toggles a moderation flag.
type FlagRequest struct {
	Value *bool `json:"value" validate:"required"`
}

// SetVisibility godoc
// @Summary Toggle the public visibility of a message
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param request body FlagRequest true "New value"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /messages/{id}/visibility [patch]
func (h *MessageHandler) SetVisibility(c echo.Context) error {
	return h.setFlag(c, h.messages.SetVisibility)
}

// SetRead marks a message read or unread.
func (h *MessageHandler) SetRead(c echo.Context) error {
	return h.setFlag(c, h.messages.MarkRead)
}

// SetArchived archives or unarchives a message.
func (h *MessageHandler) SetArchived(c echo.Context) error {
	return h.setFlag(c, h.messages.Archive)
}

func (h *MessageHandler) setFlag(c echo.Context, set func(ctx context.Context, id uuid.UUID, value bool) error) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.NewValidationError("id", "message id must be a UUID"))
	}

	var req FlagRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := set(c.Request().Context(), id, *req.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
}

// Delete godoc
// @Summary Hard-delete a message
// @Tags messages
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.NewValidationError("id", "message id must be a UUID"))
	}

	if err := h.messages.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}
