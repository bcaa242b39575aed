package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"premam/internal/auth"
	apperrors "premam/internal/errors"
	"premam/internal/identity"
	"premam/internal/model"
	"premam/internal/service"
)

// VoteHandler handles the anonymous "would they say yes?" ledger.
type VoteHandler struct {
	votes service.VoteService
	jwt   *auth.JWTService
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(votes service.VoteService, jwt *auth.JWTService) *VoteHandler {
	return &VoteHandler{votes: votes, jwt: jwt}
}

// CastVoteRequest represents one reader's vote. Screen and TimezoneOffset
// feed the anonymous fingerprint; they are ignored for authenticated calls.
type CastVoteRequest struct {
	Vote           string `json:"vote" validate:"required,oneof=yes no"`
	Screen         string `json:"screen"`
	TimezoneOffset int    `json:"timezone_offset"`
}

// Cast godoc
// @Summary Cast or change a vote on a message
// @Tags votes
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param request body CastVoteRequest true "Vote"
// @Success 200 {object} model.Tally
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /messages/{id}/votes [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.NewValidationError("id", "message id must be a UUID"))
	}

	var req CastVoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	voterKey := h.voterKey(c, req.Screen, req.TimezoneOffset)
	if err := h.votes.Cast(c.Request().Context(), messageID, voterKey, model.VoteValue(req.Vote)); err != nil {
		return respondError(c, err)
	}

	tally, err := h.votes.Tally(c.Request().Context(), messageID, voterKey)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tally)
}

// Tally godoc
// @Summary Vote counts for a message
// @Tags votes
// @Produce json
// @Param id path string true "Message ID"
// @Param screen query string false "Screen geometry for fingerprinting"
// @Param tz query int false "Timezone offset in minutes"
// @Success 200 {object} model.Tally
// @Failure 400 {object} errors.ErrorResponse
// @Router /messages/{id}/votes [get]
func (h *VoteHandler) Tally(c echo.Context) error {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.NewValidationError("id", "message id must be a UUID"))
	}

	tz, _ := strconv.Atoi(c.QueryParam("tz"))
	voterKey := h.voterKey(c, c.QueryParam("screen"), tz)

	tally, err := h.votes.Tally(c.Request().Context(), messageID, voterKey)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tally)
}

// voterKey derives the pseudonymous identity: the institutional id for a
// caller with a valid user token, a device fingerprint otherwise. Cast and
// Tally share it so "my vote" stays consistent.
func (h *VoteHandler) voterKey(c echo.Context, screen string, tz int) string {
	authz := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(authz, "Bearer ") {
		if claims, err := h.jwt.ValidateToken(strings.TrimPrefix(authz, "Bearer ")); err == nil {
			return identity.FromCollegeUID(claims.CollegeUID)
		}
	}

	return identity.Fingerprint(identity.Signals{
		UserAgent:      c.Request().UserAgent(),
		Language:       c.Request().Header.Get("Accept-Language"),
		ScreenGeometry: screen,
		TimezoneOffset: tz,
	})
}
