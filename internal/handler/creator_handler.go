package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"premam/internal/model"
	"premam/internal/service"
)

// CreatorHandler handles creator page and moderation session endpoints.
type CreatorHandler struct {
	admins service.AdminService
}

// NewCreatorHandler creates a new creator handler.
func NewCreatorHandler(admins service.AdminService) *CreatorHandler {
	return &CreatorHandler{admins: admins}
}

// CreateCreatorRequest represents a creator page signup.
type CreateCreatorRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Slug        string `json:"slug" validate:"required,min=2,max=64"`
	Passcode    string `json:"passcode" validate:"required,min=4"`
}

// LoginRequest represents a creator/admin passcode check.
type LoginRequest struct {
	Slug     string `json:"slug" validate:"required"`
	Passcode string `json:"passcode" validate:"required"`
}

// SessionResponse carries the issued moderation session token.
type SessionResponse struct {
	Token   string         `json:"token"`
	Creator *model.Creator `json:"creator"`
}

// Create godoc
// @Summary Create a recipient page
// @Tags creators
// @Accept json
// @Produce json
// @Param request body CreateCreatorRequest true "Creator data"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /creators [post]
func (h *CreatorHandler) Create(c echo.Context) error {
	var req CreateCreatorRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	creator, token, err := h.admins.CreateCreator(c.Request().Context(), req.DisplayName, req.Slug, req.Passcode)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, SessionResponse{Token: token, Creator: creator})
}

// GetBySlug godoc
// @Summary Public profile lookup
// @Tags creators
// @Produce json
// @Param slug path string true "Creator slug"
// @Success 200 {object} model.Creator
// @Failure 404 {object} errors.ErrorResponse
// @Router /creators/{slug} [get]
func (h *CreatorHandler) GetBySlug(c echo.Context) error {
	creator, err := h.admins.GetCreatorBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, creator)
}

// Login godoc
// @Summary Creator/admin passcode check
// @Tags creators
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /login [post]
func (h *CreatorHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	token, creator, err := h.admins.Login(c.Request().Context(), req.Slug, req.Passcode)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, SessionResponse{Token: token, Creator: creator})
}

// Logout godoc
// @Summary Drop the moderation session
// @Tags creators
// @Produce json
// @Success 200 {object} map[string]string
// @Router /logout [post]
func (h *CreatorHandler) Logout(c echo.Context) error {
	// Best effort: an unknown or expired token logs out all the same.
	_ = h.admins.Logout(c.Request().Context(), extractAdminToken(c))
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}
