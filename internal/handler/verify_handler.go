package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"premam/internal/auth"
	apperrors "premam/internal/errors"
	"premam/internal/service"
)

// VerifyHandler handles the Instagram identity collaborator endpoints.
type VerifyHandler struct {
	verifier  service.VerifierService
	instagram *auth.InstagramProvider
}

// NewVerifyHandler creates a new verify handler.
func NewVerifyHandler(verifier service.VerifierService, instagram *auth.InstagramProvider) *VerifyHandler {
	return &VerifyHandler{verifier: verifier, instagram: instagram}
}

// VerifyInstagramRequest carries the claimed handle.
type VerifyInstagramRequest struct {
	Username string `json:"username" validate:"required"`
}

// VerifyInstagram godoc
// @Summary Best-effort Instagram handle existence check
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyInstagramRequest true "Handle"
// @Success 200 {object} service.VerifyResult
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/verify-instagram [post]
func (h *VerifyHandler) VerifyInstagram(c echo.Context) error {
	var req VerifyInstagramRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	result := h.verifier.Verify(c.Request().Context(), req.Username)
	return c.JSON(http.StatusOK, result)
}

// InstagramExchangeRequest carries the OAuth code.
type InstagramExchangeRequest struct {
	Code        string `json:"code" validate:"required"`
	RedirectURI string `json:"redirect_uri" validate:"required,url"`
}

// InstagramExchange godoc
// @Summary Exchange an Instagram OAuth code for a profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body InstagramExchangeRequest true "Code and redirect URI"
// @Success 200 {object} auth.InstagramUser
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/instagram [post]
func (h *VerifyHandler) InstagramExchange(c echo.Context) error {
	var req InstagramExchangeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.instagram.Exchange(c.Request().Context(), req.Code, req.RedirectURI)
	if err != nil {
		if errors.Is(err, auth.ErrInstagramMisconfigured) {
			return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
				Error: "server misconfigured",
				Code:  "INSTAGRAM_MISCONFIGURED",
			})
		}
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "token exchange failed",
			Code:  "INSTAGRAM_EXCHANGE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, user)
}
