package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"premam/internal/auth"
	apperrors "premam/internal/errors"
	"premam/internal/model"
	"premam/internal/service"
)

// AccountHandler handles sender registration and login in both protocols.
type AccountHandler struct {
	accounts service.AccountDirectory
	jwt      *auth.JWTService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accounts service.AccountDirectory, jwt *auth.JWTService) *AccountHandler {
	return &AccountHandler{accounts: accounts, jwt: jwt}
}

// SignupRequest represents a direct-mode registration.
type SignupRequest struct {
	FullName          string `json:"full_name" validate:"required"`
	CollegeUID        string `json:"college_uid" validate:"required"`
	MobileNumber      string `json:"mobile_number" validate:"required"`
	InstagramUsername string `json:"instagram_username" validate:"required"`
}

// DirectLoginRequest represents a direct-mode login.
type DirectLoginRequest struct {
	CollegeUID   string `json:"college_uid" validate:"required"`
	MobileNumber string `json:"mobile_number" validate:"required"`
}

// SendOTPRequest asks for a one-time code.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifySignupOTPRequest completes an OTP registration.
type VerifySignupOTPRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Code              string `json:"code" validate:"required"`
	FullName          string `json:"full_name" validate:"required"`
	CollegeUID        string `json:"college_uid" validate:"required"`
	MobileNumber      string `json:"mobile_number" validate:"required"`
	InstagramUsername string `json:"instagram_username" validate:"required"`
}

// VerifyLoginOTPRequest completes an OTP login.
type VerifyLoginOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// UserResponse carries the authenticated sender and their session token.
type UserResponse struct {
	Token string      `json:"token,omitempty"`
	User  *model.User `json:"user"`
}

func (h *AccountHandler) respondWithToken(c echo.Context, status int, user *model.User) error {
	token, err := h.jwt.GenerateUserToken(user.ID, user.CollegeUID, user.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status, UserResponse{Token: token, User: user})
}

// Signup godoc
// @Summary Register a sender (direct mode)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Profile"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AccountHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.accounts.Signup(c.Request().Context(), service.SignupProfile{
		FullName:          req.FullName,
		CollegeUID:        req.CollegeUID,
		MobileNumber:      req.MobileNumber,
		InstagramUsername: req.InstagramUsername,
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithToken(c, http.StatusCreated, user)
}

// Login godoc
// @Summary Authenticate a sender (direct mode)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body DirectLoginRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req DirectLoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.accounts.Login(c.Request().Context(), req.CollegeUID, req.MobileNumber)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithToken(c, http.StatusOK, user)
}

// SendSignupOTP godoc
// @Summary Dispatch a registration code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/signup/otp [post]
func (h *AccountHandler) SendSignupOTP(c echo.Context) error {
	var req SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.accounts.SendSignupOTP(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "code sent"})
}

// VerifySignupOTP godoc
// @Summary Complete an OTP registration
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifySignupOTPRequest true "Code and profile"
// @Success 201 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/signup/verify [post]
func (h *AccountHandler) VerifySignupOTP(c echo.Context) error {
	var req VerifySignupOTPRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.accounts.VerifySignupOTP(c.Request().Context(), req.Email, req.Code, service.SignupProfile{
		FullName:          req.FullName,
		CollegeUID:        req.CollegeUID,
		MobileNumber:      req.MobileNumber,
		InstagramUsername: req.InstagramUsername,
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithToken(c, http.StatusCreated, user)
}

// SendLoginOTP godoc
// @Summary Dispatch a login code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Email"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/login/otp [post]
func (h *AccountHandler) SendLoginOTP(c echo.Context) error {
	var req SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.accounts.SendLoginOTP(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "code sent"})
}

// VerifyLoginOTP godoc
// @Summary Complete an OTP login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyLoginOTPRequest true "Code"
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/login/verify [post]
func (h *AccountHandler) VerifyLoginOTP(c echo.Context) error {
	var req VerifyLoginOTPRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.accounts.VerifyLoginOTP(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithToken(c, http.StatusOK, user)
}

// Me godoc
// @Summary Claims of the authenticated sender
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.Claims
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	raw := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	claims, err := h.jwt.ValidateToken(raw)
	if err != nil {
		return respondError(c, apperrors.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, claims)
}
