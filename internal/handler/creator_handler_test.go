package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "premam/internal/errors"
	"premam/internal/model"
)

func TestCreatorHandler_Create(t *testing.T) {
	creator := &model.Creator{ID: uuid.New(), DisplayName: "Rosy", Slug: "rosy"}

	mockAdmins := new(MockAdminService)
	mockAdmins.On("CreateCreator", mock.Anything, "Rosy", "rosy", "1234").Return(creator, "tok-1", nil)

	h := NewCreatorHandler(mockAdmins)
	e := newTestEcho()
	req := jsonRequest(http.MethodPost, "/api/creators", `{"display_name":"Rosy","slug":"rosy","passcode":"1234"}`)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.Create(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"tok-1"`)
	// The passcode hash is never serialized.
	assert.NotContains(t, rec.Body.String(), "passcode")
	mockAdmins.AssertExpectations(t)
}

func TestCreatorHandler_Create_ShortPasscode(t *testing.T) {
	mockAdmins := new(MockAdminService)
	h := NewCreatorHandler(mockAdmins)
	e := newTestEcho()
	req := jsonRequest(http.MethodPost, "/api/creators", `{"display_name":"Rosy","slug":"rosy","passcode":"12"}`)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.Create(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockAdmins.AssertNotCalled(t, "CreateCreator", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatorHandler_Login_WrongPasscode(t *testing.T) {
	mockAdmins := new(MockAdminService)
	mockAdmins.On("Login", mock.Anything, "rosy", "wrong").Return("", nil, apperrors.ErrUnauthorized)

	h := NewCreatorHandler(mockAdmins)
	e := newTestEcho()
	req := jsonRequest(http.MethodPost, "/api/login", `{"slug":"rosy","passcode":"wrong"}`)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockAdmins.AssertExpectations(t)
}

func TestCreatorHandler_GetBySlug_NotFound(t *testing.T) {
	mockAdmins := new(MockAdminService)
	mockAdmins.On("GetCreatorBySlug", mock.Anything, "ghost").Return(nil, apperrors.ErrCreatorNotFound)

	h := NewCreatorHandler(mockAdmins)
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("ghost")

	assert.NoError(t, h.GetBySlug(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockAdmins.AssertExpectations(t)
}
