package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"premam/internal/auth"
	apperrors "premam/internal/errors"
	"premam/internal/model"
	"premam/internal/service"
)

// MockMessageService is a mock implementation of MessageService.
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Create(ctx context.Context, input service.CreateMessageInput) (*model.Message, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) ListForCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Message, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageService) ListPublic(ctx context.Context) ([]model.PublicMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PublicMessage), args.Error(1)
}

func (m *MockMessageService) SetVisibility(ctx context.Context, id uuid.UUID, public bool) error {
	args := m.Called(ctx, id, public)
	return args.Error(0)
}

func (m *MockMessageService) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {
	args := m.Called(ctx, id, read)
	return args.Error(0)
}

func (m *MockMessageService) Archive(ctx context.Context, id uuid.UUID, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}

func (m *MockMessageService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestMessageHandler_Send(t *testing.T) {
	t.Run("forwards the submission and resolves the device", func(t *testing.T) {
		mockMessages := new(MockMessageService)
		mockMessages.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateMessageInput) bool {
			return in.Type == model.MessageTypeConfession &&
				in.Content == "hello" &&
				in.SenderDevice == "test-browser"
		})).Return(&model.Message{ID: uuid.New(), Content: "hello"}, nil)

		h := NewMessageHandler(mockMessages)
		e := newTestEcho()
		req := jsonRequest(http.MethodPost, "/api/messages", `{"type":"confession","content":"hello"}`)
		req.Header.Set("User-Agent", "test-browser")
		rec := httptest.NewRecorder()

		err := h.Send(e.NewContext(req, rec))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		mockMessages.AssertExpectations(t)
	})

	t.Run("rejects an unknown type before the service", func(t *testing.T) {
		mockMessages := new(MockMessageService)
		h := NewMessageHandler(mockMessages)
		e := newTestEcho()
		req := jsonRequest(http.MethodPost, "/api/messages", `{"type":"poem","content":"x"}`)
		rec := httptest.NewRecorder()

		err := h.Send(e.NewContext(req, rec))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockMessages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed creator id", func(t *testing.T) {
		mockMessages := new(MockMessageService)
		h := NewMessageHandler(mockMessages)
		e := newTestEcho()
		req := jsonRequest(http.MethodPost, "/api/messages", `{"type":"confession","content":"x","creator_id":"not-a-uuid"}`)
		rec := httptest.NewRecorder()

		err := h.Send(e.NewContext(req, rec))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMessageHandler_Inbox(t *testing.T) {
	creatorID := uuid.New()

	tests := []struct {
		name       string
		session    *auth.Session
		setupMock  func(*MockMessageService)
		wantStatus int
	}{
		{
			name:       "no session",
			session:    nil,
			setupMock:  func(m *MockMessageService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "session for a different inbox",
			session:    &auth.Session{CreatorID: uuid.New()},
			setupMock:  func(m *MockMessageService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "owner reads their inbox",
			session: &auth.Session{CreatorID: creatorID, DisplayName: "Rosy"},
			setupMock: func(m *MockMessageService) {
				m.On("ListForCreator", mock.Anything, creatorID).Return([]model.Message{{ID: uuid.New()}}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMessages := new(MockMessageService)
			tt.setupMock(mockMessages)

			h := NewMessageHandler(mockMessages)
			e := newTestEcho()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(creatorID.String())
			if tt.session != nil {
				c.Set(adminSessionKey, tt.session)
			}

			err := h.Inbox(c)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			mockMessages.AssertExpectations(t)
		})
	}
}

func TestMessageHandler_SetVisibility(t *testing.T) {
	id := uuid.New()

	t.Run("toggles the flag", func(t *testing.T) {
		mockMessages := new(MockMessageService)
		mockMessages.On("SetVisibility", mock.Anything, id, true).Return(nil)

		h := NewMessageHandler(mockMessages)
		e := newTestEcho()
		req := jsonRequest(http.MethodPatch, "/", `{"value":true}`)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, h.SetVisibility(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockMessages.AssertExpectations(t)
	})

	t.Run("missing message maps to 404", func(t *testing.T) {
		mockMessages := new(MockMessageService)
		mockMessages.On("SetVisibility", mock.Anything, id, false).Return(apperrors.ErrMessageNotFound)

		h := NewMessageHandler(mockMessages)
		e := newTestEcho()
		req := jsonRequest(http.MethodPatch, "/", `{"value":false}`)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, h.SetVisibility(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing value rejected", func(t *testing.T) {
		mockMessages := new(MockMessageService)
		h := NewMessageHandler(mockMessages)
		e := newTestEcho()
		req := jsonRequest(http.MethodPatch, "/", `{}`)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, h.SetVisibility(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockMessages.AssertNotCalled(t, "SetVisibility", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMessageHandler_ListPublic(t *testing.T) {
	mockMessages := new(MockMessageService)
	mockMessages.On("ListPublic", mock.Anything).Return([]model.PublicMessage{
		{ID: uuid.New(), Type: model.MessageTypeConfession, Content: "hello"},
	}, nil)

	h := NewMessageHandler(mockMessages)
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/messages/public", nil)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.ListPublic(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The feed projection never serializes sender fields.
	body := rec.Body.String()
	assert.NotContains(t, body, "sender_instagram")
	assert.NotContains(t, body, "sender_ip")
	assert.NotContains(t, body, "sender_device")
	mockMessages.AssertExpectations(t)
}
