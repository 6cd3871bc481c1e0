package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/dto"
	"github.com/teachniche/marketplace/internal/service/authservice"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful registration",
			body: `{"login":"creator@example.com","password":"s3cret"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(context.Background(), "creator@example.com", "s3cret").
					Return(&domain.User{ID: "user-1", Login: "creator@example.com"}, nil)
				service.EXPECT().GenerateToken("user-1").Return("token-123", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{"login":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Missing credentials",
			body:         `{"login":"creator@example.com"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "User already exists",
			body: `{"login":"creator@example.com","password":"s3cret"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(context.Background(), "creator@example.com", "s3cret").
					Return(nil, authservice.ErrLoginTaken)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Register(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "Bearer token-123", w.Header().Get("Authorization"))
				var body dto.AuthResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "token-123", body.Token)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful login",
			body: `{"login":"creator@example.com","password":"s3cret"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "creator@example.com", "s3cret").
					Return(&domain.User{ID: "user-1"}, nil)
				service.EXPECT().GenerateToken("user-1").Return("token-123", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid credentials",
			body: `{"login":"creator@example.com","password":"wrong"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "creator@example.com", "wrong").
					Return(nil, errors.New("invalid credentials")).AnyTimes()
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Token generation failure",
			body: `{"login":"creator@example.com","password":"s3cret"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "creator@example.com", "s3cret").
					Return(&domain.User{ID: "user-1"}, nil)
				service.EXPECT().GenerateToken("user-1").Return("", errors.New("signing error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Login(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
