package authservice

import (
	"context"
	"errors"
	"testing"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *auth.MockHashServiceInterface, *auth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)

	service := New(repo, hashService, jwtService)
	defer ctrl.Finish()
	return service, repo, hashService, jwtService
}

func TestRegister(t *testing.T) {
	service, userRepo, passwordHasher, _ := NewMock(t)

	tests := []struct {
		name          string
		login         string
		password      string
		prepareMock   func()
		expectedUser  *domain.User
		expectedError error
	}{
		{
			name:     "Successful registration",
			login:    "creator@example.com",
			password: "testpassword",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(context.Background(), "creator@example.com").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("hashedpassword", nil)
				userRepo.EXPECT().Create(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, user *domain.User) (*domain.User, error) {
					user.ID = "user-1"
					return user, nil
				})
			},
			expectedUser: &domain.User{
				ID:           "user-1",
				Login:        "creator@example.com",
				PasswordHash: "hashedpassword",
			},
		},
		{
			name:     "User already exists",
			login:    "creator@example.com",
			password: "testpassword",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(context.Background(), "creator@example.com").Return(&domain.User{ID: "user-1"}, nil)
			},
			expectedError: ErrLoginTaken,
		},
		{
			name:     "Repo error",
			login:    "creator@example.com",
			password: "testpassword",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(context.Background(), "creator@example.com").Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			user, err := service.Register(context.Background(), tt.login, tt.password)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, user)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedUser, user)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	service, userRepo, passwordHasher, _ := NewMock(t)

	stored := &domain.User{ID: "user-1", Login: "creator@example.com", PasswordHash: "hashedpassword"}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedUser  *domain.User
		expectedError error
	}{
		{
			name: "Successful authentication",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(context.Background(), "creator@example.com").Return(stored, nil)
				passwordHasher.EXPECT().ComparePassword("hashedpassword", "testpassword").Return(true)
			},
			expectedUser: stored,
		},
		{
			name: "Unknown user",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(context.Background(), "creator@example.com").Return(nil, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "Wrong password",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(context.Background(), "creator@example.com").Return(stored, nil)
				passwordHasher.EXPECT().ComparePassword("hashedpassword", "testpassword").Return(false)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			user, err := service.Authenticate(context.Background(), "creator@example.com", "testpassword")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedUser, user)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _, _, jwtService := NewMock(t)

	jwtService.EXPECT().GenerateJWT("user-1", gomock.Any()).Return("token-123", nil)
	token, err := service.GenerateToken("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "token-123", token)

	jwtService.EXPECT().GenerateJWT("user-1", gomock.Any()).Return("", errors.New("signing error"))
	token, err = service.GenerateToken("user-1")
	assert.Error(t, err)
	assert.Empty(t, token)
}
