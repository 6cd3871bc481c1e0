package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

var userColumnNames = []string{"id", "login", "password_hash", "created_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)
	timeNow := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name: "User exists",
			mockSetup: func() {
				rows := pgxmock.NewRows(userColumnNames).
					AddRow("user-1", "creator@example.com", "$2a$10$hash", timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("WHERE login = $1")).
					WithArgs("creator@example.com").
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.User{
				ID: "user-1", Login: "creator@example.com", PasswordHash: "$2a$10$hash", CreatedAt: timeNow,
			},
		},
		{
			name: "User does not exist",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE login = $1")).
					WithArgs("creator@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE login = $1")).
					WithArgs("creator@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByLogin(context.Background(), "creator@example.com")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	timeNow := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Create user successfully",
			mockSetup: func() {
				rows := pgxmock.NewRows(userColumnNames).
					AddRow("user-1", "creator@example.com", "$2a$10$hash", timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
					WithArgs("creator@example.com", "$2a$10$hash").
					WillReturnRows(rows)
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
					WithArgs("creator@example.com", "$2a$10$hash").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), &domain.User{
				Login: "creator@example.com", PasswordHash: "$2a$10$hash",
			})
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "user-1", result.ID)
			}
		})
	}
}
