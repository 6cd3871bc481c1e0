package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	query := `
        SELECT id, login, password_hash, created_at
        FROM users
        WHERE login = $1
    `
	row := r.db.QueryRow(ctx, query, login)

	var user domain.User
	err := row.Scan(&user.ID, &user.Login, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (login, password_hash)
        VALUES ($1, $2)
        RETURNING id, login, password_hash, created_at
    `
	row := r.db.QueryRow(ctx, query, user.Login, user.PasswordHash)

	var created domain.User
	err := row.Scan(&created.ID, &created.Login, &created.PasswordHash, &created.CreatedAt)
	if err != nil {
		zap.L().Error("can't create user", zap.Error(err))
		return nil, err
	}
	return &created, nil
}
