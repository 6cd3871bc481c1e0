package lessonrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Lesson, error) {
	query := `
        SELECT id, creator_id, title, description, price, created_at
        FROM lessons
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var lesson domain.Lesson
	err := row.Scan(&lesson.ID, &lesson.CreatorID, &lesson.Title, &lesson.Description, &lesson.Price, &lesson.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find lesson", zap.Error(err))
		return nil, err
	}
	return &lesson, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Lesson, error) {
	query := `
        SELECT id, creator_id, title, description, price, created_at
        FROM lessons
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get lessons", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var lesson domain.Lesson
		err := rows.Scan(&lesson.ID, &lesson.CreatorID, &lesson.Title, &lesson.Description, &lesson.Price, &lesson.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan lesson row", zap.Error(err))
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

func (r *Repository) Save(ctx context.Context, lesson *domain.Lesson) error {
	query := `
        INSERT INTO lessons (id, creator_id, title, description, price, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			lesson.ID, lesson.CreatorID, lesson.Title, lesson.Description, lesson.Price, lesson.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't save lesson", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}
