package lessonservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/teachniche/marketplace/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	FindByID(ctx context.Context, id string) (*domain.Lesson, error)
	FindAll(ctx context.Context) ([]domain.Lesson, error)
	Save(ctx context.Context, lesson *domain.Lesson) error
}

var ErrLessonNotFound = errors.New("lesson not found")

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateLesson(ctx context.Context, creatorID, title, description string, price float64) (*domain.Lesson, error) {
	lesson := &domain.Lesson{
		ID:          uuid.NewString(),
		CreatorID:   creatorID,
		Title:       title,
		Description: description,
		Price:       price,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Save(ctx, lesson); err != nil {
		zap.L().Error("can't save lesson", zap.Error(err))
		return nil, err
	}
	return lesson, nil
}

func (s *Service) GetLesson(ctx context.Context, id string) (*domain.Lesson, error) {
	lesson, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("can't get lesson", zap.Error(err))
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	return lesson, nil
}

func (s *Service) ListLessons(ctx context.Context) ([]domain.Lesson, error) {
	lessons, err := s.repo.FindAll(ctx)
	if err != nil {
		zap.L().Error("can't list lessons", zap.Error(err))
		return nil, err
	}
	return lessons, nil
}
