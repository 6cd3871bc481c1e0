package lessons

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/dto"
	"github.com/teachniche/marketplace/internal/service/lessonservice"
	"github.com/teachniche/marketplace/pkg/auth"
	"github.com/teachniche/marketplace/pkg/utils"
)

type Service interface {
	CreateLesson(ctx context.Context, creatorID, title, description string, price float64) (*domain.Lesson, error)
	GetLesson(ctx context.Context, id string) (*domain.Lesson, error)
	ListLessons(ctx context.Context) ([]domain.Lesson, error)
}

type LessonHandler struct {
	lessonService Service
}

func New(lessonService Service) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
	}
}

// CreateLesson godoc
//
//	@Summary		Publish a new lesson
//	@Description	Create a lesson owned by the authenticated creator. A price of zero makes the lesson free for everyone.
//	@Tags			Lessons
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateLessonRequestDTO	true	"Lesson payload"
//	@Success		201		{object}	dto.LessonResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/lessons [post]
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.CreateLessonRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Price must not be negative")
		return
	}
	lesson, err := h.lessonService.CreateLesson(r.Context(), userID, req.Title, req.Description, req.Price)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toResponse(lesson))
}

// GetLesson godoc
//
//	@Summary		Get a lesson
//	@Description	Retrieve a single lesson by its identifier
//	@Tags			Lessons
//	@Produce		json
//	@Param			id	path		string	true	"Lesson ID"
//	@Success		200	{object}	dto.LessonResponseDTO
//	@Failure		404	{object}	utils.Response	"Lesson not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lesson, err := h.lessonService.GetLesson(r.Context(), id)
	if err != nil {
		if errors.Is(err, lessonservice.ErrLessonNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Lesson not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(lesson))
}

// ListLessons godoc
//
//	@Summary		List lessons
//	@Description	Retrieve the full lesson catalog
//	@Tags			Lessons
//	@Produce		json
//	@Success		200	{array}		dto.LessonResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/lessons [get]
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessonService.ListLessons(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.LessonResponseDTO, 0, len(lessons))
	for i := range lessons {
		response = append(response, toResponse(&lessons[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toResponse(lesson *domain.Lesson) dto.LessonResponseDTO {
	return dto.LessonResponseDTO{
		ID:          lesson.ID,
		CreatorID:   lesson.CreatorID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Price:       lesson.Price,
		CreatedAt:   lesson.CreatedAt,
	}
}
