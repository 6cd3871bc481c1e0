package purchases

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/dto"
	"github.com/teachniche/marketplace/internal/service/earningsservice"
	"github.com/teachniche/marketplace/internal/service/purchaseservice"
	"github.com/teachniche/marketplace/pkg/auth"
	"github.com/teachniche/marketplace/pkg/utils"
)

type Service interface {
	Checkout(ctx context.Context, userID, lessonID string, price float64) (*purchaseservice.CheckoutResult, error)
	CheckPurchase(ctx context.Context, userID, lessonID, sessionID string) (*purchaseservice.CheckResult, error)
	GetPurchasesByUserID(ctx context.Context, userID string) ([]domain.Purchase, error)
}

type EarningsService interface {
	GetSummary(ctx context.Context, creatorID string) (*earningsservice.Summary, error)
}

type PurchaseHandler struct {
	purchaseService Service
	earningsService EarningsService
}

func New(purchaseService Service, earningsService EarningsService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		earningsService: earningsService,
	}
}

// Purchase godoc
//
//	@Summary		Start a lesson purchase
//	@Description	Validate the requested lesson and price, record a pending purchase and open a gateway checkout session for it.
//	@Tags			Purchases
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PurchaseRequestDTO	true	"Purchase request payload"
//	@Success		200		{object}	dto.PurchaseResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Lesson not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/lessons/purchase [post]
func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.LessonID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Lesson ID is required")
		return
	}

	result, err := h.purchaseService.Checkout(r.Context(), userID, req.LessonID, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, purchaseservice.ErrLessonNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Lesson not found")
		case errors.Is(err, purchaseservice.ErrPriceMismatch),
			errors.Is(err, purchaseservice.ErrOwnLesson),
			errors.Is(err, purchaseservice.ErrAlreadyOwned):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create checkout session")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PurchaseResponseDTO{
		SessionID: result.SessionID,
		URL:       result.URL,
	})
}

// CheckPurchase godoc
//
//	@Summary		Check lesson access
//	@Description	Decide whether the authenticated user may open a lesson. When a checkout session ID from the success redirect is supplied, the purchase state is reconciled against the gateway first.
//	@Tags			Purchases
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CheckPurchaseRequestDTO	true	"Access check payload"
//	@Success		200		{object}	dto.CheckPurchaseResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Lesson not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/lessons/check-purchase [post]
func (h *PurchaseHandler) CheckPurchase(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	var req dto.CheckPurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.LessonID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Lesson ID is required")
		return
	}

	result, err := h.purchaseService.CheckPurchase(r.Context(), userID, req.LessonID, req.SessionID)
	if err != nil {
		if errors.Is(err, purchaseservice.ErrLessonNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Lesson not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CheckPurchaseResponseDTO{
		HasAccess:      result.HasAccess,
		PurchaseStatus: result.PurchaseStatus,
		PurchaseDate:   result.PurchaseDate,
		Message:        result.Message,
	})
}

// GetPurchases godoc
//
//	@Summary		Get purchase history
//	@Description	Retrieve all purchase records of the authenticated user, newest first.
//	@Tags			Purchases
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.PurchaseHistoryResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/purchases [get]
func (h *PurchaseHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	purchases, err := h.purchaseService.GetPurchasesByUserID(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.PurchaseHistoryResponseDTO, 0, len(purchases))
	for _, purchase := range purchases {
		response = append(response, dto.PurchaseHistoryResponseDTO{
			ID:        purchase.ID,
			LessonID:  purchase.LessonID,
			Status:    purchase.Status,
			Amount:    purchase.Amount,
			CreatedAt: purchase.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetEarnings godoc
//
//	@Summary		Get creator earnings summary
//	@Description	Total, pending and paid earnings of the authenticated creator. Refund compensation records reduce the totals.
//	@Tags			Purchases
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.EarningsSummaryResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/earnings [get]
func (h *PurchaseHandler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(string)

	summary, err := h.earningsService.GetSummary(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.EarningsSummaryResponseDTO{
		Total:   summary.TotalEarnings,
		Pending: summary.PendingEarnings,
		Paid:    summary.PaidEarnings,
	})
}
