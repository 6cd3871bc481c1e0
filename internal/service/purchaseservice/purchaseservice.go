package purchaseservice

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/teachniche/marketplace/internal/config"
	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/gateway"
	"github.com/teachniche/marketplace/internal/metrics"
	"github.com/teachniche/marketplace/pkg/fees"
	"go.uber.org/zap"
)

type PurchaseRepo interface {
	FindByID(ctx context.Context, id string) (*domain.Purchase, error)
	FindLatestByUserAndLesson(ctx context.Context, userID, lessonID string) (*domain.Purchase, error)
	FindBySessionID(ctx context.Context, sessionID string) (*domain.Purchase, error)
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Purchase, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Purchase, error)
	Save(ctx context.Context, purchase *domain.Purchase) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateSessionRefs(ctx context.Context, id, sessionID, paymentIntentID string) error
}

type LessonRepo interface {
	FindByID(ctx context.Context, id string) (*domain.Lesson, error)
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params gateway.CheckoutParams) (*gateway.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*gateway.CheckoutSession, error)
}

const (
	// StatusPending awaits gateway confirmation.
	StatusPending string = "pending"
	// StatusCompleted grants lesson access.
	StatusCompleted string = "completed"
	// StatusFailed marks an abandoned or declined attempt.
	StatusFailed string = "failed"
	// StatusRefunded revokes a completed purchase.
	StatusRefunded string = "refunded"
	// StatusNone is reported when no purchase record applies.
	StatusNone string = "none"
)

// recencyWindow is how long after creation a pending purchase is granted
// access on trust while the webhook may still be in flight.
const recencyWindow = 5 * time.Minute

var (
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrPurchaseNotFound = errors.New("no purchase found")
	ErrPriceMismatch    = errors.New("price mismatch")
	ErrOwnLesson        = errors.New("you cannot purchase your own lesson")
	ErrAlreadyOwned     = errors.New("you already have access to this lesson")
)

var refIDPattern = regexp.MustCompile(`lesson_([^_]+)_user_([^_]+)`)

type Service struct {
	purchaseRepo PurchaseRepo
	lessonRepo   LessonRepo
	gateway      Gateway
	feePercent   float64
	currency     string
	baseURL      string
}

func New(purchaseRepo PurchaseRepo, lessonRepo LessonRepo, gw Gateway, cfg *config.Config) *Service {
	return &Service{
		purchaseRepo: purchaseRepo,
		lessonRepo:   lessonRepo,
		gateway:      gw,
		feePercent:   cfg.PlatformFeePercent,
		currency:     cfg.Currency,
		baseURL:      cfg.BaseURL,
	}
}

type VerificationResult struct {
	IsPaid   bool
	Amount   float64
	LessonID string
	UserID   string
}

// VerifySession asks the gateway for the current state of a checkout session
// and extracts the purchase coordinates from it. Read-only.
func (s *Service) VerifySession(ctx context.Context, sessionID string) (*VerificationResult, error) {
	session, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error verifying session: %w", err)
	}

	isPaid := session.PaymentStatus == gateway.PaymentStatusPaid ||
		session.PaymentStatus == gateway.PaymentStatusNoPaymentRequired

	lessonID := session.Metadata["lessonId"]
	userID := session.Metadata["userId"]
	if (lessonID == "" || userID == "") && session.ClientReferenceID != "" {
		if m := refIDPattern.FindStringSubmatch(session.ClientReferenceID); m != nil {
			lessonID = m[1]
			userID = m[2]
		}
	}
	if lessonID == "" || userID == "" {
		return nil, fmt.Errorf("error verifying session: missing lesson or user ID in session %s", sessionID)
	}

	return &VerificationResult{
		IsPaid:   isPaid,
		Amount:   session.AmountTotal,
		LessonID: lessonID,
		UserID:   userID,
	}, nil
}

type CreatePurchaseData struct {
	LessonID        string
	UserID          string
	Amount          float64
	StripeSessionID string
	PaymentIntentID string
	FromWebhook     bool
}

// CreatePurchase records a purchase attempt. A completed purchase for the
// same (user, lesson) pair is authoritative and returned as-is; a row already
// keyed by the same session ID is reused so that the client flow and the
// webhook converge on one record instead of duplicating it.
func (s *Service) CreatePurchase(ctx context.Context, data CreatePurchaseData) (string, error) {
	existing, err := s.purchaseRepo.FindLatestByUserAndLesson(ctx, data.UserID, data.LessonID)
	if err != nil {
		return "", fmt.Errorf("error checking existing purchases: %w", err)
	}
	if existing != nil && existing.Status == StatusCompleted {
		return existing.ID, nil
	}

	bySession, err := s.purchaseRepo.FindBySessionID(ctx, data.StripeSessionID)
	if err != nil {
		return "", fmt.Errorf("error checking session purchases: %w", err)
	}
	if bySession != nil {
		if bySession.Status == StatusCompleted || !data.FromWebhook {
			return bySession.ID, nil
		}
		if err := s.purchaseRepo.UpdateStatus(ctx, bySession.ID, StatusCompleted); err != nil {
			return "", fmt.Errorf("error updating purchase: %w", err)
		}
		return bySession.ID, nil
	}

	lesson, err := s.lessonRepo.FindByID(ctx, data.LessonID)
	if err != nil {
		return "", fmt.Errorf("error fetching lesson: %w", err)
	}
	if lesson == nil {
		return "", ErrLessonNotFound
	}

	split := fees.Calculate(data.Amount, s.feePercent)
	status := StatusPending
	if data.FromWebhook {
		status = StatusCompleted
	}

	now := time.Now()
	purchase := &domain.Purchase{
		ID:              uuid.NewString(),
		UserID:          data.UserID,
		LessonID:        data.LessonID,
		CreatorID:       lesson.CreatorID,
		Amount:          data.Amount,
		PlatformFee:     split.PlatformFee,
		CreatorEarnings: split.CreatorEarnings,
		FeePercentage:   s.feePercent,
		StripeSessionID: data.StripeSessionID,
		PaymentIntentID: data.PaymentIntentID,
		Status:          status,
		Metadata:        map[string]any{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return "", fmt.Errorf("error creating purchase: %w", err)
	}
	return purchase.ID, nil
}

// UpdatePurchaseStatus resolves a purchase by either gateway correlation key
// and moves it to the requested status. The session ID is tried first, then
// the payment intent ID; which one matches depends on which gateway event got
// there first. Repeated calls with the same status are no-ops.
func (s *Service) UpdatePurchaseStatus(ctx context.Context, referenceID, status string) (string, error) {
	purchase, err := s.purchaseRepo.FindBySessionID(ctx, referenceID)
	if err != nil {
		return "", fmt.Errorf("error finding purchase by session ID: %w", err)
	}
	if purchase == nil {
		purchase, err = s.purchaseRepo.FindByPaymentIntentID(ctx, referenceID)
		if err != nil {
			return "", fmt.Errorf("error finding purchase by payment intent ID: %w", err)
		}
	}
	if purchase == nil {
		return "", fmt.Errorf("%w for reference ID: %s", ErrPurchaseNotFound, referenceID)
	}

	if purchase.Status == status {
		return purchase.ID, nil
	}

	if err := s.purchaseRepo.UpdateStatus(ctx, purchase.ID, status); err != nil {
		return "", fmt.Errorf("error updating purchase status: %w", err)
	}
	if status == StatusCompleted {
		metrics.PurchasesCompleted.Inc()
	}
	return purchase.ID, nil
}

type AccessResult struct {
	HasAccess      bool
	PurchaseStatus string
	PurchaseDate   *time.Time
}

// CheckLessonAccess decides whether a user may open a lesson. Free lessons
// and the creator's own lessons are resolved before any purchase lookup.
func (s *Service) CheckLessonAccess(ctx context.Context, userID, lessonID string) (*AccessResult, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("error fetching lesson: %w", err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	if lesson.Price == 0 {
		return &AccessResult{HasAccess: true, PurchaseStatus: StatusNone}, nil
	}
	if lesson.CreatorID == userID {
		return &AccessResult{HasAccess: true, PurchaseStatus: StatusNone}, nil
	}

	latest, err := s.purchaseRepo.FindLatestByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("error fetching purchases: %w", err)
	}
	if latest == nil {
		return &AccessResult{HasAccess: false, PurchaseStatus: StatusNone}, nil
	}

	date := latest.CreatedAt
	return &AccessResult{
		HasAccess:      latest.Status == StatusCompleted,
		PurchaseStatus: latest.Status,
		PurchaseDate:   &date,
	}, nil
}

type CheckoutResult struct {
	SessionID string
	URL       string
}

// Checkout validates the purchase request, records a pending purchase and
// opens a gateway checkout session pointing back at it.
func (s *Service) Checkout(ctx context.Context, userID, lessonID string, price float64) (*CheckoutResult, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("error fetching lesson: %w", err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	if lesson.Price != price {
		return nil, ErrPriceMismatch
	}
	if lesson.CreatorID == userID {
		return nil, ErrOwnLesson
	}

	access, err := s.CheckLessonAccess(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if access.HasAccess {
		return nil, ErrAlreadyOwned
	}

	split := fees.Calculate(price, s.feePercent)
	now := time.Now()
	purchase := &domain.Purchase{
		ID:              uuid.NewString(),
		UserID:          userID,
		LessonID:        lessonID,
		CreatorID:       lesson.CreatorID,
		Amount:          price,
		PlatformFee:     split.PlatformFee,
		CreatorEarnings: split.CreatorEarnings,
		FeePercentage:   s.feePercent,
		Status:          StatusPending,
		Metadata:        map[string]any{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, fmt.Errorf("error creating purchase: %w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, gateway.CheckoutParams{
		LessonID:          lessonID,
		UserID:            userID,
		PurchaseID:        purchase.ID,
		CreatorID:         lesson.CreatorID,
		Title:             lesson.Title,
		Description:       "Access to lesson: " + lesson.Title,
		Amount:            price,
		Currency:          s.currency,
		SuccessURL:        s.baseURL + "/lessons/" + lessonID + "?purchase=success&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         s.baseURL + "/lessons/" + lessonID + "?purchase=canceled",
		ClientReferenceID: fmt.Sprintf("lesson_%s_user_%s", lessonID, userID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	if err := s.purchaseRepo.UpdateSessionRefs(ctx, purchase.ID, session.ID, session.PaymentIntentID); err != nil {
		// The session exists either way; the webhook can still correlate via
		// metadata, so the checkout proceeds.
		zap.L().Error("can't attach session refs to purchase", zap.String("purchaseID", purchase.ID), zap.Error(err))
	}

	metrics.CheckoutSessionsCreated.Inc()
	return &CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

type CheckResult struct {
	HasAccess      bool
	PurchaseStatus string
	PurchaseDate   *time.Time
	Message        string
}

// CheckPurchase is the client-facing access check. On top of the plain access
// decision it can reconcile directly against the gateway: a session ID from
// the success redirect is verified immediately, and a stale pending purchase
// is re-verified. A very recent pending purchase is granted access on trust
// because the webhook may simply not have landed yet.
func (s *Service) CheckPurchase(ctx context.Context, userID, lessonID, sessionID string) (*CheckResult, error) {
	access, err := s.CheckLessonAccess(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if access.HasAccess {
		return &CheckResult{
			HasAccess:      true,
			PurchaseStatus: access.PurchaseStatus,
			PurchaseDate:   access.PurchaseDate,
		}, nil
	}

	if sessionID != "" {
		verification, err := s.VerifySession(ctx, sessionID)
		if err != nil {
			zap.L().Error("can't verify session with gateway", zap.String("sessionID", sessionID), zap.Error(err))
		} else if verification.IsPaid {
			if _, err := s.CreatePurchase(ctx, CreatePurchaseData{
				LessonID:        lessonID,
				UserID:          userID,
				Amount:          verification.Amount,
				StripeSessionID: sessionID,
			}); err != nil {
				zap.L().Error("can't create purchase from verification", zap.Error(err))
			}
			now := time.Now()
			return &CheckResult{
				HasAccess:      true,
				PurchaseStatus: StatusCompleted,
				PurchaseDate:   &now,
				Message:        "access granted based on gateway verification",
			}, nil
		}
	}

	latest, err := s.purchaseRepo.FindLatestByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("error fetching purchases: %w", err)
	}
	if latest == nil {
		return &CheckResult{HasAccess: false, PurchaseStatus: StatusNone}, nil
	}

	date := latest.CreatedAt
	if latest.Status == StatusCompleted {
		return &CheckResult{HasAccess: true, PurchaseStatus: StatusCompleted, PurchaseDate: &date}, nil
	}

	if latest.Status == StatusPending && latest.StripeSessionID != "" {
		verification, err := s.VerifySession(ctx, latest.StripeSessionID)
		if err == nil && verification.IsPaid {
			if _, err := s.UpdatePurchaseStatus(ctx, latest.StripeSessionID, StatusCompleted); err != nil {
				zap.L().Error("can't complete verified purchase", zap.Error(err))
			}
			return &CheckResult{
				HasAccess:      true,
				PurchaseStatus: StatusCompleted,
				PurchaseDate:   &date,
				Message:        "purchase completed based on gateway verification",
			}, nil
		}

		if _, err := s.UpdatePurchaseStatus(ctx, latest.StripeSessionID, StatusCompleted); err != nil {
			if time.Since(latest.CreatedAt) < recencyWindow {
				return &CheckResult{
					HasAccess:      true,
					PurchaseStatus: StatusCompleted,
					PurchaseDate:   &date,
					Message:        "access granted based on recent purchase",
				}, nil
			}
			return &CheckResult{
				HasAccess:      false,
				PurchaseStatus: StatusPending,
				Message:        "purchase is still pending",
			}, nil
		}
		return &CheckResult{
			HasAccess:      true,
			PurchaseStatus: StatusCompleted,
			PurchaseDate:   &date,
			Message:        "purchase status updated to completed",
		}, nil
	}

	return &CheckResult{HasAccess: false, PurchaseStatus: latest.Status, PurchaseDate: &date}, nil
}

func (s *Service) GetPurchasesByUserID(ctx context.Context, userID string) ([]domain.Purchase, error) {
	purchases, err := s.purchaseRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch purchases", zap.Error(err))
		return nil, err
	}
	return purchases, nil
}
