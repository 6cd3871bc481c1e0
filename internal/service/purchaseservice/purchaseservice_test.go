package purchaseservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teachniche/marketplace/internal/config"
	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/gateway"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockPurchaseRepo, *MockLessonRepo, *MockGateway) {
	ctrl := gomock.NewController(t)
	purchaseRepo := NewMockPurchaseRepo(ctrl)
	lessonRepo := NewMockLessonRepo(ctrl)
	gw := NewMockGateway(ctrl)
	cfg := &config.Config{
		PlatformFeePercent: 15,
		Currency:           "usd",
		BaseURL:            "http://localhost:8080",
	}
	service := New(purchaseRepo, lessonRepo, gw, cfg)
	defer ctrl.Finish()
	return service, purchaseRepo, lessonRepo, gw
}

func TestVerifySession(t *testing.T) {
	service, _, _, gw := NewMock(t)
	tests := []struct {
		name           string
		sessionID      string
		prepareMock    func()
		expectedResult *VerificationResult
		expectedError  string
	}{
		{
			name:      "Paid session with metadata",
			sessionID: "cs_test_123",
			prepareMock: func() {
				gw.EXPECT().RetrieveSession(gomock.Any(), "cs_test_123").Return(&gateway.CheckoutSession{
					ID:            "cs_test_123",
					PaymentStatus: gateway.PaymentStatusPaid,
					Metadata:      map[string]string{"lessonId": "lesson-123", "userId": "user-123"},
					AmountTotal:   10,
				}, nil)
			},
			expectedResult: &VerificationResult{
				IsPaid:   true,
				Amount:   10,
				LessonID: "lesson-123",
				UserID:   "user-123",
			},
		},
		{
			name:      "Empty metadata falls back to client reference ID",
			sessionID: "cs_test_123",
			prepareMock: func() {
				gw.EXPECT().RetrieveSession(gomock.Any(), "cs_test_123").Return(&gateway.CheckoutSession{
					ID:                "cs_test_123",
					PaymentStatus:     gateway.PaymentStatusPaid,
					Metadata:          map[string]string{},
					ClientReferenceID: "lesson_lesson-123_user_user-123",
					AmountTotal:       10,
				}, nil)
			},
			expectedResult: &VerificationResult{
				IsPaid:   true,
				Amount:   10,
				LessonID: "lesson-123",
				UserID:   "user-123",
			},
		},
		{
			name:      "Unpaid session",
			sessionID: "cs_test_456",
			prepareMock: func() {
				gw.EXPECT().RetrieveSession(gomock.Any(), "cs_test_456").Return(&gateway.CheckoutSession{
					ID:            "cs_test_456",
					PaymentStatus: "unpaid",
					Metadata:      map[string]string{"lessonId": "lesson-123", "userId": "user-123"},
					AmountTotal:   10,
				}, nil)
			},
			expectedResult: &VerificationResult{
				IsPaid:   false,
				Amount:   10,
				LessonID: "lesson-123",
				UserID:   "user-123",
			},
		},
		{
			name:      "No purchase coordinates at all",
			sessionID: "cs_test_789",
			prepareMock: func() {
				gw.EXPECT().RetrieveSession(gomock.Any(), "cs_test_789").Return(&gateway.CheckoutSession{
					ID:            "cs_test_789",
					PaymentStatus: gateway.PaymentStatusPaid,
					Metadata:      map[string]string{},
				}, nil)
			},
			expectedError: "error verifying session",
		},
		{
			name:      "Gateway error is wrapped",
			sessionID: "cs_test_err",
			prepareMock: func() {
				gw.EXPECT().RetrieveSession(gomock.Any(), "cs_test_err").Return(nil, errors.New("stripe unavailable"))
			},
			expectedError: "error verifying session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			result, err := service.VerifySession(context.Background(), tt.sessionID)
			if tt.expectedError != "" {
				assert.ErrorContains(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestCreatePurchase(t *testing.T) {
	service, purchaseRepo, lessonRepo, _ := NewMock(t)

	completed := &domain.Purchase{ID: "purchase-1", Status: StatusCompleted}
	pendingBySession := &domain.Purchase{ID: "purchase-2", Status: StatusPending}

	tests := []struct {
		name          string
		data          CreatePurchaseData
		prepareMock   func()
		expectedID    string
		expectedError error
	}{
		{
			name: "Completed purchase short-circuits",
			data: CreatePurchaseData{LessonID: "lesson-123", UserID: "user-123", StripeSessionID: "cs_1"},
			prepareMock: func() {
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(completed, nil)
			},
			expectedID: "purchase-1",
		},
		{
			name: "Session-matched row reused by client flow",
			data: CreatePurchaseData{LessonID: "lesson-123", UserID: "user-123", StripeSessionID: "cs_1"},
			prepareMock: func() {
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(nil, nil)
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_1").Return(pendingBySession, nil)
			},
			expectedID: "purchase-2",
		},
		{
			name: "Webhook completes session-matched pending row in place",
			data: CreatePurchaseData{LessonID: "lesson-123", UserID: "user-123", StripeSessionID: "cs_1", FromWebhook: true},
			prepareMock: func() {
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(nil, nil)
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_1").Return(pendingBySession, nil)
				purchaseRepo.EXPECT().UpdateStatus(gomock.Any(), "purchase-2", StatusCompleted).Return(nil)
			},
			expectedID: "purchase-2",
		},
		{
			name: "New purchase inserted with fee split",
			data: CreatePurchaseData{LessonID: "lesson-123", UserID: "user-123", Amount: 100, StripeSessionID: "cs_2"},
			prepareMock: func() {
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(nil, nil)
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_2").Return(nil, nil)
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(&domain.Lesson{ID: "lesson-123", CreatorID: "creator-123", Price: 100}, nil)
				purchaseRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Purchase) error {
					assert.Equal(t, StatusPending, p.Status)
					assert.Equal(t, 15.0, p.PlatformFee)
					assert.Equal(t, 85.0, p.CreatorEarnings)
					assert.Equal(t, "creator-123", p.CreatorID)
					assert.NotEmpty(t, p.ID)
					return nil
				})
			},
		},
		{
			name: "Webhook-origin insert is completed immediately",
			data: CreatePurchaseData{LessonID: "lesson-123", UserID: "user-123", Amount: 100, StripeSessionID: "cs_3", FromWebhook: true},
			prepareMock: func() {
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(nil, nil)
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_3").Return(nil, nil)
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(&domain.Lesson{ID: "lesson-123", CreatorID: "creator-123", Price: 100}, nil)
				purchaseRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Purchase) error {
					assert.Equal(t, StatusCompleted, p.Status)
					return nil
				})
			},
		},
		{
			name: "Lesson not found",
			data: CreatePurchaseData{LessonID: "missing", UserID: "user-123", StripeSessionID: "cs_4"},
			prepareMock: func() {
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "missing").Return(nil, nil)
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_4").Return(nil, nil)
				lessonRepo.EXPECT().FindByID(gomock.Any(), "missing").Return(nil, nil)
			},
			expectedError: ErrLessonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			id, err := service.CreatePurchase(context.Background(), tt.data)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			if tt.expectedID != "" {
				assert.Equal(t, tt.expectedID, id)
			} else {
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestNoDoublePurchase(t *testing.T) {
	service, purchaseRepo, _, _ := NewMock(t)

	completed := &domain.Purchase{ID: "purchase-1", Status: StatusCompleted}
	data := CreatePurchaseData{LessonID: "lesson-123", UserID: "user-123", StripeSessionID: "cs_1"}

	purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(completed, nil).Times(2)

	first, err := service.CreatePurchase(context.Background(), data)
	assert.NoError(t, err)
	second, err := service.CreatePurchase(context.Background(), data)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUpdatePurchaseStatus(t *testing.T) {
	service, purchaseRepo, _, _ := NewMock(t)

	tests := []struct {
		name          string
		referenceID   string
		status        string
		prepareMock   func()
		expectedID    string
		expectedError error
	}{
		{
			name:        "Found by session ID",
			referenceID: "cs_test_123",
			status:      StatusCompleted,
			prepareMock: func() {
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_test_123").Return(&domain.Purchase{ID: "purchase-1", Status: StatusPending}, nil)
				purchaseRepo.EXPECT().UpdateStatus(gomock.Any(), "purchase-1", StatusCompleted).Return(nil)
			},
			expectedID: "purchase-1",
		},
		{
			name:        "Falls through to payment intent ID",
			referenceID: "pi_test_123",
			status:      StatusCompleted,
			prepareMock: func() {
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "pi_test_123").Return(nil, nil)
				purchaseRepo.EXPECT().FindByPaymentIntentID(gomock.Any(), "pi_test_123").Return(&domain.Purchase{ID: "purchase-2", Status: StatusPending}, nil)
				purchaseRepo.EXPECT().UpdateStatus(gomock.Any(), "purchase-2", StatusCompleted).Return(nil)
			},
			expectedID: "purchase-2",
		},
		{
			name:        "Already at target status is a no-op",
			referenceID: "cs_test_123",
			status:      StatusCompleted,
			prepareMock: func() {
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_test_123").Return(&domain.Purchase{ID: "purchase-1", Status: StatusCompleted}, nil)
			},
			expectedID: "purchase-1",
		},
		{
			name:        "No purchase by either key",
			referenceID: "cs_unknown",
			status:      StatusCompleted,
			prepareMock: func() {
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_unknown").Return(nil, nil)
				purchaseRepo.EXPECT().FindByPaymentIntentID(gomock.Any(), "cs_unknown").Return(nil, nil)
			},
			expectedError: ErrPurchaseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			id, err := service.UpdatePurchaseStatus(context.Background(), tt.referenceID, tt.status)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestIdempotentCompletion(t *testing.T) {
	service, purchaseRepo, _, _ := NewMock(t)

	pending := &domain.Purchase{ID: "purchase-1", Status: StatusPending}
	completed := &domain.Purchase{ID: "purchase-1", Status: StatusCompleted}

	purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_1").Return(pending, nil)
	purchaseRepo.EXPECT().UpdateStatus(gomock.Any(), "purchase-1", StatusCompleted).Return(nil)
	purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_1").Return(completed, nil)

	first, err := service.UpdatePurchaseStatus(context.Background(), "cs_1", StatusCompleted)
	assert.NoError(t, err)
	second, err := service.UpdatePurchaseStatus(context.Background(), "cs_1", StatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCheckLessonAccess(t *testing.T) {
	service, purchaseRepo, lessonRepo, _ := NewMock(t)

	purchaseDate := time.Now().Add(-time.Hour)

	tests := []struct {
		name           string
		prepareMock    func()
		expectedResult *AccessResult
		expectedError  error
	}{
		{
			name: "Free lesson grants access without purchase lookup",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(&domain.Lesson{ID: "lesson-123", CreatorID: "creator-123", Price: 0}, nil)
			},
			expectedResult: &AccessResult{HasAccess: true, PurchaseStatus: StatusNone},
		},
		{
			name: "Creator always has access",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(&domain.Lesson{ID: "lesson-123", CreatorID: "user-123", Price: 50}, nil)
			},
			expectedResult: &AccessResult{HasAccess: true, PurchaseStatus: StatusNone},
		},
		{
			name: "Completed purchase grants access",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(&domain.Lesson{ID: "lesson-123", CreatorID: "creator-123", Price: 50}, nil)
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(&domain.Purchase{ID: "purchase-1", Status: StatusCompleted, CreatedAt: purchaseDate}, nil)
			},
			expectedResult: &AccessResult{HasAccess: true, PurchaseStatus: StatusCompleted, PurchaseDate: &purchaseDate},
		},
		{
			name: "Pending purchase denies access but reports status",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(&domain.Lesson{ID: "lesson-123", CreatorID: "creator-123", Price: 50}, nil)
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(&domain.Purchase{ID: "purchase-1", Status: StatusPending, CreatedAt: purchaseDate}, nil)
			},
			expectedResult: &AccessResult{HasAccess: false, PurchaseStatus: StatusPending, PurchaseDate: &purchaseDate},
		},
		{
			name: "No purchase",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(&domain.Lesson{ID: "lesson-123", CreatorID: "creator-123", Price: 50}, nil)
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(nil, nil)
			},
			expectedResult: &AccessResult{HasAccess: false, PurchaseStatus: StatusNone},
		},
		{
			name: "Lesson missing",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(nil, nil)
			},
			expectedError: ErrLessonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			result, err := service.CheckLessonAccess(context.Background(), "user-123", "lesson-123")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestCheckout(t *testing.T) {
	service, purchaseRepo, lessonRepo, gw := NewMock(t)

	lesson := &domain.Lesson{ID: "lesson-123", CreatorID: "creator-123", Title: "Kendama basics", Price: 100}

	tests := []struct {
		name           string
		userID         string
		price          float64
		prepareMock    func()
		expectedResult *CheckoutResult
		expectedError  error
	}{
		{
			name:   "Successful checkout",
			userID: "user-123",
			price:  100,
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				// access check inside Checkout
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(nil, nil)
				purchaseRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				gw.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p gateway.CheckoutParams) (*gateway.CheckoutSession, error) {
					assert.Equal(t, "lesson-123", p.LessonID)
					assert.Equal(t, "user-123", p.UserID)
					assert.Equal(t, "lesson_lesson-123_user_user-123", p.ClientReferenceID)
					assert.NotEmpty(t, p.PurchaseID)
					return &gateway.CheckoutSession{ID: "cs_new", URL: "https://checkout.example/cs_new", PaymentIntentID: "pi_new"}, nil
				})
				purchaseRepo.EXPECT().UpdateSessionRefs(gomock.Any(), gomock.Any(), "cs_new", "pi_new").Return(nil)
			},
			expectedResult: &CheckoutResult{SessionID: "cs_new", URL: "https://checkout.example/cs_new"},
		},
		{
			name:   "Price mismatch",
			userID: "user-123",
			price:  42,
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
			},
			expectedError: ErrPriceMismatch,
		},
		{
			name:   "Creator cannot buy own lesson",
			userID: "creator-123",
			price:  100,
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
			},
			expectedError: ErrOwnLesson,
		},
		{
			name:   "Already owned",
			userID: "user-123",
			price:  100,
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(&domain.Purchase{ID: "purchase-1", Status: StatusCompleted, CreatedAt: time.Now()}, nil)
			},
			expectedError: ErrAlreadyOwned,
		},
		{
			name:   "Lesson not found",
			userID: "user-123",
			price:  100,
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(nil, nil)
			},
			expectedError: ErrLessonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			result, err := service.Checkout(context.Background(), tt.userID, "lesson-123", tt.price)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestCheckPurchase(t *testing.T) {
	service, purchaseRepo, lessonRepo, gw := NewMock(t)

	lesson := &domain.Lesson{ID: "lesson-123", CreatorID: "creator-123", Price: 100}

	tests := []struct {
		name            string
		sessionID       string
		prepareMock     func()
		expectedAccess  bool
		expectedStatus  string
		expectedMessage string
	}{
		{
			name: "Existing completed purchase",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(&domain.Purchase{ID: "purchase-1", Status: StatusCompleted, CreatedAt: time.Now()}, nil)
			},
			expectedAccess: true,
			expectedStatus: StatusCompleted,
		},
		{
			name:      "Paid redirect session creates purchase and grants access",
			sessionID: "cs_test_123",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(nil, nil)
				gw.EXPECT().RetrieveSession(gomock.Any(), "cs_test_123").Return(&gateway.CheckoutSession{
					ID:            "cs_test_123",
					PaymentStatus: gateway.PaymentStatusPaid,
					Metadata:      map[string]string{"lessonId": "lesson-123", "userId": "user-123"},
					AmountTotal:   100,
				}, nil)
				// CreatePurchase flow
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(nil, nil)
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_test_123").Return(nil, nil)
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				purchaseRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedAccess:  true,
			expectedStatus:  StatusCompleted,
			expectedMessage: "access granted based on gateway verification",
		},
		{
			name: "Stale pending purchase verified as paid gets completed",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				pending := &domain.Purchase{ID: "purchase-1", Status: StatusPending, StripeSessionID: "cs_old", CreatedAt: time.Now().Add(-time.Hour)}
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(pending, nil).Times(2)
				gw.EXPECT().RetrieveSession(gomock.Any(), "cs_old").Return(&gateway.CheckoutSession{
					ID:            "cs_old",
					PaymentStatus: gateway.PaymentStatusPaid,
					Metadata:      map[string]string{"lessonId": "lesson-123", "userId": "user-123"},
					AmountTotal:   100,
				}, nil)
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_old").Return(pending, nil)
				purchaseRepo.EXPECT().UpdateStatus(gomock.Any(), "purchase-1", StatusCompleted).Return(nil)
			},
			expectedAccess:  true,
			expectedStatus:  StatusCompleted,
			expectedMessage: "purchase completed based on gateway verification",
		},
		{
			name: "Recent pending purchase granted on trust when update fails",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				pending := &domain.Purchase{ID: "purchase-1", Status: StatusPending, StripeSessionID: "cs_recent", CreatedAt: time.Now().Add(-time.Minute)}
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(pending, nil).Times(2)
				gw.EXPECT().RetrieveSession(gomock.Any(), "cs_recent").Return(nil, errors.New("stripe unavailable"))
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_recent").Return(nil, errors.New("db down"))
			},
			expectedAccess:  true,
			expectedStatus:  StatusCompleted,
			expectedMessage: "access granted based on recent purchase",
		},
		{
			name: "Old pending purchase stays pending when update fails",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				pending := &domain.Purchase{ID: "purchase-1", Status: StatusPending, StripeSessionID: "cs_stale", CreatedAt: time.Now().Add(-time.Hour)}
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(pending, nil).Times(2)
				gw.EXPECT().RetrieveSession(gomock.Any(), "cs_stale").Return(nil, errors.New("stripe unavailable"))
				purchaseRepo.EXPECT().FindBySessionID(gomock.Any(), "cs_stale").Return(nil, errors.New("db down"))
			},
			expectedAccess:  false,
			expectedStatus:  StatusPending,
			expectedMessage: "purchase is still pending",
		},
		{
			name: "No purchase at all",
			prepareMock: func() {
				lessonRepo.EXPECT().FindByID(gomock.Any(), "lesson-123").Return(lesson, nil)
				purchaseRepo.EXPECT().FindLatestByUserAndLesson(gomock.Any(), "user-123", "lesson-123").Return(nil, nil).Times(2)
			},
			expectedAccess: false,
			expectedStatus: StatusNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			result, err := service.CheckPurchase(context.Background(), "user-123", "lesson-123", tt.sessionID)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedAccess, result.HasAccess)
			assert.Equal(t, tt.expectedStatus, result.PurchaseStatus)
			assert.Equal(t, tt.expectedMessage, result.Message)
		})
	}
}

func TestGetPurchasesByUserID(t *testing.T) {
	service, purchaseRepo, _, _ := NewMock(t)

	expected := []domain.Purchase{{ID: "purchase-1"}, {ID: "purchase-2"}}
	purchaseRepo.EXPECT().FindByUserID(gomock.Any(), "user-123").Return(expected, nil)

	purchases, err := service.GetPurchasesByUserID(context.Background(), "user-123")
	assert.NoError(t, err)
	assert.Equal(t, expected, purchases)

	purchaseRepo.EXPECT().FindByUserID(gomock.Any(), "user-123").Return(nil, errors.New("db error"))
	purchases, err = service.GetPurchasesByUserID(context.Background(), "user-123")
	assert.Error(t, err)
	assert.Nil(t, purchases)
}
