package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/teachniche/marketplace/docs"
	"github.com/teachniche/marketplace/internal/config"
	authhandlers "github.com/teachniche/marketplace/internal/handlers/auth"
	lessonhandlers "github.com/teachniche/marketplace/internal/handlers/lessons"
	purchasehandlers "github.com/teachniche/marketplace/internal/handlers/purchases"
	webhookhandlers "github.com/teachniche/marketplace/internal/handlers/webhooks"
	"github.com/teachniche/marketplace/internal/service"
	"github.com/teachniche/marketplace/internal/service/purchaseservice"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:     authhandlers.NewMockService(ctrl),
		LessonService:   lessonhandlers.NewMockService(ctrl),
		PurchaseService: purchaseservice.New(nil, nil, nil, &config.Config{}),
		EarningsService: purchasehandlers.NewMockEarningsService(ctrl),
		WebhookService:  webhookhandlers.NewMockService(ctrl),
	}

	h := New(services, webhookhandlers.NewMockVerifier(ctrl))
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockLessonHandler := NewMockLessonHandler(ctrl)
	mockPurchaseHandler := NewMockPurchaseHandler(ctrl)
	mockWebhookHandler := NewMockWebhookHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockLessonHandler.EXPECT().CreateLesson(gomock.Any(), gomock.Any()).AnyTimes()
	mockLessonHandler.EXPECT().GetLesson(gomock.Any(), gomock.Any()).AnyTimes()
	mockLessonHandler.EXPECT().ListLessons(gomock.Any(), gomock.Any()).AnyTimes()
	mockPurchaseHandler.EXPECT().Purchase(gomock.Any(), gomock.Any()).AnyTimes()
	mockPurchaseHandler.EXPECT().CheckPurchase(gomock.Any(), gomock.Any()).AnyTimes()
	mockPurchaseHandler.EXPECT().GetPurchases(gomock.Any(), gomock.Any()).AnyTimes()
	mockPurchaseHandler.EXPECT().GetEarnings(gomock.Any(), gomock.Any()).AnyTimes()
	mockWebhookHandler.EXPECT().HandleStripeWebhook(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:     mockAuthHandler,
		LessonHandler:   mockLessonHandler,
		PurchaseHandler: mockPurchaseHandler,
		WebhookHandler:  mockWebhookHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"GET", "/api/user/purchases", http.StatusUnauthorized},
		{"GET", "/api/user/earnings", http.StatusUnauthorized},
		{"GET", "/api/lessons/", http.StatusOK},
		{"GET", "/api/lessons/lesson-123", http.StatusOK},
		{"POST", "/api/lessons/", http.StatusUnauthorized},
		{"POST", "/api/lessons/purchase", http.StatusUnauthorized},
		{"POST", "/api/lessons/check-purchase", http.StatusUnauthorized},
		{"POST", "/api/webhooks/stripe", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
