package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/teachniche/marketplace/docs"
	authhandlers "github.com/teachniche/marketplace/internal/handlers/auth"
	lessonhandlers "github.com/teachniche/marketplace/internal/handlers/lessons"
	purchasehandlers "github.com/teachniche/marketplace/internal/handlers/purchases"
	webhookhandlers "github.com/teachniche/marketplace/internal/handlers/webhooks"
	"github.com/teachniche/marketplace/internal/service"
	"github.com/teachniche/marketplace/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type LessonHandler interface {
	CreateLesson(w http.ResponseWriter, r *http.Request)
	GetLesson(w http.ResponseWriter, r *http.Request)
	ListLessons(w http.ResponseWriter, r *http.Request)
}

type PurchaseHandler interface {
	Purchase(w http.ResponseWriter, r *http.Request)
	CheckPurchase(w http.ResponseWriter, r *http.Request)
	GetPurchases(w http.ResponseWriter, r *http.Request)
	GetEarnings(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	HandleStripeWebhook(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	LessonHandler   LessonHandler
	PurchaseHandler PurchaseHandler
	WebhookHandler  WebhookHandler
}

func New(s *service.Services, verifier webhookhandlers.Verifier) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		LessonHandler:   lessonhandlers.New(s.LessonService),
		PurchaseHandler: purchasehandlers.New(s.PurchaseService, s.EarningsService),
		WebhookHandler:  webhookhandlers.New(s.WebhookService, verifier),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Get("/purchases", h.PurchaseHandler.GetPurchases)
				r.Get("/earnings", h.PurchaseHandler.GetEarnings)
			})
		})
		r.Route("/lessons", func(r chi.Router) {
			r.Get("/", h.LessonHandler.ListLessons)
			r.Get("/{id}", h.LessonHandler.GetLesson)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Post("/", h.LessonHandler.CreateLesson)
				r.Post("/purchase", h.PurchaseHandler.Purchase)
				r.Post("/check-purchase", h.PurchaseHandler.CheckPurchase)
			})
		})
		r.Post("/webhooks/stripe", h.WebhookHandler.HandleStripeWebhook)
	})

	return r
}
