package service

import (
	"github.com/teachniche/marketplace/internal/config"
	"github.com/teachniche/marketplace/internal/handlers/auth"
	"github.com/teachniche/marketplace/internal/handlers/lessons"
	"github.com/teachniche/marketplace/internal/handlers/purchases"
	"github.com/teachniche/marketplace/internal/handlers/webhooks"

	pkgauth "github.com/teachniche/marketplace/pkg/auth"

	"github.com/teachniche/marketplace/internal/repo"
	authservice "github.com/teachniche/marketplace/internal/service/authservice"
	earningsservice "github.com/teachniche/marketplace/internal/service/earningsservice"
	lessonservice "github.com/teachniche/marketplace/internal/service/lessonservice"
	purchaseservice "github.com/teachniche/marketplace/internal/service/purchaseservice"
	webhookservice "github.com/teachniche/marketplace/internal/service/webhookservice"
)

// Services bundles the business layer. PurchaseService stays concrete so the
// reconciler can borrow its gateway verification on top of the handler-facing
// method set.
type Services struct {
	AuthService     auth.Service
	LessonService   lessons.Service
	PurchaseService *purchaseservice.Service
	EarningsService purchases.EarningsService
	WebhookService  webhooks.Service
}

func New(repo *repo.Repositories, gw purchaseservice.Gateway, cfg *config.Config) *Services {
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})
	lessonService := lessonservice.New(repo.LessonRepo)
	purchaseService := purchaseservice.New(repo.PurchaseRepo, repo.LessonRepo, gw, cfg)
	earningsService := earningsservice.New(repo.EarningsRepo)
	webhookService := webhookservice.New(repo.PurchaseRepo, repo.EarningsRepo)

	return &Services{
		AuthService:     authService,
		LessonService:   lessonService,
		PurchaseService: purchaseService,
		EarningsService: earningsService,
		WebhookService:  webhookService,
	}
}
