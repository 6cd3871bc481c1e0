package repo

import (
	"github.com/teachniche/marketplace/internal/pg"
	earningsrepo "github.com/teachniche/marketplace/internal/repo/earnings-repo"
	lessonrepo "github.com/teachniche/marketplace/internal/repo/lesson-repo"
	purchaserepo "github.com/teachniche/marketplace/internal/repo/purchase-repo"
	userrepo "github.com/teachniche/marketplace/internal/repo/user-repo"
	"github.com/teachniche/marketplace/internal/service/authservice"
)

// Repositories bundles the storage layer. Purchase and earnings repos stay
// concrete because several services and the reconciler each consume their own
// slice of the method set.
type Repositories struct {
	UserRepo     authservice.Repo
	LessonRepo   *lessonrepo.Repository
	PurchaseRepo *purchaserepo.Repository
	EarningsRepo *earningsrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	lessonRepo := lessonrepo.New(conn, txManager)
	purchaseRepo := purchaserepo.New(conn, txManager)
	earningsRepo := earningsrepo.New(conn, txManager)

	return &Repositories{
		UserRepo:     userRepo,
		LessonRepo:   lessonRepo,
		PurchaseRepo: purchaseRepo,
		EarningsRepo: earningsRepo,
	}
}
