// Package reconciler sweeps pending purchases whose webhook never arrived and
// settles them directly against the payment gateway.
package reconciler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/teachniche/marketplace/internal/config"
	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/metrics"
	"github.com/teachniche/marketplace/internal/service/purchaseservice"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// minAge keeps freshly created purchases out of the sweep while their
	// webhook is still plausibly in flight.
	minAge = 10 * time.Minute
	// pendingExpiry is how long a pending purchase may wait for payment
	// before it is written off as abandoned.
	pendingExpiry = 24 * time.Hour
)

var processingPurchases sync.Map

type PurchaseRepo interface {
	FindPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Purchase, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type Ledger interface {
	VerifySession(ctx context.Context, sessionID string) (*purchaseservice.VerificationResult, error)
	UpdatePurchaseStatus(ctx context.Context, referenceID, status string) (string, error)
}

type Service struct {
	purchaseRepo  PurchaseRepo
	ledger        Ledger
	limit         uint32
	workerPool    WorkerPoolI
	sweepInterval time.Duration
}

func New(cfg *config.Config, purchaseRepo PurchaseRepo, ledger Ledger) *Service {
	return &Service{
		purchaseRepo:  purchaseRepo,
		ledger:        ledger,
		limit:         1000,
		workerPool:    NewWorkerPool(10),
		sweepInterval: cfg.ReconcileInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconciler started", zap.Duration("interval", s.sweepInterval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-minAge)
	purchases, err := s.purchaseRepo.FindPendingCreatedBefore(ctx, cutoff, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch pending purchases", zap.Error(err))
		return
	}
	metrics.ReconcilerSweeps.Inc()

	var g errgroup.Group
	for _, purchase := range purchases {
		purchase := purchase

		if _, loaded := processingPurchases.LoadOrStore(purchase.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingPurchases.Delete(purchase.ID)
				return s.handlePurchase(ctx, purchase)
			})
			if err != nil {
				processingPurchases.Delete(purchase.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling purchases", zap.Error(err))
	}
}

func (s *Service) handlePurchase(ctx context.Context, purchase domain.Purchase) error {
	if purchase.StripeSessionID == "" {
		// Checkout never produced a session, there is nothing to verify.
		return s.expireIfStale(ctx, purchase)
	}

	verification, err := s.ledger.VerifySession(ctx, purchase.StripeSessionID)
	if err != nil {
		return fmt.Errorf("failed to verify session for purchase %s: %w", purchase.ID, err)
	}

	if verification.IsPaid {
		if _, err := s.ledger.UpdatePurchaseStatus(ctx, purchase.StripeSessionID, purchaseservice.StatusCompleted); err != nil {
			return fmt.Errorf("failed to complete purchase %s: %w", purchase.ID, err)
		}
		zap.L().Info("Recovered paid purchase missed by webhooks",
			zap.String("purchaseID", purchase.ID),
			zap.String("sessionID", purchase.StripeSessionID))
		return nil
	}

	return s.expireIfStale(ctx, purchase)
}

func (s *Service) expireIfStale(ctx context.Context, purchase domain.Purchase) error {
	if time.Since(purchase.CreatedAt) < pendingExpiry {
		return nil
	}
	if err := s.purchaseRepo.UpdateStatus(ctx, purchase.ID, purchaseservice.StatusFailed); err != nil {
		return fmt.Errorf("failed to expire purchase %s: %w", purchase.ID, err)
	}
	zap.L().Info("Expired abandoned pending purchase", zap.String("purchaseID", purchase.ID))
	return nil
}
