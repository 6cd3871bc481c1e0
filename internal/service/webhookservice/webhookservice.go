package webhookservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/gateway"
	"github.com/teachniche/marketplace/internal/metrics"
	"github.com/teachniche/marketplace/internal/service/purchaseservice"
	"github.com/teachniche/marketplace/pkg/fees"
	"go.uber.org/zap"
)

type PurchaseRepo interface {
	FindByID(ctx context.Context, id string) (*domain.Purchase, error)
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Purchase, error)
	UpdateStatusMetadata(ctx context.Context, id, status string, metadata map[string]any) error
}

type EarningsRepo interface {
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.EarningsRecord, error)
	Save(ctx context.Context, record *domain.EarningsRecord) error
	UpdateStatusMetadata(ctx context.Context, id, status string, metadata map[string]any) error
}

const (
	EarningsStatusPending = "pending"
	EarningsStatusPaid    = "paid"
	EarningsStatusFailed  = "failed"
)

// refundSuffix marks the synthetic payment intent ID of a compensating
// negative earnings record.
const refundSuffix = "_refund"

type Service struct {
	purchaseRepo PurchaseRepo
	earningsRepo EarningsRepo
}

func New(purchaseRepo PurchaseRepo, earningsRepo EarningsRepo) *Service {
	return &Service{
		purchaseRepo: purchaseRepo,
		earningsRepo: earningsRepo,
	}
}

// HandleEvent drives purchase ledger transitions from a verified gateway
// event. Delivery is at-least-once, so every branch tolerates redelivery;
// event types without a handler are acknowledged and ignored. A returned
// error means local bookkeeping failed, not that the event was invalid;
// callers still acknowledge the delivery.
func (s *Service) HandleEvent(ctx context.Context, event *gateway.Event) error {
	metrics.WebhookEventsProcessed.WithLabelValues(event.Type).Inc()

	switch event.Type {
	case gateway.EventCheckoutSessionCompleted:
		return s.handleCheckoutCompleted(ctx, event.Session)
	case gateway.EventPaymentIntentSucceeded:
		return s.handlePaymentIntentSucceeded(ctx, event.PaymentIntent)
	case gateway.EventChargeRefunded:
		return s.handleChargeRefunded(ctx, event.Charge)
	default:
		zap.L().Debug("ignoring webhook event", zap.String("type", event.Type))
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, session *gateway.CheckoutSession) error {
	if session.PaymentStatus != gateway.PaymentStatusPaid {
		zap.L().Info("checkout session completed without payment, skipping",
			zap.String("sessionID", session.ID), zap.String("paymentStatus", session.PaymentStatus))
		return nil
	}

	purchaseID := session.Metadata["purchaseId"]
	lessonID := session.Metadata["lessonId"]
	creatorID := session.Metadata["creatorId"]
	userID := session.Metadata["userId"]
	if purchaseID == "" || lessonID == "" || creatorID == "" || userID == "" {
		zap.L().Warn("checkout session missing purchase metadata, skipping",
			zap.String("sessionID", session.ID))
		return nil
	}

	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		zap.L().Warn("no purchase for completed checkout session",
			zap.String("purchaseID", purchaseID), zap.String("sessionID", session.ID))
		return nil
	}
	if purchase.Status == purchaseservice.StatusCompleted {
		return nil
	}

	metadata := merge(purchase.Metadata, map[string]any{
		"payment_status": session.PaymentStatus,
		"session_id":     session.ID,
		"purchase_date":  time.Now().Format(time.RFC3339),
	})
	if err := s.purchaseRepo.UpdateStatusMetadata(ctx, purchase.ID, purchaseservice.StatusCompleted, metadata); err != nil {
		return err
	}
	metrics.PurchasesCompleted.Inc()
	zap.L().Info("purchase completed from checkout session",
		zap.String("purchaseID", purchase.ID), zap.String("sessionID", session.ID))
	return nil
}

func (s *Service) handlePaymentIntentSucceeded(ctx context.Context, intent *gateway.PaymentIntent) error {
	purchase, err := s.purchaseRepo.FindByPaymentIntentID(ctx, intent.ID)
	if err != nil {
		return err
	}
	if purchase == nil {
		zap.L().Warn("no purchase for succeeded payment intent", zap.String("paymentIntentID", intent.ID))
		return nil
	}

	// Earnings bookkeeping is best-effort: a failure here must never block
	// payment confirmation. Missing records are recoverable by hand.
	s.recordEarnings(ctx, purchase, intent.ID)

	if purchase.Status != purchaseservice.StatusCompleted {
		metadata := merge(purchase.Metadata, map[string]any{
			"payment_intent_id": intent.ID,
			"completed_at":      time.Now().Format(time.RFC3339),
		})
		if err := s.purchaseRepo.UpdateStatusMetadata(ctx, purchase.ID, purchaseservice.StatusCompleted, metadata); err != nil {
			return err
		}
		metrics.PurchasesCompleted.Inc()
	}
	return nil
}

func (s *Service) recordEarnings(ctx context.Context, purchase *domain.Purchase, paymentIntentID string) {
	existing, err := s.earningsRepo.FindByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		zap.L().Error("can't check existing earnings record", zap.Error(err))
		return
	}
	if existing != nil {
		return
	}

	record := &domain.EarningsRecord{
		ID:              uuid.NewString(),
		CreatorID:       purchase.CreatorID,
		PaymentIntentID: paymentIntentID,
		Amount:          purchase.CreatorEarnings,
		LessonID:        purchase.LessonID,
		PurchaseID:      purchase.ID,
		Status:          EarningsStatusPending,
		Metadata:        map[string]any{},
		CreatedAt:       time.Now(),
	}
	if err := s.earningsRepo.Save(ctx, record); err != nil {
		zap.L().Error("failed to record creator earnings",
			zap.String("purchaseID", purchase.ID), zap.Error(err))
	}
}

func (s *Service) handleChargeRefunded(ctx context.Context, charge *gateway.Charge) error {
	if charge.PaymentIntentID == "" {
		zap.L().Warn("refunded charge carries no payment intent", zap.String("chargeID", charge.ID))
		return nil
	}

	purchase, err := s.purchaseRepo.FindByPaymentIntentID(ctx, charge.PaymentIntentID)
	if err != nil {
		return err
	}
	if purchase == nil {
		zap.L().Warn("no purchase for refunded charge",
			zap.String("paymentIntentID", charge.PaymentIntentID))
		return nil
	}

	if purchase.Status != purchaseservice.StatusRefunded {
		metadata := merge(purchase.Metadata, map[string]any{
			"refund_amount": charge.AmountRefunded,
			"refund_id":     charge.RefundID,
			"refunded_at":   time.Now().Format(time.RFC3339),
		})
		if err := s.purchaseRepo.UpdateStatusMetadata(ctx, purchase.ID, purchaseservice.StatusRefunded, metadata); err != nil {
			return err
		}
		metrics.PurchasesRefunded.Inc()
	}

	s.adjustEarnings(ctx, purchase, charge)
	return nil
}

// adjustEarnings compensates the creator ledger for a refund. The whole
// phase is best-effort; failures are logged and swallowed so the gateway
// never retries over local bookkeeping.
func (s *Service) adjustEarnings(ctx context.Context, purchase *domain.Purchase, charge *gateway.Charge) {
	earnings, err := s.earningsRepo.FindByPaymentIntentID(ctx, charge.PaymentIntentID)
	if err != nil {
		zap.L().Error("can't find earnings record for refund", zap.Error(err))
		return
	}
	if earnings == nil {
		zap.L().Warn("no earnings record for refunded charge",
			zap.String("paymentIntentID", charge.PaymentIntentID))
		return
	}
	if purchase.Amount <= 0 {
		zap.L().Warn("refund against zero-amount purchase, skipping earnings adjustment",
			zap.String("purchaseID", purchase.ID))
		return
	}

	// NOTE: the ratio denominator is the original purchase amount, so a
	// second partial refund on the same purchase over-compensates. Harden
	// only if multiple partial refunds are actually issued.
	refundRatio := charge.AmountRefunded / purchase.Amount
	refundedEarnings := fees.RoundToCents(earnings.Amount * refundRatio)

	switch earnings.Status {
	case EarningsStatusPending:
		metadata := merge(earnings.Metadata, map[string]any{
			"refund_id":         charge.RefundID,
			"refund_amount":     charge.AmountRefunded,
			"refunded_earnings": refundedEarnings,
		})
		if err := s.earningsRepo.UpdateStatusMetadata(ctx, earnings.ID, EarningsStatusFailed, metadata); err != nil {
			zap.L().Error("can't fail pending earnings record", zap.Error(err))
		}
	case EarningsStatusPaid:
		compensationIntentID := charge.PaymentIntentID + refundSuffix
		existing, err := s.earningsRepo.FindByPaymentIntentID(ctx, compensationIntentID)
		if err != nil {
			zap.L().Error("can't check existing compensation record", zap.Error(err))
			return
		}
		if existing != nil {
			return
		}

		// The paid record stays untouched for audit; the refund shows up as
		// a separate negative-amount record.
		compensation := &domain.EarningsRecord{
			ID:              uuid.NewString(),
			CreatorID:       earnings.CreatorID,
			PaymentIntentID: compensationIntentID,
			Amount:          -refundedEarnings,
			LessonID:        earnings.LessonID,
			PurchaseID:      earnings.PurchaseID,
			Status:          EarningsStatusPaid,
			Metadata: map[string]any{
				"original_earnings_id": earnings.ID,
				"refund_id":            charge.RefundID,
				"refund_amount":        charge.AmountRefunded,
			},
			CreatedAt: time.Now(),
		}
		if err := s.earningsRepo.Save(ctx, compensation); err != nil {
			zap.L().Error("can't save compensating earnings record", zap.Error(err))
		}
	}
}

func merge(existing, updates map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(updates))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}
