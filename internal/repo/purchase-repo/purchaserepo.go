package purchaserepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/pg"
	"go.uber.org/zap"
)

const purchaseColumns = `id, user_id, lesson_id, creator_id, amount, platform_fee, creator_earnings,
               fee_percentage, stripe_session_id, payment_intent_id, status, metadata, created_at, updated_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var p domain.Purchase
	err := row.Scan(
		&p.ID, &p.UserID, &p.LessonID, &p.CreatorID, &p.Amount, &p.PlatformFee, &p.CreatorEarnings,
		&p.FeePercentage, &p.StripeSessionID, &p.PaymentIntentID, &p.Status, &p.Metadata, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) findOne(ctx context.Context, query string, args ...any) (*domain.Purchase, error) {
	row := r.db.QueryRow(ctx, query, args...)
	purchase, err := scanPurchase(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find purchase", zap.Error(err))
		return nil, err
	}
	return purchase, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Purchase, error) {
	query := `
        SELECT ` + purchaseColumns + `
        FROM purchases
        WHERE id = $1
    `
	return r.findOne(ctx, query, id)
}

func (r *Repository) FindLatestByUserAndLesson(ctx context.Context, userID, lessonID string) (*domain.Purchase, error) {
	query := `
        SELECT ` + purchaseColumns + `
        FROM purchases
        WHERE user_id = $1 AND lesson_id = $2
        ORDER BY created_at DESC
        LIMIT 1
    `
	return r.findOne(ctx, query, userID, lessonID)
}

func (r *Repository) FindBySessionID(ctx context.Context, sessionID string) (*domain.Purchase, error) {
	query := `
        SELECT ` + purchaseColumns + `
        FROM purchases
        WHERE stripe_session_id = $1
        LIMIT 1
    `
	return r.findOne(ctx, query, sessionID)
}

func (r *Repository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Purchase, error) {
	query := `
        SELECT ` + purchaseColumns + `
        FROM purchases
        WHERE payment_intent_id = $1
        LIMIT 1
    `
	return r.findOne(ctx, query, paymentIntentID)
}

func (r *Repository) FindByUserID(ctx context.Context, userID string) ([]domain.Purchase, error) {
	query := `
        SELECT ` + purchaseColumns + `
        FROM purchases
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, userID)
}

// FindPendingCreatedBefore returns pending purchases old enough to be worth
// re-checking against the gateway, oldest first.
func (r *Repository) FindPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Purchase, error) {
	query := `
        SELECT ` + purchaseColumns + `
        FROM purchases
        WHERE status = 'pending' AND created_at < $1 AND stripe_session_id <> ''
        ORDER BY created_at ASC
        LIMIT $2
    `
	return r.findMany(ctx, query, cutoff, int(limit))
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Purchase, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get purchases", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			zap.L().Error("can't scan purchase row", zap.Error(err))
			return nil, err
		}
		purchases = append(purchases, *purchase)
	}
	return purchases, nil
}

func (r *Repository) Save(ctx context.Context, purchase *domain.Purchase) error {
	query := `
        INSERT INTO purchases (` + purchaseColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			purchase.ID, purchase.UserID, purchase.LessonID, purchase.CreatorID,
			purchase.Amount, purchase.PlatformFee, purchase.CreatorEarnings, purchase.FeePercentage,
			purchase.StripeSessionID, purchase.PaymentIntentID, purchase.Status, purchase.Metadata,
			purchase.CreatedAt, purchase.UpdatedAt,
		)
		if err != nil {
			zap.L().Error("can't save purchase", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}

func (r *Repository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
        UPDATE purchases
        SET status = $1, updated_at = $2
        WHERE id = $3
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, status, time.Now(), id)
		if err != nil {
			zap.L().Error("can't update purchase status", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}

func (r *Repository) UpdateStatusMetadata(ctx context.Context, id, status string, metadata map[string]any) error {
	query := `
        UPDATE purchases
        SET status = $1, metadata = $2, updated_at = $3
        WHERE id = $4
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, status, metadata, time.Now(), id)
		if err != nil {
			zap.L().Error("can't update purchase status and metadata", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}

// UpdateSessionRefs back-fills the gateway correlation keys on a pending row
// once the checkout session has been created.
func (r *Repository) UpdateSessionRefs(ctx context.Context, id, sessionID, paymentIntentID string) error {
	query := `
        UPDATE purchases
        SET stripe_session_id = $1, payment_intent_id = $2, updated_at = $3
        WHERE id = $4
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, sessionID, paymentIntentID, time.Now(), id)
		if err != nil {
			zap.L().Error("can't update purchase session refs", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}
