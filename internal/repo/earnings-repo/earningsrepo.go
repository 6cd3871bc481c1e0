package earningsrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/teachniche/marketplace/internal/pg"
	"go.uber.org/zap"
)

const earningsColumns = `id, creator_id, payment_intent_id, amount, lesson_id, purchase_id, status, metadata, created_at`

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

func scanEarnings(row pgx.Row) (*domain.EarningsRecord, error) {
	var e domain.EarningsRecord
	err := row.Scan(
		&e.ID, &e.CreatorID, &e.PaymentIntentID, &e.Amount, &e.LessonID,
		&e.PurchaseID, &e.Status, &e.Metadata, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.EarningsRecord, error) {
	query := `
        SELECT ` + earningsColumns + `
        FROM creator_earnings
        WHERE payment_intent_id = $1
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query, paymentIntentID)
	record, err := scanEarnings(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find earnings record", zap.Error(err))
		return nil, err
	}
	return record, nil
}

func (r *Repository) FindByCreatorID(ctx context.Context, creatorID string) ([]domain.EarningsRecord, error) {
	query := `
        SELECT ` + earningsColumns + `
        FROM creator_earnings
        WHERE creator_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		zap.L().Error("can't get earnings records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var records []domain.EarningsRecord
	for rows.Next() {
		record, err := scanEarnings(rows)
		if err != nil {
			zap.L().Error("can't scan earnings row", zap.Error(err))
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (r *Repository) Save(ctx context.Context, record *domain.EarningsRecord) error {
	query := `
        INSERT INTO creator_earnings (` + earningsColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			record.ID, record.CreatorID, record.PaymentIntentID, record.Amount,
			record.LessonID, record.PurchaseID, record.Status, record.Metadata, record.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't save earnings record", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}

func (r *Repository) UpdateStatusMetadata(ctx context.Context, id, status string, metadata map[string]any) error {
	query := `
        UPDATE creator_earnings
        SET status = $1, metadata = $2
        WHERE id = $3
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, status, metadata, id)
		if err != nil {
			zap.L().Error("can't update earnings record", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}
