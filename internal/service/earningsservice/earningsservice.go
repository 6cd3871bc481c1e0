package earningsservice

import (
	"context"

	"github.com/teachniche/marketplace/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	FindByCreatorID(ctx context.Context, creatorID string) ([]domain.EarningsRecord, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

type Summary struct {
	TotalEarnings   float64
	PendingEarnings float64
	PaidEarnings    float64
}

// GetSummary totals a creator's earnings ledger. Negative compensation
// records from refunds naturally reduce the paid total.
func (s *Service) GetSummary(ctx context.Context, creatorID string) (*Summary, error) {
	records, err := s.repo.FindByCreatorID(ctx, creatorID)
	if err != nil {
		zap.L().Error("can't fetch earnings records", zap.Error(err))
		return nil, err
	}

	summary := &Summary{}
	for _, record := range records {
		summary.TotalEarnings += record.Amount
		switch record.Status {
		case "pending":
			summary.PendingEarnings += record.Amount
		case "paid":
			summary.PaidEarnings += record.Amount
		}
	}
	return summary, nil
}
