package earningsservice

import (
	"context"
	"errors"
	"testing"

	"github.com/teachniche/marketplace/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func TestGetSummary(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name            string
		prepareMock     func()
		expectedSummary *Summary
		expectedError   bool
	}{
		{
			name: "Totals split by status",
			prepareMock: func() {
				repo.EXPECT().FindByCreatorID(gomock.Any(), "creator-123").Return([]domain.EarningsRecord{
					{Amount: 100, Status: "paid"},
					{Amount: 70, Status: "paid"},
					{Amount: 42.5, Status: "pending"},
					{Amount: 5, Status: "failed"},
				}, nil)
			},
			expectedSummary: &Summary{TotalEarnings: 217.5, PendingEarnings: 42.5, PaidEarnings: 170},
		},
		{
			name: "Negative compensation records reduce paid total",
			prepareMock: func() {
				repo.EXPECT().FindByCreatorID(gomock.Any(), "creator-123").Return([]domain.EarningsRecord{
					{Amount: 800, Status: "paid"},
					{Amount: -400, Status: "paid"},
				}, nil)
			},
			expectedSummary: &Summary{TotalEarnings: 400, PaidEarnings: 400},
		},
		{
			name: "Empty ledger",
			prepareMock: func() {
				repo.EXPECT().FindByCreatorID(gomock.Any(), "creator-123").Return(nil, nil)
			},
			expectedSummary: &Summary{},
		},
		{
			name: "Repo error",
			prepareMock: func() {
				repo.EXPECT().FindByCreatorID(gomock.Any(), "creator-123").Return(nil, errors.New("db error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			summary, err := service.GetSummary(context.Background(), "creator-123")
			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, summary)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSummary, summary)
		})
	}
}
