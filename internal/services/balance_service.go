package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/wallet-service/internal/models"
	repo "github.com/baharkarakas/wallet-service/internal/repository"
)

type BalanceService struct{ r repo.Transactions }

func NewBalanceService(r repo.Transactions) *BalanceService { return &BalanceService{r: r} }

// GetBalance recomputes credits minus debits from the store aggregates on
// every call. There is no floor at zero.
func (s *BalanceService) GetBalance(ctx context.Context, userID string) (models.Balance, error) {
	aggs, err := s.r.BalanceAggregates(ctx, userID)
	if err != nil {
		return models.Balance{}, err
	}

	credits, debits := decimal.Zero, decimal.Zero
	for _, a := range aggs {
		total, err := decimal.NewFromString(a.Total)
		if err != nil {
			// an unparsable sum counts as zero
			slog.Warn("unparsable balance aggregate", "user_id", userID, "type", a.Type, "total", a.Total)
			total = decimal.Zero
		}
		switch a.Type {
		case models.TxnCredit:
			credits = total
		case models.TxnDebit:
			debits = total
		}
	}
	return models.Balance{UserID: userID, Amount: credits.Sub(debits)}, nil
}
