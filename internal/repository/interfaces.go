package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/wallet-service/internal/models"
)

var ErrNotFound = errors.New("not found")

// Transactions is the persistence contract for ledger rows. Implementations
// do no business validation and never retry.
type Transactions interface {
	// Create inserts a row; the store assigns ID and CreatedAt.
	Create(ctx context.Context, userID string, typ models.TransactionType, amount decimal.Decimal) (models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	// ListByUser returns one page ordered newest first plus the count of all
	// rows matching the same filter. A nil typ means both types.
	ListByUser(ctx context.Context, userID string, page models.Page, typ *models.TransactionType) ([]models.Transaction, int, error)
	// BalanceAggregates returns one row per type present for the user.
	BalanceAggregates(ctx context.Context, userID string) ([]models.BalanceAggregate, error)
}
