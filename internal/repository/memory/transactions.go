// Package memory is an in-process implementation of repository.Transactions
// used by tests and STORE=memory local runs. Data lives until the process exits.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/wallet-service/internal/models"
	"github.com/baharkarakas/wallet-service/internal/repository"
)

var _ repository.Transactions = (*Transactions)(nil)

type Transactions struct {
	mu   sync.RWMutex
	rows []models.Transaction
	now  func() time.Time
}

func NewTransactions() *Transactions {
	return &Transactions{now: time.Now}
}

// WithClock replaces the creation-time source; tests use it to get
// deterministic, strictly increasing timestamps.
func (s *Transactions) WithClock(now func() time.Time) *Transactions {
	s.now = now
	return s
}

func (s *Transactions) Create(_ context.Context, userID string, typ models.TransactionType, amount decimal.Decimal) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := models.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Amount:    amount.Round(2),
		CreatedAt: s.now(),
	}
	s.rows = append(s.rows, tx)
	return tx, nil
}

func (s *Transactions) GetByID(_ context.Context, id string) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.rows {
		if tx.ID == id {
			return tx, nil
		}
	}
	return models.Transaction{}, repository.ErrNotFound
}

func (s *Transactions) ListByUser(_ context.Context, userID string, page models.Page, typ *models.TransactionType) ([]models.Transaction, int, error) {
	s.mu.RLock()
	var matched []models.Transaction
	for _, tx := range s.rows {
		if tx.UserID != userID {
			continue
		}
		if typ != nil && tx.Type != *typ {
			continue
		}
		matched = append(matched, tx)
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := page.Offset()
	if start < 0 || start >= total {
		return nil, total, nil
	}
	end := total
	if page.Limit < total-start {
		end = start + page.Limit
	}
	return matched[start:end], total, nil
}

func (s *Transactions) BalanceAggregates(_ context.Context, userID string) ([]models.BalanceAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := map[models.TransactionType]decimal.Decimal{}
	var order []models.TransactionType
	for _, tx := range s.rows {
		if tx.UserID != userID {
			continue
		}
		if _, ok := sums[tx.Type]; !ok {
			order = append(order, tx.Type)
		}
		sums[tx.Type] = sums[tx.Type].Add(tx.Amount)
	}

	out := make([]models.BalanceAggregate, 0, len(order))
	for _, typ := range order {
		out = append(out, models.BalanceAggregate{Type: typ, Total: sums[typ].StringFixed(2)})
	}
	return out, nil
}

// Ping satisfies the health check; the memory store is always reachable.
func (s *Transactions) Ping(context.Context) error { return nil }
