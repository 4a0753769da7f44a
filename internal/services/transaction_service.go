package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/wallet-service/internal/metrics"
	"github.com/baharkarakas/wallet-service/internal/models"
	repo "github.com/baharkarakas/wallet-service/internal/repository"
)

// EventPublisher is notified after a transaction has been stored.
type EventPublisher interface {
	TransactionCreated(ctx context.Context, tx models.Transaction) error
}

type TransactionService struct {
	trx    repo.Transactions
	events EventPublisher
}

// NewTransactionService wires the store; events may be nil.
func NewTransactionService(t repo.Transactions, events EventPublisher) *TransactionService {
	return &TransactionService{trx: t, events: events}
}

type ListFilter struct {
	Type  *models.TransactionType
	Page  int
	Limit int
}

// Create stores a new transaction for userID. The type is trusted to have
// been validated by the caller.
func (s *TransactionService) Create(ctx context.Context, userID string, typ models.TransactionType, amount decimal.Decimal) (models.TransactionView, error) {
	if !amount.IsPositive() {
		metrics.TransactionsFailed.Inc()
		return models.TransactionView{}, &ValidationError{Msg: MsgAmountNotPositive}
	}

	tx, err := s.trx.Create(ctx, userID, typ, amount)
	if err != nil {
		metrics.TransactionsFailed.Inc()
		return models.TransactionView{}, err
	}
	metrics.TransactionsTotal.WithLabelValues(string(tx.Type)).Inc()

	if s.events != nil {
		if err := s.events.TransactionCreated(ctx, tx); err != nil {
			slog.Warn("publish transaction event", "id", tx.ID, "err", err)
		}
	}
	return tx.View(), nil
}

func (s *TransactionService) FindAllByUser(ctx context.Context, userID string, f ListFilter) (models.PaginatedView, error) {
	page := models.Page{Page: f.Page, Limit: f.Limit}
	if page.Page == 0 {
		page.Page = models.DefaultPage
	}
	if page.Limit == 0 {
		page.Limit = models.DefaultLimit
	}

	rows, total, err := s.trx.ListByUser(ctx, userID, page, f.Type)
	if err != nil {
		return models.PaginatedView{}, err
	}

	data := make([]models.TransactionView, 0, len(rows))
	for _, tx := range rows {
		data = append(data, tx.View())
	}
	return models.PaginatedView{
		Data: data,
		Meta: models.NewPageMeta(page, total),
	}, nil
}

// FindOneByUser returns repo.ErrNotFound for rows owned by someone else.
func (s *TransactionService) FindOneByUser(ctx context.Context, userID, id string) (models.TransactionView, error) {
	tx, err := s.trx.GetByID(ctx, id)
	if err != nil {
		return models.TransactionView{}, err
	}
	if tx.UserID != userID {
		return models.TransactionView{}, repo.ErrNotFound
	}
	return tx.View(), nil
}
