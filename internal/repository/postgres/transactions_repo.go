package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/wallet-service/internal/models"
	"github.com/baharkarakas/wallet-service/internal/repository"
)

var _ repository.Transactions = (*transactionsRepo)(nil)

type transactionsRepo struct{ pool *pgxpool.Pool }

func NewTransactions(pool *pgxpool.Pool) *transactionsRepo {
	return &transactionsRepo{pool: pool}
}

// amount is read back as text so numeric(15,2) never passes through a float.
const txnColumns = `id::text, user_id, type, amount::text, created_at`

func scanTxn(row pgx.Row) (models.Transaction, error) {
	var (
		tx     models.Transaction
		typ    string
		amount string
	)
	if err := row.Scan(&tx.ID, &tx.UserID, &typ, &amount, &tx.CreatedAt); err != nil {
		return models.Transaction{}, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	tx.Type = models.TransactionType(typ)
	tx.Amount = d
	return tx, nil
}

func (r *transactionsRepo) Create(ctx context.Context, userID string, typ models.TransactionType, amount decimal.Decimal) (models.Transaction, error) {
	const q = `
INSERT INTO transactions (id, user_id, type, amount)
VALUES ($1, $2, $3, $4::numeric)
RETURNING ` + txnColumns

	tx, err := scanTxn(r.pool.QueryRow(ctx, q, uuid.NewString(), userID, string(typ), amount.String()))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return tx, nil
}

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	tx, err := scanTxn(r.pool.QueryRow(ctx,
		`SELECT `+txnColumns+` FROM transactions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (r *transactionsRepo) ListByUser(ctx context.Context, userID string, page models.Page, typ *models.TransactionType) ([]models.Transaction, int, error) {
	var filter *string
	if typ != nil {
		s := string(*typ)
		filter = &s
	}

	var (
		out   []models.Transaction
		total int
	)
	// count and page share one snapshot so total always matches the filter
	// predicate the rows were read with.
	err := r.withReadTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT count(*)
			   FROM transactions
			  WHERE user_id = $1 AND ($2::text IS NULL OR type = $2)`,
			userID, filter,
		).Scan(&total)
		if err != nil {
			return fmt.Errorf("count transactions: %w", err)
		}

		rows, err := tx.Query(ctx,
			`SELECT `+txnColumns+`
			   FROM transactions
			  WHERE user_id = $1 AND ($2::text IS NULL OR type = $2)
			  ORDER BY created_at DESC, id DESC
			  LIMIT $3 OFFSET $4`,
			userID, filter, page.Limit, page.Offset(),
		)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTxn(rows)
			if err != nil {
				return fmt.Errorf("scan transaction: %w", err)
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *transactionsRepo) BalanceAggregates(ctx context.Context, userID string) ([]models.BalanceAggregate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT type, SUM(amount)::text
		   FROM transactions
		  WHERE user_id = $1
		  GROUP BY type`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate balance: %w", err)
	}
	defer rows.Close()

	var out []models.BalanceAggregate
	for rows.Next() {
		var (
			typ   string
			total string
		)
		if err := rows.Scan(&typ, &total); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		out = append(out, models.BalanceAggregate{Type: models.TransactionType(typ), Total: total})
	}
	return out, rows.Err()
}

func (r *transactionsRepo) withReadTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
