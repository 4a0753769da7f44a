package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/wallet-service/internal/models"
	"github.com/baharkarakas/wallet-service/internal/repository"
	"github.com/baharkarakas/wallet-service/internal/repository/memory"
)

// ---- helpers ----

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore() *memory.Transactions {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return memory.NewTransactions().WithClock(func() time.Time {
		t = t.Add(time.Second)
		return t
	})
}

type failingStore struct {
	repository.Transactions
	err  error
	aggs []models.BalanceAggregate
}

func (f *failingStore) Create(context.Context, string, models.TransactionType, decimal.Decimal) (models.Transaction, error) {
	return models.Transaction{}, f.err
}

func (f *failingStore) ListByUser(context.Context, string, models.Page, *models.TransactionType) ([]models.Transaction, int, error) {
	return nil, 0, f.err
}

func (f *failingStore) BalanceAggregates(context.Context, string) ([]models.BalanceAggregate, error) {
	return f.aggs, f.err
}

type recordingPublisher struct {
	got []models.Transaction
	err error
}

func (p *recordingPublisher) TransactionCreated(_ context.Context, tx models.Transaction) error {
	p.got = append(p.got, tx)
	return p.err
}

const userID = "123e4567-e89b-12d3-a456-426614174000"

// ---- TransactionService.Create ----

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	pub := &recordingPublisher{}
	svc := NewTransactionService(store, pub)

	view, err := svc.Create(ctx, userID, models.TxnCredit, dec("100.50"))
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, userID, view.UserID)
	assert.Equal(t, models.TxnCredit, view.Type)
	assert.Equal(t, 100.5, view.Amount)
	assert.Equal(t, "2026-01-01T00:00:01.000Z", view.CreatedAt)

	require.Len(t, pub.got, 1)
	assert.Equal(t, view.ID, pub.got[0].ID)
}

func TestCreate_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	for _, amount := range []string{"0", "-5", "-0.01"} {
		t.Run(amount, func(t *testing.T) {
			store := newStore()
			pub := &recordingPublisher{}
			svc := NewTransactionService(store, pub)

			_, err := svc.Create(ctx, userID, models.TxnCredit, dec(amount))

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "Amount must be positive", vErr.Msg)

			_, total, err := store.ListByUser(ctx, userID, models.Page{Page: 1, Limit: 8}, nil)
			require.NoError(t, err)
			assert.Zero(t, total, "no row may be written")
			assert.Empty(t, pub.got)
		})
	}
}

func TestCreate_StoreErrorPropagatesUnchanged(t *testing.T) {
	storeErr := errors.New("connection refused")
	pub := &recordingPublisher{}
	svc := NewTransactionService(&failingStore{err: storeErr}, pub)

	_, err := svc.Create(context.Background(), userID, models.TxnDebit, dec("1"))
	assert.Same(t, storeErr, err)
	assert.Empty(t, pub.got)
}

func TestCreate_PublishFailureDoesNotFailCreate(t *testing.T) {
	svc := NewTransactionService(newStore(), &recordingPublisher{err: errors.New("redis down")})

	view, err := svc.Create(context.Background(), userID, models.TxnCredit, dec("1"))
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
}

func TestCreate_NilPublisher(t *testing.T) {
	svc := NewTransactionService(newStore(), nil)
	_, err := svc.Create(context.Background(), userID, models.TxnCredit, dec("1"))
	require.NoError(t, err)
}

// ---- TransactionService.FindAllByUser ----

func seed(t *testing.T, svc *TransactionService, user string, types ...models.TransactionType) []models.TransactionView {
	t.Helper()
	var out []models.TransactionView
	for i, typ := range types {
		v, err := svc.Create(context.Background(), user, typ, decimal.NewFromInt(int64(i+1)))
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestFindAllByUser_Defaults(t *testing.T) {
	svc := NewTransactionService(newStore(), nil)
	seed(t, svc, userID, models.TxnCredit, models.TxnDebit)

	res, err := svc.FindAllByUser(context.Background(), userID, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, models.PageMeta{Page: 1, Limit: 8, Total: 2, TotalPages: 1}, res.Meta)
	assert.Len(t, res.Data, 2)
}

func TestFindAllByUser_SecondPage(t *testing.T) {
	svc := NewTransactionService(newStore(), nil)
	types := make([]models.TransactionType, 10)
	for i := range types {
		types[i] = models.TxnCredit
	}
	seed(t, svc, userID, types...)

	res, err := svc.FindAllByUser(context.Background(), userID, ListFilter{Page: 2, Limit: 8})
	require.NoError(t, err)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, models.PageMeta{
		Page: 2, Limit: 8, Total: 10, TotalPages: 2,
		HasNextPage: false, HasPreviousPage: true,
	}, res.Meta)
}

func TestFindAllByUser_TypeFilter(t *testing.T) {
	svc := NewTransactionService(newStore(), nil)
	created := seed(t, svc, userID, models.TxnCredit, models.TxnDebit, models.TxnDebit)
	seed(t, svc, "someone-else", models.TxnDebit)

	debit := models.TxnDebit
	res, err := svc.FindAllByUser(context.Background(), userID, ListFilter{Type: &debit})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Equal(t, created[2].ID, res.Data[0].ID, "newest first")
	assert.Equal(t, created[1].ID, res.Data[1].ID)
	assert.Equal(t, 2, res.Meta.Total)
}

func TestFindAllByUser_EmptyPastEnd(t *testing.T) {
	svc := NewTransactionService(newStore(), nil)

	res, err := svc.FindAllByUser(context.Background(), userID, ListFilter{Page: 3, Limit: 8})
	require.NoError(t, err)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, 0, res.Meta.TotalPages)
	assert.False(t, res.Meta.HasNextPage)
	assert.True(t, res.Meta.HasPreviousPage)
}

func TestFindAllByUser_PagesCoverEverythingOnce(t *testing.T) {
	svc := NewTransactionService(newStore(), nil)
	types := make([]models.TransactionType, 23)
	for i := range types {
		types[i] = models.TxnCredit
		if i%2 == 0 {
			types[i] = models.TxnDebit
		}
	}
	created := seed(t, svc, userID, types...)

	for _, limit := range []int{1, 4, 8, 23, 100} {
		var ids []string
		first, err := svc.FindAllByUser(context.Background(), userID, ListFilter{Page: 1, Limit: limit})
		require.NoError(t, err)
		for p := 1; p <= first.Meta.TotalPages; p++ {
			res, err := svc.FindAllByUser(context.Background(), userID, ListFilter{Page: p, Limit: limit})
			require.NoError(t, err)
			assert.Equal(t, p < res.Meta.TotalPages, res.Meta.HasNextPage)
			assert.Equal(t, p > 1, res.Meta.HasPreviousPage)
			for _, v := range res.Data {
				ids = append(ids, v.ID)
			}
		}
		require.Len(t, ids, len(created), "limit %d", limit)
		for i, id := range ids {
			assert.Equal(t, created[len(created)-1-i].ID, id, "limit %d position %d", limit, i)
		}
	}
}

func TestFindOneByUser(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(newStore(), nil)
	mine := seed(t, svc, userID, models.TxnCredit)[0]
	theirs := seed(t, svc, "other", models.TxnCredit)[0]

	got, err := svc.FindOneByUser(ctx, userID, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine, got)

	_, err = svc.FindOneByUser(ctx, userID, theirs.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// ---- BalanceService ----

func TestGetBalance_NewUserIsZero(t *testing.T) {
	b, err := NewBalanceService(newStore()).GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, b.Amount.IsZero())
	assert.Equal(t, models.BalanceView{Amount: 0}, b.View())
}

func TestGetBalance_CreditsMinusDebits(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	txs := NewTransactionService(store, nil)
	for _, c := range []struct {
		typ    models.TransactionType
		amount string
	}{
		{models.TxnCredit, "300.00"},
		{models.TxnDebit, "75.00"},
		{models.TxnCredit, "50.00"},
	} {
		_, err := txs.Create(ctx, userID, c.typ, dec(c.amount))
		require.NoError(t, err)
	}

	b, err := NewBalanceService(store).GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(dec("275.00")), "got %s", b.Amount)
	assert.Equal(t, 275.0, b.View().Amount)
}

func TestGetBalance_NoFloorAtZero(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	_, err := NewTransactionService(store, nil).Create(ctx, userID, models.TxnDebit, dec("12.34"))
	require.NoError(t, err)

	b, err := NewBalanceService(store).GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(dec("-12.34")))
}

func TestGetBalance_UnparsableAggregateCountsAsZero(t *testing.T) {
	store := &failingStore{aggs: []models.BalanceAggregate{
		{Type: models.TxnCredit, Total: "not-a-number"},
		{Type: models.TxnDebit, Total: "10.00"},
	}}

	b, err := NewBalanceService(store).GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, b.Amount.Equal(dec("-10")))
}

func TestGetBalance_StoreError(t *testing.T) {
	storeErr := errors.New("timeout")
	_, err := NewBalanceService(&failingStore{err: storeErr}).GetBalance(context.Background(), userID)
	assert.Same(t, storeErr, err)
}

func TestGetBalance_MatchesExactSum(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		store := newStore()
		txs := NewTransactionService(store, nil)
		want := decimal.Zero
		for i := 0; i < 50; i++ {
			amount := decimal.New(rnd.Int63n(100000)+1, -2)
			typ := models.TxnCredit
			if rnd.Intn(3) == 0 {
				typ = models.TxnDebit
				want = want.Sub(amount)
			} else {
				want = want.Add(amount)
			}
			_, err := txs.Create(ctx, userID, typ, amount)
			require.NoError(t, err)
		}

		b, err := NewBalanceService(store).GetBalance(ctx, userID)
		require.NoError(t, err)
		assert.True(t, want.Equal(b.Amount), "run %d: want %s got %s", run, want, b.Amount)
	}
}
