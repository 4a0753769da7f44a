package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxnCredit TransactionType = "CREDIT"
	TxnDebit  TransactionType = "DEBIT"
)

func (t TransactionType) Valid() bool { return t == TxnCredit || t == TxnDebit }

// Transaction is one immutable ledger row. Amount is always positive; the
// sign comes from Type.
type Transaction struct {
	ID        string
	UserID    string
	Type      TransactionType
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// ISO-8601 with millisecond precision, always rendered in UTC ("...Z").
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type TransactionView struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Type      TransactionType `json:"type"`
	Amount    float64         `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

func (t Transaction) View() TransactionView {
	return TransactionView{
		ID:        t.ID,
		UserID:    t.UserID,
		Type:      t.Type,
		Amount:    t.Amount.InexactFloat64(),
		CreatedAt: t.CreatedAt.UTC().Format(TimestampLayout),
	}
}
