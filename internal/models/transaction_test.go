package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionView(t *testing.T) {
	ist := time.FixedZone("IST", 3*60*60)
	tx := Transaction{
		ID:        "987fcdeb-51a2-3e4b-c5d6-789012345678",
		UserID:    "123e4567-e89b-12d3-a456-426614174000",
		Type:      TxnCredit,
		Amount:    decimal.RequireFromString("100.50"),
		CreatedAt: time.Date(2026, 2, 14, 13, 0, 0, 0, ist),
	}

	v := tx.View()
	assert.Equal(t, 100.5, v.Amount)
	assert.Equal(t, "2026-02-14T10:00:00.000Z", v.CreatedAt)
	assert.Equal(t, tx.UserID, v.UserID)
	assert.Equal(t, TxnCredit, v.Type)
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TxnCredit.Valid())
	assert.True(t, TxnDebit.Valid())
	assert.False(t, TransactionType("credit").Valid())
	assert.False(t, TransactionType("").Valid())
}
