package models

import "github.com/shopspring/decimal"

// BalanceAggregate is one SUM(amount) row per transaction type, as the store
// returns it (the sum is kept as text to avoid any float round trip).
type BalanceAggregate struct {
	Type  TransactionType
	Total string
}

type Balance struct {
	UserID string
	Amount decimal.Decimal
}

type BalanceView struct {
	Amount float64 `json:"amount"`
}

func (b Balance) View() BalanceView { return BalanceView{Amount: b.Amount.InexactFloat64()} }
