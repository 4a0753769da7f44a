// Package events appends ledger events to a Redis stream for downstream
// consumers. Nothing in the wallet reads them back.
package events

import "time"

const TypeTransactionCreated = "transaction.created"

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"` // transaction.created carries a TransactionView
}
