package dto

import (
	"time"

	"github.com/tysanh1/asset-verse-ledger/internal/store/schema"
)

// TransactionResponse is the wire representation of a log entry
type TransactionResponse struct {
	Hash      string    `json:"hash"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	AssetID   string    `json:"asset_id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// ListTransactionsResponse wraps a list of transactions, ordered by
// timestamp ascending
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// FromTransaction maps a stored transaction record to its wire representation
func FromTransaction(t *schema.Transaction) TransactionResponse {
	return TransactionResponse{
		Hash:      t.Hash,
		From:      t.From.String(),
		To:        t.To.String(),
		AssetID:   t.AssetID,
		Kind:      string(t.Kind),
		Timestamp: t.Timestamp,
	}
}

// FromTransactions maps a list of transaction records
func FromTransactions(txs []*schema.Transaction) ListTransactionsResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, FromTransaction(t))
	}
	return ListTransactionsResponse{Transactions: out, Total: len(out)}
}
