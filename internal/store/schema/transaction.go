package schema

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tysanh1/asset-verse-ledger/internal/domain"
)

// Transaction represents a record in the append-only transactions collection.
// Records are keyed by Seq (big-endian) so store iteration order is insertion
// order, which matches timestamp order since timestamps are monotonic per
// process. No update or delete operation exists for this collection.
type Transaction struct {
	// Hash is the unique transaction identifier (0x + 64 hex characters)
	Hash string `json:"hash"`
	// From is the sender identity; the zero address for a mint
	From domain.Address `json:"from"`
	// To is the recipient identity
	To domain.Address `json:"to"`
	// AssetID is the id of the asset this transaction concerns
	AssetID string `json:"asset_id"`
	// Kind is mint or transfer
	Kind domain.TransactionKind `json:"kind"`
	// Timestamp is when the mutation was validated
	Timestamp time.Time `json:"timestamp"`
	// Seq is the append sequence number assigned by the log
	Seq uint64 `json:"seq"`
}

// Key returns the store key for the transaction
func (t *Transaction) Key() []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], t.Seq)
	return key[:]
}

// Encode serializes the transaction record
func (t *Transaction) Encode() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction %s: %v: %w", t.Hash, err, domain.ErrStorage)
	}
	return data, nil
}

// DecodeTransaction deserializes a transaction record
func DecodeTransaction(data []byte) (*Transaction, error) {
	var t Transaction
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("corrupt transaction record: %v: %w", err, domain.ErrStorage)
	}
	return &t, nil
}
