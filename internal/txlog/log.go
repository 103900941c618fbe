// Package txlog owns the append-only transactions collection. Every ledger
// mutation appends exactly one entry; no update or delete is ever exposed.
package txlog

import (
	"context"
	"fmt"
	"sort"

	"github.com/tysanh1/asset-verse-ledger/internal/domain"
	"github.com/tysanh1/asset-verse-ledger/internal/store"
	"github.com/tysanh1/asset-verse-ledger/internal/store/schema"
)

// Log provides append and read access to the transaction log
type Log struct {
	store store.Store
}

// New creates a transaction log backed by the given store
func New(st store.Store) *Log {
	return &Log{store: st}
}

// Prepare assigns a hash (when the caller did not supply one) and a durable
// sequence number to the transaction and returns the store entry for it.
// The caller commits the entry, usually batched with the asset-state write so
// both become observable together.
func (l *Log) Prepare(ctx context.Context, tx *schema.Transaction) (store.Entry, error) {
	if !domain.IsValidTransactionKind(tx.Kind) {
		return store.Entry{}, fmt.Errorf("invalid transaction kind %q: %w", tx.Kind, domain.ErrValidation)
	}

	if tx.Hash == "" {
		hash, err := domain.NewTransactionHash()
		if err != nil {
			return store.Entry{}, fmt.Errorf("%v: %w", err, domain.ErrStorage)
		}
		tx.Hash = hash
	}

	seq, err := l.store.NextSequence(ctx, store.CollectionTransactions)
	if err != nil {
		return store.Entry{}, err
	}
	tx.Seq = seq

	value, err := tx.Encode()
	if err != nil {
		return store.Entry{}, err
	}

	return store.Entry{
		Collection: store.CollectionTransactions,
		Key:        tx.Key(),
		Value:      value,
	}, nil
}

// Append prepares and immediately commits a transaction on its own
func (l *Log) Append(ctx context.Context, tx *schema.Transaction) error {
	entry, err := l.Prepare(ctx, tx)
	if err != nil {
		return err
	}
	return l.store.WriteBatch(ctx, []store.Entry{entry})
}

// ListByAsset returns all transactions for an asset ordered by timestamp
// ascending
func (l *Log) ListByAsset(ctx context.Context, assetID string) ([]*schema.Transaction, error) {
	return l.list(ctx, func(tx *schema.Transaction) bool {
		return tx.AssetID == assetID
	})
}

// ListByParticipant returns all transactions where the identity is either
// sender or recipient, case-insensitive, ordered by timestamp ascending
func (l *Log) ListByParticipant(ctx context.Context, identity domain.Address) ([]*schema.Transaction, error) {
	return l.list(ctx, func(tx *schema.Transaction) bool {
		return tx.From.Equal(identity) || tx.To.Equal(identity)
	})
}

// ListAll returns the full log ordered by timestamp ascending
func (l *Log) ListAll(ctx context.Context) ([]*schema.Transaction, error) {
	return l.list(ctx, func(*schema.Transaction) bool { return true })
}

// list scans the collection. Records are keyed by big-endian sequence so the
// store already yields them in insertion order; the explicit sort keeps the
// ordering contract independent of that detail.
func (l *Log) list(ctx context.Context, keep func(*schema.Transaction) bool) ([]*schema.Transaction, error) {
	values, err := l.store.List(ctx, store.CollectionTransactions)
	if err != nil {
		return nil, err
	}

	txs := make([]*schema.Transaction, 0, len(values))
	for _, value := range values {
		tx, err := schema.DecodeTransaction(value)
		if err != nil {
			return nil, err
		}
		if keep(tx) {
			txs = append(txs, tx)
		}
	}

	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Timestamp.Equal(txs[j].Timestamp) {
			return txs[i].Seq < txs[j].Seq
		}
		return txs[i].Timestamp.Before(txs[j].Timestamp)
	})
	return txs, nil
}
