// Package walletlink owns the wallet_links collection mapping external
// wallet addresses to application user identities, plus a reverse index
// enforcing at most one user per wallet.
package walletlink

import (
	"context"
	"fmt"
	"sync"

	"github.com/tysanh1/asset-verse-ledger/internal/adapter"
	"github.com/tysanh1/asset-verse-ledger/internal/domain"
	"github.com/tysanh1/asset-verse-ledger/internal/store"
	"github.com/tysanh1/asset-verse-ledger/internal/store/schema"
)

// Table provides identity link operations
type Table struct {
	store store.Store
	clock adapter.Clock

	// mu serializes link/unlink so the link record and its reverse index
	// entry are checked and written consistently
	mu sync.Mutex
}

// New creates a link table backed by the given store
func New(st store.Store, clock adapter.Clock) *Table {
	return &Table{store: st, clock: clock}
}

// Link associates a wallet address with a user. Idempotent: linking an
// identical (user, wallet) pair returns the existing record. Linking a
// wallet that is already linked to a different user fails with
// domain.ErrWalletAlreadyLinked.
func (t *Table) Link(ctx context.Context, userID string, walletAddress string) (*schema.WalletLink, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", domain.ErrValidation)
	}
	wallet, err := domain.NewAddress(walletAddress)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// reverse index decides wallet ownership
	indexed, err := t.store.Get(ctx, store.CollectionWalletIndex, schema.WalletIndexKey(wallet))
	if err != nil {
		return nil, err
	}
	if indexed != nil && string(indexed) != userID {
		return nil, fmt.Errorf("wallet %s: %w", wallet, domain.ErrWalletAlreadyLinked)
	}

	key := schema.WalletLinkKey(userID, wallet)
	existing, err := t.store.Get(ctx, store.CollectionWalletLinks, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return schema.DecodeWalletLink(existing)
	}

	link := &schema.WalletLink{
		UserID:        userID,
		WalletAddress: wallet,
		CreatedAt:     t.clock.Now().UTC(),
	}
	value, err := link.Encode()
	if err != nil {
		return nil, err
	}

	err = t.store.WriteBatch(ctx, []store.Entry{
		{Collection: store.CollectionWalletLinks, Key: key, Value: value},
		{Collection: store.CollectionWalletIndex, Key: schema.WalletIndexKey(wallet), Value: []byte(userID)},
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// ListByUser returns all wallet links for a user
func (t *Table) ListByUser(ctx context.Context, userID string) ([]*schema.WalletLink, error) {
	values, err := t.store.List(ctx, store.CollectionWalletLinks)
	if err != nil {
		return nil, err
	}

	var links []*schema.WalletLink
	for _, value := range values {
		link, err := schema.DecodeWalletLink(value)
		if err != nil {
			return nil, err
		}
		if link.UserID == userID {
			links = append(links, link)
		}
	}
	return links, nil
}

// ResolveUser returns the user id a wallet is linked to. Absence is not an
// error: the user id is empty when no link exists.
func (t *Table) ResolveUser(ctx context.Context, walletAddress string) (string, error) {
	wallet, err := domain.NewAddress(walletAddress)
	if err != nil {
		return "", err
	}

	userID, err := t.store.Get(ctx, store.CollectionWalletIndex, schema.WalletIndexKey(wallet))
	if err != nil {
		return "", err
	}
	return string(userID), nil
}

// Unlink removes a (user, wallet) link. Returns false when no such link
// existed.
func (t *Table) Unlink(ctx context.Context, userID string, walletAddress string) (bool, error) {
	wallet, err := domain.NewAddress(walletAddress)
	if err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := schema.WalletLinkKey(userID, wallet)
	existing, err := t.store.Get(ctx, store.CollectionWalletLinks, key)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	entries := []store.Entry{
		{Collection: store.CollectionWalletLinks, Key: key, Value: nil},
	}

	// drop the reverse index entry only if this user owns it
	indexed, err := t.store.Get(ctx, store.CollectionWalletIndex, schema.WalletIndexKey(wallet))
	if err != nil {
		return false, err
	}
	if string(indexed) == userID {
		entries = append(entries, store.Entry{
			Collection: store.CollectionWalletIndex,
			Key:        schema.WalletIndexKey(wallet),
			Value:      nil,
		})
	}

	if err := t.store.WriteBatch(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}
