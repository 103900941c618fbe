// Package ledger owns the assets collection. It enforces ownership
// invariants before mutating state and appends exactly one transaction log
// entry per mutation, atomically with the asset-state write.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tysanh1/asset-verse-ledger/internal/adapter"
	"github.com/tysanh1/asset-verse-ledger/internal/domain"
	"github.com/tysanh1/asset-verse-ledger/internal/logger"
	"github.com/tysanh1/asset-verse-ledger/internal/store"
	"github.com/tysanh1/asset-verse-ledger/internal/store/schema"
	"github.com/tysanh1/asset-verse-ledger/internal/txlog"
)

// MintParams holds caller input for a mint operation. All fields arrive as
// untrusted strings; the ledger re-enforces the form-layer validation.
type MintParams struct {
	Name        string
	Description string
	Image       string
	ContentURI  string
	Owner       string
}

// Ledger provides asset ownership operations over the persistent store
type Ledger struct {
	store store.Store
	log   *txlog.Log
	clock adapter.Clock

	// mu guards locks; each asset id gets its own mutex serializing the
	// read-validate-write-append sequence of mint and transfer
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a ledger backed by the given store and transaction log
func New(st store.Store, log *txlog.Log, clock adapter.Clock) *Ledger {
	return &Ledger{
		store: st,
		log:   log,
		clock: clock,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockAsset returns the mutex for an asset id, creating it on first use.
// Entries are never removed; the map is bounded by the number of assets
// mutated during the process lifetime.
func (l *Ledger) lockAsset(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// Mint creates a new asset owned and created by the given identity and
// appends the corresponding mint transaction
func (l *Ledger) Mint(ctx context.Context, params MintParams) (*schema.Asset, error) {
	if err := validateNameDescription(params.Name, params.Description); err != nil {
		return nil, err
	}
	if err := domain.ValidateImageRef(params.Image); err != nil {
		return nil, err
	}

	owner, err := domain.NewAddress(params.Owner)
	if err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, fmt.Errorf("cannot mint to the zero identity: %w", domain.ErrValidation)
	}

	asset := &schema.Asset{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Description: params.Description,
		Image:       params.Image,
		Owner:       owner,
		Creator:     owner,
		ContentURI:  params.ContentURI,
		CreatedAt:   l.clock.Now().UTC(),
	}
	if asset.ContentURI == "" {
		asset.ContentURI = domain.ContentURIPrefix + asset.ID
	}

	m := l.lockAsset(asset.ID)
	m.Lock()
	defer m.Unlock()

	if err := l.commit(ctx, asset, &schema.Transaction{
		From:      domain.ZeroAddress,
		To:        owner,
		AssetID:   asset.ID,
		Kind:      domain.TransactionKindMint,
		Timestamp: asset.CreatedAt,
	}); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "minted asset",
		zap.String("asset_id", asset.ID),
		zap.String("owner", owner.String()),
	)
	return asset, nil
}

// Transfer moves ownership of an asset from its current owner to another
// identity and appends the corresponding transfer transaction. The read,
// validation, write and log append form one atomic unit per asset id.
func (l *Ledger) Transfer(ctx context.Context, fromIdentity, toIdentity, assetID string) (*schema.Asset, error) {
	from, err := domain.NewAddress(fromIdentity)
	if err != nil {
		return nil, err
	}
	to, err := domain.NewAddress(toIdentity)
	if err != nil {
		return nil, err
	}
	if to.Equal(from) {
		return nil, fmt.Errorf("cannot transfer an asset to its current owner: %w", domain.ErrValidation)
	}
	if to.IsZero() {
		return nil, fmt.Errorf("cannot transfer to the zero identity: %w", domain.ErrValidation)
	}

	m := l.lockAsset(assetID)
	m.Lock()
	defer m.Unlock()

	asset, err := l.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, domain.ErrNotFound)
	}
	if !asset.Owner.Equal(from) {
		return nil, fmt.Errorf("%s does not own asset %s: %w", from, assetID, domain.ErrNotAuthorized)
	}

	asset.Owner = to
	if err := l.commit(ctx, asset, &schema.Transaction{
		From:      from,
		To:        to,
		AssetID:   asset.ID,
		Kind:      domain.TransactionKindTransfer,
		Timestamp: l.clock.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "transferred asset",
		zap.String("asset_id", asset.ID),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
	return asset, nil
}

// commit writes the asset record and its log entry in one store batch so
// both become durable together or not at all
func (l *Ledger) commit(ctx context.Context, asset *schema.Asset, tx *schema.Transaction) error {
	assetValue, err := asset.Encode()
	if err != nil {
		return err
	}

	logEntry, err := l.log.Prepare(ctx, tx)
	if err != nil {
		return err
	}

	return l.store.WriteBatch(ctx, []store.Entry{
		{Collection: store.CollectionAssets, Key: asset.Key(), Value: assetValue},
		logEntry,
	})
}

// GetByID retrieves an asset by id. Returns (nil, nil) when the asset does
// not exist.
func (l *Ledger) GetByID(ctx context.Context, id string) (*schema.Asset, error) {
	value, err := l.store.Get(ctx, store.CollectionAssets, []byte(id))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return schema.DecodeAsset(value)
}

// ListByOwner returns all assets owned by an identity, case-insensitive
func (l *Ledger) ListByOwner(ctx context.Context, ownerIdentity string) ([]*schema.Asset, error) {
	owner, err := domain.NewAddress(ownerIdentity)
	if err != nil {
		return nil, err
	}

	assets, err := l.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := assets[:0]
	for _, asset := range assets {
		if asset.Owner.Equal(owner) {
			owned = append(owned, asset)
		}
	}
	return owned, nil
}

// ListAll returns every asset, ordered by creation time ascending
func (l *Ledger) ListAll(ctx context.Context) ([]*schema.Asset, error) {
	values, err := l.store.List(ctx, store.CollectionAssets)
	if err != nil {
		return nil, err
	}

	assets := make([]*schema.Asset, 0, len(values))
	for _, value := range values {
		asset, err := schema.DecodeAsset(value)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].CreatedAt.Before(assets[j].CreatedAt)
	})
	return assets, nil
}

func validateNameDescription(name, description string) error {
	if name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("name exceeds %d characters: %w", domain.MaxNameLength, domain.ErrValidation)
	}
	if description == "" {
		return fmt.Errorf("description is required: %w", domain.ErrValidation)
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters: %w", domain.MaxDescriptionLength, domain.ErrValidation)
	}
	return nil
}
