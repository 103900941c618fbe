// Package draft owns the drafts collection: transient asset-creation forms
// autosaved by the UI. Drafts have their own id namespace and lifecycle,
// independent of the ledger. Debouncing belongs to the caller; every Save
// here is one write.
package draft

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/tysanh1/asset-verse-ledger/internal/adapter"
	"github.com/tysanh1/asset-verse-ledger/internal/domain"
	"github.com/tysanh1/asset-verse-ledger/internal/store"
	"github.com/tysanh1/asset-verse-ledger/internal/store/schema"
)

// Store provides draft persistence
type Store struct {
	store store.Store
	clock adapter.Clock
}

// New creates a draft store backed by the given store
func New(st store.Store, clock adapter.Clock) *Store {
	return &Store{store: st, clock: clock}
}

// Save upserts a draft: overwrite when the id exists, insert otherwise.
// An empty id gets a server-generated one. LastUpdated is set to the current
// time on every call. Name and description are not validated here; a draft
// is unsubmitted input and only the mint enforces field bounds.
func (s *Store) Save(ctx context.Context, id, name, description string, image *string) (*schema.Draft, error) {
	if id == "" {
		id = ulid.Make().String()
	}

	// inline payloads are still sniffed so the store never holds non-image blobs
	if image != nil && strings.HasPrefix(*image, "data:") {
		if _, err := domain.DecodeDataURI(*image); err != nil {
			return nil, err
		}
	}

	d := &schema.Draft{
		ID:          id,
		Name:        name,
		Description: description,
		Image:       image,
		LastUpdated: s.clock.Now().UTC(),
	}
	value, err := d.Encode()
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, store.CollectionDrafts, d.Key(), value); err != nil {
		return nil, err
	}
	return d, nil
}

// Get retrieves a draft by id. Returns (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, id string) (*schema.Draft, error) {
	value, err := s.store.Get(ctx, store.CollectionDrafts, []byte(id))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return schema.DecodeDraft(value)
}

// LoadLatest returns the most-recently-updated draft across all drafts, or
// (nil, nil) when none exist. Recency is tracked by LastUpdated, not
// insertion order.
func (s *Store) LoadLatest(ctx context.Context) (*schema.Draft, error) {
	values, err := s.store.List(ctx, store.CollectionDrafts)
	if err != nil {
		return nil, err
	}

	var latest *schema.Draft
	for _, value := range values {
		d, err := schema.DecodeDraft(value)
		if err != nil {
			return nil, err
		}
		if latest == nil || d.LastUpdated.After(latest.LastUpdated) {
			latest = d
		}
	}
	return latest, nil
}

// Delete removes a draft. Deleting an unknown id fails with
// domain.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	existing, err := s.store.Get(ctx, store.CollectionDrafts, []byte(id))
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}
	return s.store.Delete(ctx, store.CollectionDrafts, []byte(id))
}
