package draft

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tysanh1/asset-verse-ledger/internal/domain"
	"github.com/tysanh1/asset-verse-ledger/internal/store"
	"github.com/tysanh1/asset-verse-ledger/internal/types"
)

// fakeClock returns a pinned, manually advanced time
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time                  { return c.now }
func (c *fakeClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

func newTestDraftStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	st, err := store.NewLevelDBStore(filepath.Join(t.TempDir(), "ledger.leveldb"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return New(st, clock), clock
}

func TestSaveUpsert(t *testing.T) {
	s, clock := newTestDraftStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, "draft-1", "Art1", "first pass", nil)
	require.NoError(t, err)
	assert.Equal(t, clock.now, first.LastUpdated)

	clock.now = clock.now.Add(time.Minute)
	second, err := s.Save(ctx, "draft-1", "Art1", "second pass", nil)
	require.NoError(t, err)
	assert.Equal(t, clock.now, second.LastUpdated)

	// N saves with the same id leave exactly one record holding the last call
	latest, err := s.LoadLatest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "draft-1", latest.ID)
	assert.Equal(t, "second pass", latest.Description)
	assert.Equal(t, clock.now, latest.LastUpdated)
}

func TestSaveGeneratesID(t *testing.T) {
	s, _ := newTestDraftStore(t)

	d, err := s.Save(context.Background(), "", "Untitled", "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
}

func TestSaveRejectsNonImagePayload(t *testing.T) {
	s, _ := newTestDraftStore(t)

	_, err := s.Save(context.Background(), "draft-1", "Art1", "",
		types.StringPtr("data:text/plain;base64,aGVsbG8="))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestLoadLatestByLastUpdated(t *testing.T) {
	s, clock := newTestDraftStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "draft-a", "A", "", nil)
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Minute)
	_, err = s.Save(ctx, "draft-b", "B", "", nil)
	require.NoError(t, err)

	// updating the earlier draft makes it the latest, despite insertion order
	clock.now = clock.now.Add(time.Minute)
	_, err = s.Save(ctx, "draft-a", "A", "updated", nil)
	require.NoError(t, err)

	latest, err := s.LoadLatest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "draft-a", latest.ID)
}

func TestLoadLatestEmpty(t *testing.T) {
	s, _ := newTestDraftStore(t)

	latest, err := s.LoadLatest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestDelete(t *testing.T) {
	s, _ := newTestDraftStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "draft-1", "Art1", "", nil)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "draft-1"))

	d, err := s.Get(ctx, "draft-1")
	require.NoError(t, err)
	assert.Nil(t, d)

	err = s.Delete(ctx, "draft-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
