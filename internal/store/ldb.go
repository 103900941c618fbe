package store

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/tysanh1/asset-verse-ledger/internal/domain"
)

// meta collection holds per-collection sequence counters
const collectionMeta = "meta"

type ldbStore struct {
	db *leveldb.DB

	// serializes NextSequence read-increment-write cycles
	seqMu sync.Mutex
}

// NewLevelDBStore opens (creating if needed) a LevelDB database at path.
// The returned store is safe for concurrent use.
func NewLevelDBStore(path string) (Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}
	return &ldbStore{db: db}, nil
}

// prefixKey namespaces a key under its collection. The 0x00 separator keeps
// collection names from aliasing each other ("a" + "bc" vs "ab" + "c").
func prefixKey(collection string, key []byte) []byte {
	prefixed := make([]byte, 0, len(collection)+1+len(key))
	prefixed = append(prefixed, collection...)
	prefixed = append(prefixed, 0x00)
	return append(prefixed, key...)
}

func collectionRange(collection string) *util.Range {
	return util.BytesPrefix(append([]byte(collection), 0x00))
}

// storageErr classifies any leveldb failure under the storage error kind so
// callers never see an implementation-specific error type.
func storageErr(op string, collection string, err error) error {
	return fmt.Errorf("%s %s: %v: %w", op, collection, err, domain.ErrStorage)
}

func (s *ldbStore) Get(ctx context.Context, collection string, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("get", collection, err)
	}

	value, err := s.db.Get(prefixKey(collection, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get", collection, err)
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *ldbStore) Put(ctx context.Context, collection string, key []byte, value []byte) error {
	if err := ctx.Err(); err != nil {
		return storageErr("put", collection, err)
	}

	if err := s.db.Put(prefixKey(collection, key), value, nil); err != nil {
		return storageErr("put", collection, err)
	}
	return nil
}

func (s *ldbStore) Delete(ctx context.Context, collection string, key []byte) error {
	if err := ctx.Err(); err != nil {
		return storageErr("delete", collection, err)
	}

	if err := s.db.Delete(prefixKey(collection, key), nil); err != nil {
		return storageErr("delete", collection, err)
	}
	return nil
}

func (s *ldbStore) List(ctx context.Context, collection string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("list", collection, err)
	}

	iter := s.db.NewIterator(collectionRange(collection), nil)
	defer iter.Release()

	var values [][]byte
	for iter.Next() {
		// iterator slices are only valid until the next call to Next
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		values = append(values, value)
	}
	if err := iter.Error(); err != nil {
		return nil, storageErr("list", collection, err)
	}
	return values, nil
}

func (s *ldbStore) NextSequence(ctx context.Context, collection string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storageErr("sequence", collection, err)
	}

	s.seqMu.Lock()
	defer s.seqMu.Unlock()

	seqKey := prefixKey(collectionMeta, []byte("seq:"+collection))

	var next uint64 = 1
	value, err := s.db.Get(seqKey, nil)
	switch {
	case err == leveldb.ErrNotFound:
		// first use of this counter
	case err != nil:
		return 0, storageErr("sequence", collection, err)
	case len(value) != 8:
		return 0, storageErr("sequence", collection, fmt.Errorf("truncated counter record: %x", value))
	default:
		next = binary.BigEndian.Uint64(value) + 1
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], next)
	if err := s.db.Put(seqKey, buf[:], nil); err != nil {
		return 0, storageErr("sequence", collection, err)
	}
	return next, nil
}

func (s *ldbStore) WriteBatch(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return storageErr("batch", "", err)
	}

	batch := new(leveldb.Batch)
	for _, e := range entries {
		if e.Value == nil {
			batch.Delete(prefixKey(e.Collection, e.Key))
		} else {
			batch.Put(prefixKey(e.Collection, e.Key), e.Value)
		}
	}

	if err := s.db.Write(batch, nil); err != nil {
		return storageErr("batch", "", err)
	}
	return nil
}

func (s *ldbStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close leveldb: %w", err)
	}
	return nil
}
