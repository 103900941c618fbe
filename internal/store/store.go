package store

import "context"

// Collection names. Each logical collection is a mapping from id to a
// serialized record; the store performs no foreign-key enforcement.
const (
	CollectionAssets       = "assets"
	CollectionTransactions = "transactions"
	CollectionWalletLinks  = "wallet_links"
	CollectionWalletIndex  = "wallet_index"
	CollectionDrafts       = "drafts"
)

// Entry is one write in a batch. A nil Value deletes the key.
type Entry struct {
	Collection string
	Key        []byte
	Value      []byte
}

// Store defines the interface for the persistent key/value byte store.
// Values returned by Get and List are owned by the caller.
type Store interface {
	// Get retrieves a value by key. Returns (nil, nil) when the key is absent.
	Get(ctx context.Context, collection string, key []byte) ([]byte, error)
	// Put stores a key/value pair, overwriting any existing value
	Put(ctx context.Context, collection string, key []byte, value []byte) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, collection string, key []byte) error
	// List returns all values in a collection in ascending key order
	List(ctx context.Context, collection string) ([][]byte, error)
	// NextSequence atomically increments and returns a durable per-collection
	// counter, starting at 1
	NextSequence(ctx context.Context, collection string) (uint64, error)
	// WriteBatch applies all entries atomically: either every entry is
	// durably observable or none is
	WriteBatch(ctx context.Context, entries []Entry) error
	// Close releases the underlying database
	Close() error
}
