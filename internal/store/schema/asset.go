package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tysanh1/asset-verse-ledger/internal/domain"
)

// Asset represents a record in the assets collection, keyed by ID
type Asset struct {
	// ID is the opaque unique asset id generated at mint time, immutable
	ID string `json:"id"`
	// Name is the display name, at most domain.MaxNameLength characters
	Name string `json:"name"`
	// Description is at most domain.MaxDescriptionLength characters
	Description string `json:"description"`
	// Image is a URL or inline data URI reference to the artwork
	Image string `json:"image"`
	// Owner is the current owner identity; changes only via a validated transfer
	Owner domain.Address `json:"owner"`
	// Creator is the minting identity, immutable after mint
	Creator domain.Address `json:"creator"`
	// ContentURI is the content reference for the asset
	ContentURI string `json:"content_uri"`
	// CreatedAt is the mint timestamp, immutable
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the store key for the asset
func (a *Asset) Key() []byte {
	return []byte(a.ID)
}

// Encode serializes the asset record
func (a *Asset) Encode() ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode asset %s: %v: %w", a.ID, err, domain.ErrStorage)
	}
	return data, nil
}

// DecodeAsset deserializes an asset record
func DecodeAsset(data []byte) (*Asset, error) {
	var a Asset
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("corrupt asset record: %v: %w", err, domain.ErrStorage)
	}
	return &a, nil
}
