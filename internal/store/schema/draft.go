package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tysanh1/asset-verse-ledger/internal/domain"
)

// Draft represents a record in the drafts collection: a transient,
// unsubmitted asset-creation form keyed by a client-generated id. Drafts live
// in their own namespace, independent of asset ids, and are deleted on
// successful mint or explicit discard.
type Draft struct {
	// ID is the draft id, client-generated or assigned on first save
	ID string `json:"id"`
	// Name is the draft asset name, not validated until mint
	Name string `json:"name"`
	// Description is the draft description, not validated until mint
	Description string `json:"description"`
	// Image is the optional image payload
	Image *string `json:"image"`
	// LastUpdated is set to the current time on every save
	LastUpdated time.Time `json:"last_updated"`
}

// Key returns the store key for the draft
func (d *Draft) Key() []byte {
	return []byte(d.ID)
}

// Encode serializes the draft record
func (d *Draft) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft %s: %v: %w", d.ID, err, domain.ErrStorage)
	}
	return data, nil
}

// DecodeDraft deserializes a draft record
func DecodeDraft(data []byte) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("corrupt draft record: %v: %w", err, domain.ErrStorage)
	}
	return &d, nil
}
