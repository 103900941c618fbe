package dto

import (
	"time"

	"github.com/tysanh1/asset-verse-ledger/internal/store/schema"
)

// SaveDraftRequest is the request body for autosaving a draft
type SaveDraftRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

// DraftResponse is the wire representation of a draft
type DraftResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	LastUpdated time.Time `json:"last_updated"`
}

// FromDraft maps a stored draft record to its wire representation
func FromDraft(d *schema.Draft) DraftResponse {
	return DraftResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Image:       d.Image,
		LastUpdated: d.LastUpdated,
	}
}
