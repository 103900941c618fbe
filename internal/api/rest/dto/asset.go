package dto

import (
	"time"

	"github.com/tysanh1/asset-verse-ledger/internal/store/schema"
)

// MintAssetRequest is the request body for minting an asset
type MintAssetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ContentURI  string `json:"content_uri"`
	Owner       string `json:"owner"`
}

// TransferAssetRequest is the request body for transferring an asset
type TransferAssetRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AssetResponse is the wire representation of an asset
type AssetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Owner       string    `json:"owner"`
	Creator     string    `json:"creator"`
	ContentURI  string    `json:"content_uri"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListAssetsResponse wraps a list of assets
type ListAssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
	Total  int             `json:"total"`
}

// FromAsset maps a stored asset record to its wire representation
func FromAsset(a *schema.Asset) AssetResponse {
	return AssetResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Image:       a.Image,
		Owner:       a.Owner.String(),
		Creator:     a.Creator.String(),
		ContentURI:  a.ContentURI,
		CreatedAt:   a.CreatedAt,
	}
}

// FromAssets maps a list of asset records
func FromAssets(assets []*schema.Asset) ListAssetsResponse {
	out := make([]AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, FromAsset(a))
	}
	return ListAssetsResponse{Assets: out, Total: len(out)}
}
