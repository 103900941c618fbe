package dto

import (
	"time"

	"github.com/tysanh1/asset-verse-ledger/internal/store/schema"
)

// LinkWalletRequest is the request body for linking a wallet to the
// authenticated user
type LinkWalletRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// WalletLinkResponse is the wire representation of a wallet link
type WalletLinkResponse struct {
	UserID        string    `json:"user_id"`
	WalletAddress string    `json:"wallet_address"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListWalletLinksResponse wraps a user's wallet links
type ListWalletLinksResponse struct {
	Links []WalletLinkResponse `json:"links"`
	Total int                  `json:"total"`
}

// ResolveUserResponse carries the user id a wallet resolves to
type ResolveUserResponse struct {
	UserID string `json:"user_id"`
}

// FromWalletLink maps a stored link record to its wire representation
func FromWalletLink(l *schema.WalletLink) WalletLinkResponse {
	return WalletLinkResponse{
		UserID:        l.UserID,
		WalletAddress: l.WalletAddress.String(),
		CreatedAt:     l.CreatedAt,
	}
}

// FromWalletLinks maps a list of link records
func FromWalletLinks(links []*schema.WalletLink) ListWalletLinksResponse {
	out := make([]WalletLinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, FromWalletLink(l))
	}
	return ListWalletLinksResponse{Links: out, Total: len(out)}
}
