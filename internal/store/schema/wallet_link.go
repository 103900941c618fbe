package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tysanh1/asset-verse-ledger/internal/domain"
)

// WalletLink represents a record in the wallet_links collection mapping an
// external wallet address to an application user, keyed by (user, wallet).
// A companion wallet_index record (wallet -> user id) supports reverse lookup
// and enforces at most one user per wallet.
type WalletLink struct {
	// UserID is the opaque application user identity from the auth backend
	UserID string `json:"user_id"`
	// WalletAddress is the linked wallet in checksum form
	WalletAddress domain.Address `json:"wallet_address"`
	// CreatedAt is when the link was first created
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the store key for the link
func (l *WalletLink) Key() []byte {
	return WalletLinkKey(l.UserID, l.WalletAddress)
}

// WalletLinkKey builds the (user, wallet) composite key. The wallet part is
// lowercased so lookups are case-insensitive.
func WalletLinkKey(userID string, wallet domain.Address) []byte {
	return fmt.Appendf(nil, "%s\x00%s", userID, strings.ToLower(wallet.String()))
}

// WalletIndexKey builds the reverse-lookup key for a wallet
func WalletIndexKey(wallet domain.Address) []byte {
	return []byte(strings.ToLower(wallet.String()))
}

// Encode serializes the link record
func (l *WalletLink) Encode() ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wallet link: %v: %w", err, domain.ErrStorage)
	}
	return data, nil
}

// DecodeWalletLink deserializes a link record
func DecodeWalletLink(data []byte) (*WalletLink, error) {
	var l WalletLink
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("corrupt wallet link record: %v: %w", err, domain.ErrStorage)
	}
	return &l, nil
}
