package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address represents an EVM wallet address in EIP-55 checksum form.
// Use NewAddress to construct one from untrusted input.
type Address string

// ZeroAddress is the reserved sentinel identity used as the `from` of every
// mint transaction. It is distinct from any real wallet.
var ZeroAddress = Address(common.Address{}.Hex())

// NewAddress validates and normalizes a wallet address string.
// A valid address is a 0x prefix followed by 40 hex characters.
func NewAddress(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("invalid wallet address %q: %w", s, ErrValidation)
	}
	return Address(common.HexToAddress(s).Hex()), nil
}

// String returns the string representation of the Address
func (a Address) String() string {
	return string(a)
}

// Equal compares two addresses case-insensitively
func (a Address) Equal(other Address) bool {
	return strings.EqualFold(string(a), string(other))
}

// EqualString compares an address against a raw string case-insensitively
func (a Address) EqualString(s string) bool {
	return strings.EqualFold(string(a), s)
}

// IsZero reports whether the address is the mint sentinel
func (a Address) IsZero() bool {
	return a.Equal(ZeroAddress)
}

// TransactionKind represents the kind of a ledger transaction
type TransactionKind string

const (
	TransactionKindMint     TransactionKind = "mint"
	TransactionKindTransfer TransactionKind = "transfer"
)

// IsValidTransactionKind checks if a transaction kind is valid
func IsValidTransactionKind(kind TransactionKind) bool {
	return kind == TransactionKindMint || kind == TransactionKindTransfer
}

// NewTransactionHash generates a transaction identifier from 32 bytes of
// cryptographically secure randomness, hex-encoded with a 0x prefix.
// Collision probability is negligible so the log does not re-check uniqueness.
func NewTransactionHash() (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to generate transaction hash: %w", err)
	}
	return "0x" + hex.EncodeToString(buf[:]), nil
}
