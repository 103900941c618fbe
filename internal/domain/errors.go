package domain

import "errors"

var (
	// ErrValidation is returned when caller input is malformed (empty or
	// oversized fields, invalid wallet address, self-transfer)
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrNotAuthorized is returned when a transfer is attempted by a caller
	// that does not own the asset
	ErrNotAuthorized = errors.New("not authorized")

	// ErrStorage is returned when the underlying store is unavailable or a
	// record cannot be decoded
	ErrStorage = errors.New("storage failure")

	// ErrWalletAlreadyLinked is returned when linking a wallet that is
	// already linked to a different user
	ErrWalletAlreadyLinked = errors.New("wallet already linked to another user")
)
