package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Address
		wantErr bool
	}{
		{
			name:  "valid lowercase address",
			input: "0x396343362be2a4da1ce0c1c210945346fb82aa49",
			want:  Address("0x396343362be2A4dA1cE0C1C210945346fb82Aa49"),
		},
		{
			name:  "valid mixed case address",
			input: "0x396343362be2A4dA1cE0C1C210945346fb82Aa49",
			want:  Address("0x396343362be2A4dA1cE0C1C210945346fb82Aa49"),
		},
		{
			name:    "missing 0x prefix",
			input:   "396343362be2a4da1ce0c1c210945346fb82aa49",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "0x1234",
			wantErr: true,
		},
		{
			name:    "non-hex characters",
			input:   "0x396343362be2a4da1ce0c1c210945346fb82aazz",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAddress(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddressEqual(t *testing.T) {
	a, err := NewAddress("0x396343362be2a4da1ce0c1c210945346fb82aa49")
	require.NoError(t, err)

	assert.True(t, a.Equal(Address("0X396343362BE2A4DA1CE0C1C210945346FB82AA49")))
	assert.True(t, a.EqualString("0x396343362be2a4da1ce0c1c210945346fb82aa49"))
	assert.False(t, a.Equal(ZeroAddress))
	assert.False(t, a.IsZero())
	assert.True(t, ZeroAddress.IsZero())
}

func TestNewTransactionHash(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		hash, err := NewTransactionHash()
		require.NoError(t, err)
		assert.Len(t, hash, 66)
		assert.True(t, strings.HasPrefix(hash, "0x"))
		assert.False(t, seen[hash], "duplicate hash generated")
		seen[hash] = true
	}
}

func TestIsValidTransactionKind(t *testing.T) {
	assert.True(t, IsValidTransactionKind(TransactionKindMint))
	assert.True(t, IsValidTransactionKind(TransactionKindTransfer))
	assert.False(t, IsValidTransactionKind(TransactionKind("burn")))
	assert.False(t, IsValidTransactionKind(TransactionKind("")))
}
