package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 1x1 transparent PNG
const pngDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func TestValidateImageRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{
			name: "https url",
			ref:  "https://example.com/art.png",
		},
		{
			name: "ipfs uri",
			ref:  "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
		},
		{
			name: "inline png data uri",
			ref:  pngDataURI,
		},
		{
			name:    "empty reference",
			ref:     "",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			ref:     "ftp://example.com/art.png",
			wantErr: true,
		},
		{
			name:    "data uri with text payload",
			ref:     "data:text/plain;base64,aGVsbG8gd29ybGQ=",
			wantErr: true,
		},
		{
			name:    "data uri without base64 marker",
			ref:     "data:image/png,rawbytes",
			wantErr: true,
		},
		{
			name:    "data uri with broken base64",
			ref:     "data:image/png;base64,!!!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageRef(tt.ref)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecodeDataURI(t *testing.T) {
	data, err := DecodeDataURI(pngDataURI)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = DecodeDataURI("https://example.com/art.png")
	assert.True(t, errors.Is(err, ErrValidation))
}
