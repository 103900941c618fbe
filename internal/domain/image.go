package domain

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// image reference schemes accepted alongside inline data URIs
var imageRefSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ipfs":  true,
	"ar":    true,
}

// ValidateImageRef checks an image reference supplied at mint or draft save.
// The UI sends either a plain URL or a base64 data URI produced from a local
// file. Inline payloads are decoded and content-sniffed: anything that is
// not an image is rejected.
func ValidateImageRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("image reference is required: %w", ErrValidation)
	}

	if strings.HasPrefix(ref, "data:") {
		_, err := DecodeDataURI(ref)
		return err
	}

	u, err := url.Parse(ref)
	if err != nil || !imageRefSchemes[u.Scheme] {
		return fmt.Errorf("unsupported image reference %q: %w", ref, ErrValidation)
	}
	return nil
}

// DecodeDataURI decodes an RFC 2397 base64 data URI and verifies the payload
// is an image. Returns the decoded bytes.
func DecodeDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URI: %w", ErrValidation)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI: %w", ErrValidation)
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("data URI must be base64 encoded: %w", ErrValidation)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", ErrValidation)
	}

	if mtype := mimetype.Detect(data); !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("payload is %s, not an image: %w", mtype.String(), ErrValidation)
	}
	return data, nil
}
