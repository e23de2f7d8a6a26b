// Package blob stores image bytes in a durable object store and hands back a
// retrievable URL. The post record only ever references that URL; blob
// lifecycle is owned here.
package blob

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrUnsupportedMediaType rejects a content type outside the allow-list.
	// Raised before any network call.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrStorageUnavailable marks a transient failure, safe to retry.
	ErrStorageUnavailable = errors.New("blob storage unavailable")
	// ErrQuotaExceeded is fatal for the submission; retrying won't help.
	ErrQuotaExceeded = errors.New("blob storage quota exceeded")
)

// Store persists image bytes and returns a stable, publicly dereferenceable
// URL. Implementations never retry; retry policy belongs to the caller.
type Store interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
}

var blobLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	blobLogger = l
}

// Allowed image types and their canonical file extensions.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ExtensionFor validates contentType against the allow-list and returns the
// file extension to store under.
func ExtensionFor(contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = strings.TrimSpace(ct[:idx])
	}

	ext, ok := extByContentType[ct]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, contentType)
	}
	return ext, nil
}
