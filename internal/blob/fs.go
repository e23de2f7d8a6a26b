package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/apgomes/blogmod/internal/util"
)

// FSBlobStore keeps blobs in a local directory, named by content digest.
// Identical content maps to the same file, so re-storing it is a no-op and
// distinct content can never collide.
type FSBlobStore struct { // implements Store
	dir     string
	baseURL string
}

func NewFSBlobStore(dir, baseURL string) (*FSBlobStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}

	return &FSBlobStore{
		dir:     abs,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *FSBlobStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	ext, err := ExtensionFor(contentType)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	name := util.ContentHash(data) + ext
	dst := filepath.Join(s.dir, name)

	if _, err := os.Stat(dst); err == nil {
		// Same digest, same bytes. Nothing to write.
		return s.urlFor(name), nil
	}

	tmp, err := os.CreateTemp(s.dir, "put-*")
	if err != nil {
		return "", classifyFSError(err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", classifyFSError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", classifyFSError(err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return "", classifyFSError(err)
	}

	blobLogger.Info().Str("file", name).Int("size", len(data)).Msg("Stored blob")

	return s.urlFor(name), nil
}

func (s *FSBlobStore) urlFor(name string) string {
	return s.baseURL + "/uploads/" + name
}

func classifyFSError(err error) error {
	if errors.Is(err, syscall.ENOSPC) {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
