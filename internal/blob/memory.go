package blob

import (
	"context"

	"github.com/apgomes/blogmod/internal/cache"
	"github.com/google/uuid"
)

// MemoryBlobStore is an in-process store for tests and local hacking.
// Err, when set, is returned by every Store call.
type MemoryBlobStore struct { // implements Store
	blobs *cache.Cache[string, []byte]

	baseURL string
	calls   int

	Err error
}

func NewMemoryBlobStore(baseURL string) *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs:   cache.NewCache[string, []byte](),
		baseURL: baseURL,
	}
}

func (s *MemoryBlobStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	s.calls++

	ext, err := ExtensionFor(contentType)
	if err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}

	url := s.baseURL + "/" + uuid.New().String() + ext
	s.blobs.Set(url, data)
	return url, nil
}

// Get returns previously stored bytes by URL.
func (s *MemoryBlobStore) Get(url string) ([]byte, bool) {
	return s.blobs.Get(url)
}

// Calls reports how many Store attempts were made, including failed ones.
func (s *MemoryBlobStore) Calls() int {
	return s.calls
}
