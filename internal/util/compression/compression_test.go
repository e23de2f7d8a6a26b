package compression

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte("First post. Some content worth compressing, repeated: post post post.")

	for _, tc := range []struct {
		name string
		c    Compressor
	}{
		{"zstd", ZstdCompressor{}},
		{"gzip", GzipCompressor{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			compressed, err := tc.c.Compress(payload)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}

			out, err := tc.c.Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(out, payload) {
				t.Errorf("Round trip mismatch: got %q", out)
			}
		})
	}
}

func TestForName(t *testing.T) {
	if _, ok := ForName("gzip").(GzipCompressor); !ok {
		t.Error("Expected gzip compressor")
	}
	if _, ok := ForName("zstd").(ZstdCompressor); !ok {
		t.Error("Expected zstd compressor")
	}
	if _, ok := ForName("").(ZstdCompressor); !ok {
		t.Error("Expected zstd fallback for unknown name")
	}
}
