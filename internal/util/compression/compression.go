// Package compression abstracts the codec used for stored post content.
package compression

type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// ForName maps a config value to a compressor. Unknown names fall back to zstd.
func ForName(name string) Compressor {
	switch name {
	case "gzip":
		return GzipCompressor{}
	default:
		return ZstdCompressor{}
	}
}
