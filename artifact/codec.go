package artifact

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	suffixZstd = ".zst"
	suffixLZ4  = ".lz4"
)

// splitCodec separates a compression suffix from an artifact name.
// The returned base is the name the materialized file gets locally.
func splitCodec(name string) (base, codec string) {
	switch {
	case strings.HasSuffix(name, suffixZstd):
		return strings.TrimSuffix(name, suffixZstd), suffixZstd
	case strings.HasSuffix(name, suffixLZ4):
		return strings.TrimSuffix(name, suffixLZ4), suffixLZ4
	default:
		return name, ""
	}
}

// newDecompressor wraps r with the decoder selected by codec.
func newDecompressor(codec string, r io.Reader) (io.ReadCloser, error) {
	switch codec {
	case "":
		return io.NopCloser(r), nil
	case suffixZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("artifact: zstd decoder: %w", err)
		}
		return dec.IOReadCloser(), nil
	case suffixLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("artifact: unknown codec %q", codec)
	}
}
