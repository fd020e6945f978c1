package utils

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies the compression format of a byte stream
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionXz
	CompressionZstd
)

// Magic bytes for compression detection
var (
	gzipMagic = []byte{0x1F, 0x8B}

	// Zstandard magic bytes
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

	// XZ magic bytes
	xzMagic = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
)

// DetectCompression determines the compression format from leading magic bytes
func DetectCompression(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(header, xzMagic):
		return CompressionXz
	case bytes.HasPrefix(header, zstdMagic):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// ReadFileAuto reads a file, transparently decompressing gzip, xz and zstd
// content detected by magic bytes
func ReadFileAuto(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decompress(data)
}

// Decompress decompresses data according to its magic bytes. Data without a
// recognized magic prefix is returned unchanged.
func Decompress(data []byte) ([]byte, error) {
	switch DetectCompression(data) {
	case CompressionGzip:
		return GzipDecompress(data)
	case CompressionXz:
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return io.ReadAll(r)
	case CompressionZstd:
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		return data, nil
	}
}

// GzipCompress compresses data using gzip
func GzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GzipDecompress decompresses gzip data
func GzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
