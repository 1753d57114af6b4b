// Package compression wraps persisted output in a compressed stream.
//
// Every algorithm uses its framed file format, so a compressed artifact can
// be opened with the matching command line tool (gzip, zstd, lz4, ...).
//
// # Algorithm Selection
//
//   - Snappy/S2: best for speed, moderate compression
//   - LZ4: extremely fast, decent compression
//   - Zstd: best compression ratio, good speed
//   - Gzip: wide compatibility
//
// # Basic Usage
//
//	alg, err := compression.Parse("zstd")
//	compressed, err := compression.Compress(alg, data)
//	original, err := compression.Decompress(alg, compressed)
package compression

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// Algorithm represents a compression algorithm.
type Algorithm string

const (
	// None represents no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// Snappy represents snappy compression (framed format)
	Snappy Algorithm = "snappy"
	// S2 represents s2 compression (Snappy compatible)
	S2 Algorithm = "s2"
	// LZ4 represents lz4 compression (frame format)
	LZ4 Algorithm = "lz4"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
)

var extensions = map[Algorithm]string{
	None:   "",
	Gzip:   ".gz",
	Snappy: ".sz",
	S2:     ".s2",
	LZ4:    ".lz4",
	Zstd:   ".zst",
}

// Parse returns the algorithm for a name. The empty name is None.
func Parse(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if alg == "" {
		return None, nil
	}
	if _, ok := extensions[alg]; !ok {
		return None, errors.Newf(errors.ErrorTypeValidation, "unsupported compression algorithm: %s", name)
	}
	return alg, nil
}

// Extension returns the file suffix conventionally used for the algorithm,
// including the leading dot. None has no suffix.
func (a Algorithm) Extension() string {
	return extensions[a]
}

// FromExtension returns the algorithm whose file suffix is ext, such as
// ".zst". It reports false for unknown or empty suffixes.
func FromExtension(ext string) (Algorithm, bool) {
	ext = strings.ToLower(ext)
	if ext == "" {
		return None, false
	}
	for alg, e := range extensions {
		if e == ext {
			return alg, true
		}
	}
	return None, false
}

// NewWriter returns a writer compressing into dst. Close must be called to
// flush the trailing frame; it does not close dst.
func NewWriter(a Algorithm, dst io.Writer) (io.WriteCloser, error) {
	switch a {
	case None, "":
		return nopCloser{dst}, nil
	case Gzip:
		return gzip.NewWriter(dst), nil
	case Snappy:
		return snappy.NewBufferedWriter(dst), nil
	case S2:
		return s2.NewWriter(dst), nil
	case LZ4:
		return lz4.NewWriter(dst), nil
	case Zstd:
		return zstd.NewWriter(dst)
	default:
		return nil, errors.Newf(errors.ErrorTypeValidation, "unsupported compression algorithm: %s", a)
	}
}

// NewReader returns a reader decompressing src.
func NewReader(a Algorithm, src io.Reader) (io.ReadCloser, error) {
	switch a {
	case None, "":
		return io.NopCloser(src), nil
	case Gzip:
		return gzip.NewReader(src)
	case Snappy:
		return io.NopCloser(snappy.NewReader(src)), nil
	case S2:
		return io.NopCloser(s2.NewReader(src)), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(src)), nil
	case Zstd:
		dec, err := zstd.NewReader(src)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeValidation, "unsupported compression algorithm: %s", a)
	}
}

// Compress compresses data in memory.
func Compress(a Algorithm, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(a, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeData, "compression failed").
			WithDetail("algorithm", string(a))
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "compression failed").
			WithDetail("algorithm", string(a))
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(a Algorithm, data []byte) ([]byte, error) {
	r, err := NewReader(a, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "decompression failed").
			WithDetail("algorithm", string(a))
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "decompression failed").
			WithDetail("algorithm", string(a))
	}
	return out, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
