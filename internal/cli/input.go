package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/columnar"
	"github.com/ajitpratap0/tabular/pkg/compression"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/frame"
)

// Output formats.
const (
	formatCSV   = "csv"
	formatJSON  = "json"
	formatArrow = "arrow"
)

// inputFormat returns the table format and compression of path, judged by
// its extensions: "data.json.zst" is zstd compressed JSON. Unknown
// extensions are read as CSV.
func inputFormat(path string) (string, compression.Algorithm) {
	ext := filepath.Ext(path)
	alg, compressed := compression.FromExtension(ext)
	if compressed {
		ext = filepath.Ext(strings.TrimSuffix(path, ext))
	} else {
		alg = compression.None
	}

	switch strings.ToLower(ext) {
	case ".json":
		return formatJSON, alg
	case ".arrow", ".ipc", ".feather":
		return formatArrow, alg
	default:
		return formatCSV, alg
	}
}

// loadTable reads path, or standard input for "-", into a table. Shape
// diagnostics are logged and the table is used as loaded.
func (a *app) loadTable(path string, stdin io.Reader) (*frame.Table, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // G304: path is the user's input file
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read input").
			WithDetail("path", path)
	}

	format, alg := inputFormat(path)
	if alg != compression.None {
		if data, err = compression.Decompress(alg, data); err != nil {
			return nil, err
		}
	}

	opts := a.frameOptions()
	var t *frame.Table
	switch format {
	case formatJSON:
		t, err = frame.FromJSON(data, opts...)
	case formatArrow:
		t, err = columnar.ReadIPC(data, opts...)
	default:
		t, err = frame.FromCSV(string(data), a.cfg.CSV, opts...)
	}
	if t == nil {
		return nil, err
	}
	if err != nil {
		a.log.Warn("input loaded with diagnostics", zap.String("path", path), zap.Error(err))
	}
	return t, nil
}

func (a *app) frameOptions() []frame.Option {
	tag, _ := a.cfg.Language()
	return []frame.Option{
		frame.WithLogger(a.log.Named("frame")),
		frame.WithLocale(tag),
	}
}

// encode serializes t in the given format.
func (a *app) encode(t *frame.Table, format string) ([]byte, error) {
	switch format {
	case formatCSV:
		return []byte(t.ToCSV(a.cfg.CSV)), nil
	case formatJSON:
		return t.ToJSON()
	case formatArrow:
		var buf bytes.Buffer
		if err := columnar.WriteIPC(&buf, t); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeValidation, "unknown output format %q", format)
	}
}

// outputName derives the artifact name for a conversion of input.
func outputName(input, format string) string {
	if input == "-" {
		return "stdin." + format
	}
	base := filepath.Base(input)
	for {
		ext := filepath.Ext(base)
		if ext == "" {
			break
		}
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
