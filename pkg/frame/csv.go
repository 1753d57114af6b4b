package frame

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/metrics"
)

const (
	// LineBreak separates CSV lines, both when reading and writing.
	LineBreak = "\r\n"
	// DefaultDelimiter is the default CSV field delimiter.
	DefaultDelimiter = ","
	// DefaultDecimal is the default decimal mark.
	DefaultDecimal = "."
	// DefaultFilename is used when a path has no final segment.
	DefaultFilename = "default.csv"
)

// CSVOptions controls the CSV dialect. Empty fields take the defaults.
type CSVOptions struct {
	Delimiter string `yaml:"delimiter" json:"delimiter" toml:"delimiter"`
	Decimal   string `yaml:"decimal" json:"decimal" toml:"decimal"`
}

func (o CSVOptions) withDefaults() CSVOptions {
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	if o.Decimal == "" {
		o.Decimal = DefaultDecimal
	}
	return o
}

// Persister saves serialized content under a suggested file name. It is
// the only way the table reaches storage.
type Persister interface {
	Persist(ctx context.Context, name string, content []byte) error
}

// parseCSV splits text on CRLF. The first line holds the column names,
// taken verbatim; every non-empty following line becomes a row of coerced
// cells.
func parseCSV(text string, o CSVOptions) ([]string, [][]Cell) {
	lines := strings.Split(text, LineBreak)
	names := strings.Split(lines[0], o.Delimiter)

	rows := make([][]Cell, 0, len(lines)-1)
	cells := 0
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		fields := strings.Split(line, o.Delimiter)
		row := make([]Cell, len(fields))
		for i, f := range fields {
			row[i] = Coerce(f, o.Decimal)
		}
		cells += len(row)
		rows = append(rows, row)
	}
	metrics.CellsParsed.Add(float64(cells))
	return names, rows
}

// LoadCSV replaces the table's names and rows with the contents of text.
// A non-nil error reports rows of the wrong width; the data is loaded
// regardless.
func (t *Table) LoadCSV(text string, o CSVOptions) error {
	o = o.withDefaults()
	t.names, t.rows = parseCSV(text, o)
	t.log.Debug("loaded csv",
		zap.Int("columns", len(t.names)),
		zap.Int("rows", len(t.rows)),
		zap.String("delimiter", o.Delimiter))
	err := t.checkShape()
	metrics.RecordOperation("load_csv", err)
	return err
}

// FromCSV creates a table from CSV text. See LoadCSV.
func FromCSV(text string, o CSVOptions, opts ...Option) (*Table, error) {
	t := newTable(opts)
	err := t.LoadCSV(text, o)
	return t, err
}

// ToCSV serializes the table. Names are joined with commas and every comma
// is then replaced by the delimiter, so a name containing a comma is split
// when the delimiter differs. Each cell, including the last in a row, is
// followed by the delimiter. Numeric cells have their first '.' replaced
// by the decimal mark.
func (t *Table) ToCSV(o CSVOptions) string {
	o = o.withDefaults()

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(strings.Join(t.names, ","), ",", o.Delimiter))
	b.WriteString(LineBreak)
	for _, row := range t.rows {
		for _, c := range row {
			if isNumeric(c) {
				b.WriteString(strings.Replace(c.String(), ".", o.Decimal, 1))
			} else {
				b.WriteString(c.String())
			}
			b.WriteString(o.Delimiter)
		}
		b.WriteString(LineBreak)
	}
	return b.String()
}

// SuggestedFilename returns the last '/'-separated segment of path, or
// DefaultFilename when that segment is empty.
func SuggestedFilename(path string) string {
	name := path[strings.LastIndex(path, "/")+1:]
	if name == "" {
		return DefaultFilename
	}
	return name
}

// WriteCSV serializes the table and hands it to p under the name suggested
// by filename. Whether the hand-off blocks is up to p.
func (t *Table) WriteCSV(ctx context.Context, p Persister, filename string, o CSVOptions) error {
	content := t.ToCSV(o)
	name := SuggestedFilename(filename)
	if err := p.Persist(ctx, name, []byte(content)); err != nil {
		metrics.RecordOperation("write_csv", err)
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to persist csv").
			WithDetail("name", name)
	}
	t.log.Debug("csv handed to persister", zap.String("name", name), zap.Int("bytes", len(content)))
	metrics.RecordOperation("write_csv", nil)
	return nil
}
