package frame

import (
	"slices"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/logger"
	"github.com/ajitpratap0/tabular/pkg/metrics"
)

// Table is a row-major, in-memory table with ordered column names.
// It is not safe for concurrent mutation.
type Table struct {
	names []string
	rows  [][]Cell

	log    *zap.Logger
	locale language.Tag
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger that receives diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.log = l
		}
	}
}

// WithLocale sets the collation language used when sorting text columns.
func WithLocale(tag language.Tag) Option {
	return func(t *Table) {
		t.locale = tag
	}
}

func newTable(opts []Option) *Table {
	t := &Table{locale: language.Und}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = logger.Get().Named("frame")
	}
	return t
}

// New creates a table from rows and column names. The table takes
// ownership of both slices. If a row's length differs from the number of
// names (or, without names, from the first row) the table is still
// returned as-is together with a validation error listing the offending
// rows.
func New(rows [][]Cell, names []string, opts ...Option) (*Table, error) {
	t := newTable(opts)
	t.rows = rows
	t.names = names
	if t.names == nil {
		t.names = []string{}
	}
	err := t.checkShape()
	metrics.RecordOperation("new", err)
	return t, err
}

// checkShape reports rows whose width does not match the header or the
// first row.
func (t *Table) checkShape() error {
	if len(t.rows) == 0 {
		return nil
	}
	want := len(t.names)
	if want == 0 {
		want = len(t.rows[0])
	}

	var bad []int
	for i, row := range t.rows {
		if len(row) != want {
			t.log.Warn("row length does not match table width",
				zap.Int("row", i),
				zap.Int("length", len(row)),
				zap.Int("expected", want))
			bad = append(bad, i)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrorTypeValidation, "%d row(s) do not have %d cells", len(bad), want).
		WithDetail("rows", bad).
		WithDetail("expected", want)
}

// Length returns the number of rows.
func (t *Table) Length() int {
	return len(t.rows)
}

// Size returns the number of columns and rows.
func (t *Table) Size() (columns, rows int) {
	return len(t.names), len(t.rows)
}

// Names returns a copy of the column names.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Rows returns the underlying rows. Mutating them mutates the table.
func (t *Table) Rows() [][]Cell {
	return t.rows
}

// columnIndex returns the index of the first column called name, or -1.
func (t *Table) columnIndex(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (t *Table) unknownColumn(op, name string) error {
	t.log.Warn("unknown column", zap.String("operation", op), zap.String("column", name))
	return errors.Newf(errors.ErrorTypeNotFound, "%q is not a column name", name).
		WithDetail("column", name).
		WithDetail("operation", op)
}

// cellAt returns row[i], or the missing marker for short rows.
func cellAt(row []Cell, i int) Cell {
	if i < 0 || i >= len(row) {
		return Missing()
	}
	return row[i]
}
