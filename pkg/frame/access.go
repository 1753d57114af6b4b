package frame

import (
	"math"

	"github.com/ajitpratap0/tabular/pkg/metrics"
)

// ColumnByIndex returns a fresh slice holding column i of every row.
// Rows too short to have the column contribute the missing marker.
func (t *Table) ColumnByIndex(i int) []Cell {
	col := make([]Cell, 0, len(t.rows))
	for _, row := range t.rows {
		col = append(col, cellAt(row, i))
	}
	return col
}

// ColumnByName returns a fresh slice holding the named column. An unknown
// name yields an empty slice and a not_found error.
func (t *Table) ColumnByName(name string) ([]Cell, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		err := t.unknownColumn("column", name)
		metrics.RecordOperation("column", err)
		return []Cell{}, err
	}
	metrics.RecordOperation("column", nil)
	return t.ColumnByIndex(idx), nil
}

// Row returns the row at index i without copying, or nil when i is out
// of range.
func (t *Table) Row(i int) []Cell {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.rows[i]
}

// AddColumn appends a column called name. Row i receives values[i]; rows
// beyond the end of values receive the missing marker and surplus values
// are ignored.
func (t *Table) AddColumn(values []Cell, name string) {
	for i := range t.rows {
		if i < len(values) {
			t.rows[i] = append(t.rows[i], values[i])
		} else {
			t.rows[i] = append(t.rows[i], Missing())
		}
	}
	t.names = append(t.names, name)
	metrics.RecordOperation("add_column", nil)
}

// cellKey identifies a cell for set membership. NaN equals NaN and -0
// equals 0; numbers never equal text.
type cellKey struct {
	kind Kind
	num  float64
	nan  bool
	text string
}

func keyOf(c Cell) cellKey {
	switch {
	case c.kind == KindText:
		return cellKey{kind: KindText, text: c.text}
	case math.IsNaN(c.num):
		return cellKey{kind: KindNumber, nan: true}
	case c.num == 0:
		return cellKey{kind: KindNumber}
	default:
		return cellKey{kind: KindNumber, num: c.num}
	}
}

// UniqueValues returns the distinct values of the named column in order of
// first occurrence. An unknown name yields an empty slice and a not_found
// error.
func (t *Table) UniqueValues(name string) ([]Cell, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		err := t.unknownColumn("unique", name)
		metrics.RecordOperation("unique", err)
		return []Cell{}, err
	}
	col := t.ColumnByIndex(idx)
	seen := make(map[cellKey]struct{}, len(col))
	unique := make([]Cell, 0, len(col))
	for _, c := range col {
		k := keyOf(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, c)
	}
	metrics.RecordOperation("unique", nil)
	return unique, nil
}
