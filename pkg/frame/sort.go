package frame

import (
	"math"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/text/collate"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/metrics"
)

// SortBy sorts the rows in place by the named column. The sort is stable.
//
// Two numbers compare by value and two strings by the table's collation
// locale; descending reverses both. When one cell is a number and the
// other text the first is ordered before the second, which is not a total
// order, so columns of mixed kinds end up in an unspecified order and a
// data error is returned after sorting. An unknown column leaves the table
// untouched and returns a not_found error.
func (t *Table) SortBy(name string, descending bool) error {
	idx := t.columnIndex(name)
	if idx < 0 {
		err := t.unknownColumn("sort", name)
		metrics.RecordOperation("sort", err)
		return err
	}

	sign := 1
	if descending {
		sign = -1
	}
	coll := collate.New(t.locale)
	mixed := 0

	slices.SortStableFunc(t.rows, func(a, b []Cell) int {
		ca, cb := cellAt(a, idx), cellAt(b, idx)
		switch {
		case ca.kind == KindNumber && cb.kind == KindNumber:
			return sign * compareNumbers(ca.num, cb.num)
		case ca.kind == KindText && cb.kind == KindText:
			return sign * coll.CompareString(ca.text, cb.text)
		default:
			mixed++
			return -1
		}
	})

	if mixed > 0 {
		t.log.Warn("sorting a column that mixes numbers and text",
			zap.String("column", name),
			zap.Int("comparisons", mixed))
		err := errors.Newf(errors.ErrorTypeData, "column %q mixes numbers and text", name).
			WithDetail("column", name).
			WithDetail("comparisons", mixed)
		metrics.RecordOperation("sort", err)
		return err
	}
	metrics.RecordOperation("sort", nil)
	return nil
}

// compareNumbers orders by a - b. A NaN difference counts as equal.
func compareNumbers(a, b float64) int {
	d := a - b
	switch {
	case math.IsNaN(d) || d == 0:
		return 0
	case d < 0:
		return -1
	default:
		return 1
	}
}
