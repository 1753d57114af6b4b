package frame

import (
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/metrics"
)

// Where returns a new table holding the rows that match every condition,
// in their original order. A condition matches a cell under LooseEqual, so
// Number(12) and Text("12") select the same rows.
//
// With no conditions every row is returned. A condition on an unknown
// column matches nothing; the empty table is returned with a not_found
// error naming the columns.
//
// The result owns copies of the names and of the selected rows.
func (t *Table) Where(conditions map[string]Cell) (*Table, error) {
	columns := make([]string, 0, len(conditions))
	for name := range conditions {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	var indices []int
	var unknown []string
	if len(columns) == 0 {
		indices = make([]int, len(t.rows))
		for i := range indices {
			indices[i] = i
		}
	} else {
		sets := make([][]int, 0, len(columns))
		for _, name := range columns {
			idx := t.columnIndex(name)
			if idx < 0 {
				unknown = append(unknown, name)
				sets = append(sets, nil)
				continue
			}
			sets = append(sets, t.matching(idx, conditions[name]))
		}
		indices = intersect(sets)
	}

	out := &Table{
		names:  slices.Clone(t.names),
		rows:   make([][]Cell, 0, len(indices)),
		log:    t.log,
		locale: t.locale,
	}
	for _, i := range indices {
		out.rows = append(out.rows, slices.Clone(t.rows[i]))
	}

	var err error
	if len(unknown) > 0 {
		t.log.Warn("filter on unknown columns", zap.Strings("columns", unknown))
		err = errors.Newf(errors.ErrorTypeNotFound, "%d filter column(s) do not exist", len(unknown)).
			WithDetail("columns", unknown).
			WithDetail("operation", "where")
	}
	metrics.RecordOperation("where", err)
	return out, err
}

// matching scans column idx and returns the indices of rows whose cell
// loosely equals value.
func (t *Table) matching(idx int, value Cell) []int {
	var hits []int
	for i, row := range t.rows {
		if LooseEqual(cellAt(row, idx), value) {
			hits = append(hits, i)
		}
	}
	return hits
}

// intersect keeps the indices of the first set that appear in every other
// set, sorted ascending.
func intersect(sets [][]int) []int {
	if len(sets) == 0 {
		return nil
	}
	pool := slices.Clone(sets[0])
	for _, set := range sets[1:] {
		member := make(map[int]struct{}, len(set))
		for _, i := range set {
			member[i] = struct{}{}
		}
		kept := pool[:0]
		for _, i := range pool {
			if _, ok := member[i]; ok {
				kept = append(kept, i)
			}
		}
		pool = kept
	}
	sort.Ints(pool)
	return pool
}
