package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/testutil"
)

// weather returns the six-day sample used throughout the tests.
func weather(t *testing.T) *Table {
	t.Helper()
	tbl, err := New([][]Cell{
		Numbers(0, 13, 20.0),
		Numbers(1, 16, 4.5),
		Numbers(2, 12, 7.0),
		Numbers(3, 12, 0.0),
		Numbers(4, 11, 34.5),
		Numbers(5, 16, 0.0),
	}, []string{"day", "temperature", "rain"}, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)
	return tbl
}

// floats extracts a named column as float64 values, failing on text.
func floats(t *testing.T, tbl *Table, name string) []float64 {
	t.Helper()
	col, err := tbl.ColumnByName(name)
	require.NoError(t, err)
	out := make([]float64, len(col))
	for i, c := range col {
		f, ok := c.AsNumber()
		require.True(t, ok, "cell %d of %s is not a number", i, name)
		out[i] = f
	}
	return out
}
