package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/testutil"
)

func TestSortByAscendingIsStable(t *testing.T) {
	tbl := weather(t)

	require.NoError(t, tbl.SortBy("temperature", false))
	assert.Equal(t, []float64{11, 12, 12, 13, 16, 16}, floats(t, tbl, "temperature"))
	assert.Equal(t, []float64{4, 2, 3, 0, 1, 5}, floats(t, tbl, "day"))
}

func TestSortByDescending(t *testing.T) {
	tbl := weather(t)

	require.NoError(t, tbl.SortBy("temperature", true))
	assert.Equal(t, []float64{16, 16, 13, 12, 12, 11}, floats(t, tbl, "temperature"))
	assert.Equal(t, []float64{1, 5, 0, 2, 3, 4}, floats(t, tbl, "day"))

	require.NoError(t, tbl.SortBy("day", true))
	assert.Equal(t, []float64{5, 4, 3, 2, 1, 0}, floats(t, tbl, "day"))
}

func TestSortByText(t *testing.T) {
	tbl := weather(t)
	tbl.AddColumn(Texts("yes", "yes", "yes", "no", "yes", "no"), "isRaining")

	require.NoError(t, tbl.SortBy("isRaining", false))
	assert.Equal(t, []float64{3, 5, 0, 1, 2, 4}, floats(t, tbl, "day"))
}

func TestSortByCollation(t *testing.T) {
	tbl, err := New([][]Cell{{Text("b")}, {Text("B")}, {Text("a")}, {Text("A")}}, []string{"letter"},
		WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)

	require.NoError(t, tbl.SortBy("letter", false))
	col, _ := tbl.ColumnByName("letter")
	assert.Equal(t, Texts("a", "A", "b", "B"), col)
}

func TestSortByLocale(t *testing.T) {
	rows := func() [][]Cell { return [][]Cell{{Text("ö")}, {Text("z")}, {Text("o")}} }

	de, err := New(rows(), []string{"w"}, WithLocale(language.German), WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)
	require.NoError(t, de.SortBy("w", false))
	col, _ := de.ColumnByName("w")
	assert.Equal(t, Texts("o", "ö", "z"), col)

	sv, err := New(rows(), []string{"w"}, WithLocale(language.Swedish), WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)
	require.NoError(t, sv.SortBy("w", false))
	col, _ = sv.ColumnByName("w")
	assert.Equal(t, Texts("o", "z", "ö"), col)
}

func TestSortByUnknownColumnIsNoOp(t *testing.T) {
	logger, logs := testutil.ObservedLogger()
	tbl := weather(t)
	WithLogger(logger)(tbl)
	before := tbl.ToCSV(CSVOptions{})

	err := tbl.SortBy("wind", false)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	assert.Equal(t, before, tbl.ToCSV(CSVOptions{}))
	assert.Equal(t, 1, logs.Len())
}

func TestSortByMixedKinds(t *testing.T) {
	logger, logs := testutil.ObservedLogger()
	tbl, err := New([][]Cell{{Number(2)}, {Text("x")}, {Number(1)}}, []string{"v"}, WithLogger(logger))
	require.NoError(t, err)

	err = tbl.SortBy("v", false)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
	n, _ := errors.Detail(err, "comparisons")
	assert.Greater(t, n, 0)
	assert.Equal(t, 3, tbl.Length())
	assert.Equal(t, 1, logs.FilterMessage("sorting a column that mixes numbers and text").Len())
}

func TestCompareNumbers(t *testing.T) {
	assert.Equal(t, -1, compareNumbers(1, 2))
	assert.Equal(t, 1, compareNumbers(2, 1))
	assert.Equal(t, 0, compareNumbers(2, 2))
	assert.Equal(t, 0, compareNumbers(math.NaN(), 2))
	assert.Equal(t, 0, compareNumbers(math.Inf(1), math.Inf(1)))
}
