package frame

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/testutil"
)

func TestPrintTwoColumns(t *testing.T) {
	tbl := weather(t)
	sub, err := New(func() [][]Cell {
		var rows [][]Cell
		for _, r := range tbl.Rows() {
			rows = append(rows, r[:2:2])
		}
		return rows
	}(), []string{"day", "temperature"}, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)

	want := "day temperature \n" +
		"---------------\n" +
		"  0          13 \n" +
		"  1          16 \n" +
		"  2          12 \n" +
		"  3          12 \n" +
		"  4          11 \n" +
		"  5          16 \n"
	assert.Equal(t, want, sub.Print(2))
}

func TestPrintFloats(t *testing.T) {
	want := "day temperature  rain \n" +
		"---------------------\n" +
		"  0          13    20 \n" +
		"  1          16  4.50 \n" +
		"  2          12     7 \n" +
		"  3          12     0 \n" +
		"  4          11 34.50 \n" +
		"  5          16     0 \n"
	assert.Equal(t, want, weather(t).String())
}

func TestPrintValuesWiderThanNames(t *testing.T) {
	tbl, err := FromCSV(salaries, CSVOptions{}, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)

	want := " name age income \n" +
		"----------------\n" +
		" John  24  50000 \n" +
		"Jenna  30  56000 \n" +
		" Jill  24  30000 \n"
	assert.Equal(t, want, tbl.Print(2))
}

func TestPrintAstralCharactersTakeTwoColumns(t *testing.T) {
	tbl, err := New([][]Cell{
		{Text("\U0001F600"), Number(1)},
		{Text("é"), Number(2)},
	}, []string{"a", "b"}, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)

	want := " a b \n" +
		"----\n" +
		"\U0001F600 1 \n" +
		" é 2 \n"
	assert.Equal(t, want, tbl.Print(2))
	assert.Equal(t, 2, textWidth("\U0001F600"))
	assert.Equal(t, 1, textWidth("é"))
}

func TestPrintPrecisionAndMissing(t *testing.T) {
	tbl, err := New([][]Cell{
		{Number(math.Pi), Missing()},
		{Number(2), Text("ok")},
	}, []string{"v", "w"}, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)

	lines := strings.Split(tbl.Print(4), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "     v   w ", lines[0])
	assert.Equal(t, "3.1416 NaN ", lines[2])
	assert.Equal(t, "     2  ok ", lines[3])
	assert.Equal(t, "", lines[4])

	lines = strings.Split(tbl.Print(0), "\n")
	assert.Equal(t, "3 NaN ", lines[2])
}

func TestPrintEmpty(t *testing.T) {
	tbl, err := New(nil, []string{"a", "bb"}, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, "a bb \n----\n", tbl.Print(2))

	empty, _ := New(nil, nil)
	assert.Equal(t, "\n\n", empty.Print(2))
}

func TestPrintRaggedRows(t *testing.T) {
	tbl, _ := New([][]Cell{Numbers(1, 2, 3), Numbers(4)}, []string{"a", "b"}, WithLogger(testutil.TestLogger(t)))

	assert.Equal(t, "a b \n---\n1 2 3 \n4 \n", tbl.Print(2))
}

func TestToFixed(t *testing.T) {
	tests := []struct {
		f      float64
		digits int
		want   string
	}{
		{4.5, 2, "4.50"},
		{0.125, 2, "0.13"},
		{4.5, 0, "5"},
		{-2.5, 0, "-3"},
		{1.005, 2, "1.00"},
		{9.95, 1, "9.9"},
		{0.5, 0, "1"},
		{99.5, 0, "100"},
		{-9.75, 1, "-9.8"},
		{3.14159, 4, "3.1416"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toFixed(tt.f, tt.digits), "%v digits=%d", tt.f, tt.digits)
	}
}
