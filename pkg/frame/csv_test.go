package frame

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/testutil"
)

const salaries = "name,age,income\r\nJohn,24,50000\r\nJenna,30,56000\r\nJill,24,30000\r\n"

type recordingPersister struct {
	name    string
	content string
	err     error
}

func (p *recordingPersister) Persist(_ context.Context, name string, content []byte) error {
	p.name = name
	p.content = string(content)
	return p.err
}

func TestFromCSV(t *testing.T) {
	tbl, err := FromCSV(salaries, CSVOptions{}, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "income"}, tbl.Names())
	require.Equal(t, 3, tbl.Length())
	assert.Equal(t, []Cell{Text("John"), Number(24), Number(50000)}, tbl.Row(0))
	assert.Equal(t, []Cell{Text("Jill"), Number(24), Number(30000)}, tbl.Row(2))
}

func TestParseCSVKeepsHeaderVerbatim(t *testing.T) {
	names, rows := parseCSV("1,2.5\r\n3,4\r\n", CSVOptions{}.withDefaults())
	assert.Equal(t, []string{"1", "2.5"}, names)
	assert.Equal(t, [][]Cell{Numbers(3, 4)}, rows)
}

func TestParseCSVSkipsOnlyEmptyLines(t *testing.T) {
	names, rows := parseCSV("a\r\n1\r\n\r\n \r\n2\r\n", CSVOptions{}.withDefaults())
	assert.Equal(t, []string{"a"}, names)
	assert.Equal(t, [][]Cell{{Number(1)}, {Text(" ")}, {Number(2)}}, rows)
}

func TestParseCSVRequiresCRLF(t *testing.T) {
	names, rows := parseCSV("a,b\n1,2\n", CSVOptions{}.withDefaults())
	assert.Equal(t, []string{"a", "b\n1", "2\n"}, names)
	assert.Empty(t, rows)
}

func TestLoadCSVWithLocaleDialect(t *testing.T) {
	logger, logs := testutil.ObservedLogger()
	tbl, err := New(nil, nil, WithLogger(logger))
	require.NoError(t, err)

	err = tbl.LoadCSV("day;rain\r\n1;4,5\r\n2;0,25;extra\r\n", CSVOptions{Delimiter: ";", Decimal: ","})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	rows, _ := errors.Detail(err, "rows")
	assert.Equal(t, []int{1}, rows)
	assert.Equal(t, 1, logs.Len())

	assert.Equal(t, []string{"day", "rain"}, tbl.Names())
	assert.Equal(t, Numbers(1, 4.5), tbl.Row(0))
	assert.Equal(t, []Cell{Number(2), Number(0.25), Text("extra")}, tbl.Row(1))
}

func TestToCSV(t *testing.T) {
	tbl := weather(t)
	tbl.AddColumn(Texts("yes", "no"), "note")

	want := "day,temperature,rain,note\r\n" +
		"0,13,20,yes,\r\n" +
		"1,16,4.5,no,\r\n" +
		"2,12,7,NaN,\r\n" +
		"3,12,0,NaN,\r\n" +
		"4,11,34.5,NaN,\r\n" +
		"5,16,0,NaN,\r\n"
	assert.Equal(t, want, tbl.ToCSV(CSVOptions{}))
}

func TestToCSVDialect(t *testing.T) {
	tbl, err := New([][]Cell{
		{Number(4.5), Text("1.5"), Text("a.b")},
	}, []string{"rain", "x,y", "z"}, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)

	got := tbl.ToCSV(CSVOptions{Delimiter: ";", Decimal: ","})
	assert.Equal(t, "rain;x;y;z\r\n4,5;1,5;a.b;\r\n", got, "a comma inside a name is replaced too")
}

func TestCSVRoundTrip(t *testing.T) {
	orig := weather(t)
	orig.AddColumn(Texts("yes", "yes", "yes", "no", "yes", "no"), "isRaining")

	back, err := FromCSV(orig.ToCSV(CSVOptions{}), CSVOptions{}, WithLogger(testutil.TestLogger(t)))
	require.Error(t, err, "the trailing delimiter adds an empty field to every row")
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	assert.Equal(t, orig.Names(), back.Names())
	require.Equal(t, orig.Length(), back.Length())
	for i := 0; i < orig.Length(); i++ {
		row := back.Row(i)
		require.Len(t, row, 5)
		assert.Equal(t, orig.Row(i), row[:4], "row %d", i)
		assert.Equal(t, Text(""), row[4])
	}
}

func TestCSVRoundTripDecimalComma(t *testing.T) {
	orig := weather(t)
	opts := CSVOptions{Delimiter: ";", Decimal: ","}

	back, _ := FromCSV(orig.ToCSV(opts), opts, WithLogger(testutil.TestLogger(t)))
	assert.Equal(t, floats(t, orig, "rain"), floats(t, back, "rain"))
}

func TestSuggestedFilename(t *testing.T) {
	tests := map[string]string{
		"test.csv":             "test.csv",
		"exports/2024/out.csv": "out.csv",
		"/abs/path/file.txt":   "file.txt",
		"exports/":             DefaultFilename,
		"":                     DefaultFilename,
		`dir\windows.csv`:      `dir\windows.csv`,
	}
	for in, want := range tests {
		assert.Equal(t, want, SuggestedFilename(in), in)
	}
}

func TestWriteCSV(t *testing.T) {
	tbl, err := FromCSV(salaries, CSVOptions{}, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)

	p := &recordingPersister{}
	require.NoError(t, tbl.WriteCSV(testutil.TestContext(t), p, "reports/salaries.csv", CSVOptions{Delimiter: ";"}))

	assert.Equal(t, "salaries.csv", p.name)
	assert.Equal(t, "name;age;income\r\nJohn;24;50000;\r\nJenna;30;56000;\r\nJill;24;30000;\r\n", p.content)
}

func TestWriteCSVPersistFailure(t *testing.T) {
	tbl := weather(t)
	p := &recordingPersister{err: fmt.Errorf("disk full")}

	err := tbl.WriteCSV(testutil.TestContext(t), p, "", CSVOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, DefaultFilename, p.name)
}
