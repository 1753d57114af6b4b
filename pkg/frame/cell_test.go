package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/json"
)

func TestCellString(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Number(20.0), "20"},
		{Number(4.5), "4.5"},
		{Number(-0.25), "-0.25"},
		{Number(math.Copysign(0, -1)), "0"},
		{Number(1e21), "1e+21"},
		{Number(1.5e-7), "1.5e-7"},
		{Number(123456789012), "123456789012"},
		{Number(math.NaN()), "NaN"},
		{Number(math.Inf(1)), "Infinity"},
		{Number(math.Inf(-1)), "-Infinity"},
		{Text("yes"), "yes"},
		{Text(""), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cell.String())
	}
}

func TestCellAccessors(t *testing.T) {
	n := Number(3)
	f, ok := n.AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
	_, ok = n.AsText()
	assert.False(t, ok)
	assert.Equal(t, KindNumber, n.Kind())

	s := Text("a")
	str, ok := s.AsText()
	assert.True(t, ok)
	assert.Equal(t, "a", str)
	assert.True(t, s.IsText())
	assert.Equal(t, "text", s.Kind().String())

	assert.True(t, Missing().IsMissing())
	assert.True(t, Missing().IsNumber())
	assert.False(t, Number(0).IsMissing())
	assert.False(t, Text("NaN").IsMissing())

	var zero Cell
	assert.Equal(t, Number(0), zero)
}

func TestCellJSON(t *testing.T) {
	b, err := json.Marshal([]Cell{Number(12), Number(4.5), Text("x\"y"), Missing(), Number(math.Inf(1))})
	require.NoError(t, err)
	assert.JSONEq(t, `[12, 4.5, "x\"y", null, null]`, string(b))

	var cells []Cell
	require.NoError(t, json.Unmarshal([]byte(`[1e3, "12", null, -0.5]`), &cells))
	require.Len(t, cells, 4)
	assert.Equal(t, Number(1000), cells[0])
	assert.Equal(t, Text("12"), cells[1])
	assert.True(t, cells[2].IsMissing())
	assert.Equal(t, Number(-0.5), cells[3])

	assert.Error(t, json.Unmarshal([]byte(`[true]`), &cells))
}
