package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ajitpratap0/tabular/pkg/json"
)

// Kind identifies which variant a Cell holds.
type Kind uint8

const (
	// KindNumber is a float64 cell. NaN marks a missing value.
	KindNumber Kind = iota
	// KindText is a string cell.
	KindText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Cell is a single table value: either a number or a string. The zero
// value is the number 0.
type Cell struct {
	kind Kind
	num  float64
	text string
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{kind: KindNumber, num: f}
}

// Text returns a string cell.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Missing returns the missing-value marker, a NaN number.
func Missing() Cell {
	return Number(math.NaN())
}

// Numbers converts float64 values into cells.
func Numbers(values ...float64) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Number(v)
	}
	return cells
}

// Texts converts strings into text cells.
func Texts(values ...string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return cells
}

// Kind returns the variant held by c.
func (c Cell) Kind() Kind { return c.kind }

// IsNumber reports whether c holds a number, including NaN.
func (c Cell) IsNumber() bool { return c.kind == KindNumber }

// IsText reports whether c holds a string.
func (c Cell) IsText() bool { return c.kind == KindText }

// IsMissing reports whether c is the missing-value marker.
func (c Cell) IsMissing() bool { return c.kind == KindNumber && math.IsNaN(c.num) }

// AsNumber returns the numeric value and whether c is a number.
func (c Cell) AsNumber() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// AsText returns the string value and whether c is text.
func (c Cell) AsText() (string, bool) {
	return c.text, c.kind == KindText
}

// String returns the natural string form of the cell. Numbers use the
// shortest representation that round-trips ("20" for 20.0, "NaN",
// "Infinity").
func (c Cell) String() string {
	if c.kind == KindText {
		return c.text
	}
	return formatNumber(c.num)
}

// MarshalJSON encodes numbers as JSON numbers and text as JSON strings.
// Non-finite numbers have no JSON form and are written as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.kind == KindText {
		return json.Marshal(c.text)
	}
	if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
		return []byte("null"), nil
	}
	return []byte(formatNumber(c.num)), nil
}

// UnmarshalJSON decodes a JSON number, string or null (the missing marker).
// Numbers too large for a float64 become ±Infinity.
func (c *Cell) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*c = Missing()
	case strings.HasPrefix(s, `"`):
		var text string
		if err := json.Unmarshal([]byte(s), &text); err != nil {
			return err
		}
		*c = Text(text)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("frame: cell must be a number, string or null, got %s", s)
		}
		*c = Number(f)
	}
	return nil
}

// formatNumber renders f the way JavaScript's Number#toString does, so
// files written here match files written by the browser tooling.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		if exp == "" {
			exp = "0"
		}
		return mantissa + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
