package frame

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// DefaultFloatPrecision is the number of decimals String uses.
const DefaultFloatPrecision = 2

// Print renders the table as right-aligned text. Non-integer numbers get
// floatPrecision decimals; everything else uses its natural form. Each
// column is as wide as its widest cell or its name, followed by a space.
// The header is followed by a line of dashes one shorter than the header.
func (t *Table) Print(floatPrecision int) string {
	if floatPrecision < 0 {
		floatPrecision = 0
	}

	width := len(t.names)
	for _, row := range t.rows {
		if len(row) > width {
			width = len(row)
		}
	}
	maxLen := make([]int, width)

	cells := make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells[i] = make([]string, len(row))
		for j, c := range row {
			s := formatCell(c, floatPrecision)
			cells[i][j] = s
			if n := textWidth(s); n > maxLen[j] {
				maxLen[j] = n
			}
		}
	}

	var header strings.Builder
	for i, name := range t.names {
		header.WriteString(strings.Repeat(" ", max(0, maxLen[i]-textWidth(name))))
		header.WriteString(name)
		header.WriteByte(' ')
	}

	var b strings.Builder
	b.WriteString(header.String())
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", max(0, textWidth(header.String())-1)))
	b.WriteByte('\n')
	for _, row := range cells {
		for j, s := range row {
			colWidth := max(maxLen[j]+1, t.nameLen(j)+1)
			b.WriteString(strings.Repeat(" ", max(0, colWidth-textWidth(s)-1)))
			b.WriteString(s)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the table with DefaultFloatPrecision.
func (t *Table) String() string {
	return t.Print(DefaultFloatPrecision)
}

func (t *Table) nameLen(j int) int {
	if j >= len(t.names) {
		return 0
	}
	return textWidth(t.names[j])
}

// textWidth counts UTF-16 code units, so characters outside the Basic
// Multilingual Plane take two columns.
func textWidth(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func formatCell(c Cell, precision int) string {
	if c.kind == KindNumber && !isInteger(c.num) && !math.IsNaN(c.num) && !math.IsInf(c.num, 0) {
		return toFixed(c.num, precision)
	}
	return c.String()
}

// toFixed formats f with the given number of decimals, rounding on the
// exact binary value. Exact ties round away from zero.
func toFixed(f float64, digits int) string {
	short := strconv.FormatFloat(f, 'f', -1, 64)
	dot := strings.IndexByte(short, '.')
	if dot < 0 || len(short)-dot-1 != digits+1 || short[len(short)-1] != '5' {
		return strconv.FormatFloat(f, 'f', digits, 64)
	}
	// the shortest form may hide a value slightly off the tie
	exact := strings.TrimRight(strconv.FormatFloat(f, 'f', 1074, 64), "0")
	if exact != short {
		return strconv.FormatFloat(f, 'f', digits, 64)
	}
	return roundUpLastDigit(strings.TrimSuffix(short[:len(short)-1], "."))
}

// roundUpLastDigit adds one unit in the last place to the magnitude of a
// decimal string such as "-1.29".
func roundUpLastDigit(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		switch {
		case b[i] == '.':
			continue
		case b[i] == '9':
			b[i] = '0'
			continue
		case b[i] >= '0' && b[i] <= '8':
			b[i]++
			return string(b)
		}
		// reached the sign
		return string(b[:i+1]) + "1" + string(b[i+1:])
	}
	return "1" + string(b)
}

func isInteger(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}
