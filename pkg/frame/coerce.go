package frame

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Coerce converts a raw CSV field into a cell. The first occurrence of
// decimal is replaced with '.', then the longest leading float literal is
// parsed ("12.5kg" yields 12.5). Fields without a numeric prefix are
// returned unchanged as text.
func Coerce(raw, decimal string) Cell {
	s := raw
	if decimal != "" && decimal != "." {
		s = strings.Replace(raw, decimal, ".", 1)
	}
	f, ok := parseLeadingFloat(s)
	if !ok {
		return Text(raw)
	}
	return Number(f)
}

// CoerceExact is Coerce without prefix parsing: after the decimal mark is
// replaced, the whole field (white space aside) must be a decimal literal
// to become a number. "12,5" with decimal "," yields 12.5 but "3rd" stays
// text.
func CoerceExact(raw, decimal string) Cell {
	s := raw
	if decimal != "" && decimal != "." {
		s = strings.Replace(raw, decimal, ".", 1)
	}
	t := strings.TrimFunc(s, isSpace)
	if t == "" || scanFloat(t) != len(t) {
		return Text(raw)
	}
	return Number(toNumber(t))
}

// isSpace matches the white space skipped around numeric literals: the
// Unicode White_Space set without U+0085, plus the byte order mark.
func isSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

// parseLeadingFloat parses the float literal at the start of s, ignoring
// leading white space and any trailing characters.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, isSpace)
	n := scanFloat(s)
	if n == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:n], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// scanFloat returns the length of the decimal literal prefix of s:
// [sign] (Infinity | digits [. digits] | . digits) [e [sign] digits].
func scanFloat(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// toNumber converts a whole string to a number with the loose rules used
// for cross-type comparison: surrounding white space is ignored, the empty
// string is 0, 0x/0o/0b prefixes are integers, and anything else must be a
// complete decimal literal or the result is NaN.
func toNumber(s string) float64 {
	t := strings.TrimFunc(s, isSpace)
	if t == "" {
		return 0
	}
	if len(t) > 2 && t[0] == '0' {
		base := 0
		switch t[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(t[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(u)
		}
	}
	if scanFloat(t) != len(t) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// numericValue returns the loose numeric interpretation of c.
func numericValue(c Cell) float64 {
	if c.kind == KindNumber {
		return c.num
	}
	return toNumber(c.text)
}

// isNumeric reports whether c reads as a number under loose rules. Text
// such as "12" counts; NaN does not.
func isNumeric(c Cell) bool {
	return !math.IsNaN(numericValue(c))
}

// LooseEqual compares two cells across kinds. Numbers compare by value
// (NaN never matches), text compares exactly, and a number matches text
// whose loose numeric value is equal, so Number(12) matches Text("12").
func LooseEqual(a, b Cell) bool {
	switch {
	case a.kind == KindText && b.kind == KindText:
		return a.text == b.text
	default:
		return numericValue(a) == numericValue(b)
	}
}
