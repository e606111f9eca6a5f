package model

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Largest magnitude that truncates directly into an int without overflow.
const maxExactInt = 1e18

var (
	floatPrefix   = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
	decimalNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
)

// ParseInt reads the leading integer of s, the way lenient form parsers do:
// leading whitespace and a sign are allowed, a 0x prefix switches to base 16,
// and parsing stops at the first character that is not a digit.
// It reports false when no digit could be read or the value overflows int.
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:end], base, 0)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}

	return int(v), true
}

// ParseFloat reads the longest leading decimal number of s, accepting
// an exponent and the literal Infinity. Trailing garbage is ignored.
func ParseFloat(s string) (float64, bool) {
	m := floatPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return math.NaN(), false
	}

	if strings.HasSuffix(m, "Infinity") {
		if m[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	return parseDecimal(m)
}

// ToNumber converts the whole of s to a number. Surrounding whitespace is
// ignored, an empty string is zero, and 0x, 0o and 0b prefixes select the base.
// Any other trailing character makes the conversion fail.
func ToNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			v, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN(), false
			}
			return float64(v), true
		}
	}

	if !decimalNumber.MatchString(s) {
		return math.NaN(), false
	}

	return parseDecimal(s)
}

// LooseID converts a path token to an item id if it denotes a whole number.
// "11", " 11 ", "11.0", "1.1e1" and "0xB" all yield 11.
func LooseID(token string) (int, bool) {
	v, ok := ToNumber(token)
	if !ok || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) >= maxExactInt {
		return 0, false
	}
	return int(v), true
}

// CoerceInt turns a raw JSON value into an integer quantity.
// Numbers are truncated, strings go through ParseInt, everything else
// (booleans, null, objects, arrays) yields an invalid NullInt.
func CoerceInt(raw json.RawMessage) NullInt {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return NullInt{}
	}

	switch x := v.(type) {
	case float64:
		return intFromNumber(x)
	case string:
		n, ok := ParseInt(x)
		return NullInt{Value: n, Valid: ok}
	default:
		return NullInt{}
	}
}

// CoerceFloat turns a raw JSON value into a weight.
// Numbers pass through, strings go through ParseFloat, anything else is NaN.
func CoerceFloat(raw json.RawMessage) NullFloat {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return NullFloat{}
	}

	switch x := v.(type) {
	case float64:
		return FloatOf(x)
	case string:
		f, ok := ParseFloat(x)
		if !ok {
			return NullFloat{}
		}
		return FloatOf(f)
	default:
		return NullFloat{}
	}
}

// intFromNumber truncates x. Very small and very large magnitudes are first
// rendered in exponent form and parsed from the text, so 1e21 becomes 1.
func intFromNumber(x float64) NullInt {
	a := math.Abs(x)
	if x == 0 || (a >= 1e-6 && a < maxExactInt) {
		return IntOf(int(math.Trunc(x)))
	}
	if a >= maxExactInt && a < 1e21 {
		return NullInt{}
	}

	n, ok := ParseInt(strconv.FormatFloat(x, 'g', -1, 64))
	return NullInt{Value: n, Valid: ok}
}

func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN(), false
	}
	return v, true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}
