package model

import (
	"bytes"
	"cmp"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Numeric is the set of value types a Number can carry.
type Numeric interface {
	~float64 | ~int
}

// Number is the result of a best-effort numeric parse.
// An invalid Number stands for input that did not start with a number;
// it is kept as-is rather than rejected and marshals to JSON null.
type Number[T Numeric] struct {
	Value T
	Valid bool
}

// Valid wraps a successfully parsed value.
func Valid[T Numeric](v T) Number[T] {
	return Number[T]{Value: v, Valid: true}
}

// Invalid returns the not-a-number marker.
func Invalid[T Numeric]() Number[T] {
	return Number[T]{}
}

// MarshalJSON encodes the value, or null when the parse failed.
func (n Number[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// String formats the value the way the table shows it.
func (n Number[T]) String() string {
	if !n.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(float64(n.Value), 'f', -1, 64)
}

// CompareNumbers orders valid values numerically and puts invalid values last.
func CompareNumbers[T Numeric](a, b Number[T]) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	}
	return cmp.Compare(a.Value, b.Value)
}

// ParseFloatPrefix parses the longest leading decimal number of s, ignoring
// leading whitespace and any trailing garbage ("12.5kg" is 12.5).
func ParseFloatPrefix(s string) Number[float64] {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := floatPrefixLen(s)
	if end == 0 {
		return Invalid[float64]()
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return Invalid[float64]()
	}
	return Valid(v)
}

// ParseIntPrefix parses the leading base-10 integer of s, ignoring leading
// whitespace and anything after the digits ("3.7" is 3).
func ParseIntPrefix(s string) Number[int] {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := skipSign(s, 0)
	start := i
	i = skipDigits(s, i)
	if i == start {
		return Invalid[int]()
	}
	v, err := strconv.Atoi(s[:i])
	if err != nil {
		return Invalid[int]()
	}
	return Valid(v)
}

// floatPrefixLen returns the length of the longest prefix of s that is a
// decimal floating point literal, or 0 if there is none.
func floatPrefixLen(s string) int {
	i := skipSign(s, 0)
	intEnd := skipDigits(s, i)
	digits := intEnd - i
	i = intEnd
	if i < len(s) && s[i] == '.' {
		fracEnd := skipDigits(s, i+1)
		if digits+(fracEnd-i-1) > 0 {
			digits += fracEnd - i - 1
			i = fracEnd
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		expStart := skipSign(s, i+1)
		if expEnd := skipDigits(s, expStart); expEnd > expStart {
			i = expEnd
		}
	}
	return i
}

func skipSign(s string, i int) int {
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		return i + 1
	}
	return i
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// NumericText is numeric input as the user typed it.
// JSON strings, numbers and null are all accepted.
type NumericText string

// UnmarshalJSON keeps the literal text of a JSON number or string.
func (t *NumericText) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = NumericText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = NumericText(n.String())
	return nil
}
