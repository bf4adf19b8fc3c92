package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field that can be left blank.
// The zero value is blank. A blank Number contributes 0 to every calculation.
type Number struct {
	value float64
	set   bool
}

// NumberOf returns a set Number. NaN and infinities are rejected and yield a blank Number.
func NumberOf(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{value: v, set: true}
}

// ParseNumber reads a number typed by the operator.
// Surrounding whitespace is ignored. Empty or malformed input yields a blank Number.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}
	}
	return NumberOf(v)
}

// IsSet reports whether the field holds a number.
func (n Number) IsSet() bool {
	return n.set
}

// Value returns the number, or 0 when the field is blank.
func (n Number) Value() float64 {
	if !n.set {
		return 0
	}
	return n.value
}

// String returns the shortest decimal representation, or "" when blank.
func (n Number) String() string {
	if !n.set {
		return ""
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// MarshalJSON writes a JSON number, or null when blank.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON accepts numbers, numeric strings, "" and null.
// Anything else decodes to a blank Number instead of failing the whole document.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = Number{}
			return nil
		}
		*n = ParseNumber(s)
		return nil
	}
	*n = ParseNumber(string(data))
	return nil
}
