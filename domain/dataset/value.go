package dataset

import (
	"encoding/json"
	"math"
	"strconv"
)

// ValueKind classifies a raw field value after ingestion
type ValueKind uint8

const (
	KindMissing ValueKind = iota
	KindNumeric
	KindText // present but not numeric
)

func (k ValueKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "missing"
	}
}

// Value is an immutable field value: a number, a non-numeric string, or missing.
// Only numeric values pass the validity filter.
type Value struct {
	kind ValueKind
	num  float64
	text string
}

// NumericValue creates a numeric value. NaN and infinities are stored as missing.
func NumericValue(n float64) Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return MissingValue()
	}
	return Value{kind: KindNumeric, num: n}
}

// TextValue creates a present, non-numeric value. Empty strings are missing.
func TextValue(s string) Value {
	if s == "" {
		return MissingValue()
	}
	return Value{kind: KindText, text: s}
}

// MissingValue creates a missing value
func MissingValue() Value {
	return Value{kind: KindMissing}
}

// Kind returns the value classification
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether the value is present and numeric
func (v Value) IsValid() bool { return v.kind == KindNumeric }

// IsMissing reports whether the value is absent
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float64 returns the number and whether the value is valid
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumeric {
		return 0, false
	}
	return v.num, true
}

// String returns the string representation of the value
func (v Value) String() string {
	switch v.kind {
	case KindNumeric:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return "<missing>"
	}
}

// MarshalJSON encodes numbers as numbers, text as strings and missing as null
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumeric:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}
