package model

import (
	"bytes"
	"encoding/json"
	"math"
)

var jsonNull = []byte("null")

// NullInt is an integer that may hold no number at all.
// An invalid value encodes as JSON null.
type NullInt struct {
	Value int
	Valid bool
}

// IntOf returns a valid NullInt.
func IntOf(v int) NullInt {
	return NullInt{Value: v, Valid: true}
}

// MarshalJSON implements json.Marshaler.
func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*n = NullInt{}
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// NullFloat is a floating-point number that may be not-a-number.
// NaN and infinities encode as JSON null.
type NullFloat struct {
	Value float64
	Valid bool
}

// FloatOf returns a NullFloat holding v.
func FloatOf(v float64) NullFloat {
	return NullFloat{Value: v, Valid: !math.IsNaN(v)}
}

// Finite reports whether the value is a real, finite number.
func (n NullFloat) Finite() bool {
	return n.Valid && !math.IsNaN(n.Value) && !math.IsInf(n.Value, 0)
}

// MarshalJSON implements json.Marshaler.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Finite() {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*n = NullFloat{}
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
