package chart

import (
	"math"
	"strconv"
)

// Value is one data point of a series: a number or null. The zero value
// is null.
type Value struct {
	Float float64
	Valid bool
}

// Null is the missing data point.
var Null = Value{}

// V returns a non-null value.
func V(f float64) Value {
	return Value{Float: f, Valid: true}
}

// Floats converts plain numbers into values.
func Floats(fs ...float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = V(f)
	}
	return out
}

// MarshalJSON writes the number, or null for missing and non-finite values.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.Float, 'f', -1, 64), nil
}

// UnmarshalJSON reads a number or null.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Null
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*v = V(f)
	return nil
}
