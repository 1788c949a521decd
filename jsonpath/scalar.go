package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Scalar is a JSON leaf value: a string, number, boolean, or null.
type Scalar struct {
	v ldvalue.Value
}

// StringScalar and NumberScalar build expected values for comparisons.
func StringScalar(s string) Scalar { return Scalar{v: ldvalue.String(s)} }

func NumberScalar(n float64) Scalar { return Scalar{v: ldvalue.Float64(n)} }

// Value returns the underlying JSON value.
func (s Scalar) Value() ldvalue.Value {
	return s.v
}

func (s Scalar) IsNull() bool   { return s.v.IsNull() }
func (s Scalar) IsNumber() bool { return s.v.IsNumber() }
func (s Scalar) IsString() bool { return s.v.IsString() }

// String renders the value the way a loosely typed JSON client would: strings as they are,
// integral numbers without a decimal point, and null as the empty string. This is what
// lets "101" match both the string "101" and the number 101.
func (s Scalar) String() string {
	switch s.v.Type() {
	case ldvalue.StringType:
		return s.v.StringValue()
	case ldvalue.NumberType:
		if s.v.IsInt() {
			return strconv.Itoa(s.v.IntValue())
		}
		return strconv.FormatFloat(s.v.Float64Value(), 'f', -1, 64)
	case ldvalue.BoolType:
		return strconv.FormatBool(s.v.BoolValue())
	default:
		return ""
	}
}

// Compare orders two scalars: numbers numerically, strings lexically. Any other
// combination returns ErrIncomparable.
func Compare(a, b Scalar) (int, error) {
	switch {
	case a.IsNumber() && b.IsNumber():
		x, y := a.v.Float64Value(), b.v.Float64Value()
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	case a.IsString() && b.IsString():
		return strings.Compare(a.v.StringValue(), b.v.StringValue()), nil
	}
	return 0, fmt.Errorf("%w: %s and %s", ErrIncomparable, a.v.JSONString(), b.v.JSONString())
}

// IsOrdered returns true if the values are in non-decreasing order.
func IsOrdered(values []Scalar) (bool, error) {
	i, err := FirstUnordered(values)
	return i < 0 && err == nil, err
}

// FirstUnordered returns the position of the first value that is smaller than the one
// before it, or -1 if the values are in non-decreasing order.
func FirstUnordered(values []Scalar) (int, error) {
	for i := 1; i < len(values); i++ {
		c, err := Compare(values[i-1], values[i])
		if err != nil {
			return -1, fmt.Errorf("at position %d: %w", i, err)
		}
		if c > 0 {
			return i, nil
		}
	}
	return -1, nil
}
