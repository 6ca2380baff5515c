package value

import (
	"fmt"
	"math"
	"time"
)

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for user input.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint64(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint64(x)
	case time.Time:
		return Time(x), nil
	case []Value:
		return Array(x...), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Array(arr...), nil
	case []string:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = String(x[i])
		}
		return Array(arr...), nil
	case []int:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Int(int64(x[i]))
		}
		return Array(arr...), nil
	case []float64:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Float(x[i])
		}
		return Array(arr...), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

func fromUint64(x uint64) (Value, error) {
	if x > math.MaxInt64 {
		// Avoid silently wrapping large values.
		return Value{}, fmt.Errorf("uint64 value out of range: %d", x)
	}
	return Int(int64(x)), nil
}

// MustFromAny is like FromAny but panics on unsupported input.
func MustFromAny(v any) Value {
	vv, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return vv
}

// FromSlice converts every element of vs with FromAny.
func FromSlice(vs []any) ([]Value, error) {
	out := make([]Value, len(vs))
	for i, v := range vs {
		vv, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = vv
	}
	return out, nil
}

// Of converts its arguments with MustFromAny. It is meant for literals.
func Of(vs ...any) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = MustFromAny(v)
	}
	return out
}
