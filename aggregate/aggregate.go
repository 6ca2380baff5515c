// Package aggregate provides null-aware aggregation functions for pivot
// tables.
//
// Every function receives a sample of cell values, ignores nulls and returns
// null for an empty sample. The statistical functions return a one-element
// sample unchanged, so a variance never divides by zero.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/tabula/value"
)

// ErrNonNumeric is returned when a numeric aggregation meets a non-number.
var ErrNonNumeric = errors.New("non-numeric value")

// Func reduces a sample of values to a single value.
type Func func(values []value.Value) (value.Value, error)

// Apply drops the nulls from values and calls fn. An empty sample yields
// null without calling fn.
func Apply(fn Func, values []value.Value) (value.Value, error) {
	return nonNull(fn)(values)
}

func nonNull(fn Func) Func {
	return func(values []value.Value) (value.Value, error) {
		sample := make([]value.Value, 0, len(values))
		for _, v := range values {
			if !v.IsNull() {
				sample = append(sample, v)
			}
		}
		if len(sample) == 0 {
			return value.Null(), nil
		}
		return fn(sample)
	}
}

// numeric builds a statistical aggregation over float64 samples.
func numeric(name string, fn func([]float64) float64) Func {
	return nonNull(func(values []value.Value) (value.Value, error) {
		xs := make([]float64, len(values))
		for i, v := range values {
			f, ok := v.AsFloat64()
			if !ok {
				return value.Null(), fmt.Errorf("%s: %w: %s", name, ErrNonNumeric, v.Kind)
			}
			xs[i] = f
		}
		if len(values) == 1 {
			return values[0], nil
		}
		return value.Float(fn(xs)), nil
	})
}

var (
	// Mean is the arithmetic mean.
	Mean = numeric("mean", mean)

	// Stdev is the sample standard deviation.
	Stdev = numeric("stdev", func(xs []float64) float64 {
		m := mean(xs)
		var ss float64
		for _, x := range xs {
			ss += (x - m) * (x - m)
		}
		return math.Sqrt(ss / float64(len(xs)-1))
	})

	// Median is the middle value, or the mean of the two middle values.
	Median = numeric("median", func(xs []float64) float64 {
		slices.Sort(xs)
		mid := len(xs) / 2
		if len(xs)%2 == 1 {
			return xs[mid]
		}
		return (xs[mid-1] + xs[mid]) / 2
	})

	// Sum adds the values. A sample of integers sums to an integer.
	Sum = nonNull(func(values []value.Value) (value.Value, error) {
		var (
			isum  int64
			fsum  float64
			float bool
		)
		for _, v := range values {
			switch v.Kind {
			case value.KindInt:
				isum += v.I64
			case value.KindFloat:
				fsum += v.F64
				float = true
			default:
				return value.Null(), fmt.Errorf("sum: %w: %s", ErrNonNumeric, v.Kind)
			}
		}
		if float {
			return value.Float(fsum + float64(isum)), nil
		}
		return value.Int(isum), nil
	})

	// Min is the smallest value under value.Compare.
	Min = nonNull(func(values []value.Value) (value.Value, error) {
		return slices.MinFunc(values, value.Compare), nil
	})

	// Max is the largest value under value.Compare.
	Max = nonNull(func(values []value.Value) (value.Value, error) {
		return slices.MaxFunc(values, value.Compare), nil
	})

	// First is the first non-null value.
	First = nonNull(func(values []value.Value) (value.Value, error) {
		return values[0], nil
	})

	// Last is the last non-null value.
	Last = nonNull(func(values []value.Value) (value.Value, error) {
		return values[len(values)-1], nil
	})
)

// Count is the number of non-null values. Unlike the other functions it
// returns 0 for an empty sample.
func Count(values []value.Value) (value.Value, error) {
	var n int64
	for _, v := range values {
		if !v.IsNull() {
			n++
		}
	}
	return value.Int(n), nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
