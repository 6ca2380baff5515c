package value

import (
	"cmp"
	"math"
	"strings"
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b.
//
// Nulls sort after every non-null value and are equal to each other. Int and
// Float compare numerically; NaN sorts before every other number. Values of
// unrelated kinds order by Kind.
func Compare(a, b Value) int {
	an, bn := a.IsNull(), b.IsNull()
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}

	if a.IsNumber() && b.IsNumber() {
		switch {
		case a.Kind == KindInt && b.Kind == KindInt:
			return cmp.Compare(a.I64, b.I64)
		case a.Kind == KindInt:
			return compareIntFloat(a.I64, b.F64)
		case b.Kind == KindInt:
			return -compareIntFloat(b.I64, a.F64)
		default:
			return cmp.Compare(a.F64, b.F64)
		}
	}

	if a.Kind != b.Kind {
		return cmp.Compare(a.Kind, b.Kind)
	}

	switch a.Kind {
	case KindString:
		return strings.Compare(a.s.Value(), b.s.Value())
	case KindBool:
		switch {
		case a.B == b.B:
			return 0
		case !a.B:
			return -1
		default:
			return 1
		}
	case KindTime:
		return cmp.Compare(a.I64, b.I64)
	case KindArray:
		n := min(len(a.A), len(b.A))
		for i := 0; i < n; i++ {
			if c := Compare(a.A[i], b.A[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a.A), len(b.A))
	default:
		return 0
	}
}

// compareIntFloat compares i and f without rounding i to a float64, so that
// Compare(Int(i), Float(f)) == 0 exactly when both share a Key.
func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 1
	case f >= math.MaxInt64:
		return -1
	case f < math.MinInt64:
		return 1
	}
	fl := math.Floor(f)
	if c := cmp.Compare(i, int64(fl)); c != 0 || fl == f {
		return c
	}
	// f lies strictly between int64(fl) and the next integer.
	return -1
}

// Equal reports whether a and b are equal.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// CompareTuples compares two equally long tuples lexicographically.
func CompareTuples(a, b []Value) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// orderable reports whether a and b belong to the same ordering family.
func orderable(a, b Value) bool {
	if a.IsNull() || b.IsNull() {
		return false
	}
	if a.IsNumber() && b.IsNumber() {
		return true
	}
	return a.Kind == b.Kind
}
