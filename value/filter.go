package value

import "strings"

// Operator represents a comparison operator for filtering.
type Operator string

const (
	// OpEqual represents the equality operator.
	OpEqual Operator = "eq"
	// OpNotEqual represents the inequality operator.
	OpNotEqual Operator = "ne"
	// OpGreaterThan represents the greater than operator.
	OpGreaterThan Operator = "gt"
	// OpGreaterEqual represents the greater than or equal operator.
	OpGreaterEqual Operator = "gte"
	// OpLessThan represents the less than operator.
	OpLessThan Operator = "lt"
	// OpLessEqual represents the less than or equal operator.
	OpLessEqual Operator = "lte"
	// OpIn represents the in list operator. The operand must be an Array.
	OpIn Operator = "in"
	// OpContains represents the contains substring operator.
	OpContains Operator = "contains"
	// OpIsNull matches null values. The operand is ignored.
	OpIsNull Operator = "isnull"
	// OpNotNull matches non-null values. The operand is ignored.
	OpNotNull Operator = "notnull"
)

// Valid reports whether op is a known operator.
func (op Operator) Valid() bool {
	switch op {
	case OpEqual, OpNotEqual, OpGreaterThan, OpGreaterEqual, OpLessThan,
		OpLessEqual, OpIn, OpContains, OpIsNull, OpNotNull:
		return true
	default:
		return false
	}
}

// Filter represents a single value condition.
type Filter struct {
	Operator Operator
	Value    Value
}

// Eq returns an equality filter.
func Eq(v Value) Filter { return Filter{Operator: OpEqual, Value: v} }

// Matches checks if v satisfies the filter.
//
// Ordering operators never match nulls or values of unrelated kinds.
func (f Filter) Matches(v Value) bool {
	switch f.Operator {
	case OpEqual:
		return Equal(v, f.Value)
	case OpNotEqual:
		return !Equal(v, f.Value)
	case OpGreaterThan:
		return orderable(v, f.Value) && Compare(v, f.Value) > 0
	case OpGreaterEqual:
		return orderable(v, f.Value) && Compare(v, f.Value) >= 0
	case OpLessThan:
		return orderable(v, f.Value) && Compare(v, f.Value) < 0
	case OpLessEqual:
		return orderable(v, f.Value) && Compare(v, f.Value) <= 0
	case OpIn:
		return compareIn(v, f.Value)
	case OpContains:
		return compareContains(v, f.Value)
	case OpIsNull:
		return v.IsNull()
	case OpNotNull:
		return !v.IsNull()
	default:
		return false
	}
}

func compareIn(a, b Value) bool {
	if b.Kind != KindArray {
		return false
	}
	for _, item := range b.A {
		if Equal(a, item) {
			return true
		}
	}
	return false
}

func compareContains(a, b Value) bool {
	if a.Kind != KindString || b.Kind != KindString {
		return false
	}
	return strings.Contains(a.s.Value(), b.s.Value())
}
