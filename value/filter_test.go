package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		input  Value
		want   bool
	}{
		{"OpEqual string match", Filter{OpEqual, String("tech")}, String("tech"), true},
		{"OpEqual string no match", Filter{OpEqual, String("tech")}, String("sports"), false},
		{"OpEqual int float", Eq(Int(10)), Float(10), true},
		{"OpNotEqual", Filter{OpNotEqual, String("active")}, String("inactive"), true},
		{"OpGreaterThan", Filter{OpGreaterThan, Int(50)}, Int(75), true},
		{"OpGreaterThan false", Filter{OpGreaterThan, Int(50)}, Int(25), false},
		{"OpGreaterThan string vs int", Filter{OpGreaterThan, Int(50)}, String("zzz"), false},
		{"OpGreaterThan null", Filter{OpGreaterThan, Int(50)}, Null(), false},
		{"OpGreaterEqual equal", Filter{OpGreaterEqual, Int(18)}, Int(18), true},
		{"OpLessThan", Filter{OpLessThan, Int(100)}, Int(75), true},
		{"OpLessThan strings", Filter{OpLessThan, String("m")}, String("a"), true},
		{"OpLessEqual equal", Filter{OpLessEqual, Int(10)}, Int(10), true},
		{"OpIn", Filter{OpIn, Array(String("red"), String("blue"))}, String("blue"), true},
		{"OpIn miss", Filter{OpIn, Array(String("red"))}, String("blue"), false},
		{"OpIn non array", Filter{OpIn, String("red")}, String("red"), false},
		{"OpContains", Filter{OpContains, String("ell")}, String("hello"), true},
		{"OpIsNull", Filter{Operator: OpIsNull}, Null(), true},
		{"OpNotNull", Filter{Operator: OpNotNull}, Null(), false},
		{"unknown", Filter{Operator: "bogus"}, Int(1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(tc.input))
		})
	}
}

func TestOperatorValid(t *testing.T) {
	assert.True(t, OpEqual.Valid())
	assert.True(t, OpNotNull.Valid())
	assert.False(t, Operator("like").Valid())
}

func TestFromAny(t *testing.T) {
	t.Run("Scalars", func(t *testing.T) {
		tests := []struct {
			name     string
			input    any
			expected Value
		}{
			{"nil", nil, Null()},
			{"Value", Int(1), Int(1)},
			{"bool", true, Bool(true)},
			{"string", "hello", String("hello")},
			{"float64", 3.14, Float(3.14)},
			{"float32", float32(1.5), Float(1.5)},
			{"int", 1, Int(1)},
			{"int8", int8(1), Int(1)},
			{"int64", int64(1), Int(1)},
			{"uint32 max", uint32(math.MaxUint32), Int(int64(math.MaxUint32))},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				v, err := FromAny(tc.input)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, v)
			})
		}
	})

	t.Run("Uint64 Range", func(t *testing.T) {
		_, err := FromAny(uint64(math.MaxUint64))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("Slices", func(t *testing.T) {
		v, err := FromAny([]any{1, "s", nil})
		require.NoError(t, err)
		arr, ok := v.AsArray()
		require.True(t, ok)
		assert.Len(t, arr, 3)
		assert.True(t, arr[2].IsNull())
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := FromAny(struct{}{})
		assert.Error(t, err)
		assert.Panics(t, func() { MustFromAny(make(chan int)) })
	})

	t.Run("FromSlice", func(t *testing.T) {
		vs, err := FromSlice([]any{1, 2.5})
		require.NoError(t, err)
		assert.Equal(t, []Value{Int(1), Float(2.5)}, vs)

		_, err = FromSlice([]any{1, struct{}{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "element 1")
	})
}
