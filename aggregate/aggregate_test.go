package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabula/value"
)

func TestAggregations(t *testing.T) {
	tests := []struct {
		name   string
		fn     Func
		input  []value.Value
		expect value.Value
	}{
		{"mean", Mean, value.Of(1, 2, 3, 4), value.Float(2.5)},
		{"mean skips nulls", Mean, value.Of(1, nil, 3), value.Float(2)},
		{"mean single", Mean, value.Of(7), value.Int(7)},
		{"mean empty", Mean, value.Of(), value.Null()},
		{"mean all null", Mean, value.Of(nil, nil), value.Null()},
		{"stdev", Stdev, value.Of(2, 4, 4, 4, 5, 5, 7, 9), value.Float(math.Sqrt(32.0 / 7))},
		{"stdev single", Stdev, value.Of(nil, 3.5), value.Float(3.5)},
		{"median odd", Median, value.Of(3, 1, 2), value.Float(2)},
		{"median even", Median, value.Of(4, 1, 3, 2), value.Float(2.5)},
		{"sum ints", Sum, value.Of(1, 2, nil), value.Int(3)},
		{"sum mixed", Sum, value.Of(1, 0.5), value.Float(1.5)},
		{"sum empty", Sum, value.Of(nil), value.Null()},
		{"min", Min, value.Of("b", nil, "a"), value.String("a")},
		{"max", Max, value.Of(1, 2.5, nil), value.Float(2.5)},
		{"first", First, value.Of(nil, "x", "y"), value.String("x")},
		{"last", Last, value.Of("x", "y", nil), value.String("y")},
		{"count", Count, value.Of(1, nil, "a"), value.Int(2)},
		{"count empty", Count, value.Of(), value.Int(0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(tc.input)
			require.NoError(t, err)
			assert.True(t, tc.expect.Equal(got), "got %s, want %s", got, tc.expect)
			assert.Equal(t, tc.expect.Kind, got.Kind)
		})
	}
}

func TestNonNumeric(t *testing.T) {
	_, err := Mean(value.Of(1, "a"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonNumeric)

	_, err = Sum(value.Of(true))
	assert.ErrorIs(t, err, ErrNonNumeric)
}

func TestApply(t *testing.T) {
	called := false
	custom := func(values []value.Value) (value.Value, error) {
		called = true
		assert.NotContains(t, values, value.Null())
		return value.Int(int64(len(values))), nil
	}

	got, err := Apply(custom, value.Of(nil, 1, nil, 2))
	require.NoError(t, err)
	assert.Equal(t, value.Int(2), got)
	assert.True(t, called)

	called = false
	got, err = Apply(custom, value.Of(nil))
	require.NoError(t, err)
	assert.True(t, got.IsNull())
	assert.False(t, called)
}
