package tabula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabula/aggregate"
	"github.com/hupe1980/tabula/value"
)

func TestMelt(t *testing.T) {
	tbl := mustTable(t, [][]any{{1, 10, 100}, {2, 20, 200}}, []any{"id", "a", "b"})

	long, err := tbl.Melt([]any{"id"})
	require.NoError(t, err)
	assertLabels(t, []any{"id", "variable", "value"}, long.ColumnLabels())
	assertLabels(t, []any{0, 1, 2, 3}, long.RowLabels())
	assertRows(t, long, [][]any{
		{1, "a", 10},
		{1, "b", 100},
		{2, "a", 20},
		{2, "b", 200},
	})

	named, err := tbl.Melt([]any{"id"}, WithVarName("metric"), WithValueName("reading"))
	require.NoError(t, err)
	assertLabels(t, []any{"id", "metric", "reading"}, named.ColumnLabels())

	all, err := tbl.Melt(nil)
	require.NoError(t, err)
	assert.Equal(t, 6, all.Len())
	assertLabels(t, []any{"variable", "value"}, all.ColumnLabels())

	_, err = tbl.Melt([]any{"missing"})
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = tbl.Melt([]any{"id"}, WithVarName(struct{}{}))
	assert.Error(t, err)
	_, err = tbl.Melt([]any{"id"}, WithValueName(make(chan int)))
	assert.Error(t, err)
}

func TestMeltCardinality(t *testing.T) {
	tbl := mustTable(t, [][]any{
		{1, "x", 1.5, true},
		{2, "y", nil, false},
		{3, "z", 2.5, nil},
	}, []any{"id", "name", "score", "ok"})

	for _, ids := range [][]any{nil, {"id"}, {"id", "name"}, {"id", "name", "score", "ok"}} {
		long, err := tbl.Melt(ids)
		require.NoError(t, err)
		assert.Equal(t, tbl.Len()*(4-len(ids)), long.Len())
		_, m := long.Shape()
		assert.Equal(t, len(ids)+2, m)
	}
}

func pivotInput(t *testing.T) *Table {
	t.Helper()
	return mustTable(t, [][]any{
		{"d1", "A", 10},
		{"d1", "A", 20},
		{"d1", "B", 5},
		{"d2", "A", nil},
		{"d2", "B", 7},
		{"d3", "B", 1},
	}, []any{"date", "city", "temp"})
}

func TestPivot(t *testing.T) {
	wide, err := pivotInput(t).Pivot("date", "city", "temp")
	require.NoError(t, err)

	assertLabels(t, []any{"date", "A", "B"}, wide.ColumnLabels())
	assertLabels(t, []any{"d1", "d2", "d3"}, wide.RowLabels())
	assertRows(t, wide, [][]any{
		{"d1", 15.0, 5},
		{"d2", nil, 7},
		{"d3", nil, 1},
	})

	// A one-element sample comes back unchanged.
	cell, err := wide.Loc(Key("d1"), Key("B"))
	require.NoError(t, err)
	v, _ := cell.Value()
	assert.Equal(t, value.KindInt, v.Kind)
}

func TestPivotAggregators(t *testing.T) {
	tests := []struct {
		name string
		fn   aggregate.Func
		want [][]any
	}{
		{"sum", aggregate.Sum, [][]any{{"d1", 30, 5}, {"d2", nil, 7}, {"d3", nil, 1}}},
		{"count", aggregate.Count, [][]any{{"d1", 2, 1}, {"d2", nil, 1}, {"d3", nil, 1}}},
		{"max", aggregate.Max, [][]any{{"d1", 20, 5}, {"d2", nil, 7}, {"d3", nil, 1}}},
		{"first", aggregate.First, [][]any{{"d1", 10, 5}, {"d2", nil, 7}, {"d3", nil, 1}}},
		{"custom", func(vs []value.Value) (value.Value, error) {
			return value.Int(int64(len(vs) * 100)), nil
		}, [][]any{{"d1", 200, 100}, {"d2", nil, 100}, {"d3", nil, 100}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wide, err := pivotInput(t).Pivot("date", "city", "temp", WithAggregator(tc.fn))
			require.NoError(t, err)
			assertRows(t, wide, tc.want)
		})
	}
}

func TestPivotErrors(t *testing.T) {
	tbl := pivotInput(t)

	_, err := tbl.Pivot("nope", "city", "temp")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = tbl.Pivot("date", "temp", "city")
	assert.ErrorIs(t, err, aggregate.ErrNonNumeric)
}

func TestMeltPivotRoundTrip(t *testing.T) {
	tbl := mustTable(t, [][]any{{1, 10, 100}, {2, 20, 200}}, []any{"id", "a", "b"})

	long, err := tbl.Melt([]any{"id"})
	require.NoError(t, err)
	wide, err := long.Pivot("id", "variable", "value", WithAggregator(aggregate.First))
	require.NoError(t, err)
	assert.True(t, wide.Equal(tbl))
}

func TestConcat(t *testing.T) {
	a := mustTable(t, [][]any{{1, "x"}}, []any{"id", "name"})
	b := mustTable(t, [][]any{{2, true}, {3, false}}, []any{"id", "ok"}, WithRowLabels("p", "q"))

	out, err := Concat(a, b)
	require.NoError(t, err)
	assertLabels(t, []any{"id", "name", "ok"}, out.ColumnLabels())
	assertLabels(t, []any{0, 1, 2}, out.RowLabels())
	assertRows(t, out, [][]any{
		{1, "x", nil},
		{2, nil, true},
		{3, nil, false},
	})

	empty, err := Concat()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = Concat(a, nil)
	assert.ErrorIs(t, err, ErrInvalidSelector)
}

func TestHStack(t *testing.T) {
	a := mustTable(t, [][]any{{1}, {2}}, []any{"x"}, WithRowLabels("r0", "r1"))
	b := mustTable(t, [][]any{{"q"}, {"p"}}, []any{"y"}, WithRowLabels("r1", "r2"))
	s := mustSeries(t, []any{true}, "z")

	out, err := HStack(a, b, s)
	require.NoError(t, err)
	assertLabels(t, []any{"x", "y", "z"}, out.ColumnLabels())
	assertLabels(t, []any{"r0", "r1", "r2", 0}, out.RowLabels())
	assertRows(t, out, [][]any{
		{1, nil, nil},
		{2, "q", nil},
		{nil, "p", nil},
		{nil, nil, true},
	})

	dup, err := HStack(a, a)
	require.NoError(t, err)
	_, m := dup.Shape()
	assert.Equal(t, 1, m)

	_, err = HStack(a, 42)
	assert.ErrorIs(t, err, ErrInvalidSelector)
	_, err = HStack((*Table)(nil))
	assert.ErrorIs(t, err, ErrInvalidSelector)
}
