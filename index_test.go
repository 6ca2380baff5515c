package tabula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabula/value"
)

func labelTable(t *testing.T) *Table {
	t.Helper()
	return mustTable(t, [][]any{{1, "a"}, {2, "b"}, {3, "c"}}, []any{"id", "label"})
}

func TestColumnAndCellAccess(t *testing.T) {
	tbl := labelTable(t)

	// Integer 0 is not a column label, so it falls back to position 0.
	r, err := tbl.Index(Label(0))
	require.NoError(t, err)
	col, ok := r.Series()
	require.True(t, ok)
	assert.Equal(t, value.String("id"), col.Name())
	assert.True(t, col.EqualValues(value.Of(1, 2, 3)...))

	r, err = tbl.Loc(Label(1), Label("label"))
	require.NoError(t, err)
	cell, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, value.String("b"), cell)

	head, ok := tbl.Slice(0, 2).Table()
	require.True(t, ok)
	assert.True(t, head.Equal(mustTable(t, [][]any{{1, "a"}, {2, "b"}}, []any{"id", "label"})))
}

func TestLocShapes(t *testing.T) {
	tbl := mustTable(t, [][]any{{1, "a", true}, {2, "b", false}, {3, "c", true}}, []any{"id", "label", "ok"},
		WithRowLabels("x", "y", "z"))

	tests := []struct {
		name string
		rows Selector
		cols Selector
		kind ResultKind
	}{
		{"vector vector", Labels("x", "z"), Labels("id", "ok"), TableResult},
		{"vector scalar", Range(0, 2), Label("label"), SeriesResult},
		{"scalar vector", Key("y"), All(), SeriesResult},
		{"scalar scalar", Position(-1), Position(0), ValueResult},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := tbl.Loc(tc.rows, tc.cols)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, r.Kind())
		})
	}

	r, err := tbl.Loc(Labels("x", "z"), Labels("id", "ok"))
	require.NoError(t, err)
	sub, _ := r.Table()
	assertRows(t, sub, [][]any{{1, true}, {3, true}})
	assertLabels(t, []any{"x", "z"}, sub.RowLabels())

	r, err = tbl.Loc(Range(0, 2), Label("label"))
	require.NoError(t, err)
	part, _ := r.Series()
	assert.True(t, part.EqualValues(value.Of("a", "b")...))
	assertLabels(t, []any{"x", "y"}, part.Keys())

	r, err = tbl.Loc(Key("y"), All())
	require.NoError(t, err)
	row, _ := r.Series()
	assert.True(t, row.EqualValues(value.Of(2, "b", false)...))
	assert.Equal(t, value.String("y"), row.Name())

	r, err = tbl.Loc(Position(-1), Position(0))
	require.NoError(t, err)
	v, _ := r.Value()
	assert.Equal(t, value.Int(3), v)
}

func TestLocErrors(t *testing.T) {
	tbl := labelTable(t)

	_, err := tbl.Loc(nil, All())
	assert.ErrorIs(t, err, ErrInvalidSelector)

	_, err = tbl.Loc(Label(5), All())
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = tbl.Loc(All(), Key(0))
	assert.ErrorIs(t, err, ErrKeyNotFound, "Key never falls back to positions")

	_, err = tbl.Loc(All(), Labels("id", 1))
	assert.ErrorIs(t, err, ErrAmbiguousIndex)

	_, err = tbl.Loc(RangeStep(0, 3, 0), All())
	assert.ErrorIs(t, err, ErrInvalidSlice)

	_, err = tbl.Loc(Positions(0, 3), All())
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestLabelsPreferKeys(t *testing.T) {
	// Integer column labels shadow positions.
	tbl := mustTable(t, [][]any{{"a", "b", "c"}}, []any{2, 1, 0})

	r, err := tbl.Loc(Position(0), Labels(0, 1))
	require.NoError(t, err)
	row, _ := r.Series()
	assert.True(t, row.EqualValues(value.Of("c", "b")...))

	r, err = tbl.Loc(Position(0), Positions(0, 1))
	require.NoError(t, err)
	row, _ = r.Series()
	assert.True(t, row.EqualValues(value.Of("a", "b")...))
}

func TestIndexDispatch(t *testing.T) {
	tbl := labelTable(t)

	r, err := tbl.Index(Labels("label", "id"))
	require.NoError(t, err)
	sub, ok := r.Table()
	require.True(t, ok)
	assertLabels(t, []any{"label", "id"}, sub.ColumnLabels())
	assertRows(t, sub, [][]any{{"a", 1}, {"b", 2}, {"c", 3}})

	r, err = tbl.Index(Range(1, 3))
	require.NoError(t, err)
	sub, ok = r.Table()
	require.True(t, ok)
	assertRows(t, sub, [][]any{{2, "b"}, {3, "c"}})

	r, err = tbl.Index(All())
	require.NoError(t, err)
	same, _ := r.Table()
	assert.Same(t, tbl, same)

	_, err = tbl.Index(Label("nope"))
	assert.ErrorIs(t, err, ErrKeyNotFound)

	sel, err := tbl.Select("label")
	require.NoError(t, err)
	assertRows(t, sel, [][]any{{"a"}, {"b"}, {"c"}})

	_, err = tbl.Select("nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSlice(t *testing.T) {
	tbl := labelTable(t)

	tests := []struct {
		name       string
		start      int
		stop       int
		step       int
		wantRows   [][]any
		wantSeries []any
	}{
		{name: "prefix", start: 0, stop: 2, step: 1, wantRows: [][]any{{1, "a"}, {2, "b"}}},
		{name: "negative start", start: -2, stop: 3, step: 1, wantRows: [][]any{{2, "b"}, {3, "c"}}},
		{name: "clamped", start: -10, stop: 10, step: 1, wantRows: [][]any{{1, "a"}, {2, "b"}, {3, "c"}}},
		{name: "reverse", start: 2, stop: -4, step: -1, wantRows: [][]any{{3, "c"}, {2, "b"}, {1, "a"}}},
		{name: "step", start: 0, stop: 3, step: 2, wantRows: [][]any{{1, "a"}, {3, "c"}}},
		{name: "empty", start: 2, stop: 1, step: 1, wantRows: [][]any{}},
		{name: "single row collapses", start: 1, stop: 2, step: 1, wantSeries: []any{2, "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := tbl.SliceStep(tc.start, tc.stop, tc.step)
			require.NoError(t, err)
			if tc.wantSeries != nil {
				s, ok := r.Series()
				require.True(t, ok)
				assert.True(t, s.EqualValues(value.Of(tc.wantSeries...)...))
				return
			}
			sub, ok := r.Table()
			require.True(t, ok)
			assertRows(t, sub, tc.wantRows)
		})
	}

	_, err := tbl.SliceStep(0, 3, 0)
	assert.ErrorIs(t, err, ErrInvalidSlice)
}

func TestResultKindString(t *testing.T) {
	assert.Equal(t, "table", TableResult.String())
	assert.Equal(t, "series", SeriesResult.String())
	assert.Equal(t, "value", ValueResult.String())
	assert.Equal(t, "ResultKind(9)", ResultKind(9).String())
}
