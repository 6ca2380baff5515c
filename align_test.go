package tabula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReindex(t *testing.T) {
	tbl := mustTable(t, [][]any{{1, "a"}, {2, "b"}}, []any{"id", "label"}, WithRowLabels("x", "y"))

	same, err := tbl.Reindex("id", "label")
	require.NoError(t, err)
	assert.True(t, same.Equal(tbl))

	out, err := tbl.Reindex("label", "extra", "id")
	require.NoError(t, err)
	assertLabels(t, []any{"label", "extra", "id"}, out.ColumnLabels())
	assertLabels(t, []any{"x", "y"}, out.RowLabels())
	assertRows(t, out, [][]any{{"a", nil, 1}, {"b", nil, 2}})

	none, err := tbl.Reindex()
	require.NoError(t, err)
	n, m := none.Shape()
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, m)

	_, err = tbl.Reindex("id", "id")
	assert.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestReindexRows(t *testing.T) {
	tbl := mustTable(t, [][]any{{1, "a"}, {2, "b"}}, []any{"id", "label"}, WithRowLabels("x", "y"))

	out, err := tbl.ReindexRows("y", "w", "x")
	require.NoError(t, err)
	assertLabels(t, []any{"y", "w", "x"}, out.RowLabels())
	assertRows(t, out, [][]any{{2, "b"}, {nil, nil}, {1, "a"}})

	_, err = tbl.ReindexRows("x", "x")
	assert.ErrorIs(t, err, ErrDuplicateLabel)

	nested := mustTable(t, [][]any{{[]any{1, 2}}}, []any{"arr"})
	_, err = nested.ReindexRows(0, 1)
	assert.ErrorIs(t, err, ErrReindexUnsupported)
}
