package arrowio

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabula"
	"github.com/hupe1980/tabula/value"
)

func TestRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ts := time.Date(2024, 5, 6, 7, 8, 9, 10, time.UTC)
	tbl := tabula.MustNew([][]any{
		{1, 1.5, "a", true, ts, nil, 2},
		{2, nil, nil, false, nil, nil, 2.5},
		{3, -2.0, "c", nil, ts.Add(time.Hour), nil, nil},
	}, []any{"id", "score", "name", "ok", "at", "empty", "mixed"})

	rec, err := ToRecord(mem, tbl)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(3), rec.NumRows())
	wantTypes := []arrow.Type{arrow.INT64, arrow.FLOAT64, arrow.STRING, arrow.BOOL, arrow.TIMESTAMP, arrow.NULL, arrow.FLOAT64}
	for i, want := range wantTypes {
		assert.Equal(t, want, rec.Schema().Field(i).Type.ID(), rec.ColumnName(i))
	}

	back, err := FromRecord(rec)
	require.NoError(t, err)
	assert.True(t, back.Equal(tbl))
}

func TestFromRecordTypes(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "i32", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
		{Name: "u8", Type: arrow.PrimitiveTypes.Uint8},
		{Name: "f32", Type: arrow.PrimitiveTypes.Float32},
		{Name: "ls", Type: arrow.BinaryTypes.LargeString},
		{Name: "d32", Type: arrow.FixedWidthTypes.Date32},
		{Name: "ms", Type: &arrow.TimestampType{Unit: arrow.Millisecond}},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	b.Field(0).(*array.Int32Builder).AppendValues([]int32{7, 0}, []bool{true, false})
	b.Field(1).(*array.Uint8Builder).AppendValues([]uint8{1, 255}, nil)
	b.Field(2).(*array.Float32Builder).AppendValues([]float32{0.5, -1.25}, nil)
	b.Field(3).(*array.LargeStringBuilder).AppendValues([]string{"x", "y"}, nil)
	b.Field(4).(*array.Date32Builder).AppendValues([]arrow.Date32{arrow.Date32FromTime(day), arrow.Date32FromTime(day.AddDate(0, 0, 1))}, nil)
	b.Field(5).(*array.TimestampBuilder).AppendValues([]arrow.Timestamp{arrow.Timestamp(day.UnixMilli()), 0}, nil)

	rec := b.NewRecord()
	defer rec.Release()

	tbl, err := FromRecord(rec, tabula.WithRowLabels("first", "second"))
	require.NoError(t, err)

	row, err := tbl.Row("first")
	require.NoError(t, err)
	assert.True(t, row.EqualValues(value.Of(7, 1, 0.5, "x", day, day)...), row.String())

	row, err = tbl.Row("second")
	require.NoError(t, err)
	assert.True(t, row.EqualValues(value.Of(nil, 255, -1.25, "y", day.AddDate(0, 0, 1), time.Unix(0, 0))...), row.String())
}

func TestFromTable(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	first, err := ToRecord(mem, tabula.MustNew([][]any{{1, "a"}, {2, "b"}}, []any{"id", "name"}))
	require.NoError(t, err)
	defer first.Release()
	second, err := ToRecord(mem, tabula.MustNew([][]any{{3, "c"}}, []any{"id", "name"}))
	require.NoError(t, err)
	defer second.Release()

	at := array.NewTableFromRecords(first.Schema(), []arrow.Record{first, second})
	defer at.Release()

	tbl, err := FromTable(at)
	require.NoError(t, err)
	assert.True(t, tbl.Equal(tabula.MustNew([][]any{{1, "a"}, {2, "b"}, {3, "c"}}, []any{"id", "name"})))
	assert.Equal(t, 0, value.CompareTuples(value.Of(0, 1, 2), tbl.RowLabels()))
}

func TestToRecordUnsupported(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
	}{
		{"mixed kinds", [][]any{{1}, {"a"}}},
		{"array cells", [][]any{{[]any{1, 2}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToRecord(nil, tabula.MustNew(tc.rows, []any{"v"}))
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestFromRecordUnsupported(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{{Name: "bin", Type: arrow.BinaryTypes.Binary}}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.BinaryBuilder).Append([]byte("raw"))

	rec := b.NewRecord()
	defer rec.Release()

	_, err := FromRecord(rec)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
