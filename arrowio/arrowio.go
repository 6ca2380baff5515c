// Package arrowio converts tables to and from Apache Arrow records.
//
// Column labels map to field names. Row labels are not part of the record:
// FromRecord numbers rows 0..n-1 unless tabula.WithRowLabels is given.
package arrowio

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hupe1980/tabula"
	"github.com/hupe1980/tabula/value"
)

// ErrUnsupportedType is returned for Arrow types or cell values that have
// no counterpart on the other side.
var ErrUnsupportedType = errors.New("unsupported type")

// FromRecord builds a table from an Arrow record.
func FromRecord(rec arrow.Record, opts ...tabula.Option) (*tabula.Table, error) {
	rows, err := readRecord(rec)
	if err != nil {
		return nil, err
	}
	return tabula.NewFromValues(rows, fieldLabels(rec.Schema()), opts...)
}

// FromTable builds a table from every record batch of an Arrow table.
func FromTable(tbl arrow.Table, opts ...tabula.Option) (*tabula.Table, error) {
	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()

	var rows [][]value.Value
	for tr.Next() {
		batch, err := readRecord(tr.Record())
		if err != nil {
			return nil, err
		}
		rows = append(rows, batch...)
	}
	if err := tr.Err(); err != nil {
		return nil, err
	}
	return tabula.NewFromValues(rows, fieldLabels(tbl.Schema()), opts...)
}

func fieldLabels(schema *arrow.Schema) []value.Value {
	labels := make([]value.Value, schema.NumFields())
	for i, f := range schema.Fields() {
		labels[i] = value.String(f.Name)
	}
	return labels
}

func readRecord(rec arrow.Record) ([][]value.Value, error) {
	rows := make([][]value.Value, rec.NumRows())
	for r := range rows {
		rows[r] = make([]value.Value, rec.NumCols())
	}
	for c, col := range rec.Columns() {
		for r := range rows {
			v, err := valueAt(col, r)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", rec.ColumnName(c), err)
			}
			rows[r][c] = v
		}
	}
	return rows, nil
}

// valueAt reads one cell of an Arrow array.
func valueAt(col arrow.Array, pos int) (value.Value, error) {
	if col.IsNull(pos) {
		return value.Null(), nil
	}

	switch col.DataType().ID() {
	case arrow.NULL:
		return value.Null(), nil
	case arrow.STRING:
		return value.String(col.(*array.String).Value(pos)), nil
	case arrow.LARGE_STRING:
		return value.String(col.(*array.LargeString).Value(pos)), nil
	case arrow.BOOL:
		return value.Bool(col.(*array.Boolean).Value(pos)), nil
	case arrow.INT8:
		return value.Int(int64(col.(*array.Int8).Value(pos))), nil
	case arrow.INT16:
		return value.Int(int64(col.(*array.Int16).Value(pos))), nil
	case arrow.INT32:
		return value.Int(int64(col.(*array.Int32).Value(pos))), nil
	case arrow.INT64:
		return value.Int(col.(*array.Int64).Value(pos)), nil
	case arrow.UINT8:
		return value.Int(int64(col.(*array.Uint8).Value(pos))), nil
	case arrow.UINT16:
		return value.Int(int64(col.(*array.Uint16).Value(pos))), nil
	case arrow.UINT32:
		return value.Int(int64(col.(*array.Uint32).Value(pos))), nil
	case arrow.UINT64:
		return value.FromAny(col.(*array.Uint64).Value(pos))
	case arrow.FLOAT16:
		return value.Float(float64(col.(*array.Float16).Value(pos).Float32())), nil
	case arrow.FLOAT32:
		return value.Float(float64(col.(*array.Float32).Value(pos))), nil
	case arrow.FLOAT64:
		return value.Float(col.(*array.Float64).Value(pos)), nil
	case arrow.DATE32:
		return value.Time(col.(*array.Date32).Value(pos).ToTime()), nil
	case arrow.DATE64:
		return value.Time(col.(*array.Date64).Value(pos).ToTime()), nil
	case arrow.TIMESTAMP:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return value.Time(col.(*array.Timestamp).Value(pos).ToTime(unit)), nil
	default:
		return value.Null(), fmt.Errorf("%w: %s", ErrUnsupportedType, col.DataType())
	}
}

// ToRecord converts t into an Arrow record allocated from mem
// (memory.DefaultAllocator when nil). The caller must Release it.
//
// Each column gets the narrowest type holding all of its non-null cells:
// int64, float64 for a mix of ints and floats, utf8, bool, a UTC
// nanosecond timestamp, or null when every cell is null. Columns that mix
// other kinds fail with ErrUnsupportedType, as do array cells.
func ToRecord(mem memory.Allocator, t *tabula.Table) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	n, m := t.Shape()
	labels := t.ColumnLabels()
	columns := t.ColumnValues()

	fields := make([]arrow.Field, m)
	arrs := make([]arrow.Array, 0, m)
	defer func() {
		for _, a := range arrs {
			a.Release()
		}
	}()

	for c := 0; c < m; c++ {
		col := columns.ValueAt(c).Values()
		dt, err := inferType(col)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", labels[c], err)
		}
		fields[c] = arrow.Field{Name: labels[c].String(), Type: dt, Nullable: true}

		arr, err := buildArray(mem, dt, col)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", labels[c], err)
		}
		arrs = append(arrs, arr)
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, arrs, int64(n)), nil
}

var timestampType = &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}

func inferType(col []value.Value) (arrow.DataType, error) {
	kinds := make(map[value.Kind]bool)
	for _, v := range col {
		if !v.IsNull() {
			kinds[v.Kind] = true
		}
	}

	switch {
	case len(kinds) == 0:
		return arrow.Null, nil
	case kinds[value.KindArray]:
		return nil, fmt.Errorf("%w: array cells", ErrUnsupportedType)
	case len(kinds) == 2 && kinds[value.KindInt] && kinds[value.KindFloat]:
		return arrow.PrimitiveTypes.Float64, nil
	case len(kinds) > 1:
		return nil, fmt.Errorf("%w: mixed kinds", ErrUnsupportedType)
	}

	switch {
	case kinds[value.KindInt]:
		return arrow.PrimitiveTypes.Int64, nil
	case kinds[value.KindFloat]:
		return arrow.PrimitiveTypes.Float64, nil
	case kinds[value.KindString]:
		return arrow.BinaryTypes.String, nil
	case kinds[value.KindBool]:
		return arrow.FixedWidthTypes.Boolean, nil
	default:
		return timestampType, nil
	}
}

func buildArray(mem memory.Allocator, dt arrow.DataType, col []value.Value) (arrow.Array, error) {
	builder := array.NewBuilder(mem, dt)
	defer builder.Release()
	builder.Reserve(len(col))

	for _, v := range col {
		if v.IsNull() {
			builder.AppendNull()
			continue
		}
		switch b := builder.(type) {
		case *array.Int64Builder:
			b.Append(v.I64)
		case *array.Float64Builder:
			f, _ := v.AsFloat64()
			b.Append(f)
		case *array.StringBuilder:
			b.Append(v.StringValue())
		case *array.BooleanBuilder:
			b.Append(v.B)
		case *array.TimestampBuilder:
			b.Append(arrow.Timestamp(v.I64))
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
		}
	}
	return builder.NewArray(), nil
}
