package tabula

import (
	"fmt"

	"github.com/hupe1980/tabula/sequence"
	"github.com/hupe1980/tabula/value"
)

type resolveMode uint8

const (
	modeSmart resolveMode = iota
	modeKey
	modePosition
)

// Selector addresses one axis of a table.
//
// Scalar selectors (Label, Key, Position) pick a single row or column and
// collapse that axis. Vector selectors (Labels, Keys, Positions, Range,
// RangeStep, All) keep it.
type Selector interface {
	resolve(index *sequence.Series) (positions []int, scalar bool, err error)
}

type scalarSelector struct {
	item any
	mode resolveMode
}

func (s scalarSelector) resolve(index *sequence.Series) ([]int, bool, error) {
	var (
		p   int
		err error
	)
	switch s.mode {
	case modeKey:
		var ps []int
		ps, err = index.KeyPositions(s.item)
		if err == nil {
			p = ps[0]
		}
	case modePosition:
		var ps []int
		ps, err = index.NormalizePositions(s.item.(int))
		if err == nil {
			p = ps[0]
		}
	default:
		p, err = index.ResolveOne(s.item)
	}
	if err != nil {
		return nil, true, err
	}
	return []int{p}, true, nil
}

type vectorSelector struct {
	items []any
	mode  resolveMode
}

func (s vectorSelector) resolve(index *sequence.Series) ([]int, bool, error) {
	switch s.mode {
	case modeKey:
		ps, err := index.KeyPositions(s.items...)
		return ps, false, err
	case modePosition:
		pos := make([]int, len(s.items))
		for i, it := range s.items {
			pos[i] = it.(int)
		}
		ps, err := index.NormalizePositions(pos...)
		return ps, false, err
	default:
		ps, err := index.Resolve(s.items...)
		return ps, false, err
	}
}

type rangeSelector struct {
	start, stop, step int
}

func (s rangeSelector) resolve(index *sequence.Series) ([]int, bool, error) {
	ps, err := sequence.SliceIndices(s.start, s.stop, s.step, index.Len())
	return ps, false, err
}

type allSelector struct{}

func (allSelector) resolve(index *sequence.Series) ([]int, bool, error) {
	return allPositions(index.Len()), false, nil
}

// Label selects one entry by label, falling back to an integer position when
// the integer is not a label.
func Label(x any) Selector { return scalarSelector{item: x, mode: modeSmart} }

// Key selects one entry by label only.
func Key(x any) Selector { return scalarSelector{item: x, mode: modeKey} }

// Position selects one entry by position. Negative positions count from the
// end.
func Position(i int) Selector { return scalarSelector{item: i, mode: modePosition} }

// Labels selects entries by labels, or by positions when every item is an
// integer that is not a label. Mixing both fails with ErrAmbiguousIndex.
func Labels(xs ...any) Selector { return vectorSelector{items: xs, mode: modeSmart} }

// Keys selects entries by label only.
func Keys(xs ...any) Selector { return vectorSelector{items: xs, mode: modeKey} }

// Positions selects entries by position only.
func Positions(is ...int) Selector {
	items := make([]any, len(is))
	for i, p := range is {
		items[i] = p
	}
	return vectorSelector{items: items, mode: modePosition}
}

// Range selects the positions [start, stop). Bounds behave like Slice.
func Range(start, stop int) Selector { return rangeSelector{start: start, stop: stop, step: 1} }

// RangeStep is Range with a stride.
func RangeStep(start, stop, step int) Selector {
	return rangeSelector{start: start, stop: stop, step: step}
}

// All selects every entry.
func All() Selector { return allSelector{} }

// ResultKind tells which shape an indexing result has.
type ResultKind int

const (
	// TableResult is a table.
	TableResult ResultKind = iota
	// SeriesResult is a single row or column.
	SeriesResult
	// ValueResult is a single cell.
	ValueResult
)

// String returns the name of the kind.
func (k ResultKind) String() string {
	switch k {
	case TableResult:
		return "table"
	case SeriesResult:
		return "series"
	case ValueResult:
		return "value"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Result is the outcome of an indexing operation. Its shape depends on the
// selectors: each scalar selector removes one axis.
type Result struct {
	kind   ResultKind
	table  *Table
	series *Series
	value  value.Value
}

// Kind returns the shape of the result.
func (r Result) Kind() ResultKind { return r.kind }

// Table returns the table result.
func (r Result) Table() (*Table, bool) { return r.table, r.kind == TableResult }

// Series returns the row or column result.
func (r Result) Series() (*Series, bool) { return r.series, r.kind == SeriesResult }

// Value returns the cell result.
func (r Result) Value() (value.Value, bool) { return r.value, r.kind == ValueResult }

func tableResult(t *Table) Result   { return Result{kind: TableResult, table: t} }
func seriesResult(s *Series) Result { return Result{kind: SeriesResult, series: s} }
func valueResult(v value.Value) Result {
	return Result{kind: ValueResult, value: v}
}

// Loc addresses both axes at once.
//
//	rows    cols    result
//	vector  vector  Table
//	vector  scalar  Series (part of a column)
//	scalar  vector  Series (part of a row)
//	scalar  scalar  Value
func (t *Table) Loc(rows, cols Selector) (Result, error) {
	if rows == nil || cols == nil {
		return Result{}, fmt.Errorf("%w: nil selector", ErrInvalidSelector)
	}
	rowPos, rowScalar, err := rows.resolve(t.rowIndex)
	if err != nil {
		return Result{}, fmt.Errorf("rows: %w", err)
	}
	colPos, colScalar, err := cols.resolve(t.colIndex)
	if err != nil {
		return Result{}, fmt.Errorf("columns: %w", err)
	}

	switch {
	case rowScalar && colScalar:
		return valueResult(t.cell(rowPos[0], colPos[0])), nil
	case colScalar:
		col, err := t.ColumnValues().ValueAt(colPos[0]).ByPositions(rowPos...)
		if err != nil {
			return Result{}, err
		}
		return seriesResult(col), nil
	case rowScalar:
		row, err := t.RowValues().ValueAt(rowPos[0]).ByPositions(colPos...)
		if err != nil {
			return Result{}, err
		}
		return seriesResult(row), nil
	default:
		sub, err := t.take(rowPos, colPos)
		if err != nil {
			return Result{}, err
		}
		return tableResult(sub), nil
	}
}

// Index addresses a table with one selector: a scalar selects a column, a
// list of labels selects columns, and a range selects rows.
func (t *Table) Index(sel Selector) (Result, error) {
	switch s := sel.(type) {
	case scalarSelector:
		p, _, err := s.resolve(t.colIndex)
		if err != nil {
			return Result{}, fmt.Errorf("column: %w", err)
		}
		return seriesResult(t.ColumnValues().ValueAt(p[0])), nil
	case vectorSelector:
		positions, _, err := s.resolve(t.colIndex)
		if err != nil {
			return Result{}, fmt.Errorf("columns: %w", err)
		}
		sub, err := t.take(allPositions(t.Len()), positions)
		if err != nil {
			return Result{}, err
		}
		return tableResult(sub), nil
	case rangeSelector:
		return t.SliceStep(s.start, s.stop, s.step)
	case allSelector:
		return tableResult(t), nil
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrInvalidSelector, sel)
	}
}

// Select returns a table with only the given columns, in the given order.
// Items are resolved like Labels.
func (t *Table) Select(labels ...any) (*Table, error) {
	r, err := t.Index(Labels(labels...))
	if err != nil {
		return nil, err
	}
	out, _ := r.Table()
	return out, nil
}

// Slice selects the rows at positions [start, stop). The result is a table,
// or a row series when exactly one row is selected.
func (t *Table) Slice(start, stop int) Result {
	r, _ := t.SliceStep(start, stop, 1)
	return r
}

// SliceStep is Slice with a stride.
func (t *Table) SliceStep(start, stop, step int) (Result, error) {
	positions, err := sequence.SliceIndices(start, stop, step, t.Len())
	if err != nil {
		return Result{}, err
	}
	if len(positions) == 1 {
		return seriesResult(t.RowValues().ValueAt(positions[0])), nil
	}
	sub, err := t.takeRows(positions)
	if err != nil {
		return Result{}, err
	}
	return tableResult(sub), nil
}
