package tabula

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/tabula/sequence"
	"github.com/hupe1980/tabula/value"
)

// Axis is one of the two table dimensions.
type Axis int

const (
	// Rows is axis 0. Data given on this axis is a list of rows.
	Rows Axis = 0
	// Columns is axis 1. Data given on this axis is a list of columns.
	Columns Axis = 1
)

// String returns "rows" or "columns".
func (a Axis) String() string {
	switch a {
	case Rows:
		return "rows"
	case Columns:
		return "columns"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

func (a Axis) other() Axis { return 1 - a }

// Series is a table column or row.
type Series = sequence.Series

// Lines is one form of a table: its rows keyed by row label, or its
// columns keyed by column label.
type Lines = sequence.Sequence[*Series]

// Table is an immutable two-dimensional grid keyed by unique row labels and
// unique column labels.
//
// A table holds its data either as rows or as columns. The other form is
// built by transposition the first time it is asked for and kept from then
// on. Tables are safe for concurrent readers.
type Table struct {
	rowIndex *Series
	colIndex *Series
	axis     Axis

	rowOnce sync.Once
	rows    *Lines

	colOnce sync.Once
	cols    *Lines

	logger  *Logger
	metrics MetricsCollector
}

// New creates a table from a list of rows.
func New(data [][]any, columns []any, opts ...Option) (*Table, error) {
	return NewWithAxis(data, columns, Rows, opts...)
}

// NewFromColumns creates a table from a list of columns.
func NewFromColumns(data [][]any, columns []any, opts ...Option) (*Table, error) {
	return NewWithAxis(data, columns, Columns, opts...)
}

// NewWithAxis creates a table from rows (axis Rows) or columns (axis
// Columns). Row labels default to 0..n-1.
func NewWithAxis(data [][]any, columns []any, axis Axis, opts ...Option) (*Table, error) {
	if axis != Rows && axis != Columns {
		return nil, fmt.Errorf("%w: axis %d", ErrInvalidSelector, axis)
	}
	colLabels, err := value.FromSlice(columns)
	if err != nil {
		return nil, fmt.Errorf("column labels: %w", err)
	}

	lines := make([][]value.Value, len(data))
	for i, line := range data {
		vals, err := value.FromSlice(line)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", axis, i, err)
		}
		lines[i] = vals
	}

	return fromLines(lines, colLabels, axis, applyOptions(opts))
}

// NewFromValues creates a table from rows of Values.
func NewFromValues(rows [][]value.Value, columns []value.Value, opts ...Option) (*Table, error) {
	lines := make([][]value.Value, len(rows))
	for i, r := range rows {
		lines[i] = slices.Clone(r)
	}
	return fromLines(lines, slices.Clone(columns), Rows, applyOptions(opts))
}

// MustNew is like New but panics on error.
func MustNew(data [][]any, columns []any, opts ...Option) *Table {
	t, err := New(data, columns, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// FromSeries creates a table whose columns are cols. All series must have
// the same keys in the same order; the keys become the row labels and the
// series names become the column labels. An unnamed series is labelled by
// its position.
func FromSeries(cols ...*Series) (*Table, error) {
	colLabels := make([]value.Value, len(cols))
	lines := make([][]value.Value, len(cols))
	var rowLabels []value.Value

	for i, c := range cols {
		keys := c.Keys()
		if i == 0 {
			rowLabels = keys
		} else if !slices.EqualFunc(rowLabels, keys, value.Equal) {
			return nil, fmt.Errorf("series %d: %w: row labels differ", i, ErrShapeMismatch)
		}
		colLabels[i] = c.Name()
		if colLabels[i].IsNull() {
			colLabels[i] = value.Int(int64(i))
		}
		lines[i] = c.Values()
	}

	o := applyOptions([]Option{withRowLabelValues(rowLabels)})
	return fromLines(lines, colLabels, Columns, o)
}

// fromLines builds a table from owned data in the given canonical form.
func fromLines(lines [][]value.Value, colLabels []value.Value, axis Axis, o options) (*Table, error) {
	if o.err != nil {
		return nil, o.err
	}

	n := len(lines)
	if axis == Columns {
		if len(lines) != len(colLabels) {
			return nil, &sequence.ShapeError{What: "columns", Expected: len(colLabels), Actual: len(lines)}
		}
		n = 0
		if len(lines) > 0 {
			n = len(lines[0])
		} else if o.hasRowLabels {
			n = len(o.rowLabels)
		}
	}

	rowLabels := o.rowLabels
	if !o.hasRowLabels {
		rowLabels = sequence.Positions(n)
	}
	if len(rowLabels) != n {
		return nil, &sequence.ShapeError{What: "row labels", Expected: n, Actual: len(rowLabels)}
	}

	rowIndex, err := sequence.Labels(rowLabels)
	if err != nil {
		return nil, fmt.Errorf("row labels: %w", err)
	}
	colIndex, err := sequence.Labels(colLabels)
	if err != nil {
		return nil, fmt.Errorf("column labels: %w", err)
	}

	return assemble(rowIndex, colIndex, axis, lines, o.logger, o.metricsCollector)
}

// assemble wraps owned, validated labels and data in a Table.
func assemble(rowIndex, colIndex *Series, axis Axis, lines [][]value.Value, logger *Logger, mc MetricsCollector) (*Table, error) {
	major, minor := rowIndex, colIndex
	if axis == Columns {
		major, minor = colIndex, rowIndex
	}
	if len(lines) != major.Len() {
		return nil, &sequence.ShapeError{What: axis.String(), Expected: major.Len(), Actual: len(lines)}
	}

	series := make([]*Series, len(lines))
	for i, line := range lines {
		s, err := sequence.Aligned(line, minor, major.KeyAt(i))
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", axis, major.KeyAt(i), err)
		}
		series[i] = s
	}
	form, err := sequence.Aligned(series, major, value.Null())
	if err != nil {
		return nil, err
	}

	return withForm(rowIndex, colIndex, axis, form, logger, mc), nil
}

func withForm(rowIndex, colIndex *Series, axis Axis, form *Lines, logger *Logger, mc MetricsCollector) *Table {
	if logger == nil {
		logger = NoopLogger()
	}
	if mc == nil {
		mc = NoopMetricsCollector{}
	}
	t := &Table{
		rowIndex: rowIndex,
		colIndex: colIndex,
		axis:     axis,
		logger:   logger,
		metrics:  mc,
	}
	if axis == Rows {
		t.rows = form
	} else {
		t.cols = form
	}
	return t
}

// derive builds a table that inherits the observers of t.
func (t *Table) derive(rowLabels, colLabels []value.Value, axis Axis, lines [][]value.Value) (*Table, error) {
	o := t.options(nil)
	o.rowLabels, o.hasRowLabels = rowLabels, true
	return fromLines(lines, colLabels, axis, o)
}

// transpose turns one form into the other. The new lines are keyed by the
// labels of the old lines and named by the labels of index.
func transpose(form *Lines, index, lineIndex *Series) *Lines {
	n := index.Len()
	series := make([]*Series, n)
	for i := 0; i < n; i++ {
		vals := make([]value.Value, form.Len())
		for j := range vals {
			vals[j] = form.ValueAt(j).ValueAt(i)
		}
		// Lengths agree by construction.
		series[i], _ = sequence.Aligned(vals, lineIndex, index.KeyAt(i))
	}
	out, _ := sequence.Aligned(series, index, value.Null())
	return out
}

// RowValues returns the rows, keyed by row label. Each row is keyed by
// column label and named by its row label.
func (t *Table) RowValues() *Lines {
	t.rowOnce.Do(func() {
		if t.rows != nil {
			return
		}
		start := time.Now()
		t.rows = transpose(t.cols, t.rowIndex, t.colIndex)
		t.metrics.RecordMaterialize(Rows, time.Since(start))
	})
	return t.rows
}

// ColumnValues returns the columns, keyed by column label. Each column is
// keyed by row label and named by its column label.
func (t *Table) ColumnValues() *Lines {
	t.colOnce.Do(func() {
		if t.cols != nil {
			return
		}
		start := time.Now()
		t.cols = transpose(t.rows, t.colIndex, t.rowIndex)
		t.metrics.RecordMaterialize(Columns, time.Since(start))
	})
	return t.cols
}

// Axis returns the form the table was built in.
func (t *Table) Axis() Axis { return t.axis }

// Transpose returns a table whose rows are the columns of t.
func (t *Table) Transpose() *Table {
	if t.axis == Rows {
		return withForm(t.colIndex, t.rowIndex, Columns, t.rows, t.logger, t.metrics)
	}
	return withForm(t.colIndex, t.rowIndex, Rows, t.cols, t.logger, t.metrics)
}

// cell returns the value at row r, column c without materializing.
func (t *Table) cell(r, c int) value.Value {
	if t.axis == Rows {
		return t.rows.ValueAt(r).ValueAt(c)
	}
	return t.cols.ValueAt(c).ValueAt(r)
}

// Shape returns the number of rows and columns.
func (t *Table) Shape() (rows, cols int) { return t.rowIndex.Len(), t.colIndex.Len() }

// Len returns the number of rows.
func (t *Table) Len() int { return t.rowIndex.Len() }

// RowLabels returns a copy of the row labels.
func (t *Table) RowLabels() []value.Value { return t.rowIndex.Values() }

// ColumnLabels returns a copy of the column labels.
func (t *Table) ColumnLabels() []value.Value { return t.colIndex.Values() }

// RowIndex returns the row labels as a label series.
func (t *Table) RowIndex() *Series { return t.rowIndex }

// ColumnIndex returns the column labels as a label series.
func (t *Table) ColumnIndex() *Series { return t.colIndex }

// Equal reports whether t and o have the same column labels and the same
// cell values. Row labels are not compared.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	tr, tc := t.Shape()
	or, oc := o.Shape()
	if tr != or || tc != oc || !t.colIndex.Equal(o.colIndex) {
		return false
	}
	for r := 0; r < tr; r++ {
		for c := 0; c < tc; c++ {
			if !t.cell(r, c).Equal(o.cell(r, c)) {
				return false
			}
		}
	}
	return true
}

// Column returns the column with the given label. An integer that is not a
// column label is used as a column position.
func (t *Table) Column(label any) (*Series, error) {
	p, err := t.colIndex.ResolveOne(label)
	if err != nil {
		return nil, fmt.Errorf("column: %w", err)
	}
	return t.ColumnValues().ValueAt(p), nil
}

// ColumnAt returns the column at position pos. Negative positions count
// from the end.
func (t *Table) ColumnAt(pos int) (*Series, error) {
	c, err := t.ColumnValues().At(pos)
	if err != nil {
		return nil, fmt.Errorf("column: %w", err)
	}
	return c, nil
}

// Row returns the row with the given label.
func (t *Table) Row(label any) (*Series, error) {
	r, err := t.RowValues().Get(label)
	if err != nil {
		return nil, fmt.Errorf("row: %w", err)
	}
	return r, nil
}

// RowAt returns the row at position pos. Negative positions count from the
// end.
func (t *Table) RowAt(pos int) (*Series, error) {
	r, err := t.RowValues().At(pos)
	if err != nil {
		return nil, fmt.Errorf("row: %w", err)
	}
	return r, nil
}

// Rows iterates over the rows in order.
func (t *Table) Rows() iter.Seq2[value.Value, *Series] {
	return t.RowValues().All()
}

// ToRows returns a copy of the cell values, row by row.
func (t *Table) ToRows() [][]value.Value {
	n, m := t.Shape()
	out := make([][]value.Value, n)
	for r := range out {
		out[r] = make([]value.Value, m)
		for c := range out[r] {
			out[r][c] = t.cell(r, c)
		}
	}
	return out
}

// Head returns the first k rows.
func (t *Table) Head(k int) *Table {
	positions, _ := sequence.SliceIndices(0, max(k, 0), 1, t.Len())
	out, _ := t.takeRows(positions)
	return out
}

// Tail returns the last k rows.
func (t *Table) Tail(k int) *Table {
	positions, _ := sequence.SliceIndices(max(t.Len()-max(k, 0), 0), t.Len(), 1, t.Len())
	out, _ := t.takeRows(positions)
	return out
}

// Unique returns the distinct values of a column in order of first
// appearance.
func (t *Table) Unique(label any) ([]value.Value, error) {
	c, err := t.Column(label)
	if err != nil {
		return nil, err
	}
	return c.Unique(), nil
}

// Set always fails: tables are immutable. Use With to derive a copy.
func (t *Table) Set(row, col any, _ any) error {
	key, err := value.FromSlice([]any{row, col})
	if err != nil {
		return fmt.Errorf("%w: %w", sequence.ErrImmutable, err)
	}
	return &sequence.MutationError{Key: value.Array(key...)}
}

// With returns a copy of t where the cell at (row, col) is replaced by v.
// row and col are labels.
func (t *Table) With(row, col any, v any) (*Table, error) {
	r, err := t.rowIndex.KeyPositions(row)
	if err != nil {
		return nil, fmt.Errorf("row: %w", err)
	}
	c, err := t.colIndex.KeyPositions(col)
	if err != nil {
		return nil, fmt.Errorf("column: %w", err)
	}
	cell, err := value.FromAny(v)
	if err != nil {
		return nil, err
	}

	rows := t.ToRows()
	rows[r[0]][c[0]] = cell
	return t.derive(t.RowLabels(), t.ColumnLabels(), Rows, rows)
}

// takeRows builds a table from the rows at positions, keeping labels.
func (t *Table) takeRows(positions []int) (*Table, error) {
	return t.take(positions, allPositions(t.colIndex.Len()))
}

// take builds a table from the given row and column positions in the
// canonical form of t.
func (t *Table) take(rowPos, colPos []int) (*Table, error) {
	rowLabels := pickLabels(t.rowIndex, rowPos)
	colLabels := pickLabels(t.colIndex, colPos)

	var lines [][]value.Value
	if t.axis == Rows {
		lines = make([][]value.Value, len(rowPos))
		for i, r := range rowPos {
			lines[i] = make([]value.Value, len(colPos))
			for j, c := range colPos {
				lines[i][j] = t.cell(r, c)
			}
		}
	} else {
		lines = make([][]value.Value, len(colPos))
		for j, c := range colPos {
			lines[j] = make([]value.Value, len(rowPos))
			for i, r := range rowPos {
				lines[j][i] = t.cell(r, c)
			}
		}
	}
	return t.derive(rowLabels, colLabels, t.axis, lines)
}

func pickLabels(index *Series, positions []int) []value.Value {
	out := make([]value.Value, len(positions))
	for i, p := range positions {
		out[i] = index.KeyAt(p)
	}
	return out
}

func allPositions(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// String returns a short description of the table.
func (t *Table) String() string {
	n, m := t.Shape()
	labels := make([]string, m)
	for i, l := range t.colIndex.Values() {
		labels[i] = l.String()
	}
	return fmt.Sprintf("<Table %dx%d [%s]>", n, m, strings.Join(labels, ", "))
}
