package tabula

import (
	"fmt"

	"github.com/hupe1980/tabula/value"
)

// Reindex returns a table with exactly the given columns in that order.
// Columns missing from t are filled with nulls; it never fails on a missing
// column. Repeated labels fail with ErrDuplicateLabel.
func (t *Table) Reindex(columns ...any) (*Table, error) {
	labels, err := value.FromSlice(columns)
	if err != nil {
		return nil, fmt.Errorf("column labels: %w", err)
	}
	return t.reindexColumns(labels)
}

func (t *Table) reindexColumns(labels []value.Value) (*Table, error) {
	n := t.Len()
	cols := t.ColumnValues()

	lines := make([][]value.Value, len(labels))
	for i, l := range labels {
		if p, ok := t.colIndex.Position(l); ok {
			lines[i] = cols.ValueAt(p).Values()
		} else {
			lines[i] = make([]value.Value, n)
		}
	}
	return t.derive(t.RowLabels(), labels, Columns, lines)
}

// ReindexRows returns a table with exactly the given row labels in that
// order. Rows missing from t are filled with nulls.
func (t *Table) ReindexRows(labels ...any) (*Table, error) {
	rowLabels, err := value.FromSlice(labels)
	if err != nil {
		return nil, fmt.Errorf("row labels: %w", err)
	}
	return t.reindexRows(rowLabels)
}

func (t *Table) reindexRows(rowLabels []value.Value) (*Table, error) {
	cols := t.ColumnValues()
	lines := make([][]value.Value, cols.Len())
	for i := range lines {
		aligned, err := cols.ValueAt(i).ReindexValues(rowLabels)
		if err != nil {
			return nil, err
		}
		lines[i] = aligned.Values()
	}
	return t.derive(rowLabels, t.ColumnLabels(), Columns, lines)
}
