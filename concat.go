package tabula

import (
	"fmt"
	"time"

	"github.com/hupe1980/tabula/value"
)

// Concat stacks tables vertically.
//
// The result has the union of all column labels in order of first
// appearance; each table is reindexed onto it, so missing columns are
// null. Rows keep their order and get fresh labels 0..n-1. The logger and
// metrics collector of the first table are used.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return New(nil, nil)
	}
	for i, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("%w: table %d is nil", ErrInvalidSelector, i)
		}
	}
	o := tables[0].options(nil)
	start := time.Now()

	out, err := concat(tables, o)

	rows := 0
	if out != nil {
		rows = out.Len()
	}
	o.metricsCollector.RecordReshape("concat", rows, time.Since(start), err)
	o.logger.WithOp("concat").WithTable(tables[0].Shape()).LogReshape("concat", rows, err)
	return out, err
}

func concat(tables []*Table, o options) (*Table, error) {
	var labels []value.Value
	seen := make(map[string]struct{})
	for _, t := range tables {
		for _, l := range t.colIndex.Values() {
			if _, ok := seen[l.Key()]; ok {
				continue
			}
			seen[l.Key()] = struct{}{}
			labels = append(labels, l)
		}
	}

	var rows [][]value.Value
	for i, t := range tables {
		aligned, err := t.reindexColumns(labels)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		rows = append(rows, aligned.ToRows()...)
	}
	return fromLines(rows, labels, Rows, o)
}

// HStack stacks tables and series horizontally.
//
// parts holds *Table and *Series values. The result has the union of all
// row labels in order of first appearance and every column aligned to it,
// with nulls where a part has no such row. A column whose label was already
// taken by an earlier part is skipped. A series is labelled by its name.
func HStack(parts ...any) (*Table, error) {
	var (
		rowLabels []value.Value
		colLabels []value.Value
		columns   []*Series
	)
	seenRows := make(map[string]struct{})
	seenCols := make(map[string]struct{})

	addRows := func(labels []value.Value) {
		for _, l := range labels {
			if _, ok := seenRows[l.Key()]; !ok {
				seenRows[l.Key()] = struct{}{}
				rowLabels = append(rowLabels, l)
			}
		}
	}
	addCol := func(label value.Value, s *Series) {
		if _, ok := seenCols[label.Key()]; ok {
			return
		}
		seenCols[label.Key()] = struct{}{}
		colLabels = append(colLabels, label)
		columns = append(columns, s)
	}

	o := applyOptions(nil)
	for i, p := range parts {
		switch part := p.(type) {
		case *Table:
			if part == nil {
				return nil, fmt.Errorf("%w: part %d is nil", ErrInvalidSelector, i)
			}
			if i == 0 {
				o = part.options(nil)
			}
			addRows(part.rowIndex.Values())
			cols := part.ColumnValues()
			for c := 0; c < cols.Len(); c++ {
				addCol(part.colIndex.KeyAt(c), cols.ValueAt(c))
			}
		case *Series:
			if part == nil {
				return nil, fmt.Errorf("%w: part %d is nil", ErrInvalidSelector, i)
			}
			addRows(part.Keys())
			addCol(part.Name(), part)
		default:
			return nil, fmt.Errorf("%w: part %d has type %T", ErrInvalidSelector, i, p)
		}
	}

	lines := make([][]value.Value, len(columns))
	for i, c := range columns {
		aligned, err := c.ReindexValues(rowLabels)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", colLabels[i], err)
		}
		lines[i] = aligned.Values()
	}

	o.rowLabels, o.hasRowLabels = rowLabels, true
	return fromLines(lines, colLabels, Columns, o)
}
