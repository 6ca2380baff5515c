package tabula

import (
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tabula/aggregate"
	"github.com/hupe1980/tabula/value"
)

// Melt turns t into long format.
//
// For every row and every column not listed in idVars it emits one row
// holding the id values, the column label and the cell value. The result
// has Len()*(columns-len(idVars)) rows, fresh row labels and the columns
// idVars..., "variable", "value" (see WithVarName and WithValueName).
func (t *Table) Melt(idVars []any, opts ...Option) (*Table, error) {
	o := t.options(opts)
	start := time.Now()

	out, err := t.melt(idVars, o)

	rows := 0
	if out != nil {
		rows = out.Len()
	}
	o.metricsCollector.RecordReshape("melt", rows, time.Since(start), err)
	o.logger.WithOp("melt").WithTable(t.Shape()).LogReshape("melt", rows, err)
	return out, err
}

func (t *Table) melt(idVars []any, o options) (*Table, error) {
	if o.err != nil {
		return nil, o.err
	}
	idPos, err := t.colIndex.KeyPositions(idVars...)
	if err != nil {
		return nil, fmt.Errorf("id vars: %w", err)
	}
	isID := make(map[int]bool, len(idPos))
	for _, p := range idPos {
		isID[p] = true
	}

	var valuePos []int
	for c := 0; c < t.colIndex.Len(); c++ {
		if !isID[c] {
			valuePos = append(valuePos, c)
		}
	}

	columns := append(pickLabels(t.colIndex, idPos), o.varName, o.valueName)
	rows := make([][]value.Value, 0, t.Len()*len(valuePos))
	for r := 0; r < t.Len(); r++ {
		for _, c := range valuePos {
			row := make([]value.Value, 0, len(columns))
			for _, id := range idPos {
				row = append(row, t.cell(r, id))
			}
			row = append(row, t.colIndex.KeyAt(c), t.cell(r, c))
			rows = append(rows, row)
		}
	}

	o.rowLabels, o.hasRowLabels = nil, false
	return fromLines(rows, columns, Rows, o)
}

// Pivot turns t into wide format.
//
// The result has one row per distinct value of the index column, labelled
// by that value, and after the index column itself one column per
// distinct value of the columns column. Distinct values keep the order in
// which they first appear. Each cell aggregates the values column over the
// rows matching its row and column value with the function set by
// WithAggregator (aggregate.Mean by default). Nulls are dropped before
// aggregation and a cell without values is null.
func (t *Table) Pivot(index, columns, values any, opts ...Option) (*Table, error) {
	o := t.options(opts)
	start := time.Now()

	out, err := t.pivot(index, columns, values, o)

	rows := 0
	if out != nil {
		rows = out.Len()
	}
	o.metricsCollector.RecordReshape("pivot", rows, time.Since(start), err)
	o.logger.WithOp("pivot").WithTable(t.Shape()).LogReshape("pivot", rows, err)
	return out, err
}

func (t *Table) pivot(index, columns, values any, o options) (*Table, error) {
	if o.err != nil {
		return nil, o.err
	}
	idxCol, err := t.Column(index)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	colCol, err := t.Column(columns)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	valCol, err := t.Column(values)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}

	rowKeys := idxCol.Unique()
	colKeys := colCol.Unique()
	rowMasks := masks(idxCol, rowKeys)
	colMasks := masks(colCol, colKeys)

	labels := append([]value.Value{idxCol.Name()}, colKeys...)
	rows := make([][]value.Value, len(rowKeys))
	for i, rk := range rowKeys {
		row := make([]value.Value, 0, len(labels))
		row = append(row, rk)
		for j := range colKeys {
			cell := roaring.And(rowMasks[i], colMasks[j])
			agg, err := aggregate.Apply(o.aggregator, valCol.Filter(cell).Values())
			if err != nil {
				return nil, fmt.Errorf("cell (%s, %s): %w", rk, colKeys[j], err)
			}
			row = append(row, agg)
		}
		rows[i] = row
	}

	o.rowLabels, o.hasRowLabels = rowKeys, true
	return fromLines(rows, labels, Rows, o)
}

// masks returns, for each key, the positions of s holding that key.
func masks(s *Series, keys []value.Value) []*roaring.Bitmap {
	byKey := make(map[string]int, len(keys))
	out := make([]*roaring.Bitmap, len(keys))
	for i, k := range keys {
		byKey[k.Key()] = i
		out[i] = roaring.New()
	}
	for p, v := range s.Values() {
		// Length is bounded by sequence construction.
		out[byKey[v.Key()]].Add(uint32(p)) //nolint:gosec
	}
	return out
}
