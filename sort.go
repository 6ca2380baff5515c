package tabula

import (
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/tabula/value"
)

// SortValues returns the rows of t ordered by one or more columns.
//
// by is a column label or position, or a []any / []string of column labels
// for a composite key compared left to right. The sort is stable and row
// labels travel with their rows. Nulls sort last in both directions.
func (t *Table) SortValues(by any, ascending bool, opts ...Option) (*Table, error) {
	o := t.options(opts)
	start := time.Now()

	sorted, keys, err := t.sortValues(by, ascending)

	o.metricsCollector.RecordSort(t.Len(), time.Since(start), err)
	o.logger.WithOp("sort").WithTable(t.Shape()).LogSort(keys, err)
	return sorted, err
}

func (t *Table) sortValues(by any, ascending bool) (*Table, int, error) {
	var items []any
	switch b := by.(type) {
	case []any:
		items = b
	case []string:
		items = make([]any, len(b))
		for i, s := range b {
			items[i] = s
		}
	default:
		items = []any{by}
	}
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("%w: empty sort key", ErrInvalidSelector)
	}

	keyCols := make([]*Series, len(items))
	for i, item := range items {
		c, err := t.Column(item)
		if err != nil {
			return nil, len(items), err
		}
		keyCols[i] = c
	}

	order := allPositions(t.Len())
	slices.SortStableFunc(order, func(a, b int) int {
		for _, col := range keyCols {
			if c := compareDirected(col.ValueAt(a), col.ValueAt(b), ascending); c != 0 {
				return c
			}
		}
		return 0
	})

	out, err := t.takeRows(order)
	return out, len(items), err
}

// compareDirected orders a and b, keeping nulls last when descending.
func compareDirected(a, b value.Value, ascending bool) int {
	if a.IsNull() || b.IsNull() || ascending {
		return value.Compare(a, b)
	}
	return -value.Compare(a, b)
}
