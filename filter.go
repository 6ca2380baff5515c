package tabula

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tabula/internal/conv"
	"github.com/hupe1980/tabula/value"
)

// Condition is a predicate on one column.
type Condition struct {
	Column any
	Filter value.Filter

	err error
}

// Cond builds a Condition comparing column against v with op. A v that
// value.FromAny cannot convert makes Mask and Where fail.
func Cond(column any, op value.Operator, v any) Condition {
	val, err := value.FromAny(v)
	return Condition{Column: column, Filter: value.Filter{Operator: op, Value: val}, err: err}
}

// Mask returns the row positions matching c.
func (t *Table) Mask(c Condition) (*roaring.Bitmap, error) {
	if c.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelector, c.err)
	}
	if !c.Filter.Operator.Valid() {
		return nil, fmt.Errorf("%w: operator %q", ErrInvalidSelector, c.Filter.Operator)
	}
	col, err := t.Column(c.Column)
	if err != nil {
		return nil, err
	}
	return col.Mask(c.Filter.Matches), nil
}

// Filter keeps the rows whose positions are set in mask, in their original
// order and with their labels.
func (t *Table) Filter(mask *roaring.Bitmap) *Table {
	positions := make([]int, 0, mask.GetCardinality())
	for _, bit := range mask.ToArray() {
		p, err := conv.Uint32ToInt(bit)
		if err != nil || p >= t.Len() {
			break
		}
		positions = append(positions, p)
	}
	// Positions are unique, so the row labels stay unique.
	out, _ := t.takeRows(positions)
	return out
}

// Where keeps the rows matching every condition.
func (t *Table) Where(conds ...Condition) (*Table, error) {
	masks := make([]*roaring.Bitmap, 0, len(conds))
	for _, c := range conds {
		m, err := t.Mask(c)
		if err != nil {
			return nil, err
		}
		masks = append(masks, m)
	}
	if len(masks) == 0 {
		return t, nil
	}
	return t.Filter(roaring.FastAnd(masks...)), nil
}

// WhereEq keeps the rows whose column equals v.
func (t *Table) WhereEq(column any, v any) (*Table, error) {
	lit, err := value.FromAny(v)
	if err != nil {
		return nil, err
	}
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	labels := col.WhereEq(lit)
	positions, err := t.rowIndex.KeyPositions(valuesToAny(labels)...)
	if err != nil {
		return nil, err
	}
	return t.takeRows(positions)
}

func valuesToAny(vs []value.Value) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
