// Package tabula provides an immutable, label and position addressable
// two-dimensional table for in-process analysis of small to medium data.
//
// # Quick Start
//
//	t, _ := tabula.New([][]any{
//	    {1, "a"},
//	    {2, "b"},
//	    {3, "c"},
//	}, []any{"id", "label"})
//
//	ids, _ := t.Column("id")                                 // column series (1, 2, 3)
//	cell, _ := t.Loc(tabula.Label(1), tabula.Label("label")) // value "b"
//	head := t.Slice(0, 2)                                    // 2-row table
//
// # Addressing
//
// Each axis is addressed with a Selector. Scalar selectors (Label, Key,
// Position) collapse their axis, vector selectors (Labels, Keys, Positions,
// Range, All) keep it, so Loc returns a Table, a Series or a single value:
//
//	rows    cols    result
//	vector  vector  Table
//	vector  scalar  Series
//	scalar  vector  Series
//	scalar  scalar  Value
//
// Label and Labels try labels first and fall back to integer positions;
// Key/Keys and Position/Positions are the explicit forms.
//
// # Storage
//
// A table keeps either its rows or its columns. The other form is built by
// transposition the first time it is needed and kept for the lifetime of the
// table, so repeated row or column access is cheap. Nothing is ever modified
// in place: Set fails with ErrImmutable and every operation returns a new
// table.
//
// # Operations
//
//   - Alignment: Reindex, ReindexRows
//   - Join: Merge (sort-merge join; inner, left, right, outer)
//   - Reshape: Melt, Pivot (pluggable aggregation from package aggregate)
//   - Stacking: Concat, HStack
//   - Filtering: Where, WhereEq, Mask, Filter
//   - Ordering: SortValues (stable, composite keys)
//   - Interchange: Encode, Decode and package arrowio
package tabula
