package tabula

import (
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/tabula/value"
)

// How is a join type.
type How string

const (
	// Inner keeps keys present on both sides.
	Inner How = "inner"
	// Left keeps every key of the left table.
	Left How = "left"
	// Right keeps every key of the right table.
	Right How = "right"
	// Outer keeps every key of either table.
	Outer How = "outer"
)

// Valid reports whether h is a known join type.
func (h How) Valid() bool {
	switch h {
	case Inner, Left, Right, Outer:
		return true
	default:
		return false
	}
}

func (h How) keepsLeft() bool  { return h == Left || h == Outer }
func (h How) keepsRight() bool { return h == Right || h == Outer }

// Merge joins left and right on one key column with a sort-merge join.
//
// The key is given with On, or with LeftOn and RightOn when the names
// differ. The result holds the key column (both key columns when the names
// differ) followed by the remaining left and right columns; a non-key name
// that also occurs on the other side gets the suffix set with WithSuffixes.
// Rows are labelled by their key value and ordered by it.
//
// Join keys must be unique on each side: a repeated key value fails with
// ErrInvalidJoinSpec rather than producing a partial many-to-many join.
// Null keys compare equal to each other and sort last.
func Merge(left, right *Table, opts ...Option) (*Table, error) {
	if left == nil || right == nil {
		return nil, joinSpecErrorf(nil, "nil table")
	}
	o := left.options(opts)
	start := time.Now()

	out, err := merge(left, right, o)

	rows := 0
	if out != nil {
		rows = out.Len()
	}
	o.metricsCollector.RecordMerge(o.how, rows, time.Since(start), err)
	o.logger.WithOp("merge").LogMerge(o.how, left.Len(), right.Len(), rows, err)
	return out, err
}

type joinSide struct {
	table   *Table
	key     *Series
	others  []int
	ordered []int
}

func newJoinSide(t *Table, on value.Value, name string) (*joinSide, error) {
	p, ok := t.colIndex.Position(on)
	if !ok {
		return nil, joinSpecErrorf(nil, "%s not found in columns of %s", on, name)
	}
	side := &joinSide{table: t, key: t.ColumnValues().ValueAt(p)}

	for c := 0; c < t.colIndex.Len(); c++ {
		if c != p {
			side.others = append(side.others, c)
		}
	}

	seen := make(map[string]struct{}, side.key.Len())
	for _, v := range side.key.Values() {
		k := v.Key()
		if _, dup := seen[k]; dup {
			return nil, joinSpecErrorf(nil, "join key %s repeats in %s: keys must be unique per side", v, name)
		}
		seen[k] = struct{}{}
	}

	side.ordered = allPositions(t.Len())
	slices.SortStableFunc(side.ordered, func(a, b int) int {
		return value.Compare(side.key.ValueAt(a), side.key.ValueAt(b))
	})
	return side, nil
}

func (s *joinSide) keyAt(i int) value.Value { return s.key.ValueAt(s.ordered[i]) }

func (s *joinSide) appendOthers(dst []value.Value, i int) []value.Value {
	if i < 0 {
		return append(dst, make([]value.Value, len(s.others))...)
	}
	r := s.ordered[i]
	for _, c := range s.others {
		dst = append(dst, s.table.cell(r, c))
	}
	return dst
}

func merge(left, right *Table, o options) (*Table, error) {
	if o.err != nil {
		return nil, o.err
	}
	if !o.how.Valid() {
		return nil, joinSpecErrorf(nil, "how should be one of inner, left, right or outer, got %q", o.how)
	}

	var leftOn, rightOn value.Value
	switch {
	case o.hasOn:
		leftOn, rightOn = o.on, o.on
	case o.hasLeftOn && o.hasRightOn:
		leftOn, rightOn = o.leftOn, o.rightOn
	default:
		return nil, joinSpecErrorf(nil, "either On or both LeftOn and RightOn are required")
	}

	l, err := newJoinSide(left, leftOn, "left")
	if err != nil {
		return nil, err
	}
	r, err := newJoinSide(right, rightOn, "right")
	if err != nil {
		return nil, err
	}

	sameKey := leftOn.Equal(rightOn)
	columns := []value.Value{leftOn}
	if !sameKey {
		columns = append(columns, rightOn)
	}
	columns = append(columns, suffixed(left, l.others, right, o.suffixes[0])...)
	columns = append(columns, suffixed(right, r.others, left, o.suffixes[1])...)

	var (
		rows   [][]value.Value
		labels []value.Value
	)
	emit := func(li, ri int) {
		var key value.Value
		if li >= 0 {
			key = l.keyAt(li)
		} else {
			key = r.keyAt(ri)
		}
		row := make([]value.Value, 0, len(columns))
		if sameKey {
			row = append(row, key)
		} else {
			row = append(row, keyOrNull(l, li), keyOrNull(r, ri))
		}
		row = l.appendOthers(row, li)
		row = r.appendOthers(row, ri)
		rows = append(rows, row)
		labels = append(labels, key)
	}

	i, j := 0, 0
	for i < len(l.ordered) && j < len(r.ordered) {
		switch c := value.Compare(l.keyAt(i), r.keyAt(j)); {
		case c == 0:
			emit(i, j)
			i++
			j++
		case c < 0:
			if o.how.keepsLeft() {
				emit(i, -1)
			}
			i++
		default:
			if o.how.keepsRight() {
				emit(-1, j)
			}
			j++
		}
	}
	for ; i < len(l.ordered) && o.how.keepsLeft(); i++ {
		emit(i, -1)
	}
	for ; j < len(r.ordered) && o.how.keepsRight(); j++ {
		emit(-1, j)
	}

	o.rowLabels, o.hasRowLabels = labels, true
	out, err := fromLines(rows, columns, Rows, o)
	if err != nil {
		return nil, fmt.Errorf("merge result: %w", err)
	}
	return out, nil
}

func keyOrNull(s *joinSide, i int) value.Value {
	if i < 0 {
		return value.Null()
	}
	return s.keyAt(i)
}

// suffixed returns the labels of the given columns of t, with suffix added
// to every label that also names a column of other.
func suffixed(t *Table, positions []int, other *Table, suffix string) []value.Value {
	out := make([]value.Value, len(positions))
	for i, p := range positions {
		label := t.colIndex.KeyAt(p)
		if _, clash := other.colIndex.Position(label); clash {
			label = value.String(label.String() + suffix)
		}
		out[i] = label
	}
	return out
}
