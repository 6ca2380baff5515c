package sequence

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tabula/internal/conv"
	"github.com/hupe1980/tabula/value"
)

func normalizeIndex(pos, n int) (int, bool) {
	if pos < 0 {
		pos += n
	}
	if pos < 0 || pos >= n {
		return 0, false
	}
	return pos, true
}

// SliceIndices clamps start and stop to a sequence of length n the way
// half-open slices with negative offsets usually behave, and returns the
// selected positions.
func SliceIndices(start, stop, step, n int) ([]int, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: step cannot be zero", ErrInvalidSlice)
	}

	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	clamp := func(i int) int {
		if i < 0 {
			i += n
			if i < lower {
				i = lower
			}
		} else if i > upper {
			i = upper
		}
		return i
	}
	start, stop = clamp(start), clamp(stop)

	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out, nil
}

// Slice returns the values at positions [start, stop). Negative bounds
// count from the end and out-of-range bounds are clamped.
func (s *Sequence[T]) Slice(start, stop int) *Sequence[T] {
	positions, _ := SliceIndices(start, stop, 1, len(s.values))
	return s.pick(positions)
}

// SliceStep is Slice with a stride. A negative step walks backwards.
func (s *Sequence[T]) SliceStep(start, stop, step int) (*Sequence[T], error) {
	positions, err := SliceIndices(start, stop, step, len(s.values))
	if err != nil {
		return nil, err
	}
	return s.pick(positions), nil
}

// Head returns the first k values.
func (s *Sequence[T]) Head(k int) *Sequence[T] { return s.Slice(0, max(k, 0)) }

// Tail returns the last k values.
func (s *Sequence[T]) Tail(k int) *Sequence[T] {
	return s.Slice(max(len(s.values)-max(k, 0), 0), len(s.values))
}

func (s *Sequence[T]) pick(positions []int) *Sequence[T] {
	values := make([]T, len(positions))
	keys := make([]value.Value, len(positions))
	for i, p := range positions {
		values[i] = s.values[p]
		keys[i] = s.keys[p]
	}
	return build(values, keys, s.name)
}

// ByKeys selects values by key, in the given order.
func (s *Sequence[T]) ByKeys(keys ...any) (*Sequence[T], error) {
	positions, err := s.KeyPositions(keys...)
	if err != nil {
		return nil, err
	}
	return s.pick(positions), nil
}

// ByPositions selects values by position, in the given order. Negative
// positions count from the end.
func (s *Sequence[T]) ByPositions(positions ...int) (*Sequence[T], error) {
	resolved, err := s.NormalizePositions(positions...)
	if err != nil {
		return nil, err
	}
	return s.pick(resolved), nil
}

// KeyPositions maps keys to positions.
func (s *Sequence[T]) KeyPositions(keys ...any) ([]int, error) {
	positions := make([]int, len(keys))
	for i, key := range keys {
		k, err := value.FromAny(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrKeyNotFound, err)
		}
		p, ok := s.positionOf(k)
		if !ok {
			return nil, &KeyError{Key: k}
		}
		positions[i] = p
	}
	return positions, nil
}

// NormalizePositions resolves negative positions and checks bounds.
func (s *Sequence[T]) NormalizePositions(positions ...int) ([]int, error) {
	resolved := make([]int, len(positions))
	for i, pos := range positions {
		p, ok := normalizeIndex(pos, len(s.values))
		if !ok {
			return nil, &KeyError{Key: value.Int(int64(pos)), Position: true}
		}
		resolved[i] = p
	}
	return resolved, nil
}

// Take selects values by a list that may hold keys or positions.
//
// If every item is a key the items are looked up as keys. Otherwise, if every
// item is an integer that is not a key, the items are positions. See Resolve.
func (s *Sequence[T]) Take(items ...any) (*Sequence[T], error) {
	positions, err := s.Resolve(items...)
	if err != nil {
		return nil, err
	}
	return s.pick(positions), nil
}

// Resolve maps a list of keys or positions to positions.
//
// Keys win when all items are keys; positions are used when all items are
// integers and none is a key. An item that is neither a key nor an integer
// yields a KeyError. A list mixing keys and positions yields
// ErrAmbiguousIndex.
func (s *Sequence[T]) Resolve(items ...any) ([]int, error) {
	vals, err := value.FromSlice(items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyNotFound, err)
	}

	positions := make([]int, len(vals))
	keyed, positional := 0, 0
	for i, v := range vals {
		if p, ok := s.positionOf(v); ok {
			positions[i] = p
			keyed++
			continue
		}
		if v.Kind != value.KindInt {
			return nil, &KeyError{Key: v}
		}
		positional++
	}

	switch {
	case positional == 0:
		return positions, nil
	case keyed > 0:
		return nil, fmt.Errorf("%w: %d keys mixed with %d positions", ErrAmbiguousIndex, keyed, positional)
	}

	for i, v := range vals {
		p, err := s.positionFromInt(v.I64)
		if err != nil {
			return nil, err
		}
		positions[i] = p
	}
	return positions, nil
}

// ResolveOne maps a single key or position to a position. The key is tried
// first; an integer that is not a key is used as a position.
func (s *Sequence[T]) ResolveOne(item any) (int, error) {
	v, err := value.FromAny(item)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrKeyNotFound, err)
	}
	if p, ok := s.positionOf(v); ok {
		return p, nil
	}
	if v.Kind != value.KindInt {
		return 0, &KeyError{Key: v}
	}
	return s.positionFromInt(v.I64)
}

func (s *Sequence[T]) positionFromInt(i int64) (int, error) {
	pos, err := conv.Int64ToInt(i)
	if err != nil {
		return 0, &KeyError{Key: value.Int(i), Position: true}
	}
	p, ok := normalizeIndex(pos, len(s.values))
	if !ok {
		return 0, &KeyError{Key: value.Int(i), Position: true}
	}
	return p, nil
}

// Reindex returns a sequence with exactly the given keys. Values are looked
// up by key; missing keys are filled with the zero element, which is null
// for value.Value.
//
// It fails with ErrReindexUnsupported for element types without a scalar
// null or when any element is not a scalar.
func (s *Sequence[T]) Reindex(keys ...any) (*Sequence[T], error) {
	vals, err := value.FromSlice(keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyNotFound, err)
	}
	return s.ReindexValues(vals)
}

// ReindexValues is Reindex with keys that are already Values.
func (s *Sequence[T]) ReindexValues(keys []value.Value) (*Sequence[T], error) {
	var fill T
	if !fill.Scalar() {
		return nil, fmt.Errorf("%w: element type has no null fill", ErrReindexUnsupported)
	}
	for i, v := range s.values {
		if !v.Scalar() {
			return nil, fmt.Errorf("%w: value at position %d is not a scalar", ErrReindexUnsupported, i)
		}
	}

	values := make([]T, len(keys))
	for i, k := range keys {
		if p, ok := s.positionOf(k); ok {
			values[i] = s.values[p]
		} else {
			values[i] = fill
		}
	}
	out, err := New(values, WithKeyValues(keys))
	if err != nil {
		return nil, err
	}
	out.name = s.name
	return out, nil
}

// Where returns the keys whose value satisfies pred, in order.
func (s *Sequence[T]) Where(pred func(T) bool) []value.Value {
	var keys []value.Value
	for i, v := range s.values {
		if pred(v) {
			keys = append(keys, s.keys[i])
		}
	}
	return keys
}

// WhereEq returns the keys whose value equals lit.
func (s *Sequence[T]) WhereEq(lit T) []value.Value {
	return s.Where(lit.Equal)
}

// Mask returns the positions whose value satisfies pred.
func (s *Sequence[T]) Mask(pred func(T) bool) *roaring.Bitmap {
	bm := roaring.New()
	for i, v := range s.values {
		if pred(v) {
			// Length is bounded by New.
			bm.Add(uint32(i)) //nolint:gosec
		}
	}
	return bm
}

// Filter keeps the positions set in mask. Positions outside the sequence
// are ignored.
func (s *Sequence[T]) Filter(mask *roaring.Bitmap) *Sequence[T] {
	positions := make([]int, 0, mask.GetCardinality())
	it := mask.Iterator()
	for it.HasNext() {
		p, err := conv.Uint32ToInt(it.Next())
		if err != nil || p >= len(s.values) {
			break
		}
		positions = append(positions, p)
	}
	return s.pick(positions)
}

// Nulls returns a Bool series telling which values are null.
func (s *Sequence[T]) Nulls() *Series {
	values := make([]value.Value, len(s.values))
	for i, v := range s.values {
		values[i] = value.Bool(v.IsNull())
	}
	return build(values, s.keys, s.name)
}

// FillNull returns a copy of s where null values are replaced by v.
func (s *Sequence[T]) FillNull(v T) *Sequence[T] {
	return s.Map(func(x T) T {
		if x.IsNull() {
			return v
		}
		return x
	})
}
