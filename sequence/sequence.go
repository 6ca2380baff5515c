package sequence

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/hupe1980/tabula/internal/conv"
	"github.com/hupe1980/tabula/value"
)

// Element is the behaviour a sequence needs from its elements.
//
// value.Value and *Sequence[value.Value] both implement it, which lets a
// table store its columns (or rows) as a sequence of sequences.
type Element[T any] interface {
	// Equal reports value equality.
	Equal(T) bool
	// Key returns a canonical string used for deduplication.
	Key() string
	// IsNull reports whether the element is missing.
	IsNull() bool
	// Scalar reports whether the element may be replaced by a null fill.
	Scalar() bool
}

// Series is a sequence of scalar cells: a table column or row.
type Series = Sequence[value.Value]

// Item is a key/value pair.
type Item[T any] struct {
	Key   value.Value
	Value T
}

// Sequence is an immutable ordered sequence addressable by position and by key.
//
// Keys default to positions 0..n-1 and are unique. Every transformation
// returns a new Sequence; derived views (key index, items, unique values)
// are computed once on first use.
type Sequence[T Element[T]] struct {
	values []T
	keys   []value.Value
	name   value.Value

	indexOnce sync.Once
	index     map[uint64][]int

	itemsOnce sync.Once
	items     []Item[T]

	uniqueOnce sync.Once
	unique     []T
}

type config struct {
	keys    []value.Value
	hasKeys bool
	name    value.Value
	err     error
}

// Option configures New.
type Option func(*config)

// WithKeys sets explicit keys. Each key is converted with value.FromAny.
func WithKeys(keys ...any) Option {
	return func(c *config) {
		vals, err := value.FromSlice(keys)
		if err != nil {
			c.err = fmt.Errorf("keys: %w", err)
			return
		}
		c.keys = vals
		c.hasKeys = true
	}
}

// WithKeyValues sets explicit keys that are already Values.
func WithKeyValues(keys []value.Value) Option {
	return func(c *config) {
		c.keys = slices.Clone(keys)
		c.hasKeys = true
	}
}

// WithName sets the sequence name.
func WithName(name any) Option {
	return func(c *config) {
		v, err := value.FromAny(name)
		if err != nil {
			c.err = fmt.Errorf("name: %w", err)
			return
		}
		c.name = v
	}
}

// New creates a sequence of values.
//
// It returns a ShapeError when the number of keys differs from the number of
// values and a DuplicateError when a key repeats. Keys or a name that
// value.FromAny cannot convert make it fail.
func New[T Element[T]](values []T, opts ...Option) (*Sequence[T], error) {
	var c config
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}
	if c.err != nil {
		return nil, c.err
	}

	if _, err := conv.IntToUint32(len(values)); err != nil {
		return nil, &ShapeError{What: "sequence length", Expected: int(^uint32(0)), Actual: len(values)}
	}

	keys := c.keys
	if !c.hasKeys {
		keys = Positions(len(values))
	} else if len(keys) != len(values) {
		return nil, &ShapeError{What: "keys", Expected: len(values), Actual: len(keys)}
	}

	s := build(slices.Clone(values), keys, c.name)
	if err := s.checkUnique(); err != nil {
		return nil, err
	}
	return s, nil
}

// Must is like New but panics on error.
func Must[T Element[T]](values []T, opts ...Option) *Sequence[T] {
	s, err := New(values, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Of builds a Series from plain Go values.
func Of(values []any, opts ...Option) (*Series, error) {
	vs, err := value.FromSlice(values)
	if err != nil {
		return nil, err
	}
	return New(vs, opts...)
}

// Labels builds a Series whose keys equal its values. Tables use it for
// their row and column indexes.
func Labels(labels []value.Value) (*Series, error) {
	return New(labels, WithKeyValues(labels))
}

// Aligned builds a sequence keyed by the labels of index, which must come
// from Labels. The key slice and its lookup index are shared with index and
// values is used without copying.
func Aligned[T Element[T]](values []T, index *Series, name value.Value) (*Sequence[T], error) {
	if len(values) != index.Len() {
		return nil, &ShapeError{What: "aligned values", Expected: index.Len(), Actual: len(values)}
	}
	s := build(values, index.keys, name)
	s.index = index.keyIndex()
	s.indexOnce.Do(func() {})
	return s, nil
}

// Positions returns the default keys 0..n-1.
func Positions(n int) []value.Value {
	keys := make([]value.Value, n)
	for i := range keys {
		keys[i] = value.Int(int64(i))
	}
	return keys
}

// build wraps already-owned slices without validation.
func build[T Element[T]](values []T, keys []value.Value, name value.Value) *Sequence[T] {
	return &Sequence[T]{values: values, keys: keys, name: name}
}

func (s *Sequence[T]) checkUnique() error {
	idx := s.keyIndex()
	for _, bucket := range idx {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				if s.keys[bucket[i]].Equal(s.keys[bucket[j]]) {
					return &DuplicateError{Key: s.keys[bucket[j]]}
				}
			}
		}
	}
	return nil
}

func (s *Sequence[T]) keyIndex() map[uint64][]int {
	s.indexOnce.Do(func() {
		idx := make(map[uint64][]int, len(s.keys))
		for i, k := range s.keys {
			h := k.Hash()
			idx[h] = append(idx[h], i)
		}
		s.index = idx
	})
	return s.index
}

// Len returns the number of values.
func (s *Sequence[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Name returns the sequence name (null when unnamed).
func (s *Sequence[T]) Name() value.Value { return s.name }

// Rename returns a copy of s with a new name. It panics on names that
// value.FromAny cannot convert.
func (s *Sequence[T]) Rename(name any) *Sequence[T] {
	return build(s.values, s.keys, value.MustFromAny(name))
}

// Values returns a copy of the values.
func (s *Sequence[T]) Values() []T { return slices.Clone(s.values) }

// Keys returns a copy of the keys.
func (s *Sequence[T]) Keys() []value.Value { return slices.Clone(s.keys) }

// KeyAt returns the key at position i without bounds normalisation.
func (s *Sequence[T]) KeyAt(i int) value.Value { return s.keys[i] }

// ValueAt returns the value at position i without bounds normalisation.
func (s *Sequence[T]) ValueAt(i int) T { return s.values[i] }

// All iterates over key/value pairs in order.
func (s *Sequence[T]) All() iter.Seq2[value.Value, T] {
	return func(yield func(value.Value, T) bool) {
		for i := range s.values {
			if !yield(s.keys[i], s.values[i]) {
				return
			}
		}
	}
}

// Items returns the key/value pairs.
func (s *Sequence[T]) Items() []Item[T] {
	s.itemsOnce.Do(func() {
		items := make([]Item[T], len(s.values))
		for i := range s.values {
			items[i] = Item[T]{Key: s.keys[i], Value: s.values[i]}
		}
		s.items = items
	})
	return slices.Clone(s.items)
}

// Unique returns the distinct values in order of first appearance.
func (s *Sequence[T]) Unique() []T {
	s.uniqueOnce.Do(func() {
		seen := make(map[string]struct{}, len(s.values))
		out := make([]T, 0, len(s.values))
		for _, v := range s.values {
			k := v.Key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, v)
		}
		s.unique = out
	})
	return slices.Clone(s.unique)
}

// Contains reports whether v is one of the values.
func (s *Sequence[T]) Contains(v T) bool {
	return slices.ContainsFunc(s.values, v.Equal)
}

// Position returns the position of key.
func (s *Sequence[T]) Position(key any) (int, bool) {
	k, err := value.FromAny(key)
	if err != nil {
		return 0, false
	}
	return s.positionOf(k)
}

func (s *Sequence[T]) positionOf(k value.Value) (int, bool) {
	for _, i := range s.keyIndex()[k.Hash()] {
		if s.keys[i].Equal(k) {
			return i, true
		}
	}
	return 0, false
}

// Has reports whether key is present.
func (s *Sequence[T]) Has(key any) bool {
	_, ok := s.Position(key)
	return ok
}

// Get returns the value stored under key.
func (s *Sequence[T]) Get(key any) (T, error) {
	var zero T
	k, err := value.FromAny(key)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrKeyNotFound, err)
	}
	i, ok := s.positionOf(k)
	if !ok {
		return zero, &KeyError{Key: k}
	}
	return s.values[i], nil
}

// GetOr returns the value stored under key, or def when key is absent.
func (s *Sequence[T]) GetOr(key any, def T) T {
	v, err := s.Get(key)
	if err != nil {
		return def
	}
	return v
}

// At returns the value at position pos. Negative positions count from the end.
func (s *Sequence[T]) At(pos int) (T, error) {
	var zero T
	i, ok := normalizeIndex(pos, len(s.values))
	if !ok {
		return zero, &KeyError{Key: value.Int(int64(pos)), Position: true}
	}
	return s.values[i], nil
}

// Equal reports whether s and other hold equal value tuples.
// Keys and names are not compared.
func (s *Sequence[T]) Equal(other *Sequence[T]) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.values) != len(other.values) {
		return false
	}
	for i := range s.values {
		if !s.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// EqualValues reports whether s holds exactly vs.
func (s *Sequence[T]) EqualValues(vs ...T) bool {
	if len(s.values) != len(vs) {
		return false
	}
	for i := range vs {
		if !s.values[i].Equal(vs[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonical string for the value tuple.
func (s *Sequence[T]) Key() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = v.Key()
	}
	return "q:" + strings.Join(parts, "\x1e")
}

// IsNull reports whether s is nil.
func (s *Sequence[T]) IsNull() bool { return s == nil }

// Scalar is always false: sequences cannot be null-filled.
func (s *Sequence[T]) Scalar() bool { return false }

// Set always fails: sequences are immutable. Use With to derive a copy.
func (s *Sequence[T]) Set(key any, _ T) error {
	k, err := value.FromAny(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImmutable, err)
	}
	return &MutationError{Key: k}
}

// With returns a copy of s where the value under key is replaced by v.
func (s *Sequence[T]) With(key any, v T) (*Sequence[T], error) {
	k, err := value.FromAny(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyNotFound, err)
	}
	i, ok := s.positionOf(k)
	if !ok {
		return nil, &KeyError{Key: k}
	}
	values := slices.Clone(s.values)
	values[i] = v
	return build(values, s.keys, s.name), nil
}

// Map returns a new sequence with fn applied to every value.
func (s *Sequence[T]) Map(fn func(T) T) *Sequence[T] {
	values := make([]T, len(s.values))
	for i, v := range s.values {
		values[i] = fn(v)
	}
	return build(values, s.keys, s.name)
}

// String prints a short sample of the contents.
func (s *Sequence[T]) String() string {
	const sample = 5
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(s.name.String())
	b.WriteString(": (")
	for i, v := range s.values {
		if i == sample {
			b.WriteString(", ...")
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, v)
	}
	b.WriteString(")>")
	return b.String()
}
