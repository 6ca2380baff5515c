package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/tabula"
	"github.com/hupe1980/tabula/value"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Compute normalization constant (harmonic number with exponent s)
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Sample from uniform and use inverse transform
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// Present returns n flags; each is false with probability missingRate.
func (r *RNG) Present(n int, missingRate float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	present := make([]bool, n)
	for i := range n {
		present[i] = r.rand.Float64() >= missingRate
	}

	return present
}

// Value returns a random non-null scalar of the given kind.
func (r *RNG) Value(kind value.Kind) value.Value {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch kind {
	case value.KindInt:
		return value.Int(int64(r.rand.Intn(100)))
	case value.KindFloat:
		return value.Float(math.Round(r.rand.Float64()*1000) / 10)
	case value.KindString:
		return value.String(fmt.Sprintf("s%d", r.zipfLocked(8, 1.2)))
	case value.KindBool:
		return value.Bool(r.rand.Intn(2) == 1)
	default:
		return value.Null()
	}
}

// TableSpec tunes Table.
type TableSpec struct {
	// NullRate is the probability that a non-id cell is null.
	NullRate float64
	// Shuffle randomizes the order of the id column.
	Shuffle bool
}

var columnKinds = []value.Kind{value.KindInt, value.KindFloat, value.KindString, value.KindBool}

// Table returns a random table with rows rows and cols columns named
// "c0", "c1", ... Column c0 holds unique integer ids.
func (r *RNG) Table(rows, cols int, spec TableSpec, opts ...tabula.Option) *tabula.Table {
	if cols < 1 {
		cols = 1
	}
	ids := make([]int, rows)
	for i := range ids {
		ids[i] = i
	}
	if spec.Shuffle {
		ids = r.Perm(rows)
	}

	labels := make([]value.Value, cols)
	for c := range labels {
		labels[c] = value.String(fmt.Sprintf("c%d", c))
	}

	data := make([][]value.Value, rows)
	for i := range data {
		present := r.Present(cols, spec.NullRate)
		row := make([]value.Value, cols)
		row[0] = value.Int(int64(ids[i]))
		for c := 1; c < cols; c++ {
			if present[c] {
				row[c] = r.Value(columnKinds[(c-1)%len(columnKinds)])
			}
		}
		data[i] = row
	}

	t, err := tabula.NewFromValues(data, labels, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns the cells of t column by column.
func Columns(t *tabula.Table) [][]value.Value {
	rows := t.ToRows()
	_, m := t.Shape()
	out := make([][]value.Value, m)
	for c := range out {
		out[c] = make([]value.Value, len(rows))
		for r := range rows {
			out[c][r] = rows[r][c]
		}
	}
	return out
}
