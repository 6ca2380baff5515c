package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/tabula/value"
)

func TestTable(t *testing.T) {
	rng := NewRNG(4711)

	tbl := rng.Table(10, 5, TableSpec{NullRate: 0.2, Shuffle: true})

	n, m := tbl.Shape()
	assert.Equal(t, 10, n)
	assert.Equal(t, 5, m)

	ids, err := tbl.Column("c0")
	assert.NoError(t, err)
	assert.Len(t, ids.Unique(), 10)
	for _, v := range ids.Values() {
		assert.Equal(t, value.KindInt, v.Kind)
	}
}

func TestColumns(t *testing.T) {
	rng := NewRNG(4711)
	tbl := rng.Table(3, 2, TableSpec{})

	cols := Columns(tbl)
	assert.Len(t, cols, 2)
	assert.Len(t, cols[0], 3)
	assert.Equal(t, value.Int(2), cols[0][2])
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.Table(5, 3, TableSpec{NullRate: 0.3})

	rng.Reset()
	b := rng.Table(5, 3, TableSpec{NullRate: 0.3})

	assert.True(t, a.Equal(b))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestZipf(t *testing.T) {
	rng := NewRNG(4711)

	counts := make([]int, 10)
	for range 1000 {
		counts[rng.Zipf(10, 1.5)]++
	}

	assert.Greater(t, counts[0], counts[9])
	assert.Equal(t, 0, rng.Zipf(1, 1.5))
}

func TestPresent(t *testing.T) {
	rng := NewRNG(4711)

	assert.NotContains(t, rng.Present(50, 0), false)
	assert.NotContains(t, rng.Present(50, 1), true)
}

func TestValue(t *testing.T) {
	rng := NewRNG(4711)

	for _, k := range columnKinds {
		assert.Equal(t, k, rng.Value(k).Kind)
	}
	assert.True(t, rng.Value(value.KindArray).IsNull())
}
