// Package testutil provides testing utilities for tabula.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and generators for random tables that
// property tests run their laws against.
//
// # Random Tables
//
//	rng := testutil.NewRNG(seed)
//	t := rng.Table(20, 4, testutil.TableSpec{NullRate: 0.1})
//
// Column 0 always holds unique integer ids so the table can be joined on it.
// The remaining columns cycle through ints, floats, strings and bools.
//
// # Skewed Keys
//
//	bucket := rng.Zipf(10, 1.5) // a few buckets get most values
package testutil
