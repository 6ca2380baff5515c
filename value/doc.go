// Package value provides the scalar model used for table cells and labels.
//
// A Value is a small typed scalar. The zero Value is Null, so freshly
// allocated slices of Values are already null-filled.
//
// # Kinds
//
//   - Null: value.Null()
//   - Int: value.Int(2024)
//   - Float: value.Float(3.14)
//   - String: value.String("tech")
//   - Bool: value.Bool(true)
//   - Time: value.Time(time.Now())
//   - Array: value.Array(value.Int(1), value.Int(2))
//
// Arrays are the only non-scalar kind. They may appear as cell contents but
// cannot be null-filled by reindexing.
//
// # Ordering and equality
//
// Compare defines a total order used for sorting and merging: nulls sort
// after every other value, Int and Float compare numerically, and values of
// unrelated kinds order by kind. Equal(a, b) is Compare(a, b) == 0, and Key
// returns a canonical string that agrees with Equal, which makes Values
// usable as map keys via Key or Hash.
//
// # Filters
//
// A Filter pairs an Operator with an operand:
//
//	f := value.Filter{Operator: value.OpGreaterEqual, Value: value.Int(18)}
//	f.Matches(value.Int(21)) // true
//
// # Adapting Go values
//
// FromAny converts plain Go values (ints, floats, strings, bools, time.Time,
// slices) into Values and is the entry point used by table constructors.
package value
