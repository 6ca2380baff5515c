// Package conv provides bounds-checked integer conversions.
//
// Sequence positions are plain ints, but position sets are stored in
// roaring bitmaps keyed by uint32 and user-supplied positions arrive as
// int64 values. These helpers guard every crossing between those widths.
package conv
