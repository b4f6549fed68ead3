// Package segment implements the index space primitives: contiguous
// ranges, strided ranges, and explicit index lists. Every segment is an
// ordered, finite sequence of integer indices with O(1) length and random
// access; ranges never materialize their indices.
package segment

import "fmt"

// Kind discriminates the closed set of segment variants.
type Kind int

// Segment kinds.
const (
	RangeKind Kind = iota
	RangeStrideKind
	ListKind
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case RangeKind:
		return "range"
	case RangeStrideKind:
		return "range-stride"
	case ListKind:
		return "list"
	default:
		return "unknown"
	}
}

// Segment is an ordered finite sequence of integer indices.
//
// The variant set is closed (Range, RangeStride, List); dispatch happens
// through capability methods rather than type tags and casts. Visit is the
// engine's hot path: it iterates the half-open position window [lo, hi)
// without bounds checks, so callers must guarantee 0 <= lo <= hi <= Len().
type Segment interface {
	Kind() Kind
	Len() int

	// At returns the index at position i, or ErrOutOfRange.
	At(i int) (int, error)

	// Visit invokes body once per index in the position window [lo, hi).
	Visit(lo, hi int, body func(index int))

	// Equal reports structural equality: same kind and same content.
	Equal(other Segment) bool

	// Clone returns a deep, independently owned copy.
	Clone() Segment

	// Iter returns a restartable forward cursor over the indices.
	Iter() *Iterator

	fmt.Stringer

	sealed()
}

// Iterator is a restartable forward cursor over a segment's indices.
// Advancing past the end is structurally impossible: Next reports false
// and keeps reporting false.
type Iterator struct {
	seg  Segment
	next int
}

// Next returns the next index and true, or 0 and false when the sequence
// is exhausted.
func (it *Iterator) Next() (int, bool) {
	if it.next >= it.seg.Len() {
		return 0, false
	}
	v, _ := it.seg.At(it.next)
	it.next++
	return v, true
}

// Reset rewinds the cursor to the first index.
func (it *Iterator) Reset() { it.next = 0 }
