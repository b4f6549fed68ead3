package segment

import (
	"fmt"
	"slices"

	"github.com/stride-hpc/stride"
)

// List is an explicit array of indices in arbitrary order. Duplicates are
// allowed. A list either owns its storage (construction copied the input)
// or borrows caller memory, in which case the caller must keep the backing
// array alive and unmodified for the lifetime of the list.
type List struct {
	ix    []int
	owned bool
}

// NewList creates a list segment that copies ix. A zero-length list is
// valid.
func NewList(ix []int) *List {
	return &List{ix: slices.Clone(ix), owned: true}
}

// NewListRef creates a list segment that borrows ix without copying.
func NewListRef(ix []int) *List {
	return &List{ix: ix}
}

// Owned reports whether the list owns its backing storage.
func (l *List) Owned() bool { return l.owned }

// Kind returns ListKind.
func (l *List) Kind() Kind { return ListKind }

// Len returns the number of indices.
func (l *List) Len() int { return len(l.ix) }

// At returns the index at position i, or ErrOutOfRange.
func (l *List) At(i int) (int, error) {
	if i < 0 || i >= len(l.ix) {
		return 0, fmt.Errorf("%w: position %d in list of length %d", stride.ErrOutOfRange, i, len(l.ix))
	}
	return l.ix[i], nil
}

// Visit invokes body for each index in the position window [lo, hi).
func (l *List) Visit(lo, hi int, body func(int)) {
	for _, v := range l.ix[lo:hi] {
		body(v)
	}
}

// Equal reports whether other is a List with identical content.
// Ownership does not participate in equality.
func (l *List) Equal(other Segment) bool {
	o, ok := other.(*List)
	return ok && slices.Equal(l.ix, o.ix)
}

// Clone returns an owning deep copy, regardless of whether the receiver
// owns or borrows its storage.
func (l *List) Clone() Segment {
	return &List{ix: slices.Clone(l.ix), owned: true}
}

// Iter returns a cursor over the indices.
func (l *List) Iter() *Iterator { return &Iterator{seg: l} }

func (l *List) String() string {
	return fmt.Sprintf("list of %d indices", len(l.ix))
}

func (l *List) sealed() {}
