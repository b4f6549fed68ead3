// Package indexset implements the composite index set: an ordered
// collection of heterogeneous segments with a cached aggregate length.
package indexset

import (
	"fmt"
	"strings"

	"github.com/stride-hpc/stride"
	"github.com/stride-hpc/stride/internal/segment"
)

// entry pairs a segment with its ownership. Owned segments were deep
// copied at push time and belong to the set; borrowed segments must
// outlive it.
type entry struct {
	seg   segment.Segment
	owned bool
}

// IndexSet is an ordered sequence of segments. The total length is cached
// and updated incrementally on every push.
type IndexSet struct {
	entries []entry
	length  int
}

// New creates an empty index set.
func New() *IndexSet {
	return &IndexSet{}
}

// Len returns the total number of indices across all segments.
func (s *IndexSet) Len() int { return s.length }

// NumSegments returns the number of segments in the set.
func (s *IndexSet) NumSegments() int { return len(s.entries) }

// Segment returns the i-th segment in set order, or ErrOutOfRange.
func (s *IndexSet) Segment(i int) (segment.Segment, error) {
	if i < 0 || i >= len(s.entries) {
		return nil, fmt.Errorf("%w: segment %d of %d", stride.ErrOutOfRange, i, len(s.entries))
	}
	return s.entries[i].seg, nil
}

// PushBack appends a deep copy of seg; the set owns the copy.
func (s *IndexSet) PushBack(seg segment.Segment) {
	s.entries = append(s.entries, entry{seg: seg.Clone(), owned: true})
	s.length += seg.Len()
}

// PushBackRef appends seg by reference. The caller must keep seg alive
// and unmodified for the lifetime of the set.
func (s *IndexSet) PushBackRef(seg segment.Segment) {
	s.entries = append(s.entries, entry{seg: seg})
	s.length += seg.Len()
}

// PushFront prepends a deep copy of seg; the set owns the copy.
func (s *IndexSet) PushFront(seg segment.Segment) {
	s.entries = append([]entry{{seg: seg.Clone(), owned: true}}, s.entries...)
	s.length += seg.Len()
}

// PushFrontRef prepends seg by reference.
func (s *IndexSet) PushFrontRef(seg segment.Segment) {
	s.entries = append([]entry{{seg: seg}}, s.entries...)
	s.length += seg.Len()
}

// pushOwned appends a segment the caller constructed solely for this set,
// transferring ownership without another copy.
func (s *IndexSet) pushOwned(seg segment.Segment) {
	s.entries = append(s.entries, entry{seg: seg, owned: true})
	s.length += seg.Len()
}

// Equal reports structural equality: the same segment sequence, compared
// segment by segment in order. Equal total length alone is not enough.
func (s *IndexSet) Equal(other *IndexSet) bool {
	if s.length != other.length || len(s.entries) != len(other.entries) {
		return false
	}
	for i := range s.entries {
		if !s.entries[i].seg.Equal(other.entries[i].seg) {
			return false
		}
	}
	return true
}

// Swap exchanges the contents of two sets in O(1).
func (s *IndexSet) Swap(other *IndexSet) {
	s.entries, other.entries = other.entries, s.entries
	s.length, other.length = other.length, s.length
}

// Clone returns a deep copy owning copies of every segment, independent
// of the donor's lifetime.
func (s *IndexSet) Clone() *IndexSet {
	c := &IndexSet{
		entries: make([]entry, len(s.entries)),
		length:  s.length,
	}
	for i, e := range s.entries {
		c.entries[i] = entry{seg: e.seg.Clone(), owned: true}
	}
	return c
}

// Iter returns a restartable cursor over the concatenated index sequence,
// visiting segments in set order.
func (s *IndexSet) Iter() *Iterator {
	return &Iterator{set: s}
}

// String returns a diagnostic dump of the set and its segments.
func (s *IndexSet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "index set: %d indices in %d segments\n", s.length, len(s.entries))
	for i, e := range s.entries {
		tag := "owned"
		if !e.owned {
			tag = "borrowed"
		}
		fmt.Fprintf(&b, "  [%d] %s (%s)\n", i, e.seg, tag)
	}
	return b.String()
}

// Iterator walks every index of every segment in set order.
type Iterator struct {
	set   *IndexSet
	si    int
	inner *segment.Iterator
}

// Next returns the next index and true, or 0 and false once all segments
// are exhausted.
func (it *Iterator) Next() (int, bool) {
	for {
		if it.inner == nil {
			if it.si >= len(it.set.entries) {
				return 0, false
			}
			it.inner = it.set.entries[it.si].seg.Iter()
		}
		if v, ok := it.inner.Next(); ok {
			return v, true
		}
		it.inner = nil
		it.si++
	}
}

// Reset rewinds the cursor to the first index of the first segment.
func (it *Iterator) Reset() {
	it.si = 0
	it.inner = nil
}
