package segment

import (
	"fmt"

	"github.com/stride-hpc/stride"
)

// Range is a contiguous ascending run of indices [begin, end).
type Range struct {
	begin int
	end   int
}

// NewRange creates a contiguous segment covering [begin, end).
// An empty range (begin == end) is valid; end < begin is not.
func NewRange(begin, end int) (*Range, error) {
	if end < begin {
		return nil, fmt.Errorf("%w: range end %d before begin %d", stride.ErrInvalidArgument, end, begin)
	}
	return &Range{begin: begin, end: end}, nil
}

// Begin returns the first index of the range.
func (r *Range) Begin() int { return r.begin }

// End returns one past the last index of the range.
func (r *Range) End() int { return r.end }

// Kind returns RangeKind.
func (r *Range) Kind() Kind { return RangeKind }

// Len returns end - begin.
func (r *Range) Len() int { return r.end - r.begin }

// At returns begin + i, or ErrOutOfRange.
func (r *Range) At(i int) (int, error) {
	if i < 0 || i >= r.Len() {
		return 0, fmt.Errorf("%w: position %d in range of length %d", stride.ErrOutOfRange, i, r.Len())
	}
	return r.begin + i, nil
}

// Visit invokes body for each index in the position window [lo, hi).
func (r *Range) Visit(lo, hi int, body func(int)) {
	for v := r.begin + lo; v < r.begin+hi; v++ {
		body(v)
	}
}

// Equal reports whether other is a Range with the same bounds.
func (r *Range) Equal(other Segment) bool {
	o, ok := other.(*Range)
	return ok && r.begin == o.begin && r.end == o.end
}

// Clone returns a copy of the range.
func (r *Range) Clone() Segment {
	c := *r
	return &c
}

// Iter returns a cursor over [begin, end).
func (r *Range) Iter() *Iterator { return &Iterator{seg: r} }

func (r *Range) String() string {
	return fmt.Sprintf("range [%d, %d)", r.begin, r.end)
}

func (r *Range) sealed() {}

// RangeStride is an arithmetic progression of indices starting at begin,
// stepping by step, stopping before crossing end. Negative steps count
// down (begin > end).
type RangeStride struct {
	begin int
	end   int
	step  int
}

// NewRangeStride creates a strided segment. The step must be non-zero.
func NewRangeStride(begin, end, step int) (*RangeStride, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: range stride must be non-zero", stride.ErrInvalidArgument)
	}
	return &RangeStride{begin: begin, end: end, step: step}, nil
}

// Begin returns the first index of the progression.
func (r *RangeStride) Begin() int { return r.begin }

// End returns the exclusive bound of the progression.
func (r *RangeStride) End() int { return r.end }

// Stride returns the step between consecutive indices.
func (r *RangeStride) Stride() int { return r.step }

// Kind returns RangeStrideKind.
func (r *RangeStride) Kind() Kind { return RangeStrideKind }

// Len returns ceil((end-begin)/step), or 0 for an empty progression.
func (r *RangeStride) Len() int {
	span := r.end - r.begin
	if r.step > 0 {
		if span <= 0 {
			return 0
		}
		return (span + r.step - 1) / r.step
	}
	if span >= 0 {
		return 0
	}
	down := -r.step
	return (-span + down - 1) / down
}

// At returns begin + i*step, or ErrOutOfRange.
func (r *RangeStride) At(i int) (int, error) {
	if i < 0 || i >= r.Len() {
		return 0, fmt.Errorf("%w: position %d in strided range of length %d", stride.ErrOutOfRange, i, r.Len())
	}
	return r.begin + i*r.step, nil
}

// Visit invokes body for each index in the position window [lo, hi).
func (r *RangeStride) Visit(lo, hi int, body func(int)) {
	for i := lo; i < hi; i++ {
		body(r.begin + i*r.step)
	}
}

// Equal reports whether other is a RangeStride with identical bounds and
// stride.
func (r *RangeStride) Equal(other Segment) bool {
	o, ok := other.(*RangeStride)
	return ok && r.begin == o.begin && r.end == o.end && r.step == o.step
}

// Clone returns a copy of the strided range.
func (r *RangeStride) Clone() Segment {
	c := *r
	return &c
}

// Iter returns a cursor over the progression.
func (r *RangeStride) Iter() *Iterator { return &Iterator{seg: r} }

func (r *RangeStride) String() string {
	return fmt.Sprintf("range [%d, %d) by %d", r.begin, r.end, r.step)
}

func (r *RangeStride) sealed() {}
