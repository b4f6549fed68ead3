package segment

import (
	"errors"
	"testing"

	"github.com/stride-hpc/stride"
)

func collect(t *testing.T, s Segment) []int {
	t.Helper()
	var out []int
	it := s.Iter()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	if len(out) != s.Len() {
		t.Fatalf("Iterator produced %d indices, Len() = %d", len(out), s.Len())
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRange(t *testing.T) {
	r, err := NewRange(2, 6)
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
	if got := collect(t, r); !equalInts(got, []int{2, 3, 4, 5}) {
		t.Errorf("Indices = %v, want [2 3 4 5]", got)
	}
}

func TestRange_Empty(t *testing.T) {
	r, err := NewRange(5, 5)
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	r.Visit(0, r.Len(), func(int) {
		t.Error("Visit invoked on empty range")
	})
}

func TestRange_EndBeforeBegin(t *testing.T) {
	_, err := NewRange(6, 2)
	if !errors.Is(err, stride.ErrInvalidArgument) {
		t.Errorf("NewRange(6, 2) error = %v, want ErrInvalidArgument", err)
	}
}

func TestRange_At(t *testing.T) {
	r, _ := NewRange(10, 20)
	v, err := r.At(3)
	if err != nil || v != 13 {
		t.Errorf("At(3) = %d, %v, want 13, nil", v, err)
	}
	if _, err := r.At(10); !errors.Is(err, stride.ErrOutOfRange) {
		t.Errorf("At(10) error = %v, want ErrOutOfRange", err)
	}
	if _, err := r.At(-1); !errors.Is(err, stride.ErrOutOfRange) {
		t.Errorf("At(-1) error = %v, want ErrOutOfRange", err)
	}
}

func TestRangeStride_Ascending(t *testing.T) {
	// Length rounds up: 0,3,6,9 covers [0,10) with step 3.
	r, err := NewRangeStride(0, 10, 3)
	if err != nil {
		t.Fatalf("NewRangeStride failed: %v", err)
	}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
	if got := collect(t, r); !equalInts(got, []int{0, 3, 6, 9}) {
		t.Errorf("Indices = %v, want [0 3 6 9]", got)
	}
}

func TestRangeStride_Descending(t *testing.T) {
	r, err := NewRangeStride(10, 0, -2)
	if err != nil {
		t.Fatalf("NewRangeStride failed: %v", err)
	}
	if got := collect(t, r); !equalInts(got, []int{10, 8, 6, 4, 2}) {
		t.Errorf("Indices = %v, want [10 8 6 4 2]", got)
	}
}

func TestRangeStride_EmptyWhenStrideOpposesDirection(t *testing.T) {
	up, _ := NewRangeStride(10, 0, 2)
	if up.Len() != 0 {
		t.Errorf("Ascending stride over descending span: Len() = %d, want 0", up.Len())
	}
	down, _ := NewRangeStride(0, 10, -2)
	if down.Len() != 0 {
		t.Errorf("Descending stride over ascending span: Len() = %d, want 0", down.Len())
	}
}

func TestRangeStride_ZeroStride(t *testing.T) {
	_, err := NewRangeStride(0, 10, 0)
	if !errors.Is(err, stride.ErrInvalidArgument) {
		t.Errorf("NewRangeStride(0, 10, 0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestList(t *testing.T) {
	ix := []int{7, 3, 3, 11}
	l := NewList(ix)
	if !l.Owned() {
		t.Error("NewList should own its storage")
	}
	// Mutating the input must not affect an owning list.
	ix[0] = 99
	if got := collect(t, l); !equalInts(got, []int{7, 3, 3, 11}) {
		t.Errorf("Indices = %v, want [7 3 3 11]", got)
	}
}

func TestListRef_Borrows(t *testing.T) {
	ix := []int{1, 2, 3}
	l := NewListRef(ix)
	if l.Owned() {
		t.Error("NewListRef should borrow its storage")
	}
	ix[1] = 42
	if v, _ := l.At(1); v != 42 {
		t.Errorf("Borrowed list At(1) = %d, want 42", v)
	}
}

func TestClone_AlwaysOwns(t *testing.T) {
	ix := []int{5, 6}
	borrowed := NewListRef(ix)
	clone := borrowed.Clone().(*List)
	if !clone.Owned() {
		t.Error("Clone of a borrowed list should own its storage")
	}
	ix[0] = -1
	if v, _ := clone.At(0); v != 5 {
		t.Errorf("Clone At(0) = %d, want 5", v)
	}
}

func TestEqual(t *testing.T) {
	r1, _ := NewRange(0, 4)
	r2, _ := NewRange(0, 4)
	r3, _ := NewRange(0, 5)
	l := NewList([]int{0, 1, 2, 3})

	if !r1.Equal(r2) {
		t.Error("Identical ranges should be equal")
	}
	if r1.Equal(r3) {
		t.Error("Different ranges should not be equal")
	}
	// Same index sequence, different kind: not equal.
	if r1.Equal(l) {
		t.Error("Range and list with same indices should not be equal")
	}

	owned := NewList([]int{1, 2})
	borrowed := NewListRef([]int{1, 2})
	if !owned.Equal(borrowed) {
		t.Error("Ownership should not participate in equality")
	}
}

func TestIterator_Reset(t *testing.T) {
	r, _ := NewRange(0, 3)
	it := r.Iter()
	it.Next()
	it.Next()
	it.Reset()
	if v, ok := it.Next(); !ok || v != 0 {
		t.Errorf("After Reset, Next() = %d, %v, want 0, true", v, ok)
	}
}

func TestIterator_ExhaustionIsSticky(t *testing.T) {
	r, _ := NewRange(0, 1)
	it := r.Iter()
	it.Next()
	for i := 0; i < 3; i++ {
		if _, ok := it.Next(); ok {
			t.Fatal("Next() after exhaustion should keep returning false")
		}
	}
}

func TestVisit_Window(t *testing.T) {
	r, _ := NewRangeStride(0, 20, 2)
	var got []int
	r.Visit(2, 5, func(i int) { got = append(got, i) })
	if !equalInts(got, []int{4, 6, 8}) {
		t.Errorf("Visit(2, 5) = %v, want [4 6 8]", got)
	}
}
