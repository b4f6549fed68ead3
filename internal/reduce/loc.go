package reduce

import "github.com/stride-hpc/stride/internal/exec"

// Sample pairs a value with the index it was observed at.
type Sample[T Value] struct {
	Val T
	Loc int
}

// minSample keeps the smaller value; on ties the earlier-offered sample
// wins, so the location only moves on strict improvement.
func minSample[T Value](a, b Sample[T]) Sample[T] {
	if b.Val < a.Val {
		return b
	}
	return a
}

func maxSample[T Value](a, b Sample[T]) Sample[T] {
	if b.Val > a.Val {
		return b
	}
	return a
}

// MinLoc reduces to the minimum value and the index it occurred at.
// Within one unit's stream of candidates the first occurrence of the
// minimum wins ties; across units the winning location is whichever
// unit's fold lands first.
type MinLoc[T Value] struct{ c *core[Sample[T]] }

// NewMinLoc creates a min-location reducer. initLoc is reported when no
// candidate beats init.
func NewMinLoc[T Value](p exec.Policy, init T, initLoc int) (*MinLoc[T], error) {
	s := Sample[T]{Val: init, Loc: initLoc}
	c, err := newCore(p, s, s, minSample[T])
	if err != nil {
		return nil, err
	}
	return &MinLoc[T]{c: c}, nil
}

// Fork returns the child for unit u.
func (m *MinLoc[T]) Fork(u *exec.Unit) *MinLocChild[T] { return &MinLocChild[T]{ch: m.c.fork(u)} }

// MinLoc offers a candidate on the root. Only valid outside parallel
// regions.
func (m *MinLoc[T]) MinLoc(v T, loc int) { m.c.add(Sample[T]{Val: v, Loc: loc}) }

// Get returns the reduced value.
func (m *MinLoc[T]) Get() T { return m.c.get().Val }

// Loc returns the location of the reduced value.
func (m *MinLoc[T]) Loc() int { return m.c.get().Loc }

// Close releases the reducer's scratch storage. Get remains valid.
func (m *MinLoc[T]) Close() { m.c.close() }

// MinLocChild is one unit's handle on a MinLoc.
type MinLocChild[T Value] struct{ ch *child[Sample[T]] }

// MinLoc offers a candidate.
func (c *MinLocChild[T]) MinLoc(v T, loc int) { c.ch.add(Sample[T]{Val: v, Loc: loc}) }

// Fork returns a child for unit u, attached to the root reducer.
func (c *MinLocChild[T]) Fork(u *exec.Unit) *MinLocChild[T] {
	return &MinLocChild[T]{ch: c.ch.c.fork(u)}
}

// Close folds this child into the root. Idempotent.
func (c *MinLocChild[T]) Close() { c.ch.close() }

// MaxLoc reduces to the maximum value and the index it occurred at,
// with the same tie rules as MinLoc.
type MaxLoc[T Value] struct{ c *core[Sample[T]] }

// NewMaxLoc creates a max-location reducer. initLoc is reported when no
// candidate beats init.
func NewMaxLoc[T Value](p exec.Policy, init T, initLoc int) (*MaxLoc[T], error) {
	s := Sample[T]{Val: init, Loc: initLoc}
	c, err := newCore(p, s, s, maxSample[T])
	if err != nil {
		return nil, err
	}
	return &MaxLoc[T]{c: c}, nil
}

// Fork returns the child for unit u.
func (m *MaxLoc[T]) Fork(u *exec.Unit) *MaxLocChild[T] { return &MaxLocChild[T]{ch: m.c.fork(u)} }

// MaxLoc offers a candidate on the root. Only valid outside parallel
// regions.
func (m *MaxLoc[T]) MaxLoc(v T, loc int) { m.c.add(Sample[T]{Val: v, Loc: loc}) }

// Get returns the reduced value.
func (m *MaxLoc[T]) Get() T { return m.c.get().Val }

// Loc returns the location of the reduced value.
func (m *MaxLoc[T]) Loc() int { return m.c.get().Loc }

// Close releases the reducer's scratch storage. Get remains valid.
func (m *MaxLoc[T]) Close() { m.c.close() }

// MaxLocChild is one unit's handle on a MaxLoc.
type MaxLocChild[T Value] struct{ ch *child[Sample[T]] }

// MaxLoc offers a candidate.
func (c *MaxLocChild[T]) MaxLoc(v T, loc int) { c.ch.add(Sample[T]{Val: v, Loc: loc}) }

// Fork returns a child for unit u, attached to the root reducer.
func (c *MaxLocChild[T]) Fork(u *exec.Unit) *MaxLocChild[T] {
	return &MaxLocChild[T]{ch: c.ch.c.fork(u)}
}

// Close folds this child into the root. Idempotent.
func (c *MaxLocChild[T]) Close() { c.ch.close() }
