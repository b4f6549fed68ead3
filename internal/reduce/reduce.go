// Package reduce implements thread-safe reduction variables: Sum, Min,
// Max, and their location-tracking variants.
//
// A reducer is created against a policy and read after the loop with
// Get. Inside a parallel loop, each execution unit works on a child
// obtained with Fork; children accumulate privately and become visible
// to the root when they close, so the hot path takes no locks.
//
// The storage strategy follows the engine. Engines that expose a
// scratch arena get the block strategy: the root reserves a reduction
// id and a padded slot per unit, children write their unit's slot
// directly, and Get sweeps the slots. Single-unit engines get the
// direct strategy: children hold a local accumulator, starting from the
// identity, and fold it into the root under a mutex on close.
package reduce

import (
	"fmt"
	"sync"

	"github.com/stride-hpc/stride"
	"github.com/stride-hpc/stride/internal/exec"
	"github.com/stride-hpc/stride/internal/scratch"
)

// Value is the element constraint shared by all reducers.
type Value interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// core carries the strategy-independent reducer state over an element
// type E, which is either a plain value or a value-location sample.
type core[E any] struct {
	mu       sync.Mutex
	combine  func(a, b E) E
	val      E // root accumulation; Get folds slots on top of it
	identity E

	block *scratch.Block[E]
	arena *scratch.Arena
	id    int

	closed bool
}

func newCore[E any](p exec.Policy, init, identity E, combine func(a, b E) E) (*core[E], error) {
	eng := p.Engine()
	if eng == nil {
		return nil, fmt.Errorf("%w: reducer policy has no engine", stride.ErrConfiguration)
	}
	if p.Pattern() != exec.Reduce {
		return nil, fmt.Errorf("%w: reducer requires a reduce-pattern policy, got %v", stride.ErrConfiguration, p.Pattern())
	}
	c := &core[E]{combine: combine, val: init, identity: identity}
	if arena := eng.Scratch(); arena != nil {
		id, err := arena.Acquire()
		if err != nil {
			return nil, err
		}
		c.arena = arena
		c.id = id
		c.block = scratch.NewBlock(arena.Width(), identity)
	}
	return c, nil
}

// child is one unit's view of a reduction. Slot children write their
// padded cell directly; local children accumulate privately starting
// from the identity and fold on close.
type child[E any] struct {
	c     *core[E]
	slot  *E
	local E
	done  bool
}

// fork creates a child for unit u. Forking a child delegates here, so
// grandchildren attach to the root, never to an intermediate.
func (c *core[E]) fork(u *exec.Unit) *child[E] {
	if c.block != nil {
		return &child[E]{c: c, slot: c.block.Slot(u.ID())}
	}
	return &child[E]{c: c, local: c.identity}
}

func (ch *child[E]) add(v E) {
	if ch.slot != nil {
		*ch.slot = ch.c.combine(*ch.slot, v)
		return
	}
	ch.local = ch.c.combine(ch.local, v)
}

// close folds a local child into the root. Idempotent. Slot children
// are already visible through the block.
func (ch *child[E]) close() {
	if ch.done {
		return
	}
	ch.done = true
	if ch.slot != nil {
		return
	}
	ch.c.mu.Lock()
	ch.c.val = ch.c.combine(ch.c.val, ch.local)
	ch.c.mu.Unlock()
}

// add accumulates directly on the root. Only valid outside parallel
// regions; concurrent units must fork.
func (c *core[E]) add(v E) {
	c.val = c.combine(c.val, v)
}

// get returns the current reduced value without consuming it: the root
// value folded with every live slot.
func (c *core[E]) get() E {
	c.mu.Lock()
	defer c.mu.Unlock()
	acc := c.val
	if c.block != nil {
		acc = c.block.Sweep(acc, c.combine)
	}
	return acc
}

// close folds any slot contents into the root value and releases the
// reduction id. Idempotent; Get keeps returning the final value.
func (c *core[E]) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.block != nil {
		c.val = c.block.Sweep(c.val, c.combine)
		c.arena.Release(c.id)
		c.block = nil
		c.arena = nil
	}
}

// Sum reduces by addition. The reported value is the initial value plus
// every contribution; children start from zero, not from the parent's
// running total.
type Sum[T Value] struct{ c *core[T] }

// NewSum creates a sum reducer with the given initial value. Children
// start from the zero value.
func NewSum[T Value](p exec.Policy, init T) (*Sum[T], error) {
	var zero T
	return NewSumWithIdentity(p, init, zero)
}

// NewSumWithIdentity creates a sum reducer with a distinct neutral
// element: per-unit accumulators start from identity instead of the
// zero value, while init remains the reported offset. An identity that
// is not neutral under addition folds into the result once per unit
// accumulator.
func NewSumWithIdentity[T Value](p exec.Policy, init, identity T) (*Sum[T], error) {
	c, err := newCore(p, init, identity, func(a, b T) T { return a + b })
	if err != nil {
		return nil, err
	}
	return &Sum[T]{c: c}, nil
}

// Fork returns the child for unit u.
func (s *Sum[T]) Fork(u *exec.Unit) *SumChild[T] { return &SumChild[T]{ch: s.c.fork(u)} }

// Add accumulates on the root. Only valid outside parallel regions.
func (s *Sum[T]) Add(v T) { s.c.add(v) }

// Get returns the reduced value.
func (s *Sum[T]) Get() T { return s.c.get() }

// Close releases the reducer's scratch storage. Get remains valid.
func (s *Sum[T]) Close() { s.c.close() }

// SumChild is one unit's handle on a Sum.
type SumChild[T Value] struct{ ch *child[T] }

// Add accumulates a contribution.
func (c *SumChild[T]) Add(v T) { c.ch.add(v) }

// Fork returns a child for unit u, attached to the root reducer.
func (c *SumChild[T]) Fork(u *exec.Unit) *SumChild[T] { return &SumChild[T]{ch: c.ch.c.fork(u)} }

// Close folds this child into the root. Idempotent.
func (c *SumChild[T]) Close() { c.ch.close() }

// Min reduces by minimum. The initial value participates, so the result
// never exceeds it.
type Min[T Value] struct{ c *core[T] }

// NewMin creates a min reducer with the given initial value.
func NewMin[T Value](p exec.Policy, init T) (*Min[T], error) {
	c, err := newCore(p, init, init, func(a, b T) T {
		if b < a {
			return b
		}
		return a
	})
	if err != nil {
		return nil, err
	}
	return &Min[T]{c: c}, nil
}

// Fork returns the child for unit u.
func (m *Min[T]) Fork(u *exec.Unit) *MinChild[T] { return &MinChild[T]{ch: m.c.fork(u)} }

// Min offers a candidate on the root. Only valid outside parallel
// regions.
func (m *Min[T]) Min(v T) { m.c.add(v) }

// Get returns the reduced value.
func (m *Min[T]) Get() T { return m.c.get() }

// Close releases the reducer's scratch storage. Get remains valid.
func (m *Min[T]) Close() { m.c.close() }

// MinChild is one unit's handle on a Min.
type MinChild[T Value] struct{ ch *child[T] }

// Min offers a candidate.
func (c *MinChild[T]) Min(v T) { c.ch.add(v) }

// Fork returns a child for unit u, attached to the root reducer.
func (c *MinChild[T]) Fork(u *exec.Unit) *MinChild[T] { return &MinChild[T]{ch: c.ch.c.fork(u)} }

// Close folds this child into the root. Idempotent.
func (c *MinChild[T]) Close() { c.ch.close() }

// Max reduces by maximum. The initial value participates, so the result
// is never below it.
type Max[T Value] struct{ c *core[T] }

// NewMax creates a max reducer with the given initial value.
func NewMax[T Value](p exec.Policy, init T) (*Max[T], error) {
	c, err := newCore(p, init, init, func(a, b T) T {
		if b > a {
			return b
		}
		return a
	})
	if err != nil {
		return nil, err
	}
	return &Max[T]{c: c}, nil
}

// Fork returns the child for unit u.
func (m *Max[T]) Fork(u *exec.Unit) *MaxChild[T] { return &MaxChild[T]{ch: m.c.fork(u)} }

// Max offers a candidate on the root. Only valid outside parallel
// regions.
func (m *Max[T]) Max(v T) { m.c.add(v) }

// Get returns the reduced value.
func (m *Max[T]) Get() T { return m.c.get() }

// Close releases the reducer's scratch storage. Get remains valid.
func (m *Max[T]) Close() { m.c.close() }

// MaxChild is one unit's handle on a Max.
type MaxChild[T Value] struct{ ch *child[T] }

// Max offers a candidate.
func (c *MaxChild[T]) Max(v T) { c.ch.add(v) }

// Fork returns a child for unit u, attached to the root reducer.
func (c *MaxChild[T]) Fork(u *exec.Unit) *MaxChild[T] { return &MaxChild[T]{ch: c.ch.c.fork(u)} }

// Close folds this child into the root. Idempotent.
func (c *MaxChild[T]) Close() { c.ch.close() }
