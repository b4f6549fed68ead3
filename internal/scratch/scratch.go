// Package scratch manages the reduction scratch storage shared by
// parallel backends: a bounded pool of reduction ids and per-reduction
// slot blocks padded to keep concurrent units off each other's cache
// lines.
package scratch

import (
	"fmt"
	"sync"

	"github.com/stride-hpc/stride"
)

// DefaultIDs is the number of simultaneously live reductions an arena
// supports unless configured otherwise.
const DefaultIDs = 64

// cacheLine bytes of padding separate adjacent slots. Over-padding for
// small element types is deliberate; slot count is bounded by engine
// width, never by problem size.
const cacheLine = 64

// Arena is a bounded pool of reduction ids owned by one engine. Acquire
// and Release take a single mutex; reducers touch the arena only at
// construction and close, never on the accumulation path.
type Arena struct {
	mu    sync.Mutex
	free  []int
	total int
	width int
}

// NewArena creates an arena for an engine with the given unit width and
// id capacity. Non-positive ids selects DefaultIDs.
func NewArena(width, ids int) *Arena {
	if ids <= 0 {
		ids = DefaultIDs
	}
	a := &Arena{total: ids, width: width, free: make([]int, ids)}
	for i := range a.free {
		a.free[i] = ids - 1 - i // pop order 0, 1, 2, ...
	}
	return a
}

// Width returns the unit width blocks allocated against this arena
// must accommodate.
func (a *Arena) Width() int { return a.width }

// Acquire reserves a reduction id, or returns ErrResourceExhausted when
// all ids are live.
func (a *Arena) Acquire() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.free) == 0 {
		return 0, fmt.Errorf("%w: all %d reduction ids in use", stride.ErrResourceExhausted, a.total)
	}
	id := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]
	return id, nil
}

// Release returns id to the pool. Releasing an id twice corrupts the
// pool; the reducer lifecycle guarantees exactly one release per
// acquire.
func (a *Arena) Release(id int) {
	a.mu.Lock()
	a.free = append(a.free, id)
	a.mu.Unlock()
}

// slot pads its payload so that adjacent slots never share a cache
// line.
type slot[E any] struct {
	v E
	_ [cacheLine]byte
}

// Block is the per-reduction slot array: one padded cell per execution
// unit, indexed by unit id. Each cell is written by exactly one unit at
// a time, so cell access needs no synchronization.
type Block[E any] struct {
	slots []slot[E]
}

// NewBlock allocates a block of width cells, each initialized to the
// reduction's identity element.
func NewBlock[E any](width int, identity E) *Block[E] {
	b := &Block[E]{slots: make([]slot[E], width)}
	for i := range b.slots {
		b.slots[i].v = identity
	}
	return b
}

// Slot returns a pointer to the cell for unit id. The caller owns the
// cell until its unit drains.
func (b *Block[E]) Slot(id int) *E { return &b.slots[id].v }

// Sweep folds every cell into acc and returns the result without
// modifying the block, so repeated sweeps stay consistent.
func (b *Block[E]) Sweep(acc E, combine func(a, b E) E) E {
	for i := range b.slots {
		acc = combine(acc, b.slots[i].v)
	}
	return acc
}

// Reset restores every cell to identity for reuse.
func (b *Block[E]) Reset(identity E) {
	for i := range b.slots {
		b.slots[i].v = identity
	}
}
