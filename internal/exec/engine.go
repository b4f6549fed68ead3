package exec

import "github.com/stride-hpc/stride/internal/scratch"

// Engine is the scheduling primitive every backend implements: execute n
// independent work items, partitioned into contiguous chunks, with all
// items complete before Launch returns.
//
// Launch invokes run for half-open position chunks [lo, hi) covering
// [0, n) exactly once each. A unit may receive several chunks, but chunks
// of one unit are delivered sequentially, and unit IDs are unique among
// concurrently live units and smaller than Width. Engines run each unit's
// deferred cleanups once the unit has drained.
type Engine interface {
	Name() string
	Platform() Platform

	// Width returns the maximum number of concurrently executing units.
	Width() int

	// Launch executes run over [0, n) and returns once all chunks have
	// completed. The tuning parameters come from the issuing policy.
	Launch(n int, tuning Tuning, run func(u *Unit, lo, hi int)) error

	// Scratch returns the engine's reduction storage arena, or nil for
	// backends whose reducers accumulate directly (single-unit engines).
	Scratch() *scratch.Arena
}

// Unit is the per-execution-unit context an engine hands to each
// concurrent worker. A unit is owned by exactly one goroutine at a time,
// so its methods need no synchronization.
type Unit struct {
	id       int
	body     func(int)
	cleanups []func()
}

// NewUnit creates a unit with the given id. Engines are the only
// intended callers.
func NewUnit(id int) *Unit { return &Unit{id: id} }

// ID returns the unit's stable identifier, in [0, Width()).
func (u *Unit) ID() int { return u.id }

// Bind returns the unit's cached loop body, creating it with mk on first
// use. The iteration engine uses this so per-unit setup (such as forking
// reducers) happens exactly once even when the unit processes several
// chunks.
func (u *Unit) Bind(mk func() func(int)) func(int) {
	if u.body == nil {
		u.body = mk()
	}
	return u.body
}

// Defer registers fn to run when the unit drains, after its last chunk.
// Cleanups run in reverse registration order. Reducer children fold into
// their parent here.
func (u *Unit) Defer(fn func()) {
	u.cleanups = append(u.cleanups, fn)
}

// Finish runs the unit's deferred cleanups. Engines call this exactly
// once per unit, on the unit's own goroutine.
func (u *Unit) Finish() {
	for i := len(u.cleanups) - 1; i >= 0; i-- {
		u.cleanups[i]()
	}
	u.cleanups = nil
	u.body = nil
}
