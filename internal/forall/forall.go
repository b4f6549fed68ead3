// Package forall implements the iteration templates that connect
// iteration spaces to execution policies.
package forall

import (
	"fmt"
	"sync"

	"github.com/stride-hpc/stride"
	"github.com/stride-hpc/stride/internal/exec"
	"github.com/stride-hpc/stride/internal/indexset"
)

// Space is any iteration space a policy can traverse: a length plus
// position-windowed visitation. All segment types satisfy it.
type Space interface {
	Len() int
	Visit(lo, hi int, body func(index int))
}

// Forall applies body to every index of space exactly once, under the
// given policy. Completion is synchronous: every application has
// finished when Forall returns. The policy must come from a backend's
// Exec constructor; reduce-pattern policies are rejected.
func Forall(p exec.Policy, space Space, body func(index int)) error {
	if err := checkPolicy(p, exec.Forall); err != nil {
		return err
	}
	return p.Engine().Launch(space.Len(), p.Tuning(), func(_ *exec.Unit, lo, hi int) {
		space.Visit(lo, hi, body)
	})
}

// ForallUnit is the reduction-aware form of Forall: bind is invoked
// once per execution unit to produce that unit's loop body, giving the
// caller a place to fork reducer children and register their folds with
// u.Defer. The policy must come from a backend's Reduce constructor.
func ForallUnit(p exec.Policy, space Space, bind func(u *exec.Unit) func(index int)) error {
	if err := checkPolicy(p, exec.Reduce); err != nil {
		return err
	}
	return p.Engine().Launch(space.Len(), p.Tuning(), func(u *exec.Unit, lo, hi int) {
		body := u.Bind(func() func(int) { return bind(u) })
		space.Visit(lo, hi, body)
	})
}

// ForallSet applies body to every index of a composite index set:
// segments are visited under sp.SegIter, and each segment's indices run
// under sp.SegExec. With a single-unit segment iteration policy the
// concatenated order is the set order.
func ForallSet(sp exec.SetPolicy, set *indexset.IndexSet, body func(index int)) error {
	if err := checkPolicy(sp.SegIter, exec.Forall); err != nil {
		return err
	}
	if err := checkPolicy(sp.SegExec, exec.Forall); err != nil {
		return err
	}

	n := set.NumSegments()
	if sp.SegIter.Engine().Width() == 1 {
		for si := 0; si < n; si++ {
			seg, err := set.Segment(si)
			if err != nil {
				return err
			}
			if err := Forall(sp.SegExec, seg, body); err != nil {
				return err
			}
		}
		return nil
	}

	// Parallel segment iteration: inner launch failures are collected
	// since they surface inside the outer launch.
	var mu sync.Mutex
	var innerErr error
	err := sp.SegIter.Engine().Launch(n, sp.SegIter.Tuning(), func(_ *exec.Unit, lo, hi int) {
		for si := lo; si < hi; si++ {
			seg, segErr := set.Segment(si)
			if segErr == nil {
				segErr = Forall(sp.SegExec, seg, body)
			}
			if segErr != nil {
				mu.Lock()
				if innerErr == nil {
					innerErr = segErr
				}
				mu.Unlock()
				return
			}
		}
	})
	if err != nil {
		return err
	}
	return innerErr
}

// ForallSetUnit is the reduction-aware form of ForallSet. Segment
// iteration must be single-unit so that all reducer children belong to
// one engine's units; parallel segment iteration policies are rejected.
func ForallSetUnit(sp exec.SetPolicy, set *indexset.IndexSet, bind func(u *exec.Unit) func(index int)) error {
	if err := checkPolicy(sp.SegIter, exec.Forall); err != nil {
		return err
	}
	if err := checkPolicy(sp.SegExec, exec.Reduce); err != nil {
		return err
	}
	if sp.SegIter.Engine().Width() != 1 {
		return fmt.Errorf("%w: reduction over an index set requires single-unit segment iteration, got %q",
			stride.ErrConfiguration, sp.SegIter.Engine().Name())
	}
	for si := 0; si < set.NumSegments(); si++ {
		seg, err := set.Segment(si)
		if err != nil {
			return err
		}
		if err := ForallUnit(sp.SegExec, seg, bind); err != nil {
			return err
		}
	}
	return nil
}

// checkPolicy validates a policy against the entry point using it: the
// policy must carry an engine and the pattern the entry point executes.
func checkPolicy(p exec.Policy, want exec.Pattern) error {
	if p.Engine() == nil {
		return fmt.Errorf("%w: policy has no engine", stride.ErrConfiguration)
	}
	if p.Pattern() != want {
		return fmt.Errorf("%w: %v policy passed to a %v entry point", stride.ErrConfiguration, p.Pattern(), want)
	}
	return nil
}
