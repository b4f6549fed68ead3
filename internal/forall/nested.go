package forall

import (
	"fmt"
	"sync"

	"github.com/stride-hpc/stride"
	"github.com/stride-hpc/stride/internal/exec"
)

// Forall2 iterates the cross product of two spaces, outer index first.
// Each axis runs under its own policy.
func Forall2(np exec.NestedPolicy, outer, inner Space, body func(i, j int)) error {
	if len(np) != 2 {
		return fmt.Errorf("%w: nested iteration over 2 axes needs 2 policies, got %d", stride.ErrConfiguration, len(np))
	}
	if err := checkNested(np); err != nil {
		return err
	}
	var ec errCollector
	err := Forall(np[0], outer, func(i int) {
		ec.record(Forall(np[1], inner, func(j int) {
			body(i, j)
		}))
	})
	if err != nil {
		return err
	}
	return ec.first()
}

// Forall3 iterates the cross product of three spaces, outermost index
// first.
func Forall3(np exec.NestedPolicy, s0, s1, s2 Space, body func(i, j, k int)) error {
	if len(np) != 3 {
		return fmt.Errorf("%w: nested iteration over 3 axes needs 3 policies, got %d", stride.ErrConfiguration, len(np))
	}
	if err := checkNested(np); err != nil {
		return err
	}
	var ec errCollector
	err := Forall(np[0], s0, func(i int) {
		ec.record(Forall(np[1], s1, func(j int) {
			ec.record(Forall(np[2], s2, func(k int) {
				body(i, j, k)
			}))
		}))
	})
	if err != nil {
		return err
	}
	return ec.first()
}

// ForallN iterates the cross product of an arbitrary number of spaces.
// The index slice passed to body is valid only for the duration of the
// call.
func ForallN(np exec.NestedPolicy, spaces []Space, body func(idx []int)) error {
	if len(np) == 0 || len(np) != len(spaces) {
		return fmt.Errorf("%w: nested iteration over %d axes needs %d policies, got %d",
			stride.ErrConfiguration, len(spaces), len(spaces), len(np))
	}
	if err := checkNested(np); err != nil {
		return err
	}
	var ec errCollector
	ec.record(forallAxis(np, spaces, nil, body, &ec))
	return ec.first()
}

// forallAxis recurses one axis deeper. The prefix is copied per outer
// index so concurrent inner iterations never share an index slice.
func forallAxis(np exec.NestedPolicy, spaces []Space, prefix []int, body func(idx []int), ec *errCollector) error {
	d := len(prefix)
	if d == len(spaces) {
		body(prefix)
		return nil
	}
	return Forall(np[d], spaces[d], func(i int) {
		idx := make([]int, d+1, len(spaces))
		copy(idx, prefix)
		idx[d] = i
		ec.record(forallAxis(np, spaces, idx, body, ec))
	})
}

// checkNested rejects accelerator policies below the outermost axis;
// device launches do not nest.
func checkNested(np exec.NestedPolicy) error {
	for d, p := range np {
		if err := checkPolicy(p, exec.Forall); err != nil {
			return err
		}
		if d > 0 && p.Tag() == exec.Device {
			return fmt.Errorf("%w: device policy allowed on the outermost axis only, found at axis %d", stride.ErrConfiguration, d)
		}
	}
	return nil
}

// errCollector keeps the first error recorded from concurrently
// executing inner launches.
type errCollector struct {
	mu  sync.Mutex
	err error
}

func (ec *errCollector) record(err error) {
	if err == nil {
		return
	}
	ec.mu.Lock()
	if ec.err == nil {
		ec.err = err
	}
	ec.mu.Unlock()
}

func (ec *errCollector) first() error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.err
}
