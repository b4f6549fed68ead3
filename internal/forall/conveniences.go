package forall

import (
	"github.com/stride-hpc/stride/internal/exec"
	"github.com/stride-hpc/stride/internal/reduce"
)

// SumOf sums f(i) over space under p.
func SumOf[T reduce.Value](p exec.Policy, space Space, f func(i int) T) (T, error) {
	var zero T
	r, err := reduce.NewSum[T](p, zero)
	if err != nil {
		return zero, err
	}
	defer r.Close()
	err = ForallUnit(p, space, func(u *exec.Unit) func(int) {
		ch := r.Fork(u)
		u.Defer(ch.Close)
		return func(i int) { ch.Add(f(i)) }
	})
	if err != nil {
		return zero, err
	}
	return r.Get(), nil
}

// MinOf returns the minimum of init and f(i) over space under p.
func MinOf[T reduce.Value](p exec.Policy, space Space, init T, f func(i int) T) (T, error) {
	r, err := reduce.NewMin(p, init)
	if err != nil {
		return init, err
	}
	defer r.Close()
	err = ForallUnit(p, space, func(u *exec.Unit) func(int) {
		ch := r.Fork(u)
		u.Defer(ch.Close)
		return func(i int) { ch.Min(f(i)) }
	})
	if err != nil {
		return init, err
	}
	return r.Get(), nil
}

// MaxOf returns the maximum of init and f(i) over space under p.
func MaxOf[T reduce.Value](p exec.Policy, space Space, init T, f func(i int) T) (T, error) {
	r, err := reduce.NewMax(p, init)
	if err != nil {
		return init, err
	}
	defer r.Close()
	err = ForallUnit(p, space, func(u *exec.Unit) func(int) {
		ch := r.Fork(u)
		u.Defer(ch.Close)
		return func(i int) { ch.Max(f(i)) }
	})
	if err != nil {
		return init, err
	}
	return r.Get(), nil
}

// MinLocOf returns the minimum of f(i) over space and the index it
// occurred at, seeded with init at location initLoc.
func MinLocOf[T reduce.Value](p exec.Policy, space Space, init T, initLoc int, f func(i int) T) (T, int, error) {
	r, err := reduce.NewMinLoc(p, init, initLoc)
	if err != nil {
		return init, initLoc, err
	}
	defer r.Close()
	err = ForallUnit(p, space, func(u *exec.Unit) func(int) {
		ch := r.Fork(u)
		u.Defer(ch.Close)
		return func(i int) { ch.MinLoc(f(i), i) }
	})
	if err != nil {
		return init, initLoc, err
	}
	return r.Get(), r.Loc(), nil
}

// MaxLocOf returns the maximum of f(i) over space and the index it
// occurred at, seeded with init at location initLoc.
func MaxLocOf[T reduce.Value](p exec.Policy, space Space, init T, initLoc int, f func(i int) T) (T, int, error) {
	r, err := reduce.NewMaxLoc(p, init, initLoc)
	if err != nil {
		return init, initLoc, err
	}
	defer r.Close()
	err = ForallUnit(p, space, func(u *exec.Unit) func(int) {
		ch := r.Fork(u)
		u.Defer(ch.Close)
		return func(i int) { ch.MaxLoc(f(i), i) }
	})
	if err != nil {
		return init, initLoc, err
	}
	return r.Get(), r.Loc(), nil
}
