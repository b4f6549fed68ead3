// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package forall provides the public iteration API: apply a body to
// every index of an iteration space under an execution policy.
//
// Basic loop:
//
//	eng := pool.New()
//	r, _ := segment.NewRange(0, n)
//	err := forall.Forall(eng.Exec(), r, func(i int) {
//	    c[i] = a[i] + b[i]
//	})
//
// Reduction:
//
//	total, err := forall.SumOf(eng.Reduce(), r, func(i int) float64 {
//	    return a[i] * b[i]
//	})
package forall

import (
	internalexec "github.com/stride-hpc/stride/internal/exec"
	internalforall "github.com/stride-hpc/stride/internal/forall"
	internalset "github.com/stride-hpc/stride/internal/indexset"
	"github.com/stride-hpc/stride/internal/reduce"
)

// Space is any iteration space a policy can traverse. All segment types
// satisfy it.
type Space = internalforall.Space

// Forall applies body to every index of space exactly once under p.
// All applications have completed when Forall returns.
func Forall(p internalexec.Policy, space Space, body func(index int)) error {
	return internalforall.Forall(p, space, body)
}

// ForallUnit is the reduction-aware form of Forall: bind runs once per
// execution unit and returns that unit's loop body, giving the caller a
// place to fork reducer children.
func ForallUnit(p internalexec.Policy, space Space, bind func(u *internalexec.Unit) func(index int)) error {
	return internalforall.ForallUnit(p, space, bind)
}

// ForallSet applies body to every index of a composite index set,
// segments under sp.SegIter and each segment's indices under
// sp.SegExec.
func ForallSet(sp internalexec.SetPolicy, set *internalset.IndexSet, body func(index int)) error {
	return internalforall.ForallSet(sp, set, body)
}

// ForallSetUnit is the reduction-aware form of ForallSet. Segment
// iteration must be single-unit.
func ForallSetUnit(sp internalexec.SetPolicy, set *internalset.IndexSet, bind func(u *internalexec.Unit) func(index int)) error {
	return internalforall.ForallSetUnit(sp, set, bind)
}

// Forall2 iterates the cross product of two spaces, one policy per
// axis, outer first.
func Forall2(np internalexec.NestedPolicy, outer, inner Space, body func(i, j int)) error {
	return internalforall.Forall2(np, outer, inner, body)
}

// Forall3 iterates the cross product of three spaces.
func Forall3(np internalexec.NestedPolicy, s0, s1, s2 Space, body func(i, j, k int)) error {
	return internalforall.Forall3(np, s0, s1, s2, body)
}

// ForallN iterates the cross product of an arbitrary number of spaces.
// The index slice passed to body is only valid during the call.
func ForallN(np internalexec.NestedPolicy, spaces []Space, body func(idx []int)) error {
	return internalforall.ForallN(np, spaces, body)
}

// SumOf sums f(i) over space under p.
func SumOf[T reduce.Value](p internalexec.Policy, space Space, f func(i int) T) (T, error) {
	return internalforall.SumOf(p, space, f)
}

// MinOf returns the minimum of init and f(i) over space under p.
func MinOf[T reduce.Value](p internalexec.Policy, space Space, init T, f func(i int) T) (T, error) {
	return internalforall.MinOf(p, space, init, f)
}

// MaxOf returns the maximum of init and f(i) over space under p.
func MaxOf[T reduce.Value](p internalexec.Policy, space Space, init T, f func(i int) T) (T, error) {
	return internalforall.MaxOf(p, space, init, f)
}

// MinLocOf returns the minimum of f(i) over space and the index it
// occurred at.
func MinLocOf[T reduce.Value](p internalexec.Policy, space Space, init T, initLoc int, f func(i int) T) (T, int, error) {
	return internalforall.MinLocOf(p, space, init, initLoc, f)
}

// MaxLocOf returns the maximum of f(i) over space and the index it
// occurred at.
func MaxLocOf[T reduce.Value](p internalexec.Policy, space Space, init T, initLoc int, f func(i int) T) (T, int, error) {
	return internalforall.MaxLocOf(p, space, init, initLoc, f)
}
