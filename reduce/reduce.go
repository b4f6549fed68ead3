// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package reduce provides the public API for thread-safe reduction
// variables.
//
// A reducer is created against a policy, accumulated into during a
// loop, and read once with Get. Inside parallel loops each execution
// unit forks its own child:
//
//	sum, _ := reduce.NewSum(eng.Reduce(), 0.0)
//	defer sum.Close()
//	forall.ForallUnit(eng.Reduce(), space, func(u *exec.Unit) func(int) {
//	    s := sum.Fork(u)
//	    u.Defer(s.Close)
//	    return func(i int) { s.Add(a[i]) }
//	})
//	total := sum.Get()
package reduce

import (
	internalreduce "github.com/stride-hpc/stride/internal/reduce"
	"github.com/stride-hpc/stride/internal/exec"
)

// Value is the element type constraint shared by all reducers.
type Value = internalreduce.Value

// Sample pairs a value with the index it was observed at.
type Sample[T Value] = internalreduce.Sample[T]

// Sum reduces by addition.
type Sum[T Value] = internalreduce.Sum[T]

// SumChild is one execution unit's handle on a Sum.
type SumChild[T Value] = internalreduce.SumChild[T]

// Min reduces by minimum.
type Min[T Value] = internalreduce.Min[T]

// MinChild is one execution unit's handle on a Min.
type MinChild[T Value] = internalreduce.MinChild[T]

// Max reduces by maximum.
type Max[T Value] = internalreduce.Max[T]

// MaxChild is one execution unit's handle on a Max.
type MaxChild[T Value] = internalreduce.MaxChild[T]

// MinLoc reduces to the minimum value and its index.
type MinLoc[T Value] = internalreduce.MinLoc[T]

// MinLocChild is one execution unit's handle on a MinLoc.
type MinLocChild[T Value] = internalreduce.MinLocChild[T]

// MaxLoc reduces to the maximum value and its index.
type MaxLoc[T Value] = internalreduce.MaxLoc[T]

// MaxLocChild is one execution unit's handle on a MaxLoc.
type MaxLocChild[T Value] = internalreduce.MaxLocChild[T]

// NewSum creates a sum reducer with the given initial value.
func NewSum[T Value](p exec.Policy, init T) (*Sum[T], error) {
	return internalreduce.NewSum(p, init)
}

// NewSumWithIdentity creates a sum reducer whose per-unit accumulators
// start from identity instead of the zero value.
func NewSumWithIdentity[T Value](p exec.Policy, init, identity T) (*Sum[T], error) {
	return internalreduce.NewSumWithIdentity(p, init, identity)
}

// NewMin creates a min reducer with the given initial value.
func NewMin[T Value](p exec.Policy, init T) (*Min[T], error) {
	return internalreduce.NewMin(p, init)
}

// NewMax creates a max reducer with the given initial value.
func NewMax[T Value](p exec.Policy, init T) (*Max[T], error) {
	return internalreduce.NewMax(p, init)
}

// NewMinLoc creates a min-location reducer seeded with init at initLoc.
func NewMinLoc[T Value](p exec.Policy, init T, initLoc int) (*MinLoc[T], error) {
	return internalreduce.NewMinLoc(p, init, initLoc)
}

// NewMaxLoc creates a max-location reducer seeded with init at initLoc.
func NewMaxLoc[T Value](p exec.Policy, init T, initLoc int) (*MaxLoc[T], error) {
	return internalreduce.NewMaxLoc(p, init, initLoc)
}
