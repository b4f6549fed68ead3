// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package indexset provides the public API for composite index sets:
// ordered collections of heterogeneous segments iterated as one space.
//
// Sets are assembled by hand with the push operations or built
// automatically from a raw index array:
//
//	set := indexset.Build(indices)
//	forall.ForallSet(exec.SetPolicy{SegIter: seq.Exec(), SegExec: pool.Exec()},
//	    set, func(i int) { touch(i) })
package indexset

import (
	internalset "github.com/stride-hpc/stride/internal/indexset"
)

// IndexSet is an ordered sequence of segments with a cached total
// length.
type IndexSet = internalset.IndexSet

// Iterator walks every index of every segment in set order.
type Iterator = internalset.Iterator

// Option configures the automatic builder.
type Option = internalset.Option

// Builder policy defaults.
const (
	DefaultRangeAlign     = internalset.DefaultRangeAlign
	DefaultRangeMinLength = internalset.DefaultRangeMinLength
)

// New creates an empty index set.
func New() *IndexSet {
	return internalset.New()
}

// Build classifies a raw index array into Range and List segments whose
// concatenated iteration order equals the input exactly.
func Build(indices []int, opts ...Option) *IndexSet {
	return internalset.Build(indices, opts...)
}

// WithRangeAlign sets the alignment boundary a run must start on to be
// emitted as a Range segment.
func WithRangeAlign(align int) Option {
	return internalset.WithRangeAlign(align)
}

// WithRangeMinLength sets the input length below which Build always
// emits a single List segment.
func WithRangeMinLength(n int) Option {
	return internalset.WithRangeMinLength(n)
}
