// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package segment provides the public API for iteration space segments.
//
// A segment is an ordered, finite sequence of integer indices. Three
// variants exist:
//   - Range: contiguous [begin, end)
//   - RangeStride: strided, ascending or descending
//   - List: explicit indices in arbitrary order
//
// Example:
//
//	r, err := segment.NewRange(0, 100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	forall.Forall(eng.Exec(), r, func(i int) { out[i] = in[i] * 2 })
package segment

import (
	internalseg "github.com/stride-hpc/stride/internal/segment"
)

// Segment is an ordered finite sequence of integer indices. The variant
// set is closed; all implementations live in this module.
type Segment = internalseg.Segment

// Kind discriminates segment variants.
type Kind = internalseg.Kind

// Segment kinds.
const (
	RangeKind       Kind = internalseg.RangeKind
	RangeStrideKind Kind = internalseg.RangeStrideKind
	ListKind        Kind = internalseg.ListKind
)

// Range is a contiguous half-open index interval [begin, end).
type Range = internalseg.Range

// RangeStride is a strided index progression. Negative strides descend.
type RangeStride = internalseg.RangeStride

// List is an explicit array of indices in arbitrary order.
type List = internalseg.List

// Iterator is a restartable forward cursor over a segment's indices.
type Iterator = internalseg.Iterator

// Compile-time checks that every variant implements Segment.
var (
	_ Segment = (*Range)(nil)
	_ Segment = (*RangeStride)(nil)
	_ Segment = (*List)(nil)
)

// NewRange creates the contiguous segment [begin, end). Returns
// ErrInvalidArgument when end < begin.
func NewRange(begin, end int) (*Range, error) {
	return internalseg.NewRange(begin, end)
}

// NewRangeStride creates the strided segment starting at begin,
// stepping by step, stopping before crossing end. Returns
// ErrInvalidArgument when step is zero.
func NewRangeStride(begin, end, step int) (*RangeStride, error) {
	return internalseg.NewRangeStride(begin, end, step)
}

// NewList creates a list segment owning a copy of ix.
func NewList(ix []int) *List {
	return internalseg.NewList(ix)
}

// NewListRef creates a list segment borrowing ix without copying. The
// caller must keep ix alive and unmodified for the lifetime of the
// segment.
func NewListRef(ix []int) *List {
	return internalseg.NewListRef(ix)
}
