// Package stride is a portability layer for loop-based numerical code.
//
// A single loop body, written once, runs unchanged across execution
// backends: sequential, SIMD-style lane traversal, a fixed worker pool,
// dynamic task scheduling, and WebGPU devices. The three building blocks
// are:
//
//   - segments and index sets (segment, indexset): composable descriptions
//     of an iteration space: contiguous ranges, strided ranges, and
//     explicit index lists, optionally grouped into ordered composite sets.
//   - execution policies (exec, backend/...): immutable descriptors that
//     pair an iteration pattern with a concrete backend engine.
//   - the iteration and reduction engines (forall, reduce): invoke a body
//     once per index under the chosen policy, and accumulate min/max/sum
//     results safely across concurrent execution units.
//
// Example:
//
//	import (
//	    "github.com/stride-hpc/stride/backend/pool"
//	    "github.com/stride-hpc/stride/forall"
//	    "github.com/stride-hpc/stride/segment"
//	)
//
//	eng := pool.New()
//	r, _ := segment.NewRange(0, 1_000_000)
//	err := forall.Forall(eng.Exec(), r, func(i int) {
//	    out[i] = a[i] + b[i]
//	})
//
// Backends are constructed explicitly and carried by the policy; nothing
// in this module relies on process-global state.
package stride

// Version is the current release of the stride module.
const Version = "v0.3.1"
