// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package simd provides the vectorization-hint backend.
//
// The engine delivers iterations in lane-width windows sized from the
// CPU's detected vector features. Execution stays on one unit in
// program order, so reductions under this backend are deterministic.
package simd

import (
	"log/slog"

	"github.com/stride-hpc/stride/exec"
	internalsimd "github.com/stride-hpc/stride/internal/backend/simd"
)

// Engine is the simd backend.
type Engine = internalsimd.Engine

// Option configures the engine.
type Option = internalsimd.Option

// Compile-time check that Engine implements exec.Engine.
var _ exec.Engine = (*Engine)(nil)

// New creates a simd engine with the lane width detected from CPU
// features.
func New(opts ...Option) *Engine {
	return internalsimd.New(opts...)
}

// Features returns the vector feature names detected on this CPU.
func Features() []string {
	return internalsimd.Features()
}

// WithLaneWidth overrides the detected lane width.
func WithLaneWidth(n int) Option {
	return internalsimd.WithLaneWidth(n)
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return internalsimd.WithLogger(log)
}
