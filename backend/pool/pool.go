// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pool provides the worker-pool backend: fork-join execution
// over a fixed set of goroutines with static chunking.
//
// Example:
//
//	eng := pool.New(pool.WithWorkers(8))
//	forall.Forall(eng.Exec(), space, body)
package pool

import (
	"log/slog"

	"github.com/stride-hpc/stride/exec"
	internalpool "github.com/stride-hpc/stride/internal/backend/pool"
)

// Engine is the pool backend.
type Engine = internalpool.Engine

// Option configures the engine.
type Option = internalpool.Option

// Compile-time check that Engine implements exec.Engine.
var _ exec.Engine = (*Engine)(nil)

// New creates a pool engine sized to the CPU count unless configured
// otherwise.
func New(opts ...Option) *Engine {
	return internalpool.New(opts...)
}

// WithWorkers sets the worker count.
func WithWorkers(n int) Option {
	return internalpool.WithWorkers(n)
}

// WithMinChunk sets the minimum chunk size below which launches run
// inline on the caller.
func WithMinChunk(n int) Option {
	return internalpool.WithMinChunk(n)
}

// WithReductionIDs sets how many reductions may be live at once.
func WithReductionIDs(n int) Option {
	return internalpool.WithReductionIDs(n)
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return internalpool.WithLogger(log)
}
