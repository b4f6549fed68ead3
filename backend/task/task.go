// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package task provides the dynamically scheduled backend: workers pull
// grain-sized chunks from a shared dispenser, balancing irregular loop
// bodies without a static partition.
package task

import (
	"log/slog"

	"github.com/stride-hpc/stride/exec"
	internaltask "github.com/stride-hpc/stride/internal/backend/task"
)

// Engine is the task backend.
type Engine = internaltask.Engine

// Option configures the engine.
type Option = internaltask.Option

// DefaultGrain is the chunk size used when neither the engine nor the
// policy specifies one.
const DefaultGrain = internaltask.DefaultGrain

// Compile-time check that Engine implements exec.Engine.
var _ exec.Engine = (*Engine)(nil)

// New creates a task engine sized to the CPU count unless configured
// otherwise.
func New(opts ...Option) *Engine {
	return internaltask.New(opts...)
}

// WithWorkers sets the worker count.
func WithWorkers(n int) Option {
	return internaltask.WithWorkers(n)
}

// WithGrain sets the default chunk size.
func WithGrain(n int) Option {
	return internaltask.WithGrain(n)
}

// WithReductionIDs sets how many reductions may be live at once.
func WithReductionIDs(n int) Option {
	return internaltask.WithReductionIDs(n)
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return internaltask.WithLogger(log)
}
