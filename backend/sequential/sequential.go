// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sequential provides the baseline single-unit backend.
//
// Sequential execution runs every index in program order on the calling
// goroutine. It is the reference the parallel backends are checked
// against and the right default for small iteration spaces.
package sequential

import (
	"log/slog"

	"github.com/stride-hpc/stride/exec"
	internalseq "github.com/stride-hpc/stride/internal/backend/sequential"
)

// Engine is the sequential backend.
type Engine = internalseq.Engine

// Option configures the engine.
type Option = internalseq.Option

// Compile-time check that Engine implements exec.Engine.
var _ exec.Engine = (*Engine)(nil)

// New creates a sequential engine.
//
// Example:
//
//	eng := sequential.New()
//	forall.Forall(eng.Exec(), space, body)
func New(opts ...Option) *Engine {
	return internalseq.New(opts...)
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return internalseq.WithLogger(log)
}
