// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device provides the accelerator backend on WebGPU via
// go-webgpu (zero-CGO bindings).
//
// Loop bodies are Go closures and run on host workers under a
// grid-of-blocks decomposition; the float32 reduction kernels run on
// the device itself. Construction fails when no adapter is available:
//
//	eng, err := device.New()
//	if err != nil {
//	    // fall back to a host backend
//	}
//	defer eng.Release()
package device

import (
	"log/slog"

	"github.com/stride-hpc/stride/exec"
	internaldevice "github.com/stride-hpc/stride/internal/backend/device"
)

// Engine is the device backend.
type Engine = internaldevice.Engine

// Option configures the engine.
type Option = internaldevice.Option

// DefaultBlock is the block size used when the policy does not set one.
const DefaultBlock = internaldevice.DefaultBlock

// Compile-time check that Engine implements exec.Engine.
var _ exec.Engine = (*Engine)(nil)

// New creates a device engine, initializing WebGPU. Returns an error
// wrapping stride.ErrConfiguration when no adapter or device is
// available.
func New(opts ...Option) (*Engine, error) {
	return internaldevice.New(opts...)
}

// IsAvailable reports whether a WebGPU adapter can be acquired.
func IsAvailable() bool {
	return internaldevice.IsAvailable()
}

// WithWorkers sets the number of host workers driving block execution.
func WithWorkers(n int) Option {
	return internaldevice.WithWorkers(n)
}

// WithBlock sets the default block size.
func WithBlock(n int) Option {
	return internaldevice.WithBlock(n)
}

// WithReductionIDs sets how many reductions may be live at once.
func WithReductionIDs(n int) Option {
	return internaldevice.WithReductionIDs(n)
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return internaldevice.WithLogger(log)
}
