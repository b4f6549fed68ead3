// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package exec provides the public API for execution policies and the
// backend engine contract.
//
// A Policy is an immutable descriptor pairing backend, pattern, launch
// mode, and platform with the engine instance that runs the work.
// Policies come from backend constructors:
//
//	eng := pool.New(pool.WithWorkers(8))
//	forall.Forall(eng.Exec(), space, body)
package exec

import (
	internalexec "github.com/stride-hpc/stride/internal/exec"
)

// Policy is an immutable execution descriptor bound to an engine.
type Policy = internalexec.Policy

// SetPolicy pairs segment-iteration and per-segment policies for
// composite index sets.
type SetPolicy = internalexec.SetPolicy

// NestedPolicy holds one policy per loop axis, outermost first.
type NestedPolicy = internalexec.NestedPolicy

// Tuning carries optional per-call tuning parameters.
type Tuning = internalexec.Tuning

// Engine is the scheduling contract every backend implements.
type Engine = internalexec.Engine

// Unit is the per-execution-unit context engines hand to workers.
type Unit = internalexec.Unit

// Tag identifies an execution backend.
type Tag = internalexec.Tag

// Backend tags.
const (
	Sequential Tag = internalexec.Sequential
	SIMD       Tag = internalexec.SIMD
	Pool       Tag = internalexec.Pool
	Task       Tag = internalexec.Task
	Device     Tag = internalexec.Device
)

// Pattern identifies an execution pattern.
type Pattern = internalexec.Pattern

// Execution patterns.
const (
	Forall Pattern = internalexec.Forall
	Reduce Pattern = internalexec.Reduce
)

// Launch identifies a launch mode.
type Launch = internalexec.Launch

// Launch modes.
const (
	Sync  Launch = internalexec.Sync
	Async Launch = internalexec.Async
)

// Platform identifies where loop bodies execute.
type Platform = internalexec.Platform

// Target platforms.
const (
	Host  Platform = internalexec.Host
	Accel Platform = internalexec.Accel
)

// NewPolicy assembles a policy by hand. Backend Exec and Reduce
// constructors are the usual way to obtain one.
func NewPolicy(tag Tag, pattern Pattern, launch Launch, platform Platform, eng Engine, tuning Tuning) Policy {
	return internalexec.NewPolicy(tag, pattern, launch, platform, eng, tuning)
}
