// Package pool implements the worker-pool backend: fork-join execution
// over a fixed set of goroutines with static chunking, the moral
// equivalent of a parallel-for over all cores.
package pool

import (
	"log/slog"

	"github.com/stride-hpc/stride/internal/exec"
	"github.com/stride-hpc/stride/internal/parallel"
	"github.com/stride-hpc/stride/internal/scratch"
)

// Engine partitions the iteration space statically across worker
// goroutines. Each launch forks fresh goroutines and joins them before
// returning.
type Engine struct {
	cfg   parallel.Config
	arena *scratch.Arena
	log   *slog.Logger

	ids int
}

// Option configures the engine.
type Option func(*Engine)

// WithWorkers sets the worker count. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.cfg.NumWorkers = n
			e.cfg.Enabled = n > 1
		}
	}
}

// WithMinChunk sets the minimum chunk size below which launches run
// inline on the caller.
func WithMinChunk(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.cfg.MinChunkSize = n
		}
	}
}

// WithReductionIDs sets how many reductions may be live at once.
func WithReductionIDs(n int) Option {
	return func(e *Engine) { e.ids = n }
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates a pool engine sized to the CPU count unless configured
// otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{cfg: parallel.DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	e.arena = scratch.NewArena(e.cfg.NumWorkers, e.ids)
	if e.log != nil {
		e.log.Debug("pool backend ready", "workers", e.cfg.NumWorkers, "min_chunk", e.cfg.MinChunkSize)
	}
	return e
}

// Name returns "pool".
func (e *Engine) Name() string { return "pool" }

// Platform returns the host platform.
func (e *Engine) Platform() exec.Platform { return exec.Host }

// Width returns the worker count.
func (e *Engine) Width() int { return e.cfg.NumWorkers }

// Scratch returns the engine's reduction arena.
func (e *Engine) Scratch() *scratch.Arena { return e.arena }

// Launch statically partitions [0, n) across the workers. A positive
// tuning grain overrides the configured minimum chunk size. Every chunk
// gets its own unit keyed by the worker ordinal.
func (e *Engine) Launch(n int, tuning exec.Tuning, run func(u *exec.Unit, lo, hi int)) error {
	cfg := e.cfg
	if tuning.Grain > 0 {
		cfg.MinChunkSize = tuning.Grain
	}
	parallel.For(n, cfg, func(w, lo, hi int) {
		u := exec.NewUnit(w)
		run(u, lo, hi)
		u.Finish()
	})
	return nil
}

// Exec returns a forall policy bound to this engine.
func (e *Engine) Exec(tuning ...exec.Tuning) exec.Policy {
	return e.policy(exec.Forall, tuning)
}

// Reduce returns a reduction policy bound to this engine.
func (e *Engine) Reduce(tuning ...exec.Tuning) exec.Policy {
	return e.policy(exec.Reduce, tuning)
}

func (e *Engine) policy(pat exec.Pattern, tuning []exec.Tuning) exec.Policy {
	var t exec.Tuning
	if len(tuning) > 0 {
		t = tuning[0]
	}
	return exec.NewPolicy(exec.Pool, pat, exec.Sync, exec.Host, e, t)
}
