// Package task implements the work-stealing-flavored backend: a bounded
// set of workers pulls grain-sized chunks from a shared atomic dispenser,
// so irregular bodies balance dynamically instead of committing to a
// static partition up front.
package task

import (
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/stride-hpc/stride/internal/exec"
	"github.com/stride-hpc/stride/internal/scratch"
)

// DefaultGrain is the chunk size used when neither the engine nor the
// policy specifies one.
const DefaultGrain = 64

// Engine schedules chunks dynamically over a fixed worker set.
type Engine struct {
	workers int
	grain   int
	arena   *scratch.Arena
	log     *slog.Logger
}

// Option configures the engine.
type Option func(*opts)

type opts struct {
	workers int
	grain   int
	ids     int
	log     *slog.Logger
}

// WithWorkers sets the worker count. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *opts) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithGrain sets the default chunk size. Values below 1 are ignored.
func WithGrain(n int) Option {
	return func(o *opts) {
		if n >= 1 {
			o.grain = n
		}
	}
}

// WithReductionIDs sets how many reductions may be live at once.
func WithReductionIDs(n int) Option {
	return func(o *opts) { o.ids = n }
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *opts) { o.log = log }
}

// New creates a task engine sized to the CPU count unless configured
// otherwise.
func New(options ...Option) *Engine {
	o := opts{workers: runtime.NumCPU(), grain: DefaultGrain}
	for _, opt := range options {
		opt(&o)
	}
	e := &Engine{
		workers: o.workers,
		grain:   o.grain,
		arena:   scratch.NewArena(o.workers, o.ids),
		log:     o.log,
	}
	if e.log != nil {
		e.log.Debug("task backend ready", "workers", e.workers, "grain", e.grain)
	}
	return e
}

// Name returns "task".
func (e *Engine) Name() string { return "task" }

// Platform returns the host platform.
func (e *Engine) Platform() exec.Platform { return exec.Host }

// Width returns the worker count.
func (e *Engine) Width() int { return e.workers }

// Scratch returns the engine's reduction arena.
func (e *Engine) Scratch() *scratch.Arena { return e.arena }

// Launch carves [0, n) into grain-sized chunks dispensed by an atomic
// counter. Each worker goroutine owns one unit for its whole run, so
// per-unit setup amortizes across every chunk it claims.
func (e *Engine) Launch(n int, tuning exec.Tuning, run func(u *exec.Unit, lo, hi int)) error {
	if n <= 0 {
		return nil
	}
	grain := e.grain
	if tuning.Grain > 0 {
		grain = tuning.Grain
	}
	chunks := (n + grain - 1) / grain
	workers := min(e.workers, chunks)
	if workers <= 1 {
		u := exec.NewUnit(0)
		for lo := 0; lo < n; lo += grain {
			run(u, lo, min(lo+grain, n))
		}
		u.Finish()
		return nil
	}

	var next atomic.Int64
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			u := exec.NewUnit(w)
			defer u.Finish()
			for {
				c := int(next.Add(1)) - 1
				if c >= chunks {
					return nil
				}
				lo := c * grain
				run(u, lo, min(lo+grain, n))
			}
		})
	}
	return g.Wait()
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
	return exec.NewPolicy(exec.Task, pat, exec.Async, exec.Host, e, t)
}
