// Package sequential implements the baseline backend: one unit, program
// order, no concurrency. It is the reference other backends are checked
// against.
package sequential

import (
	"log/slog"

	"github.com/stride-hpc/stride/internal/exec"
	"github.com/stride-hpc/stride/internal/scratch"
)

// Engine runs every chunk inline on the calling goroutine.
type Engine struct {
	log *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates a sequential engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.log != nil {
		e.log.Debug("sequential backend ready")
	}
	return e
}

// Name returns "sequential".
func (e *Engine) Name() string { return "sequential" }

// Platform returns the host platform.
func (e *Engine) Platform() exec.Platform { return exec.Host }

// Width returns 1: a single execution unit.
func (e *Engine) Width() int { return 1 }

// Scratch returns nil; reducers on this engine accumulate directly.
func (e *Engine) Scratch() *scratch.Arena { return nil }

// Launch delivers [0, n) as one chunk to one unit, in program order.
func (e *Engine) Launch(n int, _ exec.Tuning, run func(u *exec.Unit, lo, hi int)) error {
	if n <= 0 {
		return nil
	}
	u := exec.NewUnit(0)
	run(u, 0, n)
	u.Finish()
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
	return exec.NewPolicy(exec.Sequential, pat, exec.Sync, exec.Host, e, t)
}
