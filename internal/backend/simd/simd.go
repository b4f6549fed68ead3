// Package simd implements the vectorization-hint backend: a single unit
// that delivers iterations in lane-width windows sized from the CPU's
// detected vector features, keeping bodies short and branch-free enough
// for the compiler to vectorize.
package simd

import (
	"log/slog"

	"golang.org/x/sys/cpu"

	"github.com/stride-hpc/stride/internal/exec"
	"github.com/stride-hpc/stride/internal/scratch"
)

// Engine chunks the iteration space into vector-lane windows on one
// unit. Ordering within and across windows is program order, so
// reductions stay deterministic.
type Engine struct {
	lane int
	log  *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithLaneWidth overrides the detected lane width. Values below 1 are
// ignored.
func WithLaneWidth(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.lane = n
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates a simd engine with the lane width detected from CPU
// features.
func New(opts ...Option) *Engine {
	e := &Engine{lane: detectLaneWidth()}
	for _, opt := range opts {
		opt(e)
	}
	if e.log != nil {
		e.log.Debug("simd backend ready", "lane", e.lane, "features", Features())
	}
	return e
}

// detectLaneWidth returns the number of float32 lanes in the widest
// vector unit the CPU advertises.
func detectLaneWidth() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 16
	case cpu.X86.HasAVX2:
		return 8
	case cpu.X86.HasSSE2:
		return 4
	case cpu.ARM64.HasASIMD:
		return 4
	default:
		return 4
	}
}

// Features returns the vector feature names detected on this CPU, for
// diagnostics.
func Features() []string {
	var fs []string
	if cpu.X86.HasSSE2 {
		fs = append(fs, "sse2")
	}
	if cpu.X86.HasAVX {
		fs = append(fs, "avx")
	}
	if cpu.X86.HasAVX2 {
		fs = append(fs, "avx2")
	}
	if cpu.X86.HasAVX512F {
		fs = append(fs, "avx512f")
	}
	if cpu.X86.HasFMA {
		fs = append(fs, "fma")
	}
	if cpu.ARM64.HasASIMD {
		fs = append(fs, "asimd")
	}
	if cpu.ARM64.HasSVE {
		fs = append(fs, "sve")
	}
	return fs
}

// Name returns "simd".
func (e *Engine) Name() string { return "simd" }

// Platform returns the host platform.
func (e *Engine) Platform() exec.Platform { return exec.Host }

// Width returns 1: lane windows share one execution unit.
func (e *Engine) Width() int { return 1 }

// LaneWidth returns the window size Launch uses.
func (e *Engine) LaneWidth() int { return e.lane }

// Scratch returns nil; reducers on this engine accumulate directly.
func (e *Engine) Scratch() *scratch.Arena { return nil }

// Launch delivers [0, n) as consecutive lane-width windows to a single
// unit, in order.
func (e *Engine) Launch(n int, _ exec.Tuning, run func(u *exec.Unit, lo, hi int)) error {
	if n <= 0 {
		return nil
	}
	u := exec.NewUnit(0)
	for lo := 0; lo < n; lo += e.lane {
		run(u, lo, min(lo+e.lane, n))
	}
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
	return exec.NewPolicy(exec.SIMD, pat, exec.Sync, exec.Host, e, t)
}
