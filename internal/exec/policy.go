// Package exec defines the execution policy model: immutable descriptors
// that select a backend, pattern, launch mode, and platform for an
// iteration or reduction, plus the engine contract every backend
// implements.
package exec

// Tag identifies the execution backend a policy selects.
type Tag int

// Backend tags.
const (
	Sequential Tag = iota
	SIMD
	Pool
	Task
	Device
)

// String returns a human-readable backend name.
func (t Tag) String() string {
	switch t {
	case Sequential:
		return "sequential"
	case SIMD:
		return "simd"
	case Pool:
		return "pool"
	case Task:
		return "task"
	case Device:
		return "device"
	default:
		return "unknown"
	}
}

// Pattern identifies the execution pattern a policy describes.
type Pattern int

// Execution patterns.
const (
	Forall Pattern = iota
	Reduce
)

// String returns a human-readable pattern name.
func (p Pattern) String() string {
	switch p {
	case Forall:
		return "forall"
	case Reduce:
		return "reduce"
	default:
		return "unknown"
	}
}

// Launch identifies how work is issued to the backend.
type Launch int

// Launch modes. Every forall call is synchronous from the caller's
// perspective regardless of mode; Async marks backends that overlap work
// internally before the final completion barrier.
const (
	Sync Launch = iota
	Async
)

// Platform identifies where the loop body executes.
type Platform int

// Target platforms.
const (
	Host Platform = iota
	Accel
)

// Tuning carries the optional per-call tuning parameters of a policy.
type Tuning struct {
	Grain int // chunk size hint for dynamic partitioning
	Block int // tile size for device-style block decomposition
}

// Policy is an immutable execution descriptor: configuration, not an
// object with identity. It pairs the descriptive fields with the engine
// instance that will carry out the work; engines are constructed
// explicitly by the caller, never looked up in global state.
type Policy struct {
	tag      Tag
	pattern  Pattern
	launch   Launch
	platform Platform
	tuning   Tuning
	engine   Engine
}

// NewPolicy assembles a policy. Backend packages call this from their
// Exec/Reduce constructors; most callers never build a Policy by hand.
func NewPolicy(tag Tag, pattern Pattern, launch Launch, platform Platform, eng Engine, tuning Tuning) Policy {
	return Policy{
		tag:      tag,
		pattern:  pattern,
		launch:   launch,
		platform: platform,
		tuning:   tuning,
		engine:   eng,
	}
}

// Tag returns the backend identifier.
func (p Policy) Tag() Tag { return p.tag }

// Pattern returns the execution pattern.
func (p Policy) Pattern() Pattern { return p.pattern }

// Launch returns the launch mode.
func (p Policy) Launch() Launch { return p.launch }

// Platform returns the target platform.
func (p Policy) Platform() Platform { return p.platform }

// Tuning returns the policy's tuning parameters.
func (p Policy) Tuning() Tuning { return p.tuning }

// Engine returns the backend engine bound to this policy, or nil for the
// zero Policy.
func (p Policy) Engine() Engine { return p.engine }

// SetPolicy pairs a segment-iteration policy with a per-segment execution
// policy for composite index sets: segments are visited under SegIter
// while each segment's own indices run under SegExec.
type SetPolicy struct {
	SegIter Policy
	SegExec Policy
}

// NestedPolicy holds one policy per loop axis for multi-dimensional
// iteration, outermost first.
type NestedPolicy []Policy
