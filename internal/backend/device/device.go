// Package device implements the accelerator backend on WebGPU.
//
// The engine splits responsibilities by what each side can execute. Go
// loop bodies cannot be compiled to GPU kernels, so Launch runs them on
// host workers under a grid-of-blocks decomposition matching the
// accelerator's dispatch shape. The reduction kernels in this package
// run on the device itself, over float32 buffers, with per-workgroup
// partials folded on the host.
package device

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/go-webgpu/webgpu/wgpu"
	"golang.org/x/sync/errgroup"

	"github.com/stride-hpc/stride"
	"github.com/stride-hpc/stride/internal/exec"
	"github.com/stride-hpc/stride/internal/scratch"
)

// DefaultBlock is the block size used when the policy does not set one.
// It matches the kernel workgroup size.
const DefaultBlock = workgroupSize

// Engine is the accelerator backend.
type Engine struct {
	gpu     *gpuContext
	workers int
	block   int
	arena   *scratch.Arena
	log     *slog.Logger
}

// Option configures the engine.
type Option func(*opts)

type opts struct {
	workers int
	block   int
	ids     int
	log     *slog.Logger
}

// WithWorkers sets the number of host workers driving block execution.
func WithWorkers(n int) Option {
	return func(o *opts) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithBlock sets the default block size. Values below 1 are ignored.
func WithBlock(n int) Option {
	return func(o *opts) {
		if n >= 1 {
			o.block = n
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

// New creates a device engine, initializing WebGPU. Returns an error
// wrapping ErrConfiguration when no adapter or device is available.
func New(options ...Option) (*Engine, error) {
	o := opts{workers: runtime.NumCPU(), block: DefaultBlock}
	for _, opt := range options {
		opt(&o)
	}
	gpu, err := newGPUContext()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		gpu:     gpu,
		workers: o.workers,
		block:   o.block,
		arena:   scratch.NewArena(o.workers, o.ids),
		log:     o.log,
	}
	if e.log != nil {
		e.log.Info("device backend ready", "adapter", e.AdapterName())
	}
	return e, nil
}

// IsAvailable reports whether a WebGPU adapter can be acquired on this
// system.
func IsAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()
	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()
	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// Release frees all WebGPU resources. The engine must not be used
// afterwards.
func (e *Engine) Release() {
	if e.gpu != nil {
		e.gpu.release()
		e.gpu = nil
	}
}

// Name returns "device".
func (e *Engine) Name() string { return "device" }

// AdapterName returns a description of the underlying adapter.
func (e *Engine) AdapterName() string {
	if e.gpu != nil && e.gpu.adapterInfo != nil {
		return fmt.Sprintf("%s %s", e.gpu.adapterInfo.Device, e.gpu.adapterInfo.Vendor)
	}
	return "unknown"
}

// Platform returns the accelerator platform.
func (e *Engine) Platform() exec.Platform { return exec.Accel }

// Width returns the host worker count.
func (e *Engine) Width() int { return e.workers }

// Scratch returns the engine's reduction arena.
func (e *Engine) Scratch() *scratch.Arena { return e.arena }

// Launch decomposes [0, n) into a grid of blocks and drives the blocks
// from host workers through an atomic dispenser. A positive tuning
// block overrides the configured block size.
func (e *Engine) Launch(n int, tuning exec.Tuning, run func(u *exec.Unit, lo, hi int)) error {
	if e.gpu == nil {
		return fmt.Errorf("%w: device backend released", stride.ErrConfiguration)
	}
	if n <= 0 {
		return nil
	}
	block := e.block
	if tuning.Block > 0 {
		block = tuning.Block
	}
	grid := (n + block - 1) / block
	workers := min(e.workers, grid)
	if workers <= 1 {
		u := exec.NewUnit(0)
		for lo := 0; lo < n; lo += block {
			run(u, lo, min(lo+block, n))
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
				b := int(next.Add(1)) - 1
				if b >= grid {
					return nil
				}
				lo := b * block
				run(u, lo, min(lo+block, n))
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
	if t.Block <= 0 {
		t.Block = e.block
	}
	return exec.NewPolicy(exec.Device, pat, exec.Async, exec.Accel, e, t)
}

// runReduction dispatches one reduction kernel over data and folds the
// per-workgroup partials on the host.
func (e *Engine) runReduction(name, code string, data []float32, identity float32, combine func(a, b float32) float32) (float32, error) {
	if e.gpu == nil {
		return 0, fmt.Errorf("%w: device backend released", stride.ErrConfiguration)
	}
	n := len(data)
	if n == 0 {
		return identity, nil
	}

	pipeline := e.gpu.pipeline(name, code)

	bufferInput := e.gpu.createBuffer(f32bytes(data), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferInput.Release()

	groups := (n + workgroupSize - 1) / workgroupSize
	partialsSize := uint64(groups * 4)
	bufferPartials := e.gpu.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  partialsSize,
	})
	defer bufferPartials.Release()

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	bufferParams := e.gpu.createUniformBuffer(params)
	defer bufferParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := e.gpu.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferInput, 0, uint64(n*4)),
		wgpu.BufferBindingEntry(1, bufferPartials, 0, partialsSize),
		wgpu.BufferBindingEntry(2, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	encoder := e.gpu.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(uint32(groups), 1, 1)
	computePass.End()
	cmdBuffer := encoder.Finish(nil)
	e.gpu.queue.Submit(cmdBuffer)

	raw, err := e.gpu.readBuffer(bufferPartials, partialsSize)
	if err != nil {
		return 0, err
	}

	acc := identity
	for _, p := range bytesF32(raw) {
		acc = combine(acc, p)
	}
	return acc, nil
}

// SumFloat32 sums data on the device.
func (e *Engine) SumFloat32(data []float32) (float32, error) {
	return e.runReduction("reduce_sum", sumShader, data, 0, func(a, b float32) float32 { return a + b })
}

// MinFloat32 returns the minimum of data on the device, or +Inf for
// empty input.
func (e *Engine) MinFloat32(data []float32) (float32, error) {
	if len(data) == 0 {
		return float32(math.Inf(1)), nil
	}
	return e.runReduction("reduce_min", minShader, data, math.MaxFloat32, func(a, b float32) float32 {
		if b < a {
			return b
		}
		return a
	})
}

// MaxFloat32 returns the maximum of data on the device, or -Inf for
// empty input.
func (e *Engine) MaxFloat32(data []float32) (float32, error) {
	if len(data) == 0 {
		return float32(math.Inf(-1)), nil
	}
	return e.runReduction("reduce_max", maxShader, data, -math.MaxFloat32, func(a, b float32) float32 {
		if b > a {
			return b
		}
		return a
	})
}
