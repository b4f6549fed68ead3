package device

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/stride-hpc/stride"
)

// gpuContext owns the WebGPU objects for one engine, with a shader and
// pipeline cache keyed by kernel name.
type gpuContext struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	adapterInfo *wgpu.AdapterInfoGo
}

// newGPUContext brings up instance, adapter, device, and queue.
func newGPUContext() (ctx *gpuContext, err error) {
	// Recover from panic if the wgpu native library is not found.
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("%w: device backend: native library not available: %v", stride.ErrConfiguration, r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("%w: device backend: no instance: %v", stride.ErrConfiguration, instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: device backend: no adapter: %v", stride.ErrConfiguration, adapterErr)
	}

	adapterInfo, _ := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: device backend: no device: %v", stride.ErrConfiguration, deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: device backend: no queue", stride.ErrConfiguration)
	}

	return &gpuContext{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		adapterInfo: adapterInfo,
	}, nil
}

func (g *gpuContext) release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.pipelines {
		p.Release()
	}
	g.pipelines = nil
	for _, s := range g.shaders {
		s.Release()
	}
	g.shaders = nil

	if g.queue != nil {
		g.queue.Release()
		g.queue = nil
	}
	if g.device != nil {
		g.device.Release()
		g.device = nil
	}
	if g.adapter != nil {
		g.adapter.Release()
		g.adapter = nil
	}
	if g.instance != nil {
		g.instance.Release()
		g.instance = nil
	}
}

// pipeline returns the cached compute pipeline for name, compiling code
// on first use.
func (g *gpuContext) pipeline(name, code string) *wgpu.ComputePipeline {
	g.mu.RLock()
	if p, ok := g.pipelines[name]; ok {
		g.mu.RUnlock()
		return p
	}
	g.mu.RUnlock()

	shader := g.device.CreateShaderModuleWGSL(code)
	p := g.device.CreateComputePipelineSimple(nil, shader, "main")

	g.mu.Lock()
	g.shaders[name] = shader
	g.pipelines[name] = p
	g.mu.Unlock()

	return p
}

// createBuffer creates a storage buffer and uploads data through the
// mapped-at-creation window.
func (g *gpuContext) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))
	buffer := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buffer.GetMappedRange(0, size)
	copy(unsafe.Slice((*byte)(mappedPtr), size), data)
	buffer.Unmap()
	return buffer
}

// createUniformBuffer uploads data into a uniform buffer rounded up to
// the required 16-byte alignment.
func (g *gpuContext) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15
	buffer := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	copy(unsafe.Slice((*byte)(mappedPtr), alignedSize), data)
	buffer.Unmap()
	return buffer
}

// readBuffer copies a storage buffer back to host memory through a
// staging buffer, since storage buffers cannot be mapped directly.
func (g *gpuContext) readBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := g.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	cmdBuffer := encoder.Finish(nil)
	g.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(g.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("device backend: map staging buffer: %w", err)
	}
	mappedPtr := staging.GetMappedRange(0, size)
	result := make([]byte, size)
	copy(result, unsafe.Slice((*byte)(mappedPtr), size))
	staging.Unmap()

	return result, nil
}

func f32bytes(xs []float32) []byte {
	if len(xs) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&xs[0])), len(xs)*4)
}

func bytesF32(bs []byte) []float32 {
	if len(bs) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&bs[0])), len(bs)/4)
}
