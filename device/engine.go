package device

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/notargets/gocca"
)

// Engine owns an OCCA device and a cache of compiled kernels. An Engine
// doubles as the execution system tag for device-resident vectors: any
// vector created against it reports the Engine from its System method.
type Engine struct {
	dev *gocca.OCCADevice

	mu      sync.Mutex
	kernels map[string]*gocca.OCCAKernel
}

// NewEngine creates an Engine from an OCCA device-properties JSON
// string, e.g. `{"mode": "CUDA", "device_id": 0}`.
func NewEngine(props string) (*Engine, error) {
	dev, err := gocca.NewDevice(props)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCCA device from %s: %w", props, err)
	}
	return &Engine{
		dev:     dev,
		kernels: make(map[string]*gocca.OCCAKernel),
	}, nil
}

// Name identifies the engine as an execution system.
func (e *Engine) Name() string {
	return "device(" + e.dev.Mode() + ")"
}

// Mode returns the OCCA backend mode, e.g. "CUDA", "OpenMP", "Serial".
func (e *Engine) Mode() string {
	return e.dev.Mode()
}

// Malloc allocates device memory, optionally initialized from src.
func (e *Engine) Malloc(bytes int64, src unsafe.Pointer) *gocca.OCCAMemory {
	return e.dev.Malloc(bytes, src, nil)
}

// Finish blocks until all queued device work has completed.
func (e *Engine) Finish() {
	e.dev.Finish()
}

// KernelCount reports the number of compiled kernels held in the cache.
func (e *Engine) KernelCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.kernels)
}

// kernel returns the cached kernel for name, building it from source on
// first use.
func (e *Engine) kernel(name string, source func() string) (*gocca.OCCAKernel, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if k, exists := e.kernels[name]; exists {
		return k, nil
	}

	var k *gocca.OCCAKernel
	var err error
	if e.dev.Mode() == "OpenMP" {
		// Workaround for OCCA bug: OpenMP doesn't get default -O3 flag
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		k, err = e.dev.BuildKernelFromString(source(), name, props)
	} else {
		k, err = e.dev.BuildKernelFromString(source(), name, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build kernel %s: %w", name, err)
	}
	if k == nil {
		return nil, fmt.Errorf("kernel build returned nil for %s", name)
	}

	e.kernels[name] = k
	return k, nil
}

// Free releases all cached kernels and the device itself. The Engine
// must not be used afterwards.
func (e *Engine) Free() {
	e.mu.Lock()
	for _, k := range e.kernels {
		k.Free()
	}
	e.kernels = make(map[string]*gocca.OCCAKernel)
	e.mu.Unlock()

	e.dev.Free()
}
