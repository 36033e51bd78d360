package accel

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// KernelFunc is the body of one work item. x and y are its global ids and
// args holds the bound buffers in argument order.
type KernelFunc func(x, y int, args [][]int32)

// Kernels maps entry point names to their host implementations.
type Kernels map[string]KernelFunc

// SoftwareOptions configures the software runtime's single device.
type SoftwareOptions struct {
	DeviceName       string
	Type             DeviceType
	MaxWorkGroupSize int
	// Workers caps how many work-groups run at once.
	Workers int
}

const (
	defaultSoftwareDevice       = "host"
	defaultSoftwareWorkGroupMax = 256
)

// SoftwareRuntime runs programs on the host CPU. A program compiles when
// every __kernel it declares has a registered KernelFunc; work-groups of a
// dispatch run in parallel on up to Workers goroutines.
type SoftwareRuntime struct {
	kernels Kernels
	opts    SoftwareOptions
}

// NewSoftwareRuntime returns a runtime with one platform holding one device.
func NewSoftwareRuntime(kernels Kernels, opts SoftwareOptions) *SoftwareRuntime {
	if opts.DeviceName == "" {
		opts.DeviceName = defaultSoftwareDevice
	}
	if opts.Type == DeviceAny {
		opts.Type = DeviceCPU
	}
	if opts.MaxWorkGroupSize < 1 {
		opts.MaxWorkGroupSize = defaultSoftwareWorkGroupMax
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	return &SoftwareRuntime{kernels: kernels, opts: opts}
}

func (r *SoftwareRuntime) Name() string { return "software" }

func (r *SoftwareRuntime) Platforms() ([]Platform, error) {
	return []Platform{&softPlatform{rt: r}}, nil
}

type softPlatform struct {
	rt *SoftwareRuntime
}

func (p *softPlatform) Name() string { return "Go host" }

func (p *softPlatform) Devices() ([]Device, error) {
	return []Device{&softDevice{rt: p.rt}}, nil
}

type softDevice struct {
	rt *SoftwareRuntime
}

func (d *softDevice) Info() DeviceInfo {
	return DeviceInfo{
		Name:             d.rt.opts.DeviceName,
		Vendor:           "Go",
		Platform:         "Go host",
		Type:             d.rt.opts.Type,
		MaxWorkGroupSize: d.rt.opts.MaxWorkGroupSize,
		ComputeUnits:     d.rt.opts.Workers,
	}
}

func (d *softDevice) CreateContext() (Context, error) {
	return &softContext{device: d}, nil
}

type softContext struct {
	device *softDevice

	mu       sync.Mutex
	pending  *errgroup.Group
	released bool
}

var (
	commentRe = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)
	kernelRe  = regexp.MustCompile(`__kernel\s+void\s+(\w+)\s*\(([^)]*)\)`)
)

func (c *softContext) BuildProgram(source string) (Program, error) {
	if c.released {
		return nil, statusf(StatusInvalidValue, "context released")
	}
	stripped := commentRe.ReplaceAllString(source, "")
	matches := kernelRe.FindAllStringSubmatch(stripped, -1)
	if len(matches) == 0 {
		return nil, &BuildFailure{Log: "error: program declares no __kernel functions"}
	}
	prog := &softProgram{entries: make(map[string]softEntry, len(matches)), limit: c.device.rt.opts.MaxWorkGroupSize}
	var diag []string
	for _, m := range matches {
		name := m[1]
		fn, ok := c.device.rt.kernels[name]
		if !ok {
			diag = append(diag, fmt.Sprintf("error: kernel %q has no host implementation", name))
			continue
		}
		prog.entries[name] = softEntry{fn: fn, argc: countParams(m[2])}
	}
	if len(diag) > 0 {
		return nil, &BuildFailure{Log: strings.Join(diag, "\n")}
	}
	return prog, nil
}

func countParams(list string) int {
	n := 0
	for _, p := range strings.Split(list, ",") {
		if strings.TrimSpace(p) != "" && strings.TrimSpace(p) != "void" {
			n++
		}
	}
	return n
}

func (c *softContext) CreateBuffer(byteSize int) (Buffer, error) {
	if byteSize <= 0 || byteSize%int32Size != 0 {
		return nil, statusf(StatusInvalidBufferSize, "buffer size %d is not a positive multiple of %d", byteSize, int32Size)
	}
	return &softBuffer{data: make([]int32, byteSize/int32Size)}, nil
}

func (c *softContext) WriteBuffer(dst Buffer, src []int32) error {
	buf, err := asSoftBuffer(dst)
	if err != nil {
		return err
	}
	if err := c.wait(); err != nil {
		return err
	}
	copy(buf.data, src)
	return nil
}

func (c *softContext) ReadBuffer(src Buffer, dst []int32) error {
	buf, err := asSoftBuffer(src)
	if err != nil {
		return err
	}
	if err := c.wait(); err != nil {
		return err
	}
	copy(dst, buf.data)
	return nil
}

func (c *softContext) EnqueueKernel(k Kernel, global, local []int) error {
	kernel, ok := k.(*softKernel)
	if !ok || kernel.released {
		return statusf(StatusInvalidKernel, "kernel does not belong to the software runtime")
	}
	if len(global) != 2 || len(local) != 2 {
		return statusf(StatusInvalidWorkDimension, "want 2 dimensions, got global=%v local=%v", global, local)
	}
	if global[0] < 1 || global[1] < 1 {
		return statusf(StatusInvalidGlobalWorkSize, "global size %v", global)
	}
	if local[0] < 1 || local[1] < 1 || local[0]*local[1] > c.device.rt.opts.MaxWorkGroupSize {
		return statusf(StatusInvalidWorkGroupSize, "local size %v exceeds limit %d", local, c.device.rt.opts.MaxWorkGroupSize)
	}
	if global[0]%local[0] != 0 || global[1]%local[1] != 0 {
		return statusf(StatusInvalidWorkGroupSize, "global size %v is not a multiple of local size %v", global, local)
	}
	args := make([][]int32, len(kernel.args))
	for i, b := range kernel.args {
		if b == nil {
			return statusf(StatusInvalidKernelArgs, "argument %d of %s is not set", i, kernel.name)
		}
		if b.released {
			return statusf(StatusInvalidMemObject, "argument %d of %s was released", i, kernel.name)
		}
		args[i] = b.data
	}
	// In-order queue: the previous dispatch completes before this one starts.
	if err := c.wait(); err != nil {
		return err
	}

	fn := kernel.fn
	lx, ly := local[0], local[1]
	g := new(errgroup.Group)
	g.SetLimit(c.device.rt.opts.Workers)
	for gx := 0; gx < global[0]; gx += lx {
		for gy := 0; gy < global[1]; gy += ly {
			x0, y0 := gx, gy
			g.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = statusf(StatusOutOfResources, "work-group (%d,%d) of %s: %v", x0/lx, y0/ly, kernel.name, r)
					}
				}()
				for x := x0; x < x0+lx; x++ {
					for y := y0; y < y0+ly; y++ {
						fn(x, y, args)
					}
				}
				return nil
			})
		}
	}
	c.mu.Lock()
	c.pending = g
	c.mu.Unlock()
	return nil
}

func (c *softContext) Finish() error {
	return c.wait()
}

func (c *softContext) wait() error {
	c.mu.Lock()
	g := c.pending
	c.pending = nil
	c.mu.Unlock()
	if g == nil {
		return nil
	}
	return g.Wait()
}

func (c *softContext) Release() {
	_ = c.wait()
	c.released = true
}

type softEntry struct {
	fn   KernelFunc
	argc int
}

type softProgram struct {
	entries map[string]softEntry
	limit   int
}

func (p *softProgram) CreateKernel(name string) (Kernel, error) {
	entry, ok := p.entries[name]
	if !ok {
		return nil, statusf(StatusInvalidKernelName, "no kernel named %q in program", name)
	}
	return &softKernel{name: name, fn: entry.fn, args: make([]*softBuffer, entry.argc), limit: p.limit}, nil
}

func (p *softProgram) Release() {}

type softKernel struct {
	name     string
	fn       KernelFunc
	args     []*softBuffer
	limit    int
	released bool
}

func (k *softKernel) Name() string { return k.name }

func (k *softKernel) SetArg(index int, buf Buffer) error {
	if index < 0 || index >= len(k.args) {
		return statusf(StatusInvalidArgIndex, "%s takes %d arguments, got index %d", k.name, len(k.args), index)
	}
	b, err := asSoftBuffer(buf)
	if err != nil {
		return err
	}
	k.args[index] = b
	return nil
}

func (k *softKernel) WorkGroupSize() (int, error) {
	return k.limit, nil
}

func (k *softKernel) Release() {
	k.released = true
	k.args = nil
}

type softBuffer struct {
	data     []int32
	released bool
}

func (b *softBuffer) Size() int { return len(b.data) * int32Size }

func (b *softBuffer) Release() {
	b.released = true
}

func asSoftBuffer(buf Buffer) (*softBuffer, error) {
	b, ok := buf.(*softBuffer)
	if !ok || b == nil {
		return nil, statusf(StatusInvalidMemObject, "buffer does not belong to the software runtime")
	}
	if b.released {
		return nil, statusf(StatusInvalidMemObject, "buffer was released")
	}
	return b, nil
}
