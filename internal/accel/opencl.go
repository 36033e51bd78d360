//go:build opencl

package accel

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// OpenCLAvailable reports whether the binary was built with OpenCL support.
const OpenCLAvailable = true

type openCLRuntime struct{}

// NewOpenCLRuntime returns the OpenCL runtime.
func NewOpenCLRuntime() (Runtime, error) {
	return openCLRuntime{}, nil
}

func (openCLRuntime) Name() string { return "opencl" }

func (openCLRuntime) Platforms() ([]Platform, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	out := make([]Platform, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, &openCLPlatform{platform: p})
	}
	return out, nil
}

type openCLPlatform struct {
	platform *cl.Platform
}

func (p *openCLPlatform) Name() string { return p.platform.Name() }

func (p *openCLPlatform) Devices() ([]Device, error) {
	devices, err := p.platform.GetDevices(cl.DeviceTypeAll)
	if err != nil {
		if errors.Is(err, cl.ErrDeviceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing devices on %s: %w", p.platform.Name(), err)
	}
	out := make([]Device, 0, len(devices))
	for _, d := range devices {
		out = append(out, &openCLDevice{device: d, platform: p.platform.Name()})
	}
	return out, nil
}

type openCLDevice struct {
	device   *cl.Device
	platform string
}

func (d *openCLDevice) Info() DeviceInfo {
	return DeviceInfo{
		Name:             strings.TrimSpace(d.device.Name()),
		Vendor:           strings.TrimSpace(d.device.Vendor()),
		Platform:         d.platform,
		Type:             deviceType(d.device.Type()),
		MaxWorkGroupSize: d.device.MaxWorkGroupSize(),
		ComputeUnits:     d.device.MaxComputeUnits(),
	}
}

func deviceType(t cl.DeviceType) DeviceType {
	switch {
	case t&cl.DeviceTypeGPU != 0:
		return DeviceGPU
	case t&cl.DeviceTypeAccelerator != 0:
		return DeviceAccelerator
	case t&cl.DeviceTypeCPU != 0:
		return DeviceCPU
	}
	return DeviceAny
}

func (d *openCLDevice) CreateContext() (Context, error) {
	context, err := cl.CreateContext([]*cl.Device{d.device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(d.device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	return &openCLContext{device: d.device, context: context, queue: queue}, nil
}

type openCLContext struct {
	device  *cl.Device
	context *cl.Context
	queue   *cl.CommandQueue
}

func (c *openCLContext) BuildProgram(source string) (Program, error) {
	program, err := c.context.CreateProgramWithSource([]string{source})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{c.device}, ""); err != nil {
		program.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, &BuildFailure{Log: string(buildErr)}
		}
		return nil, &StatusError{Code: StatusBuildProgramFailure, Msg: err.Error()}
	}
	return &openCLProgram{program: program, device: c.device}, nil
}

func (c *openCLContext) CreateBuffer(byteSize int) (Buffer, error) {
	mem, err := c.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize)
	if err != nil {
		return nil, err
	}
	return &openCLBuffer{mem: mem, size: byteSize}, nil
}

func (c *openCLContext) WriteBuffer(dst Buffer, src []int32) error {
	buf, err := asOpenCLBuffer(dst)
	if err != nil {
		return err
	}
	ev, err := c.queue.EnqueueWriteBuffer(buf.mem, true, 0, len(src)*int32Size, unsafe.Pointer(&src[0]), nil)
	releaseEvent(ev)
	return err
}

func (c *openCLContext) ReadBuffer(src Buffer, dst []int32) error {
	buf, err := asOpenCLBuffer(src)
	if err != nil {
		return err
	}
	ev, err := c.queue.EnqueueReadBuffer(buf.mem, true, 0, len(dst)*int32Size, unsafe.Pointer(&dst[0]), nil)
	releaseEvent(ev)
	return err
}

func (c *openCLContext) EnqueueKernel(k Kernel, global, local []int) error {
	kernel, ok := k.(*openCLKernel)
	if !ok || kernel.kernel == nil {
		return &StatusError{Code: StatusInvalidKernel, Msg: "kernel does not belong to the OpenCL runtime"}
	}
	ev, err := c.queue.EnqueueNDRangeKernel(kernel.kernel, nil, global, local, nil)
	releaseEvent(ev)
	return err
}

func (c *openCLContext) Finish() error {
	return c.queue.Finish()
}

func (c *openCLContext) Release() {
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.context != nil {
		c.context.Release()
		c.context = nil
	}
}

func releaseEvent(ev *cl.Event) {
	if ev != nil {
		ev.Release()
	}
}

type openCLProgram struct {
	program *cl.Program
	device  *cl.Device
}

func (p *openCLProgram) CreateKernel(name string) (Kernel, error) {
	kernel, err := p.program.CreateKernel(name)
	if err != nil {
		return nil, err
	}
	return &openCLKernel{kernel: kernel, name: name, device: p.device}, nil
}

func (p *openCLProgram) Release() {
	if p.program != nil {
		p.program.Release()
		p.program = nil
	}
}

type openCLKernel struct {
	kernel *cl.Kernel
	name   string
	device *cl.Device
}

func (k *openCLKernel) Name() string { return k.name }

func (k *openCLKernel) SetArg(index int, buf Buffer) error {
	b, err := asOpenCLBuffer(buf)
	if err != nil {
		return err
	}
	return k.kernel.SetArgBuffer(index, b.mem)
}

func (k *openCLKernel) WorkGroupSize() (int, error) {
	return k.kernel.WorkGroupSize(k.device)
}

func (k *openCLKernel) Release() {
	if k.kernel != nil {
		k.kernel.Release()
		k.kernel = nil
	}
}

type openCLBuffer struct {
	mem  *cl.MemObject
	size int
}

func (b *openCLBuffer) Size() int { return b.size }

func (b *openCLBuffer) Release() {
	if b.mem != nil {
		b.mem.Release()
		b.mem = nil
	}
}

func asOpenCLBuffer(buf Buffer) (*openCLBuffer, error) {
	b, ok := buf.(*openCLBuffer)
	if !ok || b == nil || b.mem == nil {
		return nil, &StatusError{Code: StatusInvalidMemObject, Msg: "buffer does not belong to the OpenCL runtime"}
	}
	return b, nil
}
