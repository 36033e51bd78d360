// Package accel binds the simulation to a parallel compute runtime.
//
// A Runtime exposes platforms and devices; a Context on one device compiles
// programs, owns buffers and runs kernels on an in-order queue. Two runtimes
// exist: OpenCL (built with -tags opencl) and a software runtime that runs
// kernels registered as Go functions on the host CPU.
//
// The package-level functions (DiscoverDevices, SelectDevice, CompileProgram,
// AllocateBuffer, BindKernel, UploadSync, DownloadSync, Dispatch, Finish)
// wrap every runtime failure in an *Error classified by one of the Err*
// sentinels. Session ties them together for a resizable 2D grid.
package accel

import (
	"fmt"
	"strings"
)

// DeviceType is the capability class a device reports.
type DeviceType int

const (
	DeviceAny DeviceType = iota
	DeviceCPU
	DeviceGPU
	DeviceAccelerator
)

func (t DeviceType) String() string {
	switch t {
	case DeviceCPU:
		return "cpu"
	case DeviceGPU:
		return "gpu"
	case DeviceAccelerator:
		return "accelerator"
	default:
		return "any"
	}
}

// ParseDeviceType accepts the names produced by DeviceType.String.
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return DeviceAny, nil
	case "cpu":
		return DeviceCPU, nil
	case "gpu":
		return DeviceGPU, nil
	case "accelerator":
		return DeviceAccelerator, nil
	}
	return DeviceAny, fmt.Errorf("unknown device type %q (want gpu, cpu, accelerator or any)", s)
}

// DeviceInfo is what a device reports about itself.
type DeviceInfo struct {
	Name             string
	Vendor           string
	Platform         string
	Type             DeviceType
	MaxWorkGroupSize int
	ComputeUnits     int
}

func (d DeviceInfo) String() string {
	return fmt.Sprintf("%s [%s, %s]", d.Name, d.Type, d.Platform)
}

// Runtime is an installed compute runtime.
type Runtime interface {
	Name() string
	Platforms() ([]Platform, error)
}

// Platform groups the devices of one vendor driver.
type Platform interface {
	Name() string
	Devices() ([]Device, error)
}

// Device is a single compute device.
type Device interface {
	Info() DeviceInfo
	CreateContext() (Context, error)
}

// Context owns programs, buffers and an in-order command queue on one
// device. Transfers block; EnqueueKernel does not, and Finish waits for
// every enqueued kernel.
type Context interface {
	BuildProgram(source string) (Program, error)
	CreateBuffer(byteSize int) (Buffer, error)
	WriteBuffer(dst Buffer, src []int32) error
	ReadBuffer(src Buffer, dst []int32) error
	EnqueueKernel(k Kernel, global, local []int) error
	Finish() error
	Release()
}

// Program is a compiled set of kernels.
type Program interface {
	CreateKernel(name string) (Kernel, error)
	Release()
}

// Kernel is one entry point with its bound arguments.
type Kernel interface {
	Name() string
	SetArg(index int, buf Buffer) error
	// WorkGroupSize is the largest work-group the kernel can run with on
	// the context's device.
	WorkGroupSize() (int, error)
	Release()
}

// Buffer is device memory.
type Buffer interface {
	Size() int
	Release()
}
