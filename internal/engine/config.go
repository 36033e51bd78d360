package engine

import (
	"io/fs"
	"time"

	"cellcanvas/internal/accel"
	"cellcanvas/internal/clock"
	"cellcanvas/internal/life"
	"cellcanvas/kernels"
)

// Config describes the canvas created by NewCanvas.
type Config struct {
	Columns      int
	Rows         int
	BaseInterval time.Duration

	KernelFS   fs.FS
	KernelPath string
	EntryPoint string

	Prefer accel.DeviceType
}

// DefaultConfig returns a 30x20 grid stepping once a second with the bundled
// kernel on the first GPU found.
func DefaultConfig() Config {
	return Config{
		Columns:      30,
		Rows:         20,
		BaseInterval: clock.DefaultBase,
		KernelFS:     kernels.FS,
		KernelPath:   kernels.CellPath,
		EntryPoint:   life.EntryPoint,
		Prefer:       accel.DeviceGPU,
	}
}

// SoftwareKernels are the host implementations of the bundled programs.
func SoftwareKernels() accel.Kernels {
	return accel.Kernels{life.EntryPoint: life.CellKernel}
}
