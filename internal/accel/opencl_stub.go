//go:build !opencl

package accel

import "errors"

// OpenCLAvailable reports whether the binary was built with OpenCL support.
const OpenCLAvailable = false

// NewOpenCLRuntime reports that OpenCL support was not compiled in.
func NewOpenCLRuntime() (Runtime, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}
