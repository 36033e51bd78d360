package accel

import (
	"errors"
	"fmt"
	"strings"
)

// Failure classes of the accelerator layer. Every error returned by the
// binding operations matches exactly one of them with errors.Is.
var (
	ErrDiscovery  = errors.New("accel: discovery failed")
	ErrNoPlatform = fmt.Errorf("%w: no platform found", ErrDiscovery)
	ErrNoDevice   = fmt.Errorf("%w: no device found", ErrDiscovery)
	ErrCompile    = errors.New("accel: program build failed")
	ErrAllocation = errors.New("accel: buffer allocation failed")
	ErrKernelBind = errors.New("accel: kernel binding failed")
	ErrTransfer   = errors.New("accel: buffer transfer failed")
	ErrDispatch   = errors.New("accel: kernel dispatch failed")
)

// Status codes reported by runtimes. The values follow the OpenCL ones so
// diagnostics read the same whichever runtime produced them.
const (
	StatusDeviceNotFound        = -1
	StatusOutOfResources        = -5
	StatusBuildProgramFailure   = -11
	StatusInvalidValue          = -30
	StatusInvalidMemObject      = -38
	StatusInvalidProgram        = -44
	StatusInvalidKernelName     = -46
	StatusInvalidKernel         = -48
	StatusInvalidArgIndex       = -49
	StatusInvalidKernelArgs     = -52
	StatusInvalidWorkDimension  = -53
	StatusInvalidWorkGroupSize  = -54
	StatusInvalidBufferSize     = -61
	StatusInvalidGlobalWorkSize = -63
	StatusPlatformNotFound      = -1001
)

// StatusError is a runtime failure carrying a numeric status code.
type StatusError struct {
	Code int
	Msg  string
}

func (e *StatusError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("%s (status %d)", e.Msg, e.Code)
}

func statusf(code int, format string, args ...any) error {
	return &StatusError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// BuildFailure is returned by Context.BuildProgram when the compiler rejects
// the source. Log holds the compiler output.
type BuildFailure struct {
	Log string
}

func (e *BuildFailure) Error() string {
	if e.Log == "" {
		return "build failed"
	}
	return "build failed: " + firstLine(e.Log)
}

// Error describes a failed accelerator operation.
type Error struct {
	// Op names the operation, e.g. "allocate input buffer".
	Op string
	// Kind is one of the Err* sentinels.
	Kind error
	// Code is the runtime status code, zero when the runtime gave none.
	Code int
	// Log is the compiler diagnostic for ErrCompile.
	Log string
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("accel: ")
	b.WriteString(e.Op)
	if e.Kind != nil {
		b.WriteString(": ")
		b.WriteString(strings.TrimPrefix(e.Kind.Error(), "accel: "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	} else if e.Code != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Code)
	}
	if e.Log != "" {
		b.WriteString("\n")
		b.WriteString(e.Log)
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// StatusCode returns the runtime status code carried by err, or zero.
func StatusCode(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != 0 {
		return ae.Code
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

func wrap(op string, kind, err error) *Error {
	e := &Error{Op: op, Kind: kind, Err: err}
	var se *StatusError
	if errors.As(err, &se) {
		e.Code = se.Code
	}
	var bf *BuildFailure
	if errors.As(err, &bf) {
		e.Log = bf.Log
	}
	return e
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
