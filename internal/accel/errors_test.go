package accel

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := wrap("compile cell.cl", ErrCompile, &BuildFailure{Log: "line 3: expected ';'\nline 9: unknown type"})
	msg := err.Error()
	for _, want := range []string{"accel: compile cell.cl", "program build failed", "expected ';'", "unknown type"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	if strings.Count(msg, "accel: ") != 1 {
		t.Errorf("Error() = %q, repeats the package prefix", msg)
	}
}

func TestErrorClassification(t *testing.T) {
	kinds := []error{ErrNoPlatform, ErrNoDevice, ErrCompile, ErrAllocation, ErrKernelBind, ErrTransfer, ErrDispatch}
	for _, kind := range kinds {
		err := wrap("op", kind, &StatusError{Code: StatusInvalidValue})
		for _, other := range kinds {
			if got := errors.Is(err, other); got != (other == kind) {
				t.Errorf("errors.Is(%v, %v) = %v", kind, other, got)
			}
		}
		if StatusCode(err) != StatusInvalidValue {
			t.Errorf("StatusCode(%v) = %d, want %d", kind, StatusCode(err), StatusInvalidValue)
		}
		var se *StatusError
		if !errors.As(err, &se) {
			t.Errorf("errors.As(%v, *StatusError) = false", kind)
		}
	}
}

func TestStatusCodeWithoutRuntimeError(t *testing.T) {
	err := &Error{Op: "query devices", Kind: ErrNoDevice, Code: StatusDeviceNotFound}
	if StatusCode(err) != StatusDeviceNotFound {
		t.Errorf("StatusCode() = %d, want %d", StatusCode(err), StatusDeviceNotFound)
	}
	if !strings.Contains(err.Error(), "status -1") {
		t.Errorf("Error() = %q, missing status", err.Error())
	}
	if StatusCode(errors.New("plain")) != 0 {
		t.Error("StatusCode(plain error) != 0")
	}
}
