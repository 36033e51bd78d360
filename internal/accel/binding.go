package accel

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unsafe"
)

// int32Size is the byte width of one cell value on the device.
const int32Size = int(unsafe.Sizeof(int32(0)))

// PlatformDevices is one platform and the devices it reported, in order.
type PlatformDevices struct {
	Platform Platform
	Devices  []Device
}

// DiscoverDevices lists every device of every platform rt reports. It fails
// with ErrNoPlatform when there are no platforms and ErrNoDevice when none
// of them has a device.
func DiscoverDevices(rt Runtime) ([]PlatformDevices, error) {
	platforms, err := rt.Platforms()
	if err != nil {
		return nil, wrap("query "+rt.Name()+" platforms", ErrNoPlatform, err)
	}
	if len(platforms) == 0 {
		return nil, &Error{Op: "query " + rt.Name() + " platforms", Kind: ErrNoPlatform, Code: StatusPlatformNotFound}
	}
	out := make([]PlatformDevices, 0, len(platforms))
	total := 0
	for _, p := range platforms {
		devices, derr := p.Devices()
		if derr != nil {
			Logger().Warn("skipping platform", "platform", p.Name(), "err", derr)
			continue
		}
		out = append(out, PlatformDevices{Platform: p, Devices: devices})
		total += len(devices)
	}
	if total == 0 {
		return nil, &Error{Op: "query " + rt.Name() + " devices", Kind: ErrNoDevice, Code: StatusDeviceNotFound}
	}
	return out, nil
}

// SelectDevice picks the first device, in platform order, whose reported type
// is prefer. Without a match, or with DeviceAny, it falls back to the first
// device found.
func SelectDevice(platforms []PlatformDevices, prefer DeviceType) (Device, error) {
	var first Device
	for _, pd := range platforms {
		for _, d := range pd.Devices {
			if first == nil {
				first = d
			}
			if prefer != DeviceAny && d.Info().Type == prefer {
				return d, nil
			}
		}
	}
	if first == nil {
		return nil, &Error{Op: "select device", Kind: ErrNoDevice, Code: StatusDeviceNotFound}
	}
	return first, nil
}

// CompileProgram reads the kernel source at path and builds it for the
// context's device. Build failures carry the compiler log.
func CompileProgram(ctx Context, fsys fs.FS, path string) (Program, error) {
	op := "compile " + path
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, wrap(op, ErrCompile, err)
	}
	source := string(raw)
	if strings.TrimSpace(source) == "" {
		return nil, &Error{Op: op, Kind: ErrCompile, Code: StatusInvalidValue, Log: "empty program source"}
	}
	program, err := ctx.BuildProgram(source)
	if err != nil {
		return nil, wrap(op, ErrCompile, err)
	}
	return program, nil
}

// AllocateBuffer creates a device buffer of byteSize bytes.
func AllocateBuffer(ctx Context, byteSize int) (Buffer, error) {
	op := fmt.Sprintf("allocate %d bytes", byteSize)
	if byteSize <= 0 {
		return nil, &Error{Op: op, Kind: ErrAllocation, Code: StatusInvalidBufferSize}
	}
	buf, err := ctx.CreateBuffer(byteSize)
	if err != nil {
		return nil, wrap(op, ErrAllocation, err)
	}
	return buf, nil
}

// BindKernel creates entryPoint from program and binds buffers as its
// positional arguments in the order given.
func BindKernel(program Program, entryPoint string, buffers ...Buffer) (Kernel, error) {
	kernel, err := program.CreateKernel(entryPoint)
	if err != nil {
		return nil, wrap("create kernel "+entryPoint, ErrKernelBind, err)
	}
	for i, buf := range buffers {
		if err := kernel.SetArg(i, buf); err != nil {
			kernel.Release()
			return nil, wrap(fmt.Sprintf("bind argument %d of %s", i, entryPoint), ErrKernelBind, err)
		}
	}
	return kernel, nil
}

// UploadSync copies host into buf and returns once the copy is complete.
func UploadSync(ctx Context, host []int32, buf Buffer) error {
	byteSize := len(host) * int32Size
	op := fmt.Sprintf("upload %d bytes", byteSize)
	if err := checkTransfer(byteSize, buf); err != nil {
		return &Error{Op: op, Kind: ErrTransfer, Code: StatusInvalidValue, Err: err}
	}
	if err := ctx.WriteBuffer(buf, host); err != nil {
		return wrap(op, ErrTransfer, err)
	}
	return nil
}

// DownloadSync copies buf into host and returns once the copy is complete.
func DownloadSync(ctx Context, buf Buffer, host []int32) error {
	byteSize := len(host) * int32Size
	op := fmt.Sprintf("download %d bytes", byteSize)
	if err := checkTransfer(byteSize, buf); err != nil {
		return &Error{Op: op, Kind: ErrTransfer, Code: StatusInvalidValue, Err: err}
	}
	if err := ctx.ReadBuffer(buf, host); err != nil {
		return wrap(op, ErrTransfer, err)
	}
	return nil
}

func checkTransfer(byteSize int, buf Buffer) error {
	if buf == nil {
		return errors.New("no buffer")
	}
	if byteSize == 0 {
		return errors.New("empty host slice")
	}
	if byteSize > buf.Size() {
		return fmt.Errorf("host slice of %d bytes exceeds %d byte buffer", byteSize, buf.Size())
	}
	return nil
}

// Dispatch enqueues kernel over the global range tiled by local. It does
// not wait; call Finish before reading results.
func Dispatch(ctx Context, kernel Kernel, local, global []int) error {
	if err := ctx.EnqueueKernel(kernel, global, local); err != nil {
		return wrap(fmt.Sprintf("enqueue %s global=%v local=%v", kernel.Name(), global, local), ErrDispatch, err)
	}
	return nil
}

// Finish blocks until every enqueued kernel has completed.
func Finish(ctx Context) error {
	if err := ctx.Finish(); err != nil {
		return wrap("finish queue", ErrDispatch, err)
	}
	return nil
}
