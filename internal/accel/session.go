package accel

import (
	"errors"
	"fmt"
	"io/fs"

	"cellcanvas/internal/workgroup"
)

var errSessionNotSized = errors.New("session not sized")

// SessionConfig selects the device and program a Session binds.
type SessionConfig struct {
	// Source and Path locate the kernel program.
	Source fs.FS
	Path   string
	// EntryPoint takes (columnCount, rowCount, inputValues, outputValues).
	EntryPoint string
	Columns    int
	Rows       int
	Prefer     DeviceType
}

// Session is the accelerator state for one grid: device, context, compiled
// program, the bound kernel, its four buffers and the dispatch geometry.
// Buffers and geometry always match the dimensions last passed to Resize.
type Session struct {
	device  Device
	info    DeviceInfo
	ctx     Context
	program Program
	entry   string

	kernel      Kernel
	columnCount Buffer
	rowCount    Buffer
	input       Buffer
	output      Buffer

	columns  int
	rows     int
	geometry workgroup.Geometry
	ready    bool
}

// OpenSession discovers devices on rt, selects one, compiles the program and
// sizes everything for cfg.Columns x cfg.Rows.
func OpenSession(rt Runtime, cfg SessionConfig) (*Session, error) {
	platforms, err := DiscoverDevices(rt)
	if err != nil {
		return nil, err
	}
	device, err := SelectDevice(platforms, cfg.Prefer)
	if err != nil {
		return nil, err
	}
	info := device.Info()
	Logger().Info("selected accelerator device",
		"runtime", rt.Name(), "device", info.Name, "type", info.Type.String(),
		"platform", info.Platform, "maxWorkGroupSize", info.MaxWorkGroupSize)

	ctx, err := device.CreateContext()
	if err != nil {
		return nil, wrap("create context on "+info.Name, ErrDiscovery, err)
	}
	s := &Session{device: device, info: info, ctx: ctx, entry: cfg.EntryPoint}

	s.program, err = CompileProgram(ctx, cfg.Source, cfg.Path)
	if err != nil {
		s.Close()
		return nil, err
	}
	if s.columnCount, err = AllocateBuffer(ctx, int32Size); err != nil {
		s.Close()
		return nil, err
	}
	if s.rowCount, err = AllocateBuffer(ctx, int32Size); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.Resize(cfg.Columns, cfg.Rows); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Resize reallocates the cell buffers for columns x rows, rebinds the kernel
// to them, uploads the new dimensions and re-plans the dispatch geometry.
// After a failed Resize the session refuses to run until a Resize succeeds.
func (s *Session) Resize(columns, rows int) error {
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	if s.ready {
		if err := Finish(s.ctx); err != nil {
			return err
		}
	}
	s.ready = false
	s.releaseCellResources()

	byteSize := columns * rows * int32Size
	var err error
	if s.input, err = AllocateBuffer(s.ctx, byteSize); err != nil {
		return err
	}
	if s.output, err = AllocateBuffer(s.ctx, byteSize); err != nil {
		return err
	}
	s.kernel, err = BindKernel(s.program, s.entry, s.columnCount, s.rowCount, s.input, s.output)
	if err != nil {
		return err
	}
	if err := UploadSync(s.ctx, []int32{int32(columns)}, s.columnCount); err != nil {
		return err
	}
	if err := UploadSync(s.ctx, []int32{int32(rows)}, s.rowCount); err != nil {
		return err
	}

	limit, err := s.kernel.WorkGroupSize()
	if err != nil || limit < 1 {
		Logger().Debug("kernel work-group size unavailable, using device limit",
			"kernel", s.entry, "err", err, "limit", s.info.MaxWorkGroupSize)
		limit = s.info.MaxWorkGroupSize
	}
	s.geometry = workgroup.Plan(limit, columns, rows)
	s.columns, s.rows = columns, rows
	s.ready = true
	Logger().Debug("accelerator session sized",
		"columns", columns, "rows", rows, "bufferBytes", byteSize,
		"local", s.geometry.Local, "globalX", s.geometry.GlobalX, "globalY", s.geometry.GlobalY)
	return nil
}

// Upload copies the dense input cells to the device.
func (s *Session) Upload(cells []int32) error {
	if err := s.check(len(cells)); err != nil {
		return &Error{Op: "upload cells", Kind: ErrTransfer, Code: StatusInvalidValue, Err: err}
	}
	return UploadSync(s.ctx, cells, s.input)
}

// Dispatch enqueues one transition over the current geometry.
func (s *Session) Dispatch() error {
	if !s.ready {
		return &Error{Op: "dispatch " + s.entry, Kind: ErrDispatch, Code: StatusInvalidKernel,
			Err: errSessionNotSized}
	}
	return Dispatch(s.ctx, s.kernel, s.geometry.LocalShape(), s.geometry.GlobalShape())
}

// Finish waits for the dispatched transition to complete.
func (s *Session) Finish() error {
	return Finish(s.ctx)
}

// Download copies the transition output into cells.
func (s *Session) Download(cells []int32) error {
	if err := s.check(len(cells)); err != nil {
		return &Error{Op: "download cells", Kind: ErrTransfer, Code: StatusInvalidValue, Err: err}
	}
	return DownloadSync(s.ctx, s.output, cells)
}

func (s *Session) check(n int) error {
	if !s.ready {
		return errSessionNotSized
	}
	if n != s.columns*s.rows {
		return fmt.Errorf("%d cells for a %dx%d session", n, s.columns, s.rows)
	}
	return nil
}

// Size returns the grid dimensions the buffers are sized for.
func (s *Session) Size() (columns, rows int) { return s.columns, s.rows }

// Geometry returns the current dispatch geometry.
func (s *Session) Geometry() workgroup.Geometry { return s.geometry }

// Device describes the bound device.
func (s *Session) Device() DeviceInfo { return s.info }

// Ready reports whether the session can run a transition.
func (s *Session) Ready() bool { return s.ready }

func (s *Session) releaseCellResources() {
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.output != nil {
		s.output.Release()
		s.output = nil
	}
	if s.input != nil {
		s.input.Release()
		s.input = nil
	}
}

// Close releases every device resource in reverse order of creation. It is
// safe to call more than once.
func (s *Session) Close() {
	s.ready = false
	s.releaseCellResources()
	if s.rowCount != nil {
		s.rowCount.Release()
		s.rowCount = nil
	}
	if s.columnCount != nil {
		s.columnCount.Release()
		s.columnCount = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.ctx != nil {
		s.ctx.Release()
		s.ctx = nil
	}
}
