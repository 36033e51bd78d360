package engine

import (
	"time"

	"cellcanvas/internal/accel"
	"cellcanvas/internal/clock"
	"cellcanvas/internal/grid"
)

// Canvas is the simulation as seen by a frontend: a grid, the accelerator
// session stepping it and the clock deciding when. It is not safe for
// concurrent use; call it from the frame loop only.
type Canvas struct {
	store   *grid.Store
	session *accel.Session
	engine  *Engine
	clock   *clock.Clock
	paused  bool
}

// Stats summarizes the canvas for overlays and logs.
type Stats struct {
	Columns    int
	Rows       int
	Generation uint64
	Population int
	Divider    int
	Interval   time.Duration
	LastStep   time.Duration
	Paused     bool
	Device     accel.DeviceInfo
	Local      int
	GlobalX    int
	GlobalY    int
}

// NewCanvas creates the grid and its accelerator session together.
func NewCanvas(rt accel.Runtime, cfg Config) (*Canvas, error) {
	store := grid.NewStore(cfg.Columns, cfg.Rows)
	session, err := accel.OpenSession(rt, accel.SessionConfig{
		Source:     cfg.KernelFS,
		Path:       cfg.KernelPath,
		EntryPoint: cfg.EntryPoint,
		Columns:    store.Columns(),
		Rows:       store.Rows(),
		Prefer:     cfg.Prefer,
	})
	if err != nil {
		return nil, err
	}
	eng, err := New(store, session)
	if err != nil {
		session.Close()
		return nil, err
	}
	return &Canvas{
		store:   store,
		session: session,
		engine:  eng,
		clock:   clock.New(cfg.BaseInterval),
	}, nil
}

// Close releases the accelerator session.
func (c *Canvas) Close() {
	c.session.Close()
}

// Update feeds elapsed time to the clock and steps when a generation is due.
// Paused canvases ignore time. It reports whether a step ran.
func (c *Canvas) Update(dt time.Duration) (bool, error) {
	if c.paused {
		return false, nil
	}
	if !c.clock.Advance(dt) {
		return false, nil
	}
	if err := c.engine.Step(); err != nil {
		return false, err
	}
	return true, nil
}

// Step runs one generation immediately, regardless of the clock or pause.
func (c *Canvas) Step() error {
	return c.engine.Step()
}

// Size returns the grid dimensions.
func (c *Canvas) Size() (columns, rows int) {
	return c.store.Columns(), c.store.Rows()
}

// State returns the state of one cell.
func (c *Canvas) State(coord grid.Coord) grid.State {
	return c.store.Get(coord)
}

// Toggle flips one cell. NotFound and out-of-range coordinates are ignored.
func (c *Canvas) Toggle(coord grid.Coord) {
	c.store.Toggle(coord)
}

// Locate maps a screen point to a cell using layout.
func (c *Canvas) Locate(x, y int, layout grid.Layout) grid.Coord {
	return c.store.Locate(x, y, layout)
}

// Coords lists every cell in column-then-row order.
func (c *Canvas) Coords() []grid.Coord {
	return c.store.Coords()
}

// AddColumn grows the grid by one column. Every cell resets to dead.
func (c *Canvas) AddColumn() error {
	return c.Resize(c.store.Columns()+1, c.store.Rows())
}

// AddRow grows the grid by one row. Every cell resets to dead.
func (c *Canvas) AddRow() error {
	return c.Resize(c.store.Columns(), c.store.Rows()+1)
}

// RemoveColumn shrinks the grid by one column; a single column is kept.
func (c *Canvas) RemoveColumn() error {
	if c.store.Columns() <= 1 {
		return nil
	}
	return c.Resize(c.store.Columns()-1, c.store.Rows())
}

// RemoveRow shrinks the grid by one row; a single row is kept.
func (c *Canvas) RemoveRow() error {
	if c.store.Rows() <= 1 {
		return nil
	}
	return c.Resize(c.store.Columns(), c.store.Rows()-1)
}

// Resize sets both dimensions at once. Every cell resets to dead.
func (c *Canvas) Resize(columns, rows int) error {
	return c.engine.Resize(columns, rows)
}

// SpeedUp shortens the interval between generations.
func (c *Canvas) SpeedUp() { c.clock.SpeedUp() }

// SlowDown lengthens the interval, down to the base interval.
func (c *Canvas) SlowDown() { c.clock.SlowDown() }

// Paused reports whether the clock is ignored.
func (c *Canvas) Paused() bool { return c.paused }

// SetPaused stops or resumes automatic stepping.
func (c *Canvas) SetPaused(p bool) { c.paused = p }

// TogglePause flips the paused state.
func (c *Canvas) TogglePause() { c.paused = !c.paused }

// Clear kills every cell.
func (c *Canvas) Clear() { c.store.Clear() }

// Randomize fills the grid from seed.
func (c *Canvas) Randomize(seed int64) { c.store.Randomize(seed) }

// Stats reports the current state of the canvas.
func (c *Canvas) Stats() Stats {
	g := c.session.Geometry()
	return Stats{
		Columns:    c.store.Columns(),
		Rows:       c.store.Rows(),
		Generation: c.engine.Generation(),
		Population: c.store.Population(),
		Divider:    c.clock.Divider(),
		Interval:   c.clock.Interval(),
		LastStep:   c.engine.LastStep(),
		Paused:     c.paused,
		Device:     c.session.Device(),
		Local:      g.Local,
		GlobalX:    g.GlobalX,
		GlobalY:    g.GlobalY,
	}
}
