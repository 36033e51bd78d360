package engine

import (
	"errors"
	"testing"
	"time"

	"cellcanvas/internal/accel"
	"cellcanvas/internal/grid"
)

func newTestCanvas(t *testing.T, columns, rows int) *Canvas {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Columns, cfg.Rows = columns, rows
	c, err := NewCanvas(newTestRuntime(), cfg)
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestCanvasEndToEnd(t *testing.T) {
	c := newTestCanvas(t, 3, 3)
	if cols, rows := c.Size(); cols != 3 || rows != 3 {
		t.Fatalf("Size() = %dx%d, want 3x3", cols, rows)
	}
	center := grid.Coord{Col: 1, Row: 1}
	c.Toggle(center)
	if c.State(center) != grid.Alive {
		t.Fatalf("State(%v) = %v after Toggle, want Alive", center, c.State(center))
	}
	if err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	for _, coord := range c.Coords() {
		if c.State(coord) != grid.Dead {
			t.Fatalf("State(%v) = %v, want Dead", coord, c.State(coord))
		}
	}
}

func TestCanvasDefaultSize(t *testing.T) {
	cfg := DefaultConfig()
	c, err := NewCanvas(newTestRuntime(), cfg)
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	defer c.Close()
	st := c.Stats()
	if st.Columns != 30 || st.Rows != 20 {
		t.Fatalf("Stats() size = %dx%d, want 30x20", st.Columns, st.Rows)
	}
	if st.Local != 2 || st.GlobalX != 30 || st.GlobalY != 20 {
		t.Errorf("Stats() geometry = %d/%dx%d, want 2/30x20", st.Local, st.GlobalX, st.GlobalY)
	}
	if st.Device.Type != accel.DeviceCPU {
		t.Errorf("Stats().Device.Type = %v, want cpu", st.Device.Type)
	}
}

func TestCanvasResizeOperations(t *testing.T) {
	c := newTestCanvas(t, 1, 2)
	c.Toggle(grid.Coord{Col: 0, Row: 0})

	if err := c.RemoveColumn(); err != nil {
		t.Fatalf("RemoveColumn() error = %v", err)
	}
	if cols, rows := c.Size(); cols != 1 || rows != 2 {
		t.Fatalf("Size() = %dx%d after RemoveColumn at one column, want 1x2", cols, rows)
	}
	if c.State(grid.Coord{Col: 0, Row: 0}) != grid.Alive {
		t.Fatal("RemoveColumn at one column reset the grid")
	}

	steps := []struct {
		name       string
		op         func() error
		cols, rows int
	}{
		{"AddColumn", c.AddColumn, 2, 2},
		{"AddRow", c.AddRow, 2, 3},
		{"AddColumn", c.AddColumn, 3, 3},
		{"RemoveRow", c.RemoveRow, 3, 2},
		{"RemoveRow", c.RemoveRow, 3, 1},
		{"RemoveRow", c.RemoveRow, 3, 1},
		{"RemoveColumn", c.RemoveColumn, 2, 1},
	}
	for i, s := range steps {
		if err := s.op(); err != nil {
			t.Fatalf("step %d %s() error = %v", i, s.name, err)
		}
		st := c.Stats()
		if st.Columns != s.cols || st.Rows != s.rows {
			t.Fatalf("step %d %s(): size %dx%d, want %dx%d", i, s.name, st.Columns, st.Rows, s.cols, s.rows)
		}
		if st.Population != 0 {
			t.Fatalf("step %d %s(): population %d, want 0", i, s.name, st.Population)
		}
		if st.GlobalX < s.cols || st.GlobalY < s.rows || st.GlobalX%st.Local != 0 || st.GlobalY%st.Local != 0 {
			t.Fatalf("step %d %s(): geometry %+v does not cover %dx%d", i, s.name, st, s.cols, s.rows)
		}
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: Step() after %s error = %v", i, s.name, err)
		}
	}
}

func TestCanvasUpdateFollowsClock(t *testing.T) {
	c := newTestCanvas(t, 3, 3)

	stepped, err := c.Update(900 * time.Millisecond)
	if err != nil || stepped {
		t.Fatalf("Update(900ms) = %v, %v; want false, nil", stepped, err)
	}
	stepped, err = c.Update(200 * time.Millisecond)
	if err != nil || !stepped {
		t.Fatalf("Update(200ms) = %v, %v; want true, nil", stepped, err)
	}
	if g := c.Stats().Generation; g != 1 {
		t.Fatalf("Generation = %d, want 1", g)
	}

	c.SpeedUp()
	c.SpeedUp()
	if iv := c.Stats().Interval; iv != time.Second/3 {
		t.Fatalf("Interval = %v after two SpeedUp, want %v", iv, time.Second/3)
	}
	// 100ms overrun carried from the first firing plus 250ms crosses 333ms.
	stepped, err = c.Update(250 * time.Millisecond)
	if err != nil || !stepped {
		t.Fatalf("Update(250ms) = %v, %v; want true, nil", stepped, err)
	}

	c.SlowDown()
	c.SlowDown()
	c.SlowDown()
	if d := c.Stats().Divider; d != 1 {
		t.Fatalf("Divider = %d, want 1", d)
	}
}

func TestCanvasPause(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.TogglePause()
	if !c.Paused() {
		t.Fatal("Paused() = false after TogglePause")
	}
	stepped, err := c.Update(10 * time.Second)
	if err != nil || stepped {
		t.Fatalf("Update while paused = %v, %v; want false, nil", stepped, err)
	}
	if err := c.Step(); err != nil {
		t.Fatalf("Step() while paused error = %v", err)
	}
	if g := c.Stats().Generation; g != 1 {
		t.Fatalf("Generation = %d after manual Step, want 1", g)
	}
	c.SetPaused(false)
	stepped, err = c.Update(time.Second)
	if err != nil || !stepped {
		t.Fatalf("Update after resume = %v, %v; want true, nil", stepped, err)
	}
}

func TestCanvasClearAndRandomize(t *testing.T) {
	c := newTestCanvas(t, 8, 8)
	c.Randomize(42)
	if c.Stats().Population == 0 {
		t.Fatal("Randomize(42) left an empty grid")
	}
	c.Clear()
	if p := c.Stats().Population; p != 0 {
		t.Fatalf("Population = %d after Clear, want 0", p)
	}
}

func TestCanvasLocateAndToggle(t *testing.T) {
	c := newTestCanvas(t, 4, 2)
	layout := grid.CenteredLayout{Width: 400, Height: 200, Fill: 1}
	// Cells are 100px squares; (250, 150) falls in column 2, row 1.
	coord := c.Locate(250, 150, layout)
	if coord != (grid.Coord{Col: 2, Row: 1}) {
		t.Fatalf("Locate(250, 150) = %v, want (2,1)", coord)
	}
	c.Toggle(coord)
	if c.State(coord) != grid.Alive {
		t.Fatalf("State(%v) = %v, want Alive", coord, c.State(coord))
	}
	if miss := c.Locate(-5, -5, layout); miss != grid.NotFound {
		t.Fatalf("Locate(-5, -5) = %v, want NotFound", miss)
	}
	c.Toggle(grid.NotFound)
	if p := c.Stats().Population; p != 1 {
		t.Fatalf("Population = %d after toggling NotFound, want 1", p)
	}
}

func TestNewCanvasCompileError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KernelPath = "missing.cl"
	_, err := NewCanvas(newTestRuntime(), cfg)
	if !errors.Is(err, accel.ErrCompile) {
		t.Fatalf("NewCanvas() error = %v, want ErrCompile", err)
	}
}
