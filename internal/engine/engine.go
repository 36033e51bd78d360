// Package engine advances the cell grid one generation at a time on an
// accelerator session and exposes the canvas the frontend drives.
package engine

import (
	"fmt"
	"time"

	"cellcanvas/internal/accel"
	"cellcanvas/internal/grid"
)

// Engine runs transitions of a grid.Store on an accel.Session. The store and
// session must always have the same dimensions; Resize keeps them in step.
type Engine struct {
	store   *grid.Store
	session *accel.Session

	input  []int32
	output []int32

	generation uint64
	lastStep   time.Duration
}

// New pairs store and session. Their dimensions must already match.
func New(store *grid.Store, session *accel.Session) (*Engine, error) {
	e := &Engine{store: store, session: session}
	if err := e.checkLockstep(); err != nil {
		return nil, err
	}
	return e, nil
}

// Step executes exactly one generation: serialize the grid, upload it, run
// the kernel, wait for the device, download the result and write it back.
// On error the grid is left as it was.
func (e *Engine) Step() error {
	if err := e.checkLockstep(); err != nil {
		return err
	}
	start := time.Now()
	e.input = e.store.Dense(e.input)
	if cap(e.output) < len(e.input) {
		e.output = make([]int32, len(e.input))
	}
	e.output = e.output[:len(e.input)]

	if err := e.session.Upload(e.input); err != nil {
		return fmt.Errorf("step %d: %w", e.generation+1, err)
	}
	if err := e.session.Dispatch(); err != nil {
		return fmt.Errorf("step %d: %w", e.generation+1, err)
	}
	if err := e.session.Finish(); err != nil {
		return fmt.Errorf("step %d: %w", e.generation+1, err)
	}
	if err := e.session.Download(e.output); err != nil {
		return fmt.Errorf("step %d: %w", e.generation+1, err)
	}
	e.store.Load(e.output)
	e.generation++
	e.lastStep = time.Since(start)
	return nil
}

// Resize rebuilds the grid at columns x rows, all dead, and resizes the
// session to match before any further step. The generation counter restarts.
func (e *Engine) Resize(columns, rows int) error {
	e.store.ResizeTo(columns, rows)
	e.generation = 0
	if err := e.session.Resize(e.store.Columns(), e.store.Rows()); err != nil {
		return fmt.Errorf("resize to %dx%d: %w", e.store.Columns(), e.store.Rows(), err)
	}
	return nil
}

func (e *Engine) checkLockstep() error {
	columns, rows := e.session.Size()
	if columns != e.store.Columns() || rows != e.store.Rows() {
		return fmt.Errorf("grid is %dx%d but accelerator session is sized %dx%d",
			e.store.Columns(), e.store.Rows(), columns, rows)
	}
	return nil
}

// Generation counts steps since the last resize.
func (e *Engine) Generation() uint64 { return e.generation }

// LastStep is the wall time of the most recent step.
func (e *Engine) LastStep() time.Duration { return e.lastStep }
