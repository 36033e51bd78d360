package main

import (
	"fmt"
	"log"
	"time"

	"cellcanvas/internal/accel"
	"cellcanvas/internal/engine"
	"cellcanvas/internal/grid"
)

// Game owns the canvas and drives it from Ebiten's update loop.
type Game struct {
	canvas *engine.Canvas
	layout grid.CenteredLayout

	lastUpdate time.Time
	nextSeed   int64

	music *musicLoop
}

// newGame creates the canvas on rt. Accelerator setup failures are fatal.
func newGame(rt accel.Runtime, cfg engine.Config) *Game {
	canvas, err := engine.NewCanvas(rt, cfg)
	if err != nil {
		log.Fatalf("Accelerator initialization failed: %v", err)
	}
	st := canvas.Stats()
	log.Printf("Cell kernel running on %s (%dx%d grid, local %d, global %dx%d)",
		st.Device, st.Columns, st.Rows, st.Local, st.GlobalX, st.GlobalY)

	g := &Game{
		canvas:   canvas,
		layout:   grid.CenteredLayout{Width: windowWidth, Height: windowHeight, Fill: cellFill},
		nextSeed: *seedFlag,
	}
	if *musicFlag != "" {
		m, err := startMusicLoop(*musicFlag)
		if err != nil {
			log.Printf("Music disabled: %v", err)
		} else {
			g.music = m
		}
	}
	return g
}

// Update handles input and advances the simulation by the wall time since
// the previous frame.
func (g *Game) Update() error {
	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
	}
	dt := now.Sub(g.lastUpdate)
	g.lastUpdate = now
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	if err := g.handleInput(); err != nil {
		return err
	}
	if _, err := g.canvas.Update(dt); err != nil {
		return fmt.Errorf("advancing simulation: %w", err)
	}
	return nil
}

// Close stops the music and releases the accelerator session.
func (g *Game) Close() {
	if g.music != nil {
		g.music.Close()
		g.music = nil
	}
	if g.canvas != nil {
		g.canvas.Close()
		g.canvas = nil
	}
}
