package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput applies this frame's key and mouse presses to the canvas.
// Escape ends the game by returning ebiten.Termination.
func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) {
		g.canvas.SpeedUp()
	} else if inpututil.IsKeyJustPressed(ebiten.KeyAltLeft) {
		g.canvas.SlowDown()
	}

	if err := g.handleResizeKeys(); err != nil {
		return err
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.canvas.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.canvas.Paused() {
		if err := g.canvas.Step(); err != nil {
			return fmt.Errorf("single step: %w", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.canvas.Randomize(g.nextSeed)
		if *debugFlag {
			log.Printf("Randomized grid with seed %d", g.nextSeed)
		}
		g.nextSeed++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.canvas.Clear()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.canvas.Toggle(g.canvas.Locate(x, y, g.layout))
	}
	return nil
}

// handleResizeKeys maps the arrow keys to grid resizes. Right and Down grow
// the grid, Left and Up shrink it. At most one resize runs per frame.
func (g *Game) handleResizeKeys() error {
	var (
		op   func() error
		name string
	)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		op, name = g.canvas.AddColumn, "add column"
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		op, name = g.canvas.AddRow, "add row"
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		op, name = g.canvas.RemoveColumn, "remove column"
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		op, name = g.canvas.RemoveRow, "remove row"
	default:
		return nil
	}
	if err := op(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
