package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"cellcanvas/internal/grid"
)

// Draw renders the background, every cell and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas.Paused() {
		screen.Fill(pausedBackgroundColor)
	} else {
		screen.Fill(backgroundColor)
	}

	columns, rows := g.canvas.Size()
	for _, c := range g.canvas.Coords() {
		r := g.layout.CellRect(c, columns, rows)
		clr := deadCellColor
		if g.canvas.State(c) == grid.Alive {
			clr = aliveCellColor
		}
		vector.DrawFilledRect(screen, float32(r.MinX), float32(r.MinY), float32(r.Dx()), float32(r.Dy()), clr, false)
	}

	if *debugFlag {
		st := g.canvas.Stats()
		state := "running"
		if st.Paused {
			state = "paused"
		}
		debugMsg := fmt.Sprintf("FPS: %.1f\nDevice: %s\nGrid: %dx%d (local %d, global %dx%d)\nGeneration: %d (%s)\nPopulation: %d\nInterval: %v (divider %d)\nStep: %.2f ms",
			ebiten.ActualFPS(), st.Device, st.Columns, st.Rows, st.Local, st.GlobalX, st.GlobalY,
			st.Generation, state, st.Population, st.Interval, st.Divider,
			st.LastStep.Seconds()*1000)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout tracks the window size so cells fill whatever space is available.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layout.Width, g.layout.Height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
