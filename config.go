package main

import (
	"image/color"
	"time"
)

// Window, drawing and audio constants. Grid size and step interval defaults
// live in engine.DefaultConfig; the flags override them.
const (
	windowWidth     = 1280
	windowHeight    = 800
	windowTitle     = "Game Of Life"
	cellFill        = 0.85
	maxFrameDelta   = 250 * time.Millisecond
	musicSampleRate = 48000
	musicVolume     = 0.5
)

var (
	backgroundColor       = color.RGBA{255, 255, 255, 255}
	pausedBackgroundColor = color.RGBA{255, 200, 200, 255}
	deadCellColor         = color.RGBA{200, 200, 200, 255}
	aliveCellColor        = color.RGBA{30, 30, 30, 255}
)
