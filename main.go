package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"cellcanvas/internal/accel"
	"cellcanvas/internal/engine"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("Simulation stopped: %v", err)
	}
}

func run() error {
	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	accel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			return fmt.Errorf("starting CPU profile: %w", err)
		}
		defer stop()
	}

	cfg, err := configFromFlags()
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	rt, err := newRuntime()
	if err != nil {
		return fmt.Errorf("accelerator runtime unavailable: %w", err)
	}
	g := newGame(rt, cfg)
	defer g.Close()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreenFlag)
	return ebiten.RunGame(g)
}

// configFromFlags applies the grid, kernel and device flags to the defaults.
func configFromFlags() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	cfg.Columns = *columnsFlag
	cfg.Rows = *rowsFlag
	prefer, err := accel.ParseDeviceType(*deviceFlag)
	if err != nil {
		return cfg, err
	}
	cfg.Prefer = prefer
	if *kernelFlag != "" {
		if _, err := os.Stat(*kernelFlag); err != nil {
			return cfg, err
		}
		cfg.KernelFS = os.DirFS(filepath.Dir(*kernelFlag))
		cfg.KernelPath = filepath.Base(*kernelFlag)
	}
	return cfg, nil
}

// newRuntime returns the OpenCL runtime when built with -tags opencl and the
// host software runtime otherwise.
func newRuntime() (accel.Runtime, error) {
	if accel.OpenCLAvailable {
		return accel.NewOpenCLRuntime()
	}
	log.Printf("Built without OpenCL; running kernels on the host CPU")
	return accel.NewSoftwareRuntime(engine.SoftwareKernels(), accel.SoftwareOptions{}), nil
}
