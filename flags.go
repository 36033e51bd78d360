package main

import "flag"

// Command-line flags. Grid and device flags are read once in main; the rest
// are consulted while the game runs.
var (
	// kernelFlag replaces the embedded kernel with a file on disk.
	kernelFlag = flag.String("kernel", "", "path to an OpenCL kernel source to use instead of the embedded cell.cl")

	// deviceFlag picks the preferred accelerator device type.
	deviceFlag = flag.String("device", "gpu", "preferred device type: gpu, cpu, accelerator or any")

	columnsFlag = flag.Int("columns", 30, "initial number of grid columns")
	rowsFlag    = flag.Int("rows", 20, "initial number of grid rows")

	// fullscreenFlag starts in full-screen mode.
	fullscreenFlag = flag.Bool("fullscreen", false, "run full screen")

	// musicFlag names a WAV file looped in the background.
	musicFlag = flag.String("music", "", "WAV file to loop as background music")

	// debugFlag enables the device and timing overlay and debug logging.
	debugFlag = flag.Bool("debug", false, "show device and simulation overlay and log accelerator details")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")

	// seedFlag seeds the first randomize; each further press uses the next seed.
	seedFlag = flag.Int64("seed", 1, "seed for the R randomize key")
)
