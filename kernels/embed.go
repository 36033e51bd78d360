// Package kernels carries the accelerator programs compiled at startup.
package kernels

import "embed"

// CellPath is the path of the transition program inside FS.
const CellPath = "cell.cl"

// FS holds the bundled kernel sources.
//
//go:embed cell.cl
var FS embed.FS
