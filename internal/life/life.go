// Package life implements Conway's rule on bounded, column-major grids.
//
// The same rule runs as the host-side "cell" kernel of the software
// accelerator and as the reference the device output is checked against.
package life

// EntryPoint is the kernel name shared with kernels/cell.cl.
const EntryPoint = "cell"

// Kernel argument positions, in wire order.
const (
	ArgColumnCount = iota
	ArgRowCount
	ArgInput
	ArgOutput
	ArgCount
)

// Rule returns the next state for a cell given its live neighbour count.
func Rule(alive bool, neighbors int) bool {
	return neighbors == 3 || (alive && neighbors == 2)
}

// Neighbors counts live cells around (col, row). Cells outside the grid
// count as dead.
func Neighbors(cells []int32, columns, rows, col, row int) int {
	n := 0
	for dc := -1; dc <= 1; dc++ {
		c := col + dc
		if c < 0 || c >= columns {
			continue
		}
		for dr := -1; dr <= 1; dr++ {
			if dc == 0 && dr == 0 {
				continue
			}
			r := row + dr
			if r < 0 || r >= rows {
				continue
			}
			if cells[c*rows+r] != 0 {
				n++
			}
		}
	}
	return n
}

// Step writes the next generation of in to out. Both are column-major
// columns*rows buffers.
func Step(in, out []int32, columns, rows int) {
	for col := 0; col < columns; col++ {
		for row := 0; row < rows; row++ {
			out[col*rows+row] = next(in, columns, rows, col, row)
		}
	}
}

// CellKernel is the work-item body of the "cell" entry point. Arguments are
// columnCount, rowCount, inputValues and outputValues. Work items outside the
// grid return without writing.
func CellKernel(col, row int, args [][]int32) {
	columns := int(args[ArgColumnCount][0])
	rows := int(args[ArgRowCount][0])
	if col >= columns || row >= rows {
		return
	}
	args[ArgOutput][col*rows+row] = next(args[ArgInput], columns, rows, col, row)
}

func next(cells []int32, columns, rows, col, row int) int32 {
	alive := cells[col*rows+row] != 0
	if Rule(alive, Neighbors(cells, columns, rows, col, row)) {
		return 1
	}
	return 0
}
