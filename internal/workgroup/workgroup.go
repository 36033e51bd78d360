// Package workgroup derives 2D dispatch geometry from a device's reported
// work-group limit and the size of the grid being processed.
package workgroup

// Geometry is the tiling used for one 2D kernel dispatch.
type Geometry struct {
	Local   int
	GlobalX int
	GlobalY int
}

// LocalShape returns the local work size as a two-element range.
func (g Geometry) LocalShape() []int { return []int{g.Local, g.Local} }

// GlobalShape returns the padded global work size as a two-element range.
func (g Geometry) GlobalShape() []int { return []int{g.GlobalX, g.GlobalY} }

// Groups reports how many work-groups the dispatch covers per dimension.
func (g Geometry) Groups() (int, int) {
	if g.Local < 1 {
		return g.GlobalX, g.GlobalY
	}
	return g.GlobalX / g.Local, g.GlobalY / g.Local
}

// BestLocalDimension returns the edge of the largest square tile that fits
// the work-group limit. L doubles while (2L)^2 stays below the limit.
func BestLocalDimension(maxWorkGroupSize int) int {
	edge := 1
	for (edge*2)*(edge*2) < maxWorkGroupSize {
		edge *= 2
	}
	return edge
}

// GlobalShape pads width and height up to the next multiple of local so the
// tiled dispatch covers the whole grid. Surplus work items must be no-ops.
func GlobalShape(local, width, height int) (int, int) {
	if local < 1 {
		local = 1
	}
	return roundUp(width, local), roundUp(height, local)
}

// Plan combines BestLocalDimension and GlobalShape.
func Plan(maxWorkGroupSize, width, height int) Geometry {
	local := BestLocalDimension(maxWorkGroupSize)
	gx, gy := GlobalShape(local, width, height)
	return Geometry{Local: local, GlobalX: gx, GlobalY: gy}
}

func roundUp(n, multiple int) int {
	if n <= 0 {
		return 0
	}
	return (n + multiple - 1) / multiple * multiple
}
