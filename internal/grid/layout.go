package grid

import "math"

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.MaxX - r.MinX }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.MaxY - r.MinY }

// Layout maps a cell of a columns x rows grid to its screen rectangle.
type Layout interface {
	CellRect(c Coord, columns, rows int) Rect
}

// LayoutFunc adapts a plain function to Layout.
type LayoutFunc func(c Coord, columns, rows int) Rect

// CellRect calls f.
func (f LayoutFunc) CellRect(c Coord, columns, rows int) Rect { return f(c, columns, rows) }

// CenteredLayout places square cells in the middle of a Width x Height
// screen. Fill is the share of the limiting screen dimension the grid uses.
type CenteredLayout struct {
	Width  int
	Height int
	Fill   float64
}

// CellSize returns the edge length of one cell in pixels.
func (l CenteredLayout) CellSize(columns, rows int) float64 {
	if columns < 1 || rows < 1 {
		return 0
	}
	fill := l.Fill
	if fill <= 0 {
		fill = 1
	}
	byWidth := float64(l.Width) / float64(columns)
	byHeight := float64(l.Height) / float64(rows)
	return math.Min(byWidth, byHeight) * fill
}

// CellRect implements Layout.
func (l CenteredLayout) CellRect(c Coord, columns, rows int) Rect {
	size := l.CellSize(columns, rows)
	cx := float64(l.Width)/2 + size*(float64(c.Col)-float64(columns)/2+0.5)
	cy := float64(l.Height)/2 + size*(float64(c.Row)-float64(rows)/2+0.5)
	half := size / 2
	return Rect{MinX: cx - half, MinY: cy - half, MaxX: cx + half, MaxY: cy + half}
}

// Locate returns the cell whose rectangle contains the screen point, scanning
// in column-then-row order. It returns NotFound when the grid is empty or no
// cell matches.
func (s *Store) Locate(x, y int, layout Layout) Coord {
	if len(s.order) == 0 || layout == nil {
		return NotFound
	}
	px, py := float64(x), float64(y)
	for _, c := range s.order {
		if layout.CellRect(c, s.columns, s.rows).Contains(px, py) {
			return c
		}
	}
	return NotFound
}
