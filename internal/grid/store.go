// Package grid holds the authoritative cell state of the canvas.
//
// Cells live in a map keyed by Coord. Every resize discards the previous
// contents and rebuilds the map with all cells dead.
package grid

import "math/rand/v2"

// Store is a sparse column/row keyed grid of cell states.
type Store struct {
	columns int
	rows    int
	cells   map[Coord]State
	order   []Coord
}

// NewStore returns a store sized columns x rows with every cell dead.
func NewStore(columns, rows int) *Store {
	s := &Store{}
	s.ResizeTo(columns, rows)
	return s
}

// Columns returns the current column count.
func (s *Store) Columns() int { return s.columns }

// Rows returns the current row count.
func (s *Store) Rows() int { return s.rows }

// Len returns the number of stored entries.
func (s *Store) Len() int { return len(s.cells) }

// InBounds reports whether c addresses a cell of the current grid.
func (s *Store) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < s.columns && c.Row >= 0 && c.Row < s.rows
}

// Get returns the state at c. Absent cells read as dead.
func (s *Store) Get(c Coord) State {
	return s.cells[c]
}

// Set writes the state at c. Coordinates outside the grid are ignored.
func (s *Store) Set(c Coord, st State) {
	if _, ok := s.cells[c]; !ok {
		return
	}
	s.cells[c] = normalize(st)
}

// Toggle flips c between dead and alive. Absent coordinates are ignored.
func (s *Store) Toggle(c Coord) {
	st, ok := s.cells[c]
	if !ok {
		return
	}
	if st == Alive {
		s.cells[c] = Dead
	} else {
		s.cells[c] = Alive
	}
}

// ResizeTo rebuilds the grid at the new dimensions with every cell dead.
// Both dimensions are clamped to at least one.
func (s *Store) ResizeTo(columns, rows int) {
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.columns, s.rows = columns, rows
	s.cells = make(map[Coord]State, columns*rows)
	s.order = make([]Coord, 0, columns*rows)
	for i := 0; i < columns; i++ {
		for j := 0; j < rows; j++ {
			c := Coord{Col: i, Row: j}
			s.cells[c] = Dead
			s.order = append(s.order, c)
		}
	}
}

// Clear kills every cell without changing the dimensions.
func (s *Store) Clear() {
	for c := range s.cells {
		s.cells[c] = Dead
	}
}

// Randomize fills the grid with a deterministic pattern for the given seed.
func (s *Store) Randomize(seed int64) {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	for _, c := range s.order {
		s.cells[c] = State(rng.IntN(2))
	}
}

// Population counts live cells.
func (s *Store) Population() int {
	n := 0
	for _, st := range s.cells {
		if st == Alive {
			n++
		}
	}
	return n
}

// Coords returns every coordinate in column-then-row order.
func (s *Store) Coords() []Coord {
	out := make([]Coord, len(s.order))
	copy(out, s.order)
	return out
}

// Index returns the dense buffer offset of c. The layout is column-major,
// matching the transition kernel: col*rows + row.
func (s *Store) Index(c Coord) int { return c.Col*s.rows + c.Row }

// Dense serializes the grid into dst, reallocating when dst is too short.
func (s *Store) Dense(dst []int32) []int32 {
	size := s.columns * s.rows
	if cap(dst) < size {
		dst = make([]int32, size)
	}
	dst = dst[:size]
	for c, st := range s.cells {
		dst[s.Index(c)] = int32(st)
	}
	return dst
}

// Load writes a dense column-major buffer back into the grid. Extra values
// are ignored; a short buffer leaves the remaining cells untouched.
func (s *Store) Load(src []int32) {
	for _, c := range s.order {
		idx := s.Index(c)
		if idx >= len(src) {
			continue
		}
		s.cells[c] = normalize(State(src[idx]))
	}
}

func normalize(st State) State {
	if st != Dead {
		return Alive
	}
	return Dead
}
