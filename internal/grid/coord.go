package grid

import "fmt"

// Coord addresses one cell by column and row.
type Coord struct {
	Col int
	Row int
}

// NotFound is returned by Locate when no cell contains the queried point.
var NotFound = Coord{Col: -1, Row: -1}

// Less orders coordinates column first, then row.
func (c Coord) Less(o Coord) bool {
	if c.Col != o.Col {
		return c.Col < o.Col
	}
	return c.Row < o.Row
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Col, c.Row) }

// State is the binary value of a cell.
type State int32

const (
	Dead  State = 0
	Alive State = 1
)

func (s State) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}
