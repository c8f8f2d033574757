package game

import (
	"encoding/json"
	"strings"
)

// Mark is the symbol a seat writes into cells. The zero value is an empty cell.
type Mark string

const (
	None  Mark = ""
	MarkX Mark = "x"
	MarkO Mark = "o"
)

// MarshalJSON encodes an empty cell as null.
func (m Mark) MarshalJSON() ([]byte, error) {
	if m == None {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

// UnmarshalJSON decodes null into an empty cell.
func (m *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = None
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = Mark(s)
	return nil
}

// Board is the read-only view of a grid handed to bot strategies.
type Board interface {
	Size() int
	At(x, y int) Mark
}

// Grid is a square, row-major matrix of marks.
type Grid [][]Mark

// NewGrid creates an empty size×size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for i := range g {
		g[i] = make([]Mark, size)
	}
	return g
}

func (g Grid) Size() int {
	return len(g)
}

// At returns the mark at row x, column y.
func (g Grid) At(x, y int) Mark {
	return g[x][y]
}

func (g Grid) inRange(v int) bool {
	return v >= 0 && v < len(g)
}

// Clone returns a deep copy so callers can't reach back into game state.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for i, row := range g {
		c[i] = append([]Mark(nil), row...)
	}
	return c
}

// Full reports whether every cell is occupied.
func (g Grid) Full() bool {
	for _, row := range g {
		for _, cell := range row {
			if cell == None {
				return false
			}
		}
	}
	return true
}

// String renders the grid for the console:
//
//	x |   | o
//	o | x | x
//	x |   | o
func (g Grid) String() string {
	rows := make([]string, len(g))
	for i, row := range g {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell == None {
				cells[j] = " "
			} else {
				cells[j] = string(cell)
			}
		}
		rows[i] = strings.Join(cells, " | ")
	}
	return strings.Join(rows, "\n")
}
