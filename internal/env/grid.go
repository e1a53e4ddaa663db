package env

import (
	"fmt"
	"math/rand"
)

// MinGridSize is the smallest row or column count that leaves a playable interior
const MinGridSize = 3

// Grid owns the cell array and the apple lifecycle.
// Snake cells are always re-derived from the registered snakes' bodies.
type Grid struct {
	rows  int
	cols  int
	cells [][]Cell

	apple    Point
	hasApple bool

	snakes []*Snake
	rng    *rand.Rand
}

// NewGrid creates a grid with a WALL border and an EMPTY interior.
// Apple placement draws from rng.
func NewGrid(rows, cols int, rng *rand.Rand) (*Grid, error) {
	if rows < MinGridSize || cols < MinGridSize {
		return nil, fmt.Errorf("%dx%d grid, need at least %dx%d: %w",
			rows, cols, MinGridSize, MinGridSize, ErrInvalidDimensions)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([][]Cell, rows),
		rng:   rng,
	}
	for r := 0; r < rows; r++ {
		g.cells[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			if g.isBorder(Point{Row: r, Col: c}) {
				g.cells[r][c] = CellWall
			}
		}
	}
	return g, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies inside the grid extent
func (g *Grid) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// InInterior reports whether p lies inside the border
func (g *Grid) InInterior(p Point) bool {
	return p.Row > 0 && p.Row < g.rows-1 && p.Col > 0 && p.Col < g.cols-1
}

func (g *Grid) isBorder(p Point) bool {
	return p.Row == 0 || p.Row == g.rows-1 || p.Col == 0 || p.Col == g.cols-1
}

// CellAt returns the cell at p
func (g *Grid) CellAt(p Point) (Cell, error) {
	if !g.InBounds(p) {
		return CellEmpty, fmt.Errorf("cell (%d,%d) on %dx%d grid: %w",
			p.Row, p.Col, g.rows, g.cols, ErrOutOfBounds)
	}
	return g.cells[p.Row][p.Col], nil
}

// Apple returns the current apple position, if any
func (g *Grid) Apple() (Point, bool) {
	return g.apple, g.hasApple
}

// register tracks s for re-rendering. Registration order is render order.
func (g *Grid) register(s *Snake) {
	g.snakes = append(g.snakes, s)
}

// placeSnakes clears all snake cells and writes every registered snake again,
// TAIL for each body segment and HEAD for the last one.
// Walls are never overwritten. A head that lands on a WALL, or on a TAIL
// written earlier in this pass, leaves that cell unchanged so a read of the
// head position reports what it collided with.
func (g *Grid) placeSnakes() {
	for r := 1; r < g.rows-1; r++ {
		for c := 1; c < g.cols-1; c++ {
			if g.cells[r][c] == CellTail || g.cells[r][c] == CellHead {
				g.cells[r][c] = CellEmpty
			}
		}
	}

	for _, s := range g.snakes {
		last := len(s.body) - 1
		for i, p := range s.body {
			if !g.InBounds(p) {
				continue
			}
			cur := g.cells[p.Row][p.Col]
			if cur == CellWall {
				continue
			}
			if i == last {
				if cur == CellTail || cur == CellHead {
					continue
				}
				g.cells[p.Row][p.Col] = CellHead
			} else {
				g.cells[p.Row][p.Col] = CellTail
			}
		}
	}
}

// SpawnApple moves the apple to a uniformly chosen EMPTY cell.
// Returns ErrBoardFull when no EMPTY cell is left; the grid then has no apple.
func (g *Grid) SpawnApple() error {
	g.RemoveApple()
	g.placeSnakes()

	var empty []Point
	for r := 1; r < g.rows-1; r++ {
		for c := 1; c < g.cols-1; c++ {
			if g.cells[r][c] == CellEmpty {
				empty = append(empty, Point{Row: r, Col: c})
			}
		}
	}
	if len(empty) == 0 {
		return ErrBoardFull
	}

	p := empty[g.rng.Intn(len(empty))]
	g.cells[p.Row][p.Col] = CellApple
	g.apple = p
	g.hasApple = true
	return nil
}

// RemoveApple clears the apple. No-op when there is none.
func (g *Grid) RemoveApple() {
	if !g.hasApple {
		return
	}
	// a head may already sit on the apple cell
	if g.cells[g.apple.Row][g.apple.Col] == CellApple {
		g.cells[g.apple.Row][g.apple.Col] = CellEmpty
	}
	g.apple = Point{}
	g.hasApple = false
}

// PlaceApple puts the apple at p, replacing any existing one.
// p must be an EMPTY interior cell.
func (g *Grid) PlaceApple(p Point) error {
	if !g.InInterior(p) {
		return fmt.Errorf("apple at (%d,%d): %w", p.Row, p.Col, ErrOutOfBounds)
	}
	g.RemoveApple()
	g.placeSnakes()
	if cur := g.cells[p.Row][p.Col]; cur != CellEmpty {
		return fmt.Errorf("apple at (%d,%d): cell holds %s", p.Row, p.Col, cur)
	}
	g.cells[p.Row][p.Col] = CellApple
	g.apple = p
	g.hasApple = true
	return nil
}

// Snapshot returns a copy of the grid as observation codes
func (g *Grid) Snapshot() Observation {
	obs := make(Observation, g.rows)
	for r, row := range g.cells {
		obs[r] = make([]int, g.cols)
		for c, v := range row {
			obs[r][c] = int(v)
		}
	}
	return obs
}
