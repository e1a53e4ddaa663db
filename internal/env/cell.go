package env

// Cell is the semantic value held by one grid position.
// The integer values double as observation codes.
type Cell int

const (
	CellEmpty Cell = 0
	CellTail  Cell = 1
	CellWall  Cell = 2
	CellApple Cell = 3
	CellHead  Cell = 4
)

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellTail:
		return "tail"
	case CellWall:
		return "wall"
	case CellApple:
		return "apple"
	case CellHead:
		return "head"
	default:
		return "unknown"
	}
}

// Point is a (row, col) coordinate on the grid
type Point struct {
	Row, Col int
}

// Add returns p translated by d
func (p Point) Add(d Point) Point {
	return Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Sub returns p translated by -d
func (p Point) Sub(d Point) Point {
	return Point{Row: p.Row - d.Row, Col: p.Col - d.Col}
}

// Observation is a full grid snapshot as integer cell codes, indexed [row][col]
type Observation [][]int

// At returns the cell stored at p. Callers must stay within bounds.
func (o Observation) At(p Point) Cell {
	return Cell(o[p.Row][p.Col])
}

// Count returns how many positions hold c
func (o Observation) Count(c Cell) int {
	n := 0
	for _, row := range o {
		for _, v := range row {
			if Cell(v) == c {
				n++
			}
		}
	}
	return n
}
