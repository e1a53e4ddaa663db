package env

import "fmt"

// Orientation is the snake's absolute heading.
// Values increase clockwise on screen (row 0 at the top), so turning by +1
// is a right turn and -1 a left turn from the snake's point of view.
type Orientation int

const (
	OrientDown Orientation = iota
	OrientLeft
	OrientUp
	OrientRight
)

func (o Orientation) String() string {
	switch o {
	case OrientDown:
		return "down"
	case OrientLeft:
		return "left"
	case OrientUp:
		return "up"
	case OrientRight:
		return "right"
	default:
		return "unknown"
	}
}

// directions maps each orientation to its unit (row, col) vector
var directions = [4]Point{
	OrientDown:  {Row: 1, Col: 0},
	OrientLeft:  {Row: 0, Col: -1},
	OrientUp:    {Row: -1, Col: 0},
	OrientRight: {Row: 0, Col: 1},
}

func init() {
	if err := checkDirections(); err != nil {
		panic(err)
	}
}

// checkDirections verifies every vector is a distinct unit step and that
// each +1 turn rotates the vector clockwise on screen.
func checkDirections() error {
	seen := make(map[Point]bool, len(directions))
	for o, d := range directions {
		if abs(d.Row)+abs(d.Col) != 1 {
			return fmt.Errorf("orientation %s: %v is not a unit step", Orientation(o), d)
		}
		if seen[d] {
			return fmt.Errorf("orientation %s: duplicate vector %v", Orientation(o), d)
		}
		seen[d] = true

		// clockwise with rows growing downward: (r, c) -> (c, -r)
		next := directions[(o+1)%len(directions)]
		if next != (Point{Row: d.Col, Col: -d.Row}) {
			return fmt.Errorf("orientation %s: %v does not turn clockwise into %v", Orientation(o), d, next)
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Vector returns the unit step for o
func (o Orientation) Vector() Point {
	return directions[o.normalize()]
}

// Turn returns the orientation delta quarter turns away from o
func (o Orientation) Turn(delta int) Orientation {
	return Orientation(int(o) + delta).normalize()
}

func (o Orientation) normalize() Orientation {
	n := Orientation(len(directions))
	return ((o % n) + n) % n
}

// DefaultLength is the initial body length used by Reset
const DefaultLength = 3

// Snake holds body geometry and movement, independent of the grid.
// The body is ordered tail first, head last.
type Snake struct {
	body        []Point
	orientation Orientation
	fed         bool
}

// NewSnake builds a snake of length segments ending at head, trailing
// backward along orientation, and registers it with grid for rendering.
func NewSnake(grid *Grid, head Point, orientation Orientation, length int) (*Snake, error) {
	if length < 1 {
		return nil, fmt.Errorf("length %d: %w", length, ErrInvalidLength)
	}

	orientation = orientation.normalize()
	dir := orientation.Vector()

	s := &Snake{
		body:        make([]Point, length),
		orientation: orientation,
	}
	for i := 0; i < length; i++ {
		back := length - 1 - i
		s.body[i] = Point{Row: head.Row - back*dir.Row, Col: head.Col - back*dir.Col}
	}

	if grid != nil {
		grid.register(s)
	}
	return s, nil
}

// Turn rotates the snake by delta quarter turns, delta in {-1, 0, +1}
func (s *Snake) Turn(delta int) {
	s.orientation = s.orientation.Turn(delta)
}

// Move advances the head one step. The oldest segment is dropped unless the
// snake was fed, in which case the body grows by one and fed is cleared.
// No bounds checking happens here.
func (s *Snake) Move() {
	s.body = append(s.body, s.Head().Add(s.orientation.Vector()))
	if s.fed {
		s.fed = false
		return
	}
	s.body = s.body[1:]
}

// Feed marks the snake to grow on its next move
func (s *Snake) Feed() {
	s.fed = true
}

// Fed reports whether the next move grows the snake
func (s *Snake) Fed() bool {
	return s.fed
}

// Head returns the most recent body coordinate
func (s *Snake) Head() Point {
	return s.body[len(s.body)-1]
}

// Orientation returns the current heading
func (s *Snake) Orientation() Orientation {
	return s.orientation
}

// Len returns the number of body segments
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the body, tail first
func (s *Snake) Body() []Point {
	out := make([]Point, len(s.body))
	copy(out, s.body)
	return out
}

// Next returns where the head would land after turning by delta
func (s *Snake) Next(delta int) Point {
	return s.Head().Add(s.orientation.Turn(delta).Vector())
}
