package env

import (
	"errors"
	"testing"
)

func TestDirectionTable(t *testing.T) {
	t.Parallel()

	if err := checkDirections(); err != nil {
		t.Fatalf("checkDirections() error = %v", err)
	}

	tests := []struct {
		orientation Orientation
		want        Point
	}{
		{OrientDown, Point{Row: 1, Col: 0}},
		{OrientLeft, Point{Row: 0, Col: -1}},
		{OrientUp, Point{Row: -1, Col: 0}},
		{OrientRight, Point{Row: 0, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.orientation.String(), func(t *testing.T) {
			t.Parallel()

			if got := tt.orientation.Vector(); got != tt.want {
				t.Errorf("Vector() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrientationTurn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from  Orientation
		delta int
		want  Orientation
	}{
		{OrientRight, -1, OrientUp},
		{OrientRight, 1, OrientDown},
		{OrientRight, 0, OrientRight},
		{OrientDown, -1, OrientRight},
		{OrientDown, 1, OrientLeft},
		{OrientUp, -1, OrientLeft},
		{OrientLeft, 1, OrientUp},
	}

	for _, tt := range tests {
		if got := tt.from.Turn(tt.delta); got != tt.want {
			t.Errorf("%s.Turn(%d) = %s, want %s", tt.from, tt.delta, got, tt.want)
		}
	}
}

func TestFourTurnsRestoreOrientation(t *testing.T) {
	t.Parallel()

	for _, start := range []Orientation{OrientDown, OrientLeft, OrientUp, OrientRight} {
		for _, delta := range []int{-1, 1} {
			s, err := NewSnake(nil, Point{Row: 5, Col: 5}, start, 3)
			if err != nil {
				t.Fatalf("NewSnake() error = %v", err)
			}
			for i := 0; i < 4; i++ {
				s.Turn(delta)
			}
			if s.Orientation() != start {
				t.Errorf("four turns of %d from %s ended at %s", delta, start, s.Orientation())
			}
		}
	}
}

func TestNewSnakeBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		orientation Orientation
		want        []Point
	}{
		{OrientRight, []Point{{6, 4}, {6, 5}, {6, 6}}},
		{OrientLeft, []Point{{6, 8}, {6, 7}, {6, 6}}},
		{OrientUp, []Point{{8, 6}, {7, 6}, {6, 6}}},
		{OrientDown, []Point{{4, 6}, {5, 6}, {6, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.orientation.String(), func(t *testing.T) {
			t.Parallel()

			s, err := NewSnake(nil, Point{Row: 6, Col: 6}, tt.orientation, 3)
			if err != nil {
				t.Fatalf("NewSnake() error = %v", err)
			}
			body := s.Body()
			if len(body) != len(tt.want) {
				t.Fatalf("len(body) = %d, want %d", len(body), len(tt.want))
			}
			for i := range body {
				if body[i] != tt.want[i] {
					t.Errorf("body[%d] = %v, want %v", i, body[i], tt.want[i])
				}
			}
			if s.Head() != (Point{Row: 6, Col: 6}) {
				t.Errorf("Head() = %v, want (6,6)", s.Head())
			}
		})
	}
}

func TestNewSnakeInvalidLength(t *testing.T) {
	t.Parallel()

	if _, err := NewSnake(nil, Point{Row: 2, Col: 2}, OrientUp, 0); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("NewSnake(length 0) error = %v, want ErrInvalidLength", err)
	}
}

func TestNewSnakeRegistersWithGrid(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, 8, 8, 1)
	s, err := NewSnake(g, Point{Row: 4, Col: 4}, OrientUp, 2)
	if err != nil {
		t.Fatalf("NewSnake() error = %v", err)
	}
	if len(g.snakes) != 1 || g.snakes[0] != s {
		t.Fatal("snake not registered with grid")
	}
	// registration alone does not draw the snake
	if n := g.Snapshot().Count(CellHead); n != 0 {
		t.Errorf("head cells before placeSnakes = %d, want 0", n)
	}
}

func TestMoveKeepsLength(t *testing.T) {
	t.Parallel()

	s, err := NewSnake(nil, Point{Row: 5, Col: 5}, OrientRight, 3)
	if err != nil {
		t.Fatalf("NewSnake() error = %v", err)
	}
	s.Move()

	want := []Point{{5, 4}, {5, 5}, {5, 6}}
	body := s.Body()
	for i := range want {
		if body[i] != want[i] {
			t.Fatalf("body after move = %v, want %v", body, want)
		}
	}
}

func TestFedMoveGrowsOnce(t *testing.T) {
	t.Parallel()

	s, err := NewSnake(nil, Point{Row: 5, Col: 5}, OrientDown, 3)
	if err != nil {
		t.Fatalf("NewSnake() error = %v", err)
	}

	s.Feed()
	if !s.Fed() {
		t.Fatal("Fed() = false after Feed()")
	}
	s.Move()
	if s.Len() != 4 {
		t.Errorf("Len() after fed move = %d, want 4", s.Len())
	}
	if s.Fed() {
		t.Error("Fed() still true after growing")
	}
	if s.Body()[0] != (Point{Row: 3, Col: 5}) {
		t.Errorf("oldest segment = %v, want (3,5) kept", s.Body()[0])
	}

	s.Move()
	if s.Len() != 4 {
		t.Errorf("Len() after plain move = %d, want 4", s.Len())
	}
}

func TestNextDoesNotMove(t *testing.T) {
	t.Parallel()

	s, err := NewSnake(nil, Point{Row: 5, Col: 5}, OrientRight, 3)
	if err != nil {
		t.Fatalf("NewSnake() error = %v", err)
	}
	if got := s.Next(-1); got != (Point{Row: 4, Col: 5}) {
		t.Errorf("Next(-1) = %v, want (4,5)", got)
	}
	if got := s.Next(1); got != (Point{Row: 6, Col: 5}) {
		t.Errorf("Next(1) = %v, want (6,5)", got)
	}
	if s.Head() != (Point{Row: 5, Col: 5}) || s.Orientation() != OrientRight {
		t.Error("Next() changed the snake")
	}
}
