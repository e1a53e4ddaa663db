package env

import (
	"errors"
	"fmt"
	"maps"
	"math/rand"

	"github.com/felixgeelhaar/statekit"
	"github.com/google/uuid"
)

// Action is a relative steering command
type Action int

const (
	ActionTurnLeft  Action = 0
	ActionNoTurn    Action = 1
	ActionTurnRight Action = 2
)

// Actions lists every valid action in code order
var Actions = []Action{ActionTurnLeft, ActionNoTurn, ActionTurnRight}

// Valid reports whether a is one of the three steering actions
func (a Action) Valid() bool {
	return a >= ActionTurnLeft && a <= ActionTurnRight
}

// Delta returns the orientation change for a
func (a Action) Delta() int {
	return int(a) - 1
}

func (a Action) String() string {
	switch a {
	case ActionTurnLeft:
		return "left"
	case ActionNoTurn:
		return "straight"
	case ActionTurnRight:
		return "right"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Start places the snake explicitly instead of at the grid center
type Start struct {
	Head        Point
	Orientation Orientation
}

// Options configures an Engine
type Options struct {
	Rows        int
	Cols        int
	StartLength int   // 0 means DefaultLength
	MaxSteps    int   // 0 means unlimited
	Seed        int64 // seeds apple placement

	// Start overrides the default placement at (Rows/2, Cols/2) facing right
	Start *Start
}

// DefaultOptions returns a 12x12 board with the default snake
func DefaultOptions() Options {
	return Options{
		Rows:        12,
		Cols:        12,
		StartLength: DefaultLength,
	}
}

// StepResult is what Step hands back to the agent
type StepResult struct {
	Observation Observation
	Reward      int // cumulative for the episode
	Done        bool
	Info        map[string]string
}

// Engine runs one snake through turn-based episodes.
// It is not safe for concurrent use; run one engine per goroutine.
type Engine struct {
	opts Options
	rng  *rand.Rand

	machine *statekit.MachineConfig[*Engine]
	interp  *statekit.Interpreter[*Engine]

	id     uuid.UUID
	grid   *Grid
	snake  *Snake
	reward int
	steps  int
	reason TerminalReason
	info   map[string]string
}

// NewEngine creates an engine and resets it into its first episode
func NewEngine(opts Options) (*Engine, error) {
	if opts.StartLength == 0 {
		opts.StartLength = DefaultLength
	}

	machine, err := newEpisodeMachine()
	if err != nil {
		return nil, fmt.Errorf("build episode machine: %w", err)
	}

	e := &Engine{
		opts:    opts,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		machine: machine,
	}
	if _, err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Seed reseeds apple placement. It applies to the current episode onward.
func (e *Engine) Seed(seed int64) {
	e.opts.Seed = seed
	e.rng.Seed(seed)
}

// Reset discards the current episode and starts a new one
func (e *Engine) Reset() (Observation, error) {
	grid, err := NewGrid(e.opts.Rows, e.opts.Cols, e.rng)
	if err != nil {
		return nil, err
	}

	start := Start{
		Head:        Point{Row: e.opts.Rows / 2, Col: e.opts.Cols / 2},
		Orientation: OrientRight,
	}
	if e.opts.Start != nil {
		start = *e.opts.Start
	}

	snake, err := NewSnake(grid, start.Head, start.Orientation, e.opts.StartLength)
	if err != nil {
		return nil, err
	}
	for _, p := range snake.body {
		if !grid.InInterior(p) {
			return nil, fmt.Errorf("segment (%d,%d) outside %dx%d interior: %w",
				p.Row, p.Col, grid.rows, grid.cols, ErrInvalidStart)
		}
	}

	e.id = uuid.New()
	e.grid = grid
	e.snake = snake
	e.reward = 0
	e.steps = 0
	e.reason = ReasonNone
	e.info = make(map[string]string)

	e.interp = statekit.NewInterpreter(e.machine)
	e.interp.UpdateContext(func(c **Engine) {
		*c = e
	})
	e.interp.Start()

	if err := grid.SpawnApple(); err != nil {
		if !errors.Is(err, ErrBoardFull) {
			return nil, err
		}
		e.terminate(ReasonBoardFull)
	}
	return grid.Snapshot(), nil
}

// Step applies action and advances the episode by one move.
// An invalid action or a step after termination changes nothing.
func (e *Engine) Step(action Action) (StepResult, error) {
	if !action.Valid() {
		return StepResult{}, fmt.Errorf("action %d: %w", int(action), ErrInvalidAction)
	}
	if e.Done() {
		return StepResult{}, ErrTerminated
	}

	e.steps++
	e.snake.Turn(action.Delta())
	e.snake.Move()
	e.grid.placeSnakes()

	head := e.snake.Head()
	cell, err := e.grid.CellAt(head)
	switch {
	case err != nil, cell == CellWall:
		e.terminate(ReasonWall)
	case cell == CellTail:
		e.terminate(ReasonTail)
	default:
		if apple, ok := e.grid.Apple(); ok && apple == head {
			e.snake.Feed()
			e.reward++
			if err := e.grid.SpawnApple(); err != nil {
				if !errors.Is(err, ErrBoardFull) {
					return StepResult{}, err
				}
				e.terminate(ReasonBoardFull)
			}
		}
	}

	if !e.Done() && e.opts.MaxSteps > 0 && e.steps >= e.opts.MaxSteps {
		e.terminate(ReasonStepCap)
	}

	return e.result(), nil
}

func (e *Engine) terminate(reason TerminalReason) {
	e.interp.Send(statekit.Event{
		Type:    eventTerminate,
		Payload: reason,
	})
}

func (e *Engine) result() StepResult {
	return StepResult{
		Observation: e.grid.Snapshot(),
		Reward:      e.reward,
		Done:        e.Done(),
		Info:        maps.Clone(e.info),
	}
}

// Peek returns the cell the head would enter under action, without moving.
// The current last segment counts as empty unless the snake is about to grow.
// After a wall collision the target can lie outside the grid, which is
// reported as ErrOutOfBounds.
func (e *Engine) Peek(action Action) (Cell, error) {
	if !action.Valid() {
		return CellEmpty, fmt.Errorf("action %d: %w", int(action), ErrInvalidAction)
	}
	next := e.snake.Next(action.Delta())
	cell, err := e.grid.CellAt(next)
	if err != nil {
		return CellEmpty, fmt.Errorf("peek %s: %w", action, err)
	}
	if cell == CellTail && next == e.snake.body[0] && !e.snake.Fed() {
		return CellEmpty, nil
	}
	return cell, nil
}

// PlaceApple moves the apple to p, which must be an empty interior cell
func (e *Engine) PlaceApple(p Point) error {
	return e.grid.PlaceApple(p)
}

// Observation returns a snapshot of the current grid
func (e *Engine) Observation() Observation {
	return e.grid.Snapshot()
}

// Done reports whether the episode has terminated
func (e *Engine) Done() bool {
	return e.interp.Done()
}

// Reward returns the cumulative reward of the current episode
func (e *Engine) Reward() int {
	return e.reward
}

// Steps returns the number of accepted steps in the current episode
func (e *Engine) Steps() int {
	return e.steps
}

// Reason returns why the episode ended, or ReasonNone while running
func (e *Engine) Reason() TerminalReason {
	return e.reason
}

// Info returns a copy of the diagnostic mapping
func (e *Engine) Info() map[string]string {
	return maps.Clone(e.info)
}

// ID returns the current episode id
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Rows returns the grid row count
func (e *Engine) Rows() int {
	return e.grid.Rows()
}

// Cols returns the grid column count
func (e *Engine) Cols() int {
	return e.grid.Cols()
}

// Head returns the snake's head position
func (e *Engine) Head() Point {
	return e.snake.Head()
}

// Body returns a copy of the snake body, tail first
func (e *Engine) Body() []Point {
	return e.snake.Body()
}

// Orientation returns the snake's heading
func (e *Engine) Orientation() Orientation {
	return e.snake.Orientation()
}

// Apple returns the apple position, if any
func (e *Engine) Apple() (Point, bool) {
	return e.grid.Apple()
}

// Options returns the options the engine runs with
func (e *Engine) Options() Options {
	return e.opts
}

// Stats returns the statistics of the current episode
func (e *Engine) Stats() EpisodeStats {
	return EpisodeStats{
		ID:     e.id.String(),
		Seed:   e.opts.Seed,
		Steps:  e.steps,
		Reward: e.reward,
		Length: e.snake.Len(),
		Reason: e.reason,
	}
}
