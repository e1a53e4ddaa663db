package env

import "errors"

var (
	// ErrInvalidAction is returned by Step for actions outside {0, 1, 2}
	ErrInvalidAction = errors.New("invalid action")
	// ErrInvalidDimensions is returned when a grid has no playable interior
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrOutOfBounds is returned for coordinates outside the grid
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrBoardFull is returned when no empty cell is left for an apple
	ErrBoardFull = errors.New("board full")
	// ErrTerminated is returned by Step once the episode has ended
	ErrTerminated = errors.New("episode terminated")
	// ErrInvalidStart is returned when the initial snake does not fit the interior
	ErrInvalidStart = errors.New("invalid start position")
	// ErrInvalidLength is returned for snakes shorter than one segment
	ErrInvalidLength = errors.New("invalid snake length")
)
