// Package render draws observations for humans. The engine never calls it.
package render

import (
	"fmt"
	"io"
	"strings"

	"snakegym/internal/env"
)

// Glyphs maps cell codes to the runes drawn for them
type Glyphs map[env.Cell]string

// DefaultGlyphs draws the board with box characters
var DefaultGlyphs = Glyphs{
	env.CellEmpty: " ·",
	env.CellTail:  " █",
	env.CellWall:  "▒▒",
	env.CellApple: " ●",
	env.CellHead:  " ◆",
}

// CodeGlyphs prints the raw integer codes
var CodeGlyphs = Glyphs{
	env.CellEmpty: " 0",
	env.CellTail:  " 1",
	env.CellWall:  " 2",
	env.CellApple: " 3",
	env.CellHead:  " 4",
}

// Text renders observations as lines of glyphs
type Text struct {
	w      io.Writer
	glyphs Glyphs
}

// NewText creates a text renderer writing to w
func NewText(w io.Writer, glyphs Glyphs) *Text {
	if glyphs == nil {
		glyphs = DefaultGlyphs
	}
	return &Text{w: w, glyphs: glyphs}
}

// Frame formats obs as a multi-line string
func (t *Text) Frame(obs env.Observation) string {
	var b strings.Builder
	for _, row := range obs {
		for _, v := range row {
			g, ok := t.glyphs[env.Cell(v)]
			if !ok {
				g = " ?"
			}
			b.WriteString(g)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render writes obs followed by a status line
func (t *Text) Render(obs env.Observation, status string) error {
	if _, err := io.WriteString(t.w, t.Frame(obs)); err != nil {
		return err
	}
	if status == "" {
		return nil
	}
	_, err := fmt.Fprintln(t.w, status)
	return err
}

// Clear moves the cursor home and clears the terminal
func (t *Text) Clear() error {
	_, err := io.WriteString(t.w, "\033[H\033[2J")
	return err
}
