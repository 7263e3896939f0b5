// Package world holds the static level data model: the tile grid, wall and
// sprite textures, and sprite placements. It depends on core only, so level
// data stays independent of rendering and platform concerns.
package world

import (
	"fmt"
	"strings"
)

// ValidationError contains details about a level validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Grid is the tile map: a rectangular array of cells where 0 is open floor
// and 1-9 reference wall textures by id.
type Grid struct {
	W, H  int
	cells []uint8 // row-major, cells[y*W+x]
}

// ParseGrid parses a text map where each line is a row of digits.
// Row 0 is the north edge; column 0 is the west edge.
func ParseGrid(text string) (*Grid, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return nil, fmt.Errorf("world: map is empty")
	}

	w := len([]rune(lines[0]))
	g := &Grid{
		W:     w,
		H:     len(lines),
		cells: make([]uint8, w*len(lines)),
	}

	for y, line := range lines {
		runes := []rune(strings.TrimRight(line, "\r"))
		if len(runes) != w {
			return nil, fmt.Errorf("world: map row %d has %d cells, expected %d", y, len(runes), w)
		}
		for x, r := range runes {
			if r < '0' || r > '9' {
				return nil, fmt.Errorf("world: map row %d col %d: invalid cell %q, want digit 0-9", y, x, r)
			}
			g.cells[y*w+x] = uint8(r - '0')
		}
	}

	return g, nil
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Cell returns the value at (x, y), or 0 for out-of-bounds coordinates.
// Callers that need to distinguish open floor from out-of-bounds should
// check InBounds first.
func (g *Grid) Cell(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.cells[y*g.W+x]
}

// Solid reports whether (x, y) blocks movement. Out-of-bounds counts as
// solid so the collision check also enforces the grid boundary.
func (g *Grid) Solid(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.cells[y*g.W+x] != 0
}

// Validate checks structural invariants the ray caster relies on:
// the border must be fully walled so no ray can leave the grid, and
// every wall cell must reference an existing texture.
func (g *Grid) Validate(wallTextures int) error {
	if g.W < 3 || g.H < 3 {
		return ValidationError{
			Code:    "MAP_TOO_SMALL",
			Message: fmt.Sprintf("map is %dx%d, need at least 3x3 for a walled interior", g.W, g.H),
		}
	}

	for x := 0; x < g.W; x++ {
		if g.Cell(x, 0) == 0 || g.Cell(x, g.H-1) == 0 {
			y := 0
			if g.Cell(x, 0) != 0 {
				y = g.H - 1
			}
			return ValidationError{
				Code:    "NOT_ENCLOSED",
				Message: fmt.Sprintf("border cell (%d,%d) is open, map must be enclosed by walls", x, y),
			}
		}
	}
	for y := 0; y < g.H; y++ {
		if g.Cell(0, y) == 0 || g.Cell(g.W-1, y) == 0 {
			x := 0
			if g.Cell(0, y) != 0 {
				x = g.W - 1
			}
			return ValidationError{
				Code:    "NOT_ENCLOSED",
				Message: fmt.Sprintf("border cell (%d,%d) is open, map must be enclosed by walls", x, y),
			}
		}
	}

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if c := g.Cell(x, y); c != 0 && int(c) > wallTextures {
				return ValidationError{
					Code:    "BAD_TEXTURE_REF",
					Message: fmt.Sprintf("cell (%d,%d) references wall texture %d, only %d defined", x, y, c, wallTextures),
				}
			}
		}
	}

	return nil
}

// OpenCount returns the number of open floor cells.
func (g *Grid) OpenCount() int {
	n := 0
	for _, c := range g.cells {
		if c == 0 {
			n++
		}
	}
	return n
}
