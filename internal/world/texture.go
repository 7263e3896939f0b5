package world

import (
	"fmt"
	"strings"

	"github.com/catacombgame/catacomb/internal/core"
)

// Intensity domain shared by textures, shading and the quantizer.
const (
	// MaxIntensity is the brightest legal intensity value.
	MaxIntensity = 9

	// Neutral is the texture value that neither brightens nor darkens a
	// surface: shading treats value-minus-Neutral as the texture's
	// contribution.
	Neutral = 6

	// Transparent marks sprite texture cells that are never drawn,
	// written as '.' in texture files.
	Transparent int8 = -1
)

// Texture is a small grid of intensity values sampled onto walls and
// sprites. Cell (0,0) is the top-left of the artwork.
type Texture struct {
	W, H  int
	Color core.Color
	cells []int8 // row-major, cells[v*W+u]
}

// ParseTexture parses a text texture where each line is a row of digits.
// When sprite is true, '.' cells are allowed and become Transparent.
func ParseTexture(text string, sprite bool) (*Texture, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return nil, fmt.Errorf("world: texture is empty")
	}

	w := len([]rune(lines[0]))
	t := &Texture{
		W:     w,
		H:     len(lines),
		cells: make([]int8, w*len(lines)),
	}

	for y, line := range lines {
		runes := []rune(strings.TrimRight(line, "\r"))
		if len(runes) != w {
			return nil, fmt.Errorf("world: texture row %d has %d cells, expected %d", y, len(runes), w)
		}
		for x, r := range runes {
			switch {
			case r >= '0' && r <= '9':
				t.cells[y*w+x] = int8(r - '0')
			case r == '.' && sprite:
				t.cells[y*w+x] = Transparent
			case r == '.':
				return nil, fmt.Errorf("world: texture row %d col %d: transparency is only valid in sprite textures", y, x)
			default:
				return nil, fmt.Errorf("world: texture row %d col %d: invalid cell %q, want digit 0-9", y, x, r)
			}
		}
	}

	return t, nil
}

// At returns the intensity at (u, v). Indices are clamped to the texture
// bounds, so sampling code can hand in values straight from projection
// arithmetic without edge checks.
func (t *Texture) At(u, v int) int8 {
	u = core.Clamp(u, 0, t.W-1)
	v = core.Clamp(v, 0, t.H-1)
	return t.cells[v*t.W+u]
}
