package game

import (
	"github.com/catacombgame/catacomb/internal/core"
)

// Minimap glyphs.
const (
	minimapWall   = '#'
	minimapFloor  = ' '
	minimapPlayer = '@'
	minimapSprite = '*'
)

// drawMinimap overlays a boxed map inset in the bottom-right corner,
// centered on the player. Cells outside the level stay blank.
func (s *Session) drawMinimap(dst *core.Screen) {
	w := core.Max(s.cfg.Minimap.Width, 5)
	h := core.Max(s.cfg.Minimap.Height, 4)
	if dst.Width() < w+2 || dst.Height() < h+2 {
		return
	}

	box := core.NewRect(dst.Width()-w-1, dst.Height()-h-1, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	innerW := w - 2
	innerH := h - 2
	px := int(s.cam.Pos.X)
	py := int(s.cam.Pos.Y)

	for iy := 0; iy < innerH; iy++ {
		for ix := 0; ix < innerW; ix++ {
			mapX := px + ix - innerW/2
			mapY := py + iy - innerH/2
			if !s.level.Grid.InBounds(mapX, mapY) {
				continue
			}
			ch := minimapFloor
			if s.level.Grid.Solid(mapX, mapY) {
				ch = minimapWall
			}
			dst.SetCell(box.X+1+ix, box.Y+1+iy, ch, core.ColorGray)
		}
	}

	for _, sp := range s.sprites {
		ix := int(sp.X) - px + innerW/2
		iy := int(sp.Y) - py + innerH/2
		if ix < 0 || ix >= innerW || iy < 0 || iy >= innerH {
			continue
		}
		dst.SetCell(box.X+1+ix, box.Y+1+iy, minimapSprite, core.ColorBrightMagenta)
	}

	dst.SetCell(box.X+1+innerW/2, box.Y+1+innerH/2, minimapPlayer, core.ColorBrightYellow)
}
