package raycast

import (
	"fmt"
	"sort"

	"github.com/catacombgame/catacomb/internal/world"
)

// Palette maps shaded intensity values onto display glyphs. Index 0 is
// the background glyph for empty sky cells; the remaining glyphs form the
// ramp from darkest to brightest.
type Palette []rune

var palettePresets = map[string]string{
	"classic": " .,:;<+*LtCa4U80dQM@",
	"blocks":  " ░▒▓█",
	"mono":    " .:-=+*#%@",
}

// ParsePalette resolves a preset name or a literal glyph ramp. A literal
// needs at least two glyphs: the background plus one ramp step.
func ParsePalette(s string) (Palette, error) {
	if ramp, ok := palettePresets[s]; ok {
		return Palette(ramp), nil
	}
	runes := []rune(s)
	if len(runes) < 2 {
		return nil, fmt.Errorf("raycast: palette %q needs at least 2 glyphs (background plus ramp)", s)
	}
	return Palette(runes), nil
}

// Presets returns the available palette preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(palettePresets))
	for name := range palettePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Glyph returns the display rune for an intensity value. The mapping is
// monotone: brighter intensity never maps to an earlier ramp glyph.
// Intensity outside [0, MaxIntensity] is a programming error upstream
// (shading must clip) and panics.
func (p Palette) Glyph(intensity int) rune {
	if intensity < 0 || intensity > world.MaxIntensity {
		panic(fmt.Sprintf("raycast: intensity %d outside [0,%d]", intensity, world.MaxIntensity))
	}
	ramp := p[1:]
	return ramp[intensity*(len(ramp)-1)/world.MaxIntensity]
}

// Background returns the glyph drawn for empty sky cells.
func (p Palette) Background() rune {
	return p[0]
}
