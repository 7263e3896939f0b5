package raycast

import (
	"math"

	"github.com/catacombgame/catacomb/internal/core"
	"github.com/catacombgame/catacomb/internal/world"
)

// Shader converts texture intensity and distance into the final 0-9
// brightness of a surface cell.
type Shader struct {
	// FalloffPerUnit is the brightness lost per map unit of distance.
	FalloffPerUnit float64

	// MinBrightness is the distance floor: however far away, surfaces
	// never darken below this, which keeps distant walls distinguishable
	// from empty sky.
	MinBrightness int

	// SideDarken is subtracted from north/south wall faces so adjacent
	// faces of a block read as distinct surfaces.
	SideDarken int
}

// DefaultShader returns the shading parameters used when no configuration
// overrides them.
func DefaultShader() Shader {
	return Shader{
		FalloffPerUnit: 0.75,
		MinBrightness:  1,
		SideDarken:     1,
	}
}

// Shade maps a texture value and a distance to a final intensity in
// [0, MaxIntensity]. Distance sets the brightness level, falling off
// monotonically from MaxIntensity at distance zero; the texture then
// contributes its offset from the neutral value, and the sum is clipped
// back into the legal domain.
func (s Shader) Shade(base int, dist float64) int {
	bright := float64(world.MaxIntensity) - s.FalloffPerUnit*dist
	if bright < float64(s.MinBrightness) {
		bright = float64(s.MinBrightness)
	}
	v := int(math.Round(bright)) + (base - world.Neutral)
	return core.Clamp(v, 0, world.MaxIntensity)
}
