package raycast

import (
	"fmt"
	"math"

	"github.com/catacombgame/catacomb/internal/world"
)

// Hit describes the wall a ray struck.
type Hit struct {
	Dist  float64 // perpendicular distance to the camera plane
	CellX int
	CellY int
	Side  int     // 0 = east/west face, 1 = north/south face
	Cell  uint8   // wall texture id from the map
	U     float64 // horizontal texture coordinate on the face, in [0,1)
}

// castRay walks the grid from pos along rayDir using DDA: at each step it
// advances to the next grid line crossing, alternating axes by which
// crossing comes first, until it lands in a wall cell. The returned
// distance is perpendicular to the camera plane, not Euclidean, so flat
// walls render flat instead of bowing outward.
func castRay(grid *world.Grid, pos Vec2, rayDir Vec2) (Hit, error) {
	mapX, mapY := int(pos.X), int(pos.Y)

	// Distance along the ray between consecutive x (resp. y) grid lines.
	// Rays parallel to an axis never cross it: an infinite delta keeps
	// the walk on the other axis without dividing by zero.
	deltaX, deltaY := math.Inf(1), math.Inf(1)
	if rayDir.X != 0 {
		deltaX = math.Abs(1 / rayDir.X)
	}
	if rayDir.Y != 0 {
		deltaY = math.Abs(1 / rayDir.Y)
	}

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if rayDir.X < 0 {
		stepX = -1
		sideDistX = (pos.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1 - pos.X) * deltaX
	}
	if rayDir.Y < 0 {
		stepY = -1
		sideDistY = (pos.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1 - pos.Y) * deltaY
	}

	// A ray starting inside the grid crosses at most W+H grid lines
	// before leaving it, so the walk is bounded even on malformed maps.
	maxSteps := grid.W + grid.H + 2
	side := 0
	for i := 0; i < maxSteps; i++ {
		if sideDistX < sideDistY {
			sideDistX += deltaX
			mapX += stepX
			side = 0
		} else {
			sideDistY += deltaY
			mapY += stepY
			side = 1
		}

		if !grid.InBounds(mapX, mapY) {
			return Hit{}, fmt.Errorf("ray escaped the map at cell (%d,%d)", mapX, mapY)
		}

		cell := grid.Cell(mapX, mapY)
		if cell == 0 {
			continue
		}

		var dist float64
		if side == 0 {
			dist = (float64(mapX) - pos.X + float64(1-stepX)/2) / rayDir.X
		} else {
			dist = (float64(mapY) - pos.Y + float64(1-stepY)/2) / rayDir.Y
		}

		var u float64
		if side == 0 {
			u = pos.Y + dist*rayDir.Y
		} else {
			u = pos.X + dist*rayDir.X
		}
		u -= math.Floor(u)
		// Keep texture-u running left to right as seen from the camera
		// on every face, so artwork never mirrors between faces.
		if (side == 0 && rayDir.X < 0) || (side == 1 && rayDir.Y > 0) {
			u = 1 - u
		}

		return Hit{
			Dist:  dist,
			CellX: mapX,
			CellY: mapY,
			Side:  side,
			Cell:  cell,
			U:     u,
		}, nil
	}

	return Hit{}, fmt.Errorf("ray exceeded %d steps without hitting a wall", maxSteps)
}
