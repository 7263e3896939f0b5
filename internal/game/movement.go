package game

import (
	"github.com/catacombgame/catacomb/internal/raycast"
	"github.com/catacombgame/catacomb/internal/world"
)

// moveWithSlide moves pos by delta, rejecting any axis that would end
// inside a wall. The full move is tried first, then each axis alone, so
// walking into a wall at an angle glides along it.
func moveWithSlide(g *world.Grid, pos, delta raycast.Vec2) raycast.Vec2 {
	to := pos.Add(delta)
	if !g.Solid(int(to.X), int(to.Y)) {
		return to
	}
	if !g.Solid(int(to.X), int(pos.Y)) {
		return raycast.Vec2{X: to.X, Y: pos.Y}
	}
	if !g.Solid(int(pos.X), int(to.Y)) {
		return raycast.Vec2{X: pos.X, Y: to.Y}
	}
	return pos
}
