package world

import (
	"fmt"
)

// Start is the player's spawn pose.
type Start struct {
	X, Y  float64 // position in map units
	Angle float64 // facing in radians, 0 = east (+x), increasing toward south (+y)
}

// Level bundles everything a playable map needs: the grid, the textures
// the grid references, sprite placements and the spawn pose.
type Level struct {
	ID             string
	Name           string
	Grid           *Grid
	Walls          []*Texture // Walls[i] is wall texture id i+1
	SpriteTextures []*Texture // SpriteTextures[i] is sprite texture id i+1
	Sprites        []Sprite
	Start          Start
}

// WallTexture returns the wall texture for a grid cell value, or nil when
// the id is 0 (open floor) or out of range.
func (l *Level) WallTexture(id uint8) *Texture {
	if id == 0 || int(id) > len(l.Walls) {
		return nil
	}
	return l.Walls[id-1]
}

// SpriteTexture returns the texture for a sprite's 1-based texture id, or
// nil when the id is out of range.
func (l *Level) SpriteTexture(id int) *Texture {
	if id < 1 || id > len(l.SpriteTextures) {
		return nil
	}
	return l.SpriteTextures[id-1]
}

// Validate checks the level as a whole: grid invariants, sprite texture
// references and placements, and the spawn pose.
func (l *Level) Validate() error {
	if l.Grid == nil {
		return fmt.Errorf("world: level %q has no map", l.ID)
	}
	if err := l.Grid.Validate(len(l.Walls)); err != nil {
		return fmt.Errorf("world: level %q: %w", l.ID, err)
	}

	for i, s := range l.Sprites {
		if s.Texture < 1 || s.Texture > len(l.SpriteTextures) {
			return ValidationError{
				Code:    "BAD_SPRITE_REF",
				Message: fmt.Sprintf("level %q sprite %d references texture %d, only %d defined", l.ID, i, s.Texture, len(l.SpriteTextures)),
			}
		}
		if l.Grid.Solid(int(s.X), int(s.Y)) {
			return ValidationError{
				Code:    "SPRITE_IN_WALL",
				Message: fmt.Sprintf("level %q sprite %d at (%.1f,%.1f) is inside a wall", l.ID, i, s.X, s.Y),
			}
		}
	}

	if l.Grid.Solid(int(l.Start.X), int(l.Start.Y)) {
		return ValidationError{
			Code:    "START_IN_WALL",
			Message: fmt.Sprintf("level %q player start (%.1f,%.1f) is inside a wall", l.ID, l.Start.X, l.Start.Y),
		}
	}

	return nil
}
