// Package raycast projects the 2D tile map into a pseudo-3D character
// frame: one ray per screen column finds the nearest wall, wall slices and
// sprites are shaded on a 0-9 intensity scale, and a palette quantizes the
// result onto glyphs.
package raycast

// Vec2 is a 2D vector in map units.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}
