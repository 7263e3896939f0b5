package raycast

import "math"

// Camera is the player's viewpoint: a position, a unit facing vector and
// the camera plane that spans the field of view. Dir and Plane always stay
// perpendicular; Plane's length is tan(fov/2), so rays through the screen
// edges are Dir ± Plane.
type Camera struct {
	Pos   Vec2
	Dir   Vec2 // unit facing vector
	Plane Vec2 // perpendicular to Dir, length tan(fov/2)

	// Height is the vertical view offset in wall-slice heights, 0 when
	// grounded. VSpeed is its rate of change, driven by jump kinematics.
	Height float64
	VSpeed float64

	planeLen float64
}

// NewCamera creates a camera at pos facing angle radians (0 = +x, angles
// grow clockwise on the map as drawn) with the given field of view.
func NewCamera(pos Vec2, angle, fov float64) *Camera {
	c := &Camera{
		Pos:      pos,
		planeLen: math.Tan(fov / 2),
	}
	c.SetAngle(angle)
	return c
}

// SetAngle points the camera at the given angle in radians.
func (c *Camera) SetAngle(angle float64) {
	sin, cos := math.Sincos(angle)
	c.Dir = Vec2{cos, sin}
	c.Plane = Vec2{-sin, cos}.Scale(c.planeLen)
}

// Angle returns the current facing angle in radians.
func (c *Camera) Angle() float64 {
	return math.Atan2(c.Dir.Y, c.Dir.X)
}

// Rotate turns the camera by delta radians. Positive delta turns toward
// the right edge of the screen.
func (c *Camera) Rotate(delta float64) {
	sin, cos := math.Sincos(delta)
	c.Dir = Vec2{
		c.Dir.X*cos - c.Dir.Y*sin,
		c.Dir.X*sin + c.Dir.Y*cos,
	}
	c.Plane = Vec2{
		c.Plane.X*cos - c.Plane.Y*sin,
		c.Plane.X*sin + c.Plane.Y*cos,
	}
}

// FOV returns the horizontal field of view in radians.
func (c *Camera) FOV() float64 {
	return 2 * math.Atan(c.planeLen)
}
