package raycast

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewCamera(t *testing.T) {
	cam := NewCamera(Vec2{3.5, 3.5}, 0, math.Pi/3)

	if !almostEqual(cam.Dir.X, 1) || !almostEqual(cam.Dir.Y, 0) {
		t.Errorf("Dir = (%f, %f), expected (1, 0)", cam.Dir.X, cam.Dir.Y)
	}

	// Plane length is tan(fov/2)
	wantLen := math.Tan(math.Pi / 6)
	gotLen := math.Sqrt(cam.Plane.LenSq())
	if !almostEqual(gotLen, wantLen) {
		t.Errorf("plane length = %f, expected %f", gotLen, wantLen)
	}

	// Plane is perpendicular to Dir
	dot := cam.Dir.X*cam.Plane.X + cam.Dir.Y*cam.Plane.Y
	if !almostEqual(dot, 0) {
		t.Errorf("Dir and Plane not perpendicular, dot = %f", dot)
	}
}

func TestCameraAngleRoundtrip(t *testing.T) {
	for _, angle := range []float64{0, 0.7, math.Pi / 2, -1.2, 3.0} {
		cam := NewCamera(Vec2{1, 1}, angle, math.Pi/3)
		want := math.Atan2(math.Sin(angle), math.Cos(angle))
		if !almostEqual(cam.Angle(), want) {
			t.Errorf("Angle() after SetAngle(%f) = %f, expected %f", angle, cam.Angle(), want)
		}
	}
}

func TestCameraRotate(t *testing.T) {
	cam := NewCamera(Vec2{1, 1}, 0.3, math.Pi/3)

	cam.Rotate(0.5)
	if !almostEqual(cam.Angle(), 0.8) {
		t.Errorf("Angle after Rotate(0.5) = %f, expected 0.8", cam.Angle())
	}

	// Rotation preserves the unit direction and the plane length
	if !almostEqual(math.Sqrt(cam.Dir.LenSq()), 1) {
		t.Errorf("Dir length after rotate = %f, expected 1", math.Sqrt(cam.Dir.LenSq()))
	}
	wantLen := math.Tan(math.Pi / 6)
	if !almostEqual(math.Sqrt(cam.Plane.LenSq()), wantLen) {
		t.Errorf("Plane length after rotate = %f, expected %f", math.Sqrt(cam.Plane.LenSq()), wantLen)
	}

	// Many small rotations stay consistent
	for i := 0; i < 1000; i++ {
		cam.Rotate(0.013)
	}
	if !almostEqual(math.Sqrt(cam.Dir.LenSq()), 1) {
		t.Errorf("Dir drifted off unit length after many rotations: %f", math.Sqrt(cam.Dir.LenSq()))
	}
}

func TestCameraFOV(t *testing.T) {
	fov := math.Pi / 3
	cam := NewCamera(Vec2{0, 0}, 1.1, fov)
	if !almostEqual(cam.FOV(), fov) {
		t.Errorf("FOV() = %f, expected %f", cam.FOV(), fov)
	}
}
