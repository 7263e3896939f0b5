package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Errorf("Min(5, 10) = %d, expected 5", Min(5, 10))
	}
	if Min(10, 5) != 5 {
		t.Errorf("Min(10, 5) = %d, expected 5", Min(10, 5))
	}
	if Max(5, 10) != 10 {
		t.Errorf("Max(5, 10) = %d, expected 10", Max(5, 10))
	}
	if Max(10, 5) != 10 {
		t.Errorf("Max(10, 5) = %d, expected 10", Max(10, 5))
	}
}

func TestAbs(t *testing.T) {
	if Abs(-7) != 7 {
		t.Errorf("Abs(-7) = %d, expected 7", Abs(-7))
	}
	if Abs(7) != 7 {
		t.Errorf("Abs(7) = %d, expected 7", Abs(7))
	}
	if Abs(0) != 0 {
		t.Errorf("Abs(0) = %d, expected 0", Abs(0))
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		expected Color
		wantErr  bool
	}{
		{"", ColorDefault, false},
		{"default", ColorDefault, false},
		{"green", ColorGreen, false},
		{"bright-magenta", ColorBrightMagenta, false},
		{"gray", ColorGray, false},
		{"chartreuse", ColorDefault, true},
	}

	for _, tc := range tests {
		c, err := ParseColor(tc.name)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) expected error, got nil", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) unexpected error: %v", tc.name, err)
			continue
		}
		if c != tc.expected {
			t.Errorf("ParseColor(%q) = %d, expected %d", tc.name, c, tc.expected)
		}
	}
}
