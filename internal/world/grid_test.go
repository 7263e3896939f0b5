package world

import (
	"strings"
	"testing"
)

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid("111\n101\n111\n")
	if err != nil {
		t.Fatalf("ParseGrid returned error: %v", err)
	}

	if g.W != 3 || g.H != 3 {
		t.Errorf("grid size = %dx%d, expected 3x3", g.W, g.H)
	}
	if g.Cell(1, 1) != 0 {
		t.Errorf("Cell(1,1) = %d, expected 0", g.Cell(1, 1))
	}
	if g.Cell(0, 0) != 1 {
		t.Errorf("Cell(0,0) = %d, expected 1", g.Cell(0, 0))
	}
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"ragged rows", "111\n10\n111"},
		{"non-digit cell", "111\n1x1\n111"},
		{"space cell", "111\n1 1\n111"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseGrid(tc.text); err == nil {
				t.Errorf("ParseGrid(%q) expected error, got nil", tc.text)
			}
		})
	}
}

func TestGridSolid(t *testing.T) {
	g, err := ParseGrid("222\n202\n222")
	if err != nil {
		t.Fatalf("ParseGrid returned error: %v", err)
	}

	if !g.Solid(0, 0) {
		t.Error("Solid(0,0) = false, expected true for wall cell")
	}
	if g.Solid(1, 1) {
		t.Error("Solid(1,1) = true, expected false for open cell")
	}

	// Out of bounds counts as solid
	if !g.Solid(-1, 0) {
		t.Error("Solid(-1,0) = false, expected true out of bounds")
	}
	if !g.Solid(3, 1) {
		t.Error("Solid(3,1) = false, expected true out of bounds")
	}
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		textures int
		wantCode string
	}{
		{
			name:     "valid enclosed map",
			text:     "1111\n1001\n1001\n1111",
			textures: 1,
			wantCode: "",
		},
		{
			name:     "too small",
			text:     "11\n11",
			textures: 1,
			wantCode: "MAP_TOO_SMALL",
		},
		{
			name:     "open top border",
			text:     "1011\n1001\n1001\n1111",
			textures: 1,
			wantCode: "NOT_ENCLOSED",
		},
		{
			name:     "open side border",
			text:     "1111\n0001\n1001\n1111",
			textures: 1,
			wantCode: "NOT_ENCLOSED",
		},
		{
			name:     "texture reference beyond defined set",
			text:     "1111\n1021\n1001\n1111",
			textures: 1,
			wantCode: "BAD_TEXTURE_REF",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseGrid(tc.text)
			if err != nil {
				t.Fatalf("ParseGrid returned error: %v", err)
			}

			err = g.Validate(tc.textures)
			if tc.wantCode == "" {
				if err != nil {
					t.Errorf("Validate returned error: %v", err)
				}
				return
			}

			var verr ValidationError
			ok := false
			if err != nil {
				verr, ok = err.(ValidationError)
			}
			if !ok {
				t.Fatalf("Validate = %v, expected a ValidationError", err)
			}
			if verr.Code != tc.wantCode {
				t.Errorf("Validate code = %s, expected %s", verr.Code, tc.wantCode)
			}
		})
	}
}

func TestGridValidateErrorMentionsCell(t *testing.T) {
	g, err := ParseGrid("111\n100\n111")
	if err != nil {
		t.Fatalf("ParseGrid returned error: %v", err)
	}

	verr := g.Validate(1)
	if verr == nil {
		t.Fatal("Validate expected error for open border, got nil")
	}
	if !strings.Contains(verr.Error(), "(2,1)") {
		t.Errorf("error %q should identify the offending cell (2,1)", verr.Error())
	}
}

func TestGridOpenCount(t *testing.T) {
	g, err := ParseGrid("111\n101\n111")
	if err != nil {
		t.Fatalf("ParseGrid returned error: %v", err)
	}
	if got := g.OpenCount(); got != 1 {
		t.Errorf("OpenCount() = %d, expected 1", got)
	}
}
