package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestEmbeddedDefaultMatchesCode(t *testing.T) {
	cfg := Config{}
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded default failed to parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default diverged from Default():\ngot      %+v\nexpected %+v", cfg, Default())
	}
}

func TestLoadCustomPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "render:\n  fov_degrees: 90\nmovement:\n  move_speed: 2.5\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Render.FOVDegrees != 90 {
		t.Errorf("fov_degrees = %v, expected 90", cfg.Render.FOVDegrees)
	}
	if cfg.Movement.MoveSpeed != 2.5 {
		t.Errorf("move_speed = %v, expected 2.5", cfg.Movement.MoveSpeed)
	}

	// Fields the file does not mention keep their defaults.
	if cfg.Jump.Gravity != Default().Jump.Gravity {
		t.Errorf("gravity = %v, expected default %v", cfg.Jump.Gravity, Default().Jump.Gravity)
	}
	if cfg.Render.Palette != "classic" {
		t.Errorf("palette = %q, expected classic", cfg.Render.Palette)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config path, got nil")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("render:\n  fov_degrees: 240\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for fov 240, got nil")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fov", func(c *Config) { c.Render.FOVDegrees = 0 }},
		{"reflex fov", func(c *Config) { c.Render.FOVDegrees = 180 }},
		{"zero projection scale", func(c *Config) { c.Render.ProjectionScale = 0 }},
		{"negative workers", func(c *Config) { c.Render.Workers = -1 }},
		{"negative falloff", func(c *Config) { c.Shading.FalloffPerUnit = -0.1 }},
		{"brightness floor above range", func(c *Config) { c.Shading.MinBrightness = 10 }},
		{"negative move speed", func(c *Config) { c.Movement.MoveSpeed = -1 }},
		{"negative turn speed", func(c *Config) { c.Movement.TurnSpeed = -1 }},
		{"negative jump impulse", func(c *Config) { c.Jump.Impulse = -1 }},
		{"zero gravity", func(c *Config) { c.Jump.Gravity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
