// Package config provides YAML-based renderer and gameplay configuration
// for the crawler.
package config

import "fmt"

// Config contains all tunable parameters for a play session.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Shading  ShadingConfig  `yaml:"shading"`
	Movement MovementConfig `yaml:"movement"`
	Jump     JumpConfig     `yaml:"jump"`
	Textures TexturesConfig `yaml:"textures"`
	Minimap  MinimapConfig  `yaml:"minimap"`
}

// RenderConfig defines projection and output parameters.
type RenderConfig struct {
	FOVDegrees      float64 `yaml:"fov_degrees"`      // horizontal field of view
	ProjectionScale float64 `yaml:"projection_scale"` // wall height multiplier
	Palette         string  `yaml:"palette"`          // preset name or literal glyph ramp
	Workers         int     `yaml:"workers"`          // render goroutines; 1 = sequential
	Floor           bool    `yaml:"floor"`            // dithered floor below the horizon
	ShowFPS         bool    `yaml:"show_fps"`         // frame time in the HUD
}

// ShadingConfig defines the distance shading model.
type ShadingConfig struct {
	FalloffPerUnit float64 `yaml:"falloff_per_unit"` // brightness lost per map unit
	MinBrightness  int     `yaml:"min_brightness"`   // darkest a lit surface may get (0-9)
	SideDarken     int     `yaml:"side_darken"`      // extra darkening of north/south faces
}

// MovementConfig defines walking and turning speeds.
type MovementConfig struct {
	MoveSpeed float64 `yaml:"move_speed"` // map units per second
	TurnSpeed float64 `yaml:"turn_speed"` // radians per second
}

// JumpConfig defines the vertical kinematics.
type JumpConfig struct {
	Impulse float64 `yaml:"impulse"` // initial upward velocity
	Gravity float64 `yaml:"gravity"` // downward acceleration
}

// TexturesConfig defines wall texture sampling.
type TexturesConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MinimapConfig defines the minimap overlay.
type MinimapConfig struct {
	Enabled bool `yaml:"enabled"`
	Width   int  `yaml:"width"`  // inset width in cells, border included
	Height  int  `yaml:"height"` // inset height in cells, border included
}

// Validate checks that the configuration values are usable. The palette
// string is not checked here; it is resolved when a session is created.
func (c Config) Validate() error {
	if c.Render.FOVDegrees <= 0 || c.Render.FOVDegrees >= 180 {
		return fmt.Errorf("config: fov_degrees %v outside (0, 180)", c.Render.FOVDegrees)
	}
	if c.Render.ProjectionScale <= 0 {
		return fmt.Errorf("config: projection_scale must be positive, got %v", c.Render.ProjectionScale)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Render.Workers)
	}
	if c.Shading.FalloffPerUnit < 0 {
		return fmt.Errorf("config: falloff_per_unit must not be negative, got %v", c.Shading.FalloffPerUnit)
	}
	if c.Shading.MinBrightness < 0 || c.Shading.MinBrightness > 9 {
		return fmt.Errorf("config: min_brightness %d outside 0-9", c.Shading.MinBrightness)
	}
	if c.Movement.MoveSpeed < 0 {
		return fmt.Errorf("config: move_speed must not be negative, got %v", c.Movement.MoveSpeed)
	}
	if c.Movement.TurnSpeed < 0 {
		return fmt.Errorf("config: turn_speed must not be negative, got %v", c.Movement.TurnSpeed)
	}
	if c.Jump.Impulse < 0 {
		return fmt.Errorf("config: jump impulse must not be negative, got %v", c.Jump.Impulse)
	}
	if c.Jump.Gravity <= 0 {
		return fmt.Errorf("config: jump gravity must be positive, got %v", c.Jump.Gravity)
	}
	return nil
}
