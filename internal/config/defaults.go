package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// Default returns the default crawler configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			FOVDegrees:      66,
			ProjectionScale: 1.0,
			Palette:         "classic",
			Workers:         1,
			Floor:           true,
			ShowFPS:         false,
		},
		Shading: ShadingConfig{
			FalloffPerUnit: 0.75,
			MinBrightness:  1,
			SideDarken:     1,
		},
		Movement: MovementConfig{
			MoveSpeed: 5.0,
			TurnSpeed: 3.0,
		},
		Jump: JumpConfig{
			Impulse: 1.4,
			Gravity: 4.0,
		},
		Textures: TexturesConfig{
			Enabled: true,
		},
		Minimap: MinimapConfig{
			Enabled: true,
			Width:   18,
			Height:  9,
		},
	}
}

// DefaultYAML returns the embedded default configuration file, suitable
// for writing out as a starting point for user edits.
func DefaultYAML() []byte {
	return defaultYAML
}
