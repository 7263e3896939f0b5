package assets

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/catacombgame/catacomb/internal/core"
	"github.com/catacombgame/catacomb/internal/world"
)

// yamlManifest is the on-disk level description. File references are
// relative to the manifest's own directory.
type yamlManifest struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	Map            string        `yaml:"map"`
	Walls          []yamlTexture `yaml:"walls"`
	SpriteTextures []yamlTexture `yaml:"sprite_textures"`
	Player         yamlPlayer    `yaml:"player"`
	Sprites        []yamlSprite  `yaml:"sprites"`
}

// yamlTexture names a texture file and an optional display color.
type yamlTexture struct {
	File  string `yaml:"file"`
	Color string `yaml:"color,omitempty"`
}

// yamlPlayer is the spawn pose. The angle is in degrees, 0 = east.
type yamlPlayer struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// yamlSprite places one sprite. Texture ids are 1-based indices into
// the sprite_textures list.
type yamlSprite struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Texture int     `yaml:"texture"`
}

// manifestID returns the level id a manifest would load under, or empty
// when the file cannot be parsed.
func manifestID(fsys fs.FS, p string) string {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return ""
	}
	var m yamlManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return ""
	}
	if m.ID == "" {
		return stem(p)
	}
	return m.ID
}

// loadManifest reads a manifest and everything it references, returning
// a validated level.
func loadManifest(fsys fs.FS, p string) (*world.Level, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	var m yamlManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p, err)
	}
	if m.Map == "" {
		return nil, fmt.Errorf("%s: missing map file", p)
	}

	id := m.ID
	if id == "" {
		id = stem(p)
	}
	name := m.Name
	if name == "" {
		name = id
	}

	dir := path.Dir(p)
	grid, err := readGrid(fsys, dir, m.Map)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	walls, err := readTextures(fsys, dir, m.Walls, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	spriteTextures, err := readTextures(fsys, dir, m.SpriteTextures, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	sprites := make([]world.Sprite, len(m.Sprites))
	for i, sp := range m.Sprites {
		sprites[i] = world.Sprite{X: sp.X, Y: sp.Y, Texture: sp.Texture}
	}

	lvl := &world.Level{
		ID:             id,
		Name:           name,
		Grid:           grid,
		Walls:          walls,
		SpriteTextures: spriteTextures,
		Sprites:        sprites,
		Start: world.Start{
			X:     m.Player.X,
			Y:     m.Player.Y,
			Angle: m.Player.Angle * math.Pi / 180,
		},
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return lvl, nil
}

// readGrid loads and parses the map file.
func readGrid(fsys fs.FS, dir, ref string) (*world.Grid, error) {
	resolved, err := resolveRef(dir, ref)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, resolved)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", ref, err)
	}
	grid, err := world.ParseGrid(string(data))
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", ref, err)
	}
	return grid, nil
}

// readTextures loads a texture list in manifest order.
func readTextures(fsys fs.FS, dir string, refs []yamlTexture, sprite bool) ([]*world.Texture, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	textures := make([]*world.Texture, len(refs))
	for i, ref := range refs {
		resolved, err := resolveRef(dir, ref.File)
		if err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(fsys, resolved)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", ref.File, err)
		}
		tex, err := world.ParseTexture(string(data), sprite)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", ref.File, err)
		}
		color, err := core.ParseColor(ref.Color)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", ref.File, err)
		}
		tex.Color = color
		textures[i] = tex
	}
	return textures, nil
}

// resolveRef joins a manifest-relative reference, rejecting paths that
// escape the level set.
func resolveRef(dir, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty file reference")
	}
	joined := path.Join(dir, ref)
	if !fs.ValidPath(joined) {
		return "", fmt.Errorf("file reference %s escapes the level directory", ref)
	}
	return joined, nil
}

// stem returns the file name without directory or extension.
func stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
