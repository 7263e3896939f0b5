// Package assets loads playable levels: YAML manifests referencing
// digit-grid map and texture files. A default level set is embedded in
// the binary; directories of user levels can be stacked on top and
// shadow embedded levels with the same id.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/catacombgame/catacomb/internal/world"
)

//go:embed data
var embedded embed.FS

// Info identifies a loadable level.
type Info struct {
	ID   string
	Name string
}

// Library resolves level ids against the embedded set and any extra
// directories registered on top of it.
type Library struct {
	sources []fs.FS
}

// NewLibrary returns a library holding the embedded level set.
func NewLibrary() *Library {
	lib := &Library{}
	if sub, err := fs.Sub(embedded, "data"); err == nil {
		lib.sources = append(lib.sources, sub)
	}
	return lib
}

// AddDir registers a directory of user levels. Later directories win
// when ids collide.
func (lib *Library) AddDir(dir string) error {
	expanded, err := expandHome(dir)
	if err != nil {
		return fmt.Errorf("levels directory %s: %w", dir, err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return fmt.Errorf("levels directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("levels path %s is not a directory", dir)
	}
	lib.sources = append(lib.sources, os.DirFS(expanded))
	return nil
}

// UserLevelDir returns the conventional per-user level directory, or
// empty if it does not exist.
func UserLevelDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".catacomb", "levels")
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

// List returns all loadable levels sorted by id. Files that fail to
// parse or validate are skipped; Load reports their errors.
func (lib *Library) List() []Info {
	byID := make(map[string]Info)
	for _, fsys := range lib.sources {
		for _, p := range findManifests(fsys) {
			lvl, err := loadManifest(fsys, p)
			if err != nil {
				continue
			}
			byID[lvl.ID] = Info{ID: lvl.ID, Name: lvl.Name}
		}
	}

	infos := make([]Info, 0, len(byID))
	for _, info := range byID {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Load loads and validates the level with the given id. Sources added
// last are searched first so user levels shadow embedded ones.
func (lib *Library) Load(id string) (*world.Level, error) {
	for i := len(lib.sources) - 1; i >= 0; i-- {
		fsys := lib.sources[i]
		for _, p := range findManifests(fsys) {
			if manifestID(fsys, p) != id {
				continue
			}
			lvl, err := loadManifest(fsys, p)
			if err != nil {
				return nil, err
			}
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("level not found: %s", id)
}

// findManifests scans a source for level manifest files.
func findManifests(fsys fs.FS) []string {
	var paths []string
	fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, p)
		}
		return nil
	})
	sort.Strings(paths)
	return paths
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
