package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/catacombgame/catacomb/internal/assets"
	"github.com/catacombgame/catacomb/internal/config"
	"github.com/catacombgame/catacomb/internal/core"
	"github.com/catacombgame/catacomb/internal/platform/tui"
	"github.com/catacombgame/catacomb/internal/storage"
)

var (
	flagLevel   string
	flagPalette string
	flagWorkers int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Descend into a level",
	Long: `Start crawling. Without --level an interactive menu lists the
available levels; Tab from the menu opens the run history.

Controls:
  W/Up, S/Down    - Walk forward / backward
  A/Left, D/Right - Turn
  Q / E           - Strafe
  Space           - Jump
  T               - Toggle textures
  M               - Toggle minimap
  P               - Pause
  Esc             - Back to menu
  Ctrl+C          - Quit

Examples:
  catacomb play
  catacomb play --level catacombs
  catacomb play --level crypt --palette blocks
  catacomb play --workers 4 --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level id to play directly (skips the menu)")
	playCmd.Flags().StringVar(&flagPalette, "palette", "", "Palette preset or literal ramp (overrides config)")
	playCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Render workers (overrides config when > 0)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flag overrides
	if flagPalette != "" {
		cfg.Render.Palette = flagPalette
	}
	if flagWorkers > 0 {
		cfg.Render.Workers = flagWorkers
	}

	// Build the level library
	lib := assets.NewLibrary()
	if flagLevelsDir != "" {
		if addErr := lib.AddDir(flagLevelsDir); addErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", addErr)
			os.Exit(1)
		}
	} else if dir := assets.UserLevelDir(); dir != "" {
		//nolint:errcheck // The directory was probed just above
		lib.AddDir(dir)
	}

	// Get terminal size early
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	// Open the session log
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session log: %v\n", err)
		// Continue without storage - play still works
		store = nil
	}

	// Run the menu/crawl flow
	runErr := tui.RunSession(lib, store, cfg, rc, flagLevel)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
