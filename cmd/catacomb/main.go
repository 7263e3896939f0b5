// catacomb is a raycasting dungeon crawler rendered as characters in the
// terminal.
//
// Usage:
//
//	catacomb play               - Descend into a level (menu if none given)
//	catacomb levels             - List available levels
//	catacomb stats              - Show the run history
//	catacomb serve              - Start SSH server for remote play
//	catacomb convert <image>    - Convert an image into a digit-grid texture
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--db <path>      - Set database path (default: ~/.catacomb/sessions.db)
//	--config <path>  - Set config file path
//	--levels-dir <dir> - Load levels from an extra directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catacomb",
	Short: "Catacomb - a raycasting dungeon crawler for your terminal",
	Long: `Catacomb casts rays through a 2D map and projects the walls into
pseudo-3D, quantized to the character grid of your terminal.

Available commands:
  play     - Descend into a level (interactive menu without --level)
  levels   - Show all available levels
  stats    - View the run history
  serve    - Start SSH server for remote play
  convert  - Turn an image into a digit-grid texture

Examples:
  catacomb play
  catacomb play --level catacombs
  catacomb levels
  catacomb serve --ssh :2222
  catacomb stats --level catacombs`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.catacomb/sessions.db", "Path to session log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: ~/.catacomb/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Extra directory to load levels from")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(convertCmd)
}
