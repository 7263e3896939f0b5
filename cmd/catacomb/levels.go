package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/catacombgame/catacomb/internal/assets"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the embedded levels plus any found in ~/.catacomb/levels or
the directory given with --levels-dir. User levels with an embedded
level's id shadow the embedded one.`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	lib := assets.NewLibrary()
	if flagLevelsDir != "" {
		if err := lib.AddDir(flagLevelsDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else if dir := assets.UserLevelDir(); dir != "" {
		//nolint:errcheck // The directory was probed just above
		lib.AddDir(dir)
	}

	infos := lib.List()
	if len(infos) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, info := range infos {
		if len(info.ID) > maxIDLen {
			maxIDLen = len(info.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Name")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "----")

	// Print levels
	for _, info := range infos {
		fmt.Printf("  %-*s  %s\n", maxIDLen, info.ID, info.Name)
	}

	fmt.Println()
	fmt.Println("Run 'catacomb play --level <id>' to descend.")
}
