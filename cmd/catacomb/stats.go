package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/catacombgame/catacomb/internal/assets"
	"github.com/catacombgame/catacomb/internal/platform/tui"
	"github.com/catacombgame/catacomb/internal/storage"
)

var (
	flagStatsLevel string
	flagBrowse     bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the run history",
	Long: `Display the most recent runs across all levels, or the longest
runs for one level with --level. --browse opens the interactive
table instead of printing.

Examples:
  catacomb stats
  catacomb stats --level catacombs
  catacomb stats --browse`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsLevel, "level", "", "Show the longest runs for this level only")
	statsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse the history interactively")
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session log: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagBrowse {
		browseStats(store)
		return
	}

	if flagStatsLevel != "" {
		printLongestRuns(store, flagStatsLevel)
		return
	}

	printRecentRuns(store)
}

// browseStats opens the interactive run history table.
func browseStats(store *storage.Store) {
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

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunStats(lib, store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printLongestRuns prints a level's best runs by duration.
func printLongestRuns(store *storage.Store, levelID string) {
	entries, err := store.LongestRuns(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Longest Runs - %s\n", levelID)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'catacomb play --level %s' to start the log!\n", levelID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Time", "Frames", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "----", "------", "----")

	// Print runs
	for i, entry := range entries {
		dateStr := entry.PlayedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8s  %-8d  %s\n", i+1, formatDuration(entry.Duration), entry.Frames, dateStr)
	}

	fmt.Println()
	fmt.Printf("Longest: %s\n", formatDuration(entries[0].Duration))
}

// printRecentRuns prints the newest runs plus per-level totals.
func printRecentRuns(store *storage.Store) {
	entries, err := store.RecentSessions(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Runs")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'catacomb play' to start the log!")
		return
	}

	// Calculate level column width
	maxLevelLen := 5 // "Level" header
	for _, entry := range entries {
		if len(entry.LevelID) > maxLevelLen {
			maxLevelLen = len(entry.LevelID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-8s  %-8s  %s\n", maxLevelLen, "Level", "Time", "Frames", "Date")
	fmt.Printf("  %-*s  %-8s  %-8s  %s\n", maxLevelLen, "-----", "----", "------", "----")

	// Print runs
	for _, entry := range entries {
		dateStr := entry.PlayedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-*s  %-8s  %-8d  %s\n", maxLevelLen, entry.LevelID, formatDuration(entry.Duration), entry.Frames, dateStr)
	}

	// Per-level totals
	totals, err := store.LevelTotals()
	if err != nil || len(totals) == 0 {
		return
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Println("Totals:")
	for _, id := range ids {
		s := totals[id]
		fmt.Printf("  %-*s  %d runs, %s total, best %s\n", maxLevelLen, id, s.Sessions, formatDuration(s.TotalTime), formatDuration(s.LongestRun))
	}
}

// formatDuration renders a run duration as m:ss.
func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
