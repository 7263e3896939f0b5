package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/catacombgame/catacomb/internal/assets"
	"github.com/catacombgame/catacomb/internal/config"
	"github.com/catacombgame/catacomb/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catacomb SSH server",
	Long: `Start an SSH server that lets users connect and crawl remotely.

Each SSH connection gets its own session with a level picker menu,
sized to the connecting terminal. Runs are logged per-server (all
users share the same history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.catacomb/host_key

Examples:
  catacomb serve                           # Listen on :23234 with auto-generated key
  catacomb serve --ssh :2222               # Listen on port 2222
  catacomb serve --host-key ./my_host_key  # Use specific host key
  catacomb serve --db ./sessions.db        # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Build the level library served to every session
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

	sshCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(sshCfg, cfg, lib)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting catacomb SSH server on %s\n", sshCfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
