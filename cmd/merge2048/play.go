package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/merge2048/internal/platform/tui"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start a game of 2048 in this terminal.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Examples:
  merge2048 play
  merge2048 play --seed 42
  merge2048 play --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	tcfg := tui.DefaultConfig()
	tcfg.Seed = cfg.Play.Seed
	tcfg.Player = currentUser()

	// Get terminal size early so the first frame fits
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		tcfg.ScreenW = w
		tcfg.ScreenH = h
	}

	// Open score storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(store, tcfg)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
