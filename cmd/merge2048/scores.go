package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/merge2048/internal/game"
	"github.com/vovakirdan/merge2048/internal/platform/tui"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded 2048 games.

In a terminal this opens an interactive scoreboard; with --plain, or when
output is not a terminal, it prints the top scores as text.

Examples:
  merge2048 scores
  merge2048 scores --plain --limit 5
  merge2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores as text")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to print with --plain")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(game.ID); err != nil {
			return err
		}
		fmt.Fprintln(out, "Scores cleared.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, currentUser(), width, height)
	}

	return printScores(cmd, store)
}

func printScores(cmd *cobra.Command, store *storage.Store) error {
	scores, err := store.TopScores(game.ID, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	title := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(out, title.Render("High Scores - 2048"))
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'merge2048 play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-8s  %-6s  %s\n", "Rank", "Player", "Score", "Tile", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-8s  %-6s  %s\n", "----", "------", "-----", "----", "----")

	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-16s  %-8d  %-6d  %s\n",
			i+1, e.Player, e.Score, e.MaxTile, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(game.ID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Games: %d  Best: %d  Best tile: %d  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestTile, stats.AvgScore)
	}
	return nil
}
