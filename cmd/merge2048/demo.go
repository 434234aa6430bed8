package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/board"
	"github.com/vovakirdan/merge2048/internal/game"
)

// demoStart holds 1 tiles, which merge with each other but never with 2s.
var demoStart = [board.Size][board.Size]int{
	{2, 2, 2, 2},
	{2, 8, 1, 1},
	{0, 0, 0, 0},
	{2, 4, 1, 2},
}

var demoMoves = []board.Direction{
	board.Right, board.Up, board.Right, board.Left, board.Up,
	board.Left, board.Left, board.Up, board.Up,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print a scripted game as tables",
	Long: `Replay a fixed sequence of moves from a fixed board and print the
grid after each one. Spawned tiles depend on --seed.

Examples:
  merge2048 demo
  merge2048 demo --seed 42`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, _ []string) error {
	seed := cfg.Play.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := board.NewSource(seed)
	out := cmd.OutOrStdout()

	b := board.FromRows(demoStart)
	if err := game.WriteTable(out, b.Cells); err != nil {
		return err
	}

	for _, dir := range demoMoves {
		moved := b.Move(dir, src)
		fmt.Fprintln(out, "------")
		fmt.Fprintf(out, "%s (moved: %v, score: %d)\n", dir, moved, b.Score)
		if err := game.WriteTable(out, b.Cells); err != nil {
			return err
		}
	}

	if b.HasLost() {
		fmt.Fprintln(out, "Game over")
	}
	return nil
}
