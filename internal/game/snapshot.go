package game

import "github.com/vovakirdan/merge2048/internal/board"

// Phase names where a session is.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Seed    int64
	Moves   int
	Score   int
	Board   [board.Size][board.Size]int
	MaxTile int
	Phase   Phase
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	if g.gameOver {
		phase = PhaseGameOver
	}

	return Snapshot{
		Seed:    g.seed,
		Moves:   g.moves,
		Score:   g.board.Score,
		Board:   g.board.Rows(),
		MaxTile: g.board.MaxTile(),
		Phase:   phase,
	}
}
