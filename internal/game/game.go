// Package game runs a single-player terminal session of 2048 on top of the
// board engine: it owns the RNG, counts moves and tracks game over.
package game

import (
	"math/rand"

	"github.com/vovakirdan/merge2048/internal/board"
)

// ID identifies the game in the score ledger.
const ID = "2048"

// Game is one terminal 2048 session.
type Game struct {
	seed     int64
	rng      *rand.Rand
	board    board.Board
	moves    int
	gameOver bool
}

// State is the part of a session the platform cares about.
type State struct {
	Score    int
	GameOver bool
	Moves    int
	MaxTile  int
}

// New creates a game seeded with seed.
func New(seed int64) *Game {
	g := &Game{}
	g.Reset(seed)
	return g
}

// Reset starts a fresh board with two tiles.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.rng = board.NewSource(seed)
	g.board = board.New(g.rng)
	g.moves = 0
	g.gameOver = g.board.HasLost()
}

// Step applies one move. It reports whether the board changed; a move that
// changes nothing does not count and spawns no tile.
func (g *Game) Step(dir board.Direction) bool {
	if g.gameOver {
		return false
	}

	if !g.board.Move(dir, g.rng) {
		return false
	}

	g.moves++
	g.gameOver = g.board.HasLost()
	return true
}

// State returns the current game state.
func (g *Game) State() State {
	return State{
		Score:    g.board.Score,
		GameOver: g.gameOver,
		Moves:    g.moves,
		MaxTile:  g.board.MaxTile(),
	}
}

// Board returns a copy of the current board.
func (g *Game) Board() board.Board {
	return g.board
}

// Seed returns the seed the current board was started from.
func (g *Game) Seed() int64 {
	return g.seed
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | R: Restart | Q: Quit"
}
