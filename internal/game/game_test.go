package game

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/merge2048/internal/board"
	"github.com/vovakirdan/merge2048/internal/core"
)

func tileCount(b board.Board) int {
	return board.Size*board.Size - len(b.EmptyCells())
}

func TestNewGame(t *testing.T) {
	g := New(42)

	if n := tileCount(g.Board()); n != board.StartingTiles {
		t.Errorf("new game has %d tiles, want %d", n, board.StartingTiles)
	}

	st := g.State()
	if st.Score != 0 || st.Moves != 0 || st.GameOver {
		t.Errorf("new game state = %+v", st)
	}
	if g.Seed() != 42 {
		t.Errorf("Seed() = %d, want 42", g.Seed())
	}
}

func TestDeterministicGames(t *testing.T) {
	play := func() Snapshot {
		g := New(7)
		for i := range 200 {
			g.Step(board.Directions()[i%4])
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if a != b {
		t.Errorf("same seed produced different games:\n%+v\n%+v", a, b)
	}
}

func TestStepCountsOnlyRealMoves(t *testing.T) {
	g := New(1)

	var moved int
	for i := range 50 {
		if g.Step(board.Directions()[i%4]) {
			moved++
		}
		if g.State().GameOver {
			break
		}
	}

	if g.State().Moves != moved {
		t.Errorf("Moves = %d, want %d", g.State().Moves, moved)
	}
}

func TestStepAfterGameOver(t *testing.T) {
	g := New(3)
	for i := 0; i < 10000 && !g.State().GameOver; i++ {
		g.Step(board.Directions()[i%4])
	}
	if !g.State().GameOver {
		t.Fatal("game did not end")
	}

	before := g.Snapshot()
	for _, dir := range board.Directions() {
		if g.Step(dir) {
			t.Errorf("Step(%v) after game over should not move", dir)
		}
	}
	if g.Snapshot() != before {
		t.Error("state changed after game over")
	}
	if before.Phase != PhaseGameOver {
		t.Errorf("Phase = %q, want %q", before.Phase, PhaseGameOver)
	}
}

func TestReset(t *testing.T) {
	g := New(5)
	for i := range 20 {
		g.Step(board.Directions()[i%4])
	}

	g.Reset(5)
	fresh := New(5)

	if g.Snapshot() != fresh.Snapshot() {
		t.Errorf("Reset(5) = %+v, want %+v", g.Snapshot(), fresh.Snapshot())
	}
}

func TestSnapshot(t *testing.T) {
	g := New(11)
	g.Step(board.Left)

	snap := g.Snapshot()
	if snap.Board != g.Board().Rows() {
		t.Error("snapshot board does not match game board")
	}
	if snap.Score != g.State().Score || snap.MaxTile != g.State().MaxTile {
		t.Errorf("snapshot = %+v, state = %+v", snap, g.State())
	}
	if snap.Phase != PhasePlaying {
		t.Errorf("Phase = %q, want %q", snap.Phase, PhasePlaying)
	}
}

func TestRender(t *testing.T) {
	g := New(2)
	s := core.NewScreen(80, 24)
	g.Render(s)

	out := s.String()
	if !strings.Contains(out, "2048") {
		t.Error("render should show the title")
	}
	if !strings.Contains(out, "Score: 0") {
		t.Error("render should show the score")
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("new game should not show game over")
	}

	// Starting tiles are drawn in their tile colour.
	found := 0
	for y := range s.Height() {
		for x := range s.Width() {
			c := s.GetCell(x, y)
			if (c.Rune == '2' || c.Rune == '4') && c.Color == core.TileColor(int(c.Rune-'0')) {
				found++
			}
		}
	}
	if found < board.StartingTiles {
		t.Errorf("found %d coloured tiles, want at least %d", found, board.StartingTiles)
	}
}

func TestRenderGameOver(t *testing.T) {
	g := New(3)
	for i := 0; i < 10000 && !g.State().GameOver; i++ {
		g.Step(board.Directions()[i%4])
	}

	s := core.NewScreen(80, 24)
	g.Render(s)

	if !strings.Contains(s.String(), "GAME OVER") {
		t.Error("finished game should show the game over overlay")
	}
}

func TestDrawOverlay(t *testing.T) {
	s := core.NewScreen(20, 9)
	drawOverlay(s, core.NewRect(0, 0, 20, 9), "AB", "WIDE")

	want := []string{
		"                    ",
		"                    ",
		"      ┌──────┐      ",
		"      │  AB  │      ",
		"      │ WIDE │      ",
		"      └──────┘      ",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(1)
	s := core.NewScreen(MinWidth-1, MinHeight)
	g.Render(s)

	if !strings.Contains(s.String(), "too small") {
		t.Errorf("expected a too-small message, got:\n%s", s.String())
	}
}

func TestWriteTable(t *testing.T) {
	b := board.FromRows([board.Size][board.Size]int{
		{2, 2, 2, 2},
		{2, 8, 1, 1},
		{0, 0, 0, 0},
		{2, 4, 1, 2048},
	})

	var buf bytes.Buffer
	if err := WriteTable(&buf, b.Cells); err != nil {
		t.Fatalf("WriteTable() failed: %v", err)
	}

	want := strings.Join([]string{
		"       0         1         2         3    ",
		"0 |    2    |    2    |    2    |    2    |",
		"1 |    2    |    8    |    1    |    1    |",
		"2 |         |         |         |         |",
		"3 |    2    |    4    |    1    |  2048   |",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("WriteTable() =\n%s\nwant\n%s", got, want)
	}
}
