package game

import (
	"fmt"

	"github.com/vovakirdan/merge2048/internal/board"
	"github.com/vovakirdan/merge2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3

	boardW = board.Size*cellWidth + 1
	boardH = board.Size*cellHeight + 1

	// MinWidth and MinHeight are the smallest screen the board fits on.
	MinWidth  = boardW + 2
	MinHeight = hudHeight + 1 + boardH + 2
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		renderTooSmall(dst)
		return
	}

	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)

	dst.DrawTextCentered(boardY+boardH+1, g.Controls(), core.ColorGray)

	if g.gameOver {
		drawOverlay(dst, core.NewRect(boardX, boardY, boardW, boardH),
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", g.board.MaxTile()),
			"Press R to restart",
		)
	}
}

func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

// renderHUD draws the title, score, max tile and move count.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.board.Score))

	best := fmt.Sprintf("Max: %d", g.board.MaxTile())
	dst.DrawText(max(boardX+boardW-len(best), boardX), 1, best)

	moves := fmt.Sprintf("Moves: %d", g.moves)
	dst.DrawTextColored(boardX+(boardW-len(moves))/2, 2, moves, core.ColorGray)
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range board.Size + 1 {
		for x := range board.Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColored(px, py, junction(x, y), core.ColorGray)

			if x < board.Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < board.Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for y := range board.Size {
		for x := range board.Size {
			cell := g.board.Cells[y][x]
			if cell.IsVacant() {
				continue
			}

			label := cell.String()
			pad := max((cellWidth-1-len(label))/2, 0)
			dst.DrawTextColored(
				boardX+x*cellWidth+1+pad,
				boardY+y*cellHeight+1,
				label,
				core.TileColor(cell.Value()),
			)
		}
	}
}

// junction picks the box-drawing rune where grid lines meet.
func junction(x, y int) rune {
	last := board.Size
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == last:
		return '┐'
	case y == last && x == 0:
		return '└'
	case y == last && x == last:
		return '┘'
	case y == 0:
		return '┬'
	case y == last:
		return '┴'
	case x == 0:
		return '├'
	case x == last:
		return '┤'
	default:
		return '┼'
	}
}

// drawOverlay draws a boxed block of text centred over area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, core.TextWidth(line))
	}

	cx, cy := area.Center()
	box := core.Centered(cx, cy, width+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightRed)

	inner := box.Inset(1)
	for i, line := range lines {
		dst.DrawText(inner.X+(inner.W-core.TextWidth(line))/2, inner.Y+i, line)
	}
}
