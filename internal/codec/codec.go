// Package codec translates between a board and the button message that shows
// it in chat.
//
// The bot keeps no session store, so a rendered message is the only record of
// a game: Decode(Encode(b)) must reproduce b exactly. All label and score
// parsing lives here so the rest of the bot never scrapes message text.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/vovakirdan/merge2048/internal/board"
)

const (
	// VacantLabel is the zero-width space shown on empty cells; buttons
	// cannot carry an empty label.
	VacantLabel = "\u200b"

	// ScorePrefix precedes the decimal score in the message content.
	ScorePrefix = "**Score:** "

	// GameOverHeading is prepended to the score line once the game is lost.
	GameOverHeading = "**Game Over!**"

	// highTile is the smallest tile drawn with the success style.
	highTile = 2048
)

// ErrMalformedGrid is returned when a message does not hold a 4x4 board.
var ErrMalformedGrid = errors.New("codec: malformed grid")

// Control is a direction button shown below the grid.
type Control struct {
	Dir   board.Direction
	Arrow string
}

// Controls are the direction buttons in display order.
var Controls = []Control{
	{Dir: board.Left, Arrow: "⬅️"},
	{Dir: board.Up, Arrow: "⬆️"},
	{Dir: board.Down, Arrow: "⬇️"},
	{Dir: board.Right, Arrow: "➡️"},
}

// Rendered is a board encoded as message content plus components.
type Rendered struct {
	Content    string
	Components []discordgo.MessageComponent
	GameOver   bool
}

// Encode renders b as score text, four rows of tile buttons and a control row.
func Encode(b board.Board) Rendered {
	lost := b.HasLost()
	return Rendered{
		Content:    Content(b.Score, lost),
		Components: Components(b, lost),
		GameOver:   lost,
	}
}

// Content returns the message text carrying the score.
func Content(score int, gameOver bool) string {
	line := ScorePrefix + strconv.Itoa(score)
	if gameOver {
		return GameOverHeading + "\n> " + line
	}
	return line
}

// Components returns the grid rows followed by the control row.
// The controls are disabled once the game is over.
func Components(b board.Board, gameOver bool) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, board.Size+1)

	for y := range board.Size {
		buttons := make([]discordgo.MessageComponent, 0, board.Size)
		for x := range board.Size {
			buttons = append(buttons, cellButton(x, y, b.Cells[y][x]))
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}

	controls := make([]discordgo.MessageComponent, 0, len(Controls))
	for _, c := range Controls {
		controls = append(controls, discordgo.Button{
			CustomID: c.Dir.String(),
			Label:    c.Arrow,
			Style:    discordgo.SuccessButton,
			Disabled: gameOver,
		})
	}
	rows = append(rows, discordgo.ActionsRow{Components: controls})

	return rows
}

func cellButton(x, y int, c board.Cell) discordgo.Button {
	btn := discordgo.Button{
		CustomID: fmt.Sprintf("%d-%d", x, y),
	}

	switch {
	case c.IsVacant():
		btn.Label = VacantLabel
		btn.Style = discordgo.SecondaryButton
		btn.Disabled = true
	case c.Value() >= highTile:
		btn.Label = c.String()
		btn.Style = discordgo.SuccessButton
	default:
		btn.Label = c.String()
		btn.Style = discordgo.PrimaryButton
	}

	return btn
}

// Decode rebuilds the board shown in msg. The grid comes from the labels of
// the first four rows in row-major order; custom ids and the control row are
// ignored. The score falls back to 0 when it cannot be read.
func Decode(msg *discordgo.Message) (board.Board, error) {
	var b board.Board

	if msg == nil || len(msg.Components) < board.Size {
		n := 0
		if msg != nil {
			n = len(msg.Components)
		}
		return b, fmt.Errorf("%w: %d rows, want at least %d", ErrMalformedGrid, n, board.Size)
	}

	for y := range board.Size {
		row, ok := RowButtons(msg.Components[y])
		if !ok || len(row) != board.Size {
			return b, fmt.Errorf("%w: row %d does not hold %d buttons", ErrMalformedGrid, y, board.Size)
		}
		for x, btn := range row {
			cell, err := ParseLabel(btn.Label)
			if err != nil {
				return b, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			b.Cells[y][x] = cell
		}
	}

	b.Score = DecodeScore(msg.Content)
	return b, nil
}

// RowButtons returns the buttons of an action row. Rows built by Encode hold
// values while rows parsed from JSON hold pointers; both are accepted.
// ok is false when c is not an action row or holds anything but buttons.
func RowButtons(c discordgo.MessageComponent) ([]discordgo.Button, bool) {
	var children []discordgo.MessageComponent
	switch row := c.(type) {
	case discordgo.ActionsRow:
		children = row.Components
	case *discordgo.ActionsRow:
		if row == nil {
			return nil, false
		}
		children = row.Components
	default:
		return nil, false
	}

	buttons := make([]discordgo.Button, 0, len(children))
	for _, child := range children {
		switch btn := child.(type) {
		case discordgo.Button:
			buttons = append(buttons, btn)
		case *discordgo.Button:
			if btn == nil {
				return nil, false
			}
			buttons = append(buttons, *btn)
		default:
			return nil, false
		}
	}
	return buttons, true
}

// ParseLabel converts a button label back into a cell.
func ParseLabel(label string) (board.Cell, error) {
	if label == VacantLabel {
		return board.Vacant, nil
	}

	v, err := strconv.ParseUint(label, 10, strconv.IntSize-1)
	if err != nil || v == 0 {
		return board.Vacant, fmt.Errorf("%w: label %q", ErrMalformedGrid, label)
	}
	return board.Tile(int(v)), nil
}

// DecodeScore reads the score following ScorePrefix in content.
// A missing prefix or unparsable number yields 0.
func DecodeScore(content string) int {
	start := strings.Index(content, ScorePrefix)
	if start < 0 {
		return 0
	}

	rest := strings.TrimSpace(content[start+len(ScorePrefix):])
	v, err := strconv.ParseUint(rest, 10, strconv.IntSize-1)
	if err != nil {
		return 0
	}
	return int(v)
}
