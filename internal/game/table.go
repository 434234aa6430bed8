package game

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/merge2048/internal/board"
)

// tableCellWidth is the width of one column in WriteTable output.
const tableCellWidth = 9

// WriteTable prints g as a plain fixed-width table with column indices on
// top and row indices on the left. Vacant cells print blank.
//
//	       0         1         2         3
//	0 |    2    |    4    |         |         |
func WriteTable(w io.Writer, g board.Grid) error {
	var sb strings.Builder

	sb.WriteString("  ")
	for x := range board.Size {
		sb.WriteByte(' ')
		sb.WriteString(center(strconv.Itoa(x)))
	}
	sb.WriteByte('\n')

	for y, row := range g {
		fmt.Fprintf(&sb, "%d |", y)
		for _, cell := range row {
			sb.WriteString(center(cell.String()))
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func center(s string) string {
	if s == "" {
		return strings.Repeat(" ", tableCellWidth)
	}
	return lipgloss.PlaceHorizontal(tableCellWidth, lipgloss.Center, s)
}
