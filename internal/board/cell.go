// Package board implements the 2048 board engine: a fixed 4x4 grid of tiles,
// the directional slide-and-merge move, loss detection and random tile spawning.
//
// All four move directions are reduced to a single slide-left pass by rotating
// the grid before and after the pass. The board itself is a plain comparable
// value; randomness is injected into the operations that spawn tiles.
package board

import "strconv"

// Size is the board dimension.
const Size = 4

// StartingTiles is the number of tiles placed on a new board.
const StartingTiles = 2

// Cell is a single board space. The zero value is Vacant; any positive value
// is a tile carrying that number.
type Cell int

// Vacant is an empty space.
const Vacant Cell = 0

// Tile returns a cell holding a tile of the given value.
func Tile(value int) Cell {
	return Cell(value)
}

// IsVacant reports whether the cell holds no tile.
func (c Cell) IsVacant() bool {
	return c == Vacant
}

// Value returns the tile value, or 0 for a vacant cell.
func (c Cell) Value() int {
	return int(c)
}

// String returns the decimal tile value, or an empty string for a vacant cell.
func (c Cell) String() string {
	if c.IsVacant() {
		return ""
	}
	return strconv.Itoa(int(c))
}

// Pos is a board coordinate: X is the column, Y the row.
// The origin is the top-left corner and Y increases downward.
type Pos struct {
	X, Y int
}

// Grid is the square matrix of cells, indexed [row][column].
type Grid [Size][Size]Cell

// Rotate turns the grid counter-clockwise by 90 degrees, times times.
// times is taken mod 4, so Rotate(g, k) followed by Rotate(g, 4-k) restores g.
func Rotate(g *Grid, times int) {
	times = ((times % 4) + 4) % 4
	n := Size

	for range times {
		for i := 0; i < n/2; i++ {
			for j := i; j < n-i-1; j++ {
				tmp := g[i][j]
				g[i][j] = g[j][n-i-1]
				g[j][n-i-1] = g[n-i-1][n-j-1]
				g[n-i-1][n-j-1] = g[n-j-1][i]
				g[n-j-1][i] = tmp
			}
		}
	}
}
