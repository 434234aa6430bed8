package board

// Board is the 2048 game state: the grid and the accumulated score.
// It is a plain value and can be copied and compared with ==.
type Board struct {
	Cells Grid
	Score int
}

// Empty returns a board with every cell vacant and a zero score.
func Empty() Board {
	return Board{}
}

// New returns an empty board seeded with StartingTiles random tiles.
func New(src Source) Board {
	b := Empty()
	for range StartingTiles {
		b.Spawn(src)
	}
	return b
}

// FromRows builds a board from row-major tile values; 0 marks a vacant cell.
func FromRows(rows [Size][Size]int) Board {
	var b Board
	for y := range Size {
		for x := range Size {
			b.Cells[y][x] = Tile(rows[y][x])
		}
	}
	return b
}

// Get returns the cell at p. p must lie on the board.
func (b *Board) Get(p Pos) Cell {
	return b.Cells[p.Y][p.X]
}

// Set stores c at p. p must lie on the board.
func (b *Board) Set(p Pos, c Cell) {
	b.Cells[p.Y][p.X] = c
}

// Move slides every tile in the given direction, merging equal neighbours,
// and spawns one tile from src if anything changed.
// Returns whether the move changed the grid.
func (b *Board) Move(dir Direction, src Source) bool {
	forward, back := dir.turns()

	Rotate(&b.Cells, forward)

	changed := false
	for y := range Size {
		gained, rowChanged := slideRowLeft(&b.Cells[y])
		b.Score += gained
		changed = changed || rowChanged
	}

	Rotate(&b.Cells, back)

	if changed {
		b.Spawn(src)
	}
	return changed
}

// slideRowLeft merges and then compacts a single row toward column 0.
// Returns the score gained and whether any cell changed.
func slideRowLeft(row *[Size]Cell) (gained int, changed bool) {
	// Merge: each tile absorbs the nearest equal tile to its right.
	// A mismatched tile in between blocks the merge.
	for x := range Size {
		if row[x].IsVacant() {
			continue
		}
		for x2 := x + 1; x2 < Size; x2++ {
			if row[x2].IsVacant() {
				continue
			}
			if row[x2] == row[x] {
				row[x] *= 2
				row[x2] = Vacant
				gained += row[x].Value()
				changed = true
			}
			break
		}
	}

	// Compact: pull the nearest tile into each gap, keeping tile order.
	for x := range Size {
		if !row[x].IsVacant() {
			continue
		}
		for x2 := x + 1; x2 < Size; x2++ {
			if !row[x2].IsVacant() {
				row[x], row[x2] = row[x2], Vacant
				changed = true
				break
			}
		}
	}

	return gained, changed
}

// HasLost reports whether no move in any direction would change the board.
// The check runs on a copy of the grid; the board is not modified.
func (b Board) HasLost() bool {
	work := b.Cells

	// Half and three-quarter turns only mirror the rows of the first two,
	// so checking rows at 0 and 90 degrees covers every direction.
	for turn := range 2 {
		if turn > 0 {
			Rotate(&work, 1)
		}
		for y := range Size {
			for x := range Size - 1 {
				left, right := work[y][x], work[y][x+1]
				if left.IsVacant() || right.IsVacant() || left == right {
					return false
				}
			}
		}
	}
	return true
}

// MaxTile returns the largest tile value on the board, or 0 when empty.
func (b Board) MaxTile() int {
	maxVal := 0
	for y := range Size {
		for x := range Size {
			if v := b.Cells[y][x].Value(); v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// Rows returns the grid as row-major tile values, 0 for vacant cells.
func (b Board) Rows() [Size][Size]int {
	var rows [Size][Size]int
	for y := range Size {
		for x := range Size {
			rows[y][x] = b.Cells[y][x].Value()
		}
	}
	return rows
}
