package board

import "math/rand"

// FourChance is the probability that a spawned tile is a 4 rather than a 2.
const FourChance = 0.1

// Source supplies the randomness used for tile spawning.
// *rand.Rand satisfies it. A nil Source disables spawning, which keeps
// moves deterministic in tests. A nil *rand.Rand counts as nil.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// SharedSource draws from the package-level math/rand generator.
// It is safe for concurrent use, so request handlers that each own a Board
// can share it.
var SharedSource Source = sharedSource{}

type sharedSource struct{}

func (sharedSource) Intn(n int) int   { return rand.Intn(n) }
func (sharedSource) Float64() float64 { return rand.Float64() }

// NewSource returns a seeded, non-shared source for a single session.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Normalize returns nil for a nil Source or a typed nil *rand.Rand, and src
// otherwise.
func Normalize(src Source) Source {
	if r, ok := src.(*rand.Rand); ok && r == nil {
		return nil
	}
	return src
}

// Spawn places a 2 (or, with probability FourChance, a 4) on a uniformly
// chosen vacant cell. It returns the chosen position and false when the board
// is full or src is nil.
func (b *Board) Spawn(src Source) (Pos, bool) {
	src = Normalize(src)
	if src == nil {
		return Pos{}, false
	}

	empty := b.EmptyCells()
	if len(empty) == 0 {
		return Pos{}, false
	}

	value := 2
	if src.Float64() < FourChance {
		value = 4
	}

	pos := empty[src.Intn(len(empty))]
	b.Set(pos, Tile(value))
	return pos, true
}

// EmptyCells returns the positions of all vacant cells in row-major order.
func (b Board) EmptyCells() []Pos {
	var cells []Pos
	for y := range Size {
		for x := range Size {
			if b.Cells[y][x].IsVacant() {
				cells = append(cells, Pos{X: x, Y: y})
			}
		}
	}
	return cells
}
