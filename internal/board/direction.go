package board

// Direction represents a move direction.
// The numeric value is the number of counter-clockwise quarter turns that
// bring the direction to Left.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions returns all four move directions.
func Directions() []Direction {
	return []Direction{Left, Up, Right, Down}
}

// String returns the lowercase action token for the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection maps an action token to a direction.
// Returns false for anything other than left, up, right or down.
func ParseDirection(token string) (Direction, bool) {
	switch token {
	case "left":
		return Left, true
	case "up":
		return Up, true
	case "right":
		return Right, true
	case "down":
		return Down, true
	default:
		return Left, false
	}
}

// turns returns the quarter turns needed to face this direction and the
// turns needed to undo it.
func (d Direction) turns() (forward, back int) {
	forward = int(d) % 4
	return forward, (4 - forward) % 4
}
