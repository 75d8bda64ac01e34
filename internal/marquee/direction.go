package marquee

import (
	"fmt"
	"strings"
)

// Direction is the autonomous travel direction of the ribbon.
type Direction int

const (
	// Left moves tiles towards smaller offsets.
	Left Direction = iota
	// Right moves tiles towards larger offsets.
	Right
)

// String returns "left" or "right".
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// sign returns the multiplier applied to the speed magnitude.
func (d Direction) sign() float64 {
	if d == Right {
		return 1
	}
	return -1
}

// ParseDirection converts "left"/"right" (case-insensitive) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Left, fmt.Errorf("invalid marquee direction %q: want left or right", s)
	}
}
