package marquee

import "math"

// FlipVelocity is the last-move speed, in path units, above which a released drag
// changes the autonomous direction.
const FlipVelocity = 1.0

// DragPhase is the state of the pointer drag state machine.
type DragPhase int

const (
	// DragIdle means no gesture is in progress.
	DragIdle DragPhase = iota
	// DragActive means the pointer is captured and the ribbon tracks it.
	DragActive
)

// String returns the phase name.
func (p DragPhase) String() string {
	if p == DragActive {
		return "dragging"
	}
	return "idle"
}

// Input tracks a single pointer gesture. Multiple pointers are not distinguished: a second
// Begin while dragging continues the current gesture from the new position.
type Input struct {
	phase    DragPhase
	lastX    float64
	velocity float64
}

// Phase returns the current phase.
func (in *Input) Phase() DragPhase {
	return in.phase
}

// Dragging reports whether a gesture is in progress.
func (in *Input) Dragging() bool {
	return in.phase == DragActive
}

// Velocity returns the delta of the last recorded move.
func (in *Input) Velocity() float64 {
	return in.velocity
}

// Begin captures the pointer at x.
func (in *Input) Begin(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	if in.phase == DragActive {
		in.lastX = x
		return true
	}
	in.phase = DragActive
	in.lastX = x
	in.velocity = 0
	return true
}

// Move records the pointer at x and returns the displacement since the previous position.
// It reports false when no gesture is in progress.
func (in *Input) Move(x float64) (float64, bool) {
	if in.phase != DragActive || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	dx := x - in.lastX
	in.lastX = x
	in.velocity = dx
	return dx, true
}

// End finishes the gesture. When the last move was faster than FlipVelocity the returned
// direction follows the sign of that move and changed is true.
func (in *Input) End() (dir Direction, changed bool, ok bool) {
	if in.phase != DragActive {
		return Left, false, false
	}
	in.phase = DragIdle
	v := in.velocity
	in.velocity = 0
	if math.Abs(v) <= FlipVelocity {
		return Left, false, true
	}
	if v > 0 {
		return Right, true, true
	}
	return Left, true, true
}

// Release drops the gesture without affecting direction.
func (in *Input) Release() bool {
	if in.phase != DragActive {
		return false
	}
	in.phase = DragIdle
	in.velocity = 0
	return true
}
