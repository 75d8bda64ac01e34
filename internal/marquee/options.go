package marquee

import "math"

// Default option values
const (
	DefaultText  = "Hello there! How's it going? Welcome to MediaDL"
	DefaultSpeed = 1.0
)

// Options configures a Marquee at construction.
type Options struct {
	// Text is the string to tile. Trailing whitespace is replaced by a single separator glyph.
	Text string
	// Speed is the distance advanced per frame while idle. Only the magnitude is used.
	Speed float64
	// Direction is the initial autonomous direction.
	Direction Direction
	// Interactive enables pointer dragging.
	Interactive bool
	// ClassName is a cosmetic styling hook interpreted by the host surface.
	ClassName string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Text:        DefaultText,
		Speed:       DefaultSpeed,
		Direction:   Left,
		Interactive: true,
	}
}

// speedMagnitude returns |speed|, or 0 for NaN and infinities.
func speedMagnitude(speed float64) float64 {
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0
	}
	return math.Abs(speed)
}

// sanitized returns a copy with speed reduced to a finite magnitude and an unknown
// direction replaced by Left.
func (o Options) sanitized() Options {
	o.Speed = speedMagnitude(o.Speed)
	if o.Direction != Left && o.Direction != Right {
		o.Direction = Left
	}
	return o
}
