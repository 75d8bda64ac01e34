package marquee

import (
	"log"

	"github.com/google/uuid"
)

// Marquee is one mounted ribbon: measured text, its tiles, the drag state machine and the
// frame loop. All entry points are no-ops after Destroy.
type Marquee struct {
	id        string
	opts      Options
	text      string
	direction Direction
	measurer  Measurer
	metrics   Metrics
	tiles     Tiles
	input     Input
	sched     *Scheduler
	onChange  func()
	destroyed bool
}

// New measures the text, lays out tiles for pathLength and starts the frame loop on frames.
func New(opts Options, measurer Measurer, pathLength float64, frames FrameSource) *Marquee {
	opts = opts.sanitized()
	m := &Marquee{
		id:        uuid.NewString(),
		opts:      opts,
		text:      NormalizeText(opts.Text),
		direction: opts.Direction,
		measurer:  measurer,
	}
	m.layout(pathLength)
	m.sched = NewScheduler(frames, m.Step)
	m.sched.Start()
	return m
}

// layout measures text and path and rebuilds the tiles.
func (m *Marquee) layout(pathLength float64) {
	m.metrics = Measure(m.measurer, m.text, pathLength)
	m.tiles.Rebuild(m.metrics.Spacing, m.metrics.PathLength)
	if m.metrics.Frozen() {
		log.Printf("marquee %s: text %q has no advance, animation frozen", m.id, m.text)
	}
}

// Remeasure re-reads the text advance and rebuilds tiles for a new path length.
// Previous tile positions are discarded.
func (m *Marquee) Remeasure(pathLength float64) {
	if m.destroyed {
		return
	}
	m.layout(pathLength)
	m.changed()
}

// SetText replaces the text and rebuilds the tiles for the current path length.
func (m *Marquee) SetText(text string) {
	if m.destroyed {
		return
	}
	m.opts.Text = text
	m.text = NormalizeText(text)
	m.layout(m.metrics.PathLength)
	m.changed()
}

// Step advances one animation frame. A frozen or dragged ribbon does not move.
func (m *Marquee) Step() {
	if m.destroyed || m.metrics.Frozen() || m.input.Dragging() {
		return
	}
	if m.opts.Speed == 0 {
		return
	}
	m.tiles.ApplyDelta(m.direction.sign() * m.opts.Speed)
	m.changed()
}

// DragStart captures the pointer at x.
func (m *Marquee) DragStart(x float64) {
	if m.destroyed || !m.opts.Interactive {
		return
	}
	m.input.Begin(x)
}

// DragMove moves the ribbon by the pointer displacement since the previous event.
func (m *Marquee) DragMove(x float64) {
	if m.destroyed || !m.opts.Interactive {
		return
	}
	dx, ok := m.input.Move(x)
	if !ok || dx == 0 || m.metrics.Frozen() {
		return
	}
	m.tiles.ApplyDelta(dx)
	m.changed()
}

// DragEnd releases the pointer and, for a fast enough final move, flips the autonomous
// direction to follow it.
func (m *Marquee) DragEnd() {
	if m.destroyed || !m.opts.Interactive {
		return
	}
	dir, flipped, ok := m.input.End()
	if !ok || !flipped {
		return
	}
	if dir != m.direction {
		log.Printf("marquee %s: direction %s -> %s", m.id, m.direction, dir)
	}
	m.direction = dir
}

// Destroy stops the frame loop and releases any captured pointer.
func (m *Marquee) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.sched.Stop()
	m.input.Release()
	m.onChange = nil
}

// OnChange registers fn to run after every mutation of the tile offsets or layout.
func (m *Marquee) OnChange(fn func()) {
	if m.destroyed {
		return
	}
	m.onChange = fn
}

func (m *Marquee) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}

// ID returns the per-instance identifier.
func (m *Marquee) ID() string { return m.id }

// Text returns the normalized text drawn by each tile.
func (m *Marquee) Text() string { return m.text }

// Options returns the sanitized construction options, with Text reflecting SetText.
func (m *Marquee) Options() Options { return m.opts }

// Direction returns the current autonomous direction.
func (m *Marquee) Direction() Direction { return m.direction }

// Metrics returns the last measurement.
func (m *Marquee) Metrics() Metrics { return m.metrics }

// Spacing returns the advance of one tile.
func (m *Marquee) Spacing() float64 { return m.metrics.Spacing }

// PathLength returns the length of the travel path.
func (m *Marquee) PathLength() float64 { return m.metrics.PathLength }

// TileCount returns the number of tiles.
func (m *Marquee) TileCount() int { return m.tiles.Len() }

// Offsets returns a copy of the tile offsets.
func (m *Marquee) Offsets() []float64 { return m.tiles.Offsets() }

// Dragging reports whether a drag gesture is in progress.
func (m *Marquee) Dragging() bool { return m.input.Dragging() }

// Running reports whether the frame loop has a pending frame.
func (m *Marquee) Running() bool { return m.sched.Running() }

// Destroyed reports whether Destroy has been called.
func (m *Marquee) Destroyed() bool { return m.destroyed }
