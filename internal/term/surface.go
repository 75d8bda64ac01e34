package term

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ytget/mediadl/internal/marquee"
)

// Surface constants
const (
	FrameInterval = 16 * time.Millisecond
	// Overscan is the number of cells the path extends past each screen edge.
	Overscan    = 4
	eventBuffer = 100
	HintText    = "drag with the mouse · q to quit"
)

// CellMeasurer measures text in terminal display cells.
type CellMeasurer struct{}

// Advance returns the display width of text.
func (CellMeasurer) Advance(text string) float64 {
	return float64(runewidth.StringWidth(text))
}

// Surface renders one marquee on the middle row of a tcell screen.
type Surface struct {
	screen tcell.Screen
	engine *marquee.Marquee
	frames *marquee.ManualFrames
	style  tcell.Style
	width  int
	height int
	dirty  bool
}

// NewSurface mounts a ribbon on an initialised screen and enables mouse reporting.
func NewSurface(screen tcell.Screen, opts marquee.Options) *Surface {
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	w, h := screen.Size()
	s := &Surface{
		screen: screen,
		frames: marquee.NewManualFrames(),
		style:  ClassStyle(opts.ClassName),
		width:  w,
		height: h,
		dirty:  true,
	}
	s.engine = marquee.New(opts, CellMeasurer{}, pathLength(w), s.frames)
	s.engine.OnChange(func() { s.dirty = true })
	return s
}

func pathLength(width int) float64 {
	return float64(width + 2*Overscan)
}

// Engine returns the underlying ribbon state.
func (s *Surface) Engine() *marquee.Marquee {
	return s.engine
}

// Run drives the ribbon until ctx is done or the user quits. The caller owns the screen
// and must Fini it.
func (s *Surface) Run(ctx context.Context) error {
	defer s.engine.Destroy()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, eventBuffer)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	s.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !s.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			s.Frame()
		}
	}
}

// Frame delivers one animation frame and redraws if anything moved.
func (s *Surface) Frame() {
	s.frames.Tick()
	if s.dirty {
		s.Draw()
	}
}

// HandleEvent applies one terminal event. It returns false when the user asked to quit.
func (s *Surface) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}

	case *tcell.EventResize:
		s.screen.Sync()
		s.width, s.height = s.screen.Size()
		s.engine.Remeasure(pathLength(s.width))

	case *tcell.EventMouse:
		s.handleMouse(ev)
	}
	return true
}

// handleMouse turns button 1 press, motion and release into drag calls. A pointer outside
// the screen counts as leaving the surface.
func (s *Surface) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	inside := x >= 0 && x < s.width && y >= 0 && y < s.height
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && inside && !s.engine.Dragging():
		s.engine.DragStart(float64(x))
	case pressed && inside:
		s.engine.DragMove(float64(x))
	case s.engine.Dragging():
		s.engine.DragEnd()
	}
}

// Row returns the screen row the ribbon is drawn on.
func (s *Surface) Row() int {
	return s.height / 2
}

// Draw paints every tile at its offset shifted left by the overscan.
func (s *Surface) Draw() {
	s.dirty = false
	s.screen.Clear()

	row := s.Row()
	text := s.engine.Text()
	for _, offset := range s.engine.Offsets() {
		s.drawText(int(math.Floor(offset))-Overscan, row, text, s.style)
	}
	if s.height > 2 {
		s.drawText(0, s.height-1, HintText, tcell.StyleDefault.Dim(true))
	}
	s.screen.Show()
}

func (s *Surface) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if r == '\u00a0' {
			r = ' '
		}
		if x >= 0 && x < s.width {
			s.screen.SetContent(x, y, r, nil, style)
		}
		x += w
		if x >= s.width {
			return
		}
	}
}
