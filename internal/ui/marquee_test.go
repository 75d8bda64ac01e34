package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/mediadl/internal/marquee"
)

var perRune = marquee.MeasureFunc(func(text string) float64 {
	return 10 * float64(utf8.RuneCountInString(strings.TrimSuffix(text, marquee.Separator)))
})

func newTestMarquee(t *testing.T, opts marquee.Options) (*Marquee, *marquee.ManualFrames) {
	t.Helper()
	test.NewApp()
	frames := marquee.NewManualFrames()
	m := NewMarquee(opts, WithMeasurer(perRune), WithFrameSource(frames))
	t.Cleanup(m.Destroy)
	return m, frames
}

func TestMarqueeLayoutFollowsWidth(t *testing.T) {
	m, _ := newTestMarquee(t, marquee.Options{Text: "AB", Speed: 2, Direction: marquee.Left, Interactive: true})

	if got := m.Engine().PathLength(); got != float64(2*MarqueeOverscan) {
		t.Errorf("Expected initial path %v, got %v", 2*MarqueeOverscan, got)
	}

	m.Resize(fyne.NewSize(100, 30))
	if got := m.Engine().PathLength(); got != 300 {
		t.Fatalf("Expected path 300 after resize, got %v", got)
	}
	if got := m.Engine().TileCount(); got != 17 {
		t.Errorf("Expected 17 tiles, got %d", got)
	}

	r := test.TempWidgetRenderer(t, m)
	r.Layout(m.Size())
	if len(r.Objects()) != 17 {
		t.Fatalf("Expected 17 canvas objects, got %d", len(r.Objects()))
	}
	for i, o := range r.Objects() {
		txt, ok := o.(*canvas.Text)
		if !ok {
			t.Fatalf("object %d is %T, expected *canvas.Text", i, o)
		}
		if txt.Text != "AB"+marquee.Separator {
			t.Errorf("object %d: expected text %q, got %q", i, "AB"+marquee.Separator, txt.Text)
		}
	}
}

func TestMarqueeTilesFollowOffsets(t *testing.T) {
	m, frames := newTestMarquee(t, marquee.Options{Text: "AB", Speed: 2, Direction: marquee.Left})
	m.Resize(fyne.NewSize(100, 30))
	r := test.TempWidgetRenderer(t, m)
	r.Layout(m.Size())

	frames.Tick()
	r.Refresh()

	offsets := m.Engine().Offsets()
	for i, o := range r.Objects() {
		want := float32(offsets[i]) - MarqueeOverscan
		if got := o.Position().X; got != want {
			t.Errorf("tile %d: expected x %v, got %v", i, want, got)
		}
		visible := want+20 > 0 && want < 100
		if o.Visible() != visible {
			t.Errorf("tile %d at %v: expected visible=%v", i, want, visible)
		}
	}
}

func TestMarqueeDrag(t *testing.T) {
	m, _ := newTestMarquee(t, marquee.Options{Text: "AB", Speed: 1, Direction: marquee.Left, Interactive: true})
	m.Resize(fyne.NewSize(100, 30))
	before := m.Engine().Offsets()

	m.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 10)},
		Dragged:    fyne.NewDelta(5, 0),
	})
	if !m.Engine().Dragging() {
		t.Fatal("Expected drag to be captured")
	}
	after := m.Engine().Offsets()
	moved := 0
	for i := range before {
		if after[i] != before[i] {
			moved++
		}
	}
	if moved != len(before) {
		t.Errorf("Expected all %d tiles to move, %d moved", len(before), moved)
	}

	m.DragEnd()
	if m.Engine().Dragging() {
		t.Error("Expected drag released")
	}
	if m.Engine().Direction() != marquee.Right {
		t.Errorf("Expected direction to flip to right, got %s", m.Engine().Direction())
	}
}

func TestMarqueeMouseOutEndsDrag(t *testing.T) {
	m, _ := newTestMarquee(t, marquee.Options{Text: "AB", Speed: 1, Direction: marquee.Right, Interactive: true})
	m.Resize(fyne.NewSize(100, 30))

	m.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(40, 10)},
		Dragged:    fyne.NewDelta(-3, 0),
	})
	m.MouseOut()

	if m.Engine().Dragging() {
		t.Error("Expected pointer leave to end the drag")
	}
	if m.Engine().Direction() != marquee.Left {
		t.Errorf("Expected direction left after fast leftward release, got %s", m.Engine().Direction())
	}
}

func TestMarqueeNonInteractive(t *testing.T) {
	m, _ := newTestMarquee(t, marquee.Options{Text: "AB", Speed: 1, Direction: marquee.Left})
	m.Resize(fyne.NewSize(100, 30))
	before := m.Engine().Offsets()

	m.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 10)},
		Dragged:    fyne.NewDelta(8, 0),
	})
	m.DragEnd()

	for i, x := range m.Engine().Offsets() {
		if x != before[i] {
			t.Fatalf("tile %d moved on a non-interactive ribbon", i)
		}
	}
	if m.Cursor() != desktop.DefaultCursor {
		t.Error("Expected default cursor on a non-interactive ribbon")
	}
}

func TestMarqueeSetTextRebuilds(t *testing.T) {
	m, _ := newTestMarquee(t, marquee.Options{Text: "AB", Speed: 1, Direction: marquee.Left})
	m.Resize(fyne.NewSize(100, 30))
	r := test.TempWidgetRenderer(t, m)

	m.SetText("ABCD   ")
	if m.Text() != "ABCD"+marquee.Separator {
		t.Errorf("Expected normalized text, got %q", m.Text())
	}
	// spacing 40 over path 300
	if got := m.Engine().TileCount(); got != 10 {
		t.Fatalf("Expected 10 tiles, got %d", got)
	}
	if len(r.Objects()) != 10 {
		t.Errorf("Expected renderer to follow tile count, got %d objects", len(r.Objects()))
	}
}

func TestMarqueeDestroy(t *testing.T) {
	m, frames := newTestMarquee(t, marquee.Options{Text: "AB", Speed: 1, Direction: marquee.Left, Interactive: true})

	if frames.Pending() != 1 {
		t.Fatalf("Expected one pending frame, got %d", frames.Pending())
	}
	m.Destroy()
	m.Destroy()

	if !m.Engine().Destroyed() {
		t.Error("Expected engine destroyed")
	}
	if frames.Pending() != 0 {
		t.Errorf("Expected no pending frames after destroy, got %d", frames.Pending())
	}
	if m.Cursor() != desktop.DefaultCursor {
		t.Error("Expected default cursor after destroy")
	}

	m.SetText("ignored")
	m.Resize(fyne.NewSize(200, 30))
	if m.Text() != "AB"+marquee.Separator {
		t.Errorf("Expected text unchanged after destroy, got %q", m.Text())
	}
}

func TestMarqueeDefaultFrames(t *testing.T) {
	test.NewApp()
	m := NewMarquee(marquee.DefaultOptions())

	if m.anim == nil || !m.anim.running {
		t.Fatal("Expected the animation to start with the widget")
	}
	m.Hide()
	if m.anim.running {
		t.Error("Expected hidden ribbon to pause its animation")
	}
	m.Show()
	if !m.anim.running {
		t.Error("Expected shown ribbon to resume its animation")
	}
	m.Destroy()
	if m.anim.running || m.Engine().Running() {
		t.Error("Expected destroy to stop the animation and the frame loop")
	}
}

func TestMarqueeSurvivesRendererRebuild(t *testing.T) {
	m, frames := newTestMarquee(t, marquee.Options{Text: "AB", Speed: 1, Direction: marquee.Left, Interactive: true})

	r := m.CreateRenderer()
	r.Destroy()
	r = m.CreateRenderer()
	r.Layout(fyne.NewSize(100, 30))

	if m.Engine().Destroyed() {
		t.Fatal("Expected releasing the renderer to keep the ribbon alive")
	}
	if len(r.Objects()) != m.Engine().TileCount() {
		t.Errorf("Expected %d tile objects, got %d", m.Engine().TileCount(), len(r.Objects()))
	}

	before := m.Engine().Offsets()[0]
	frames.Tick()
	if after := m.Engine().Offsets()[0]; after == before {
		t.Errorf("Expected the ribbon to advance after rebuild, offset stayed %v", after)
	}

	m.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(40, 10)},
		Dragged:    fyne.Delta{DX: 5},
	})
	if !m.Engine().Dragging() {
		t.Error("Expected drags to work after rebuild")
	}
	m.DragEnd()
}

func TestMarqueeRendererReleasePausesAnimation(t *testing.T) {
	test.NewApp()
	m := NewMarquee(marquee.DefaultOptions())
	t.Cleanup(m.Destroy)

	r := m.CreateRenderer()
	r.Destroy()
	if m.anim.running {
		t.Error("Expected a released renderer to pause the animation")
	}
	if m.Engine().Destroyed() {
		t.Error("Expected the engine to outlive its renderer")
	}

	m.CreateRenderer()
	if !m.anim.running {
		t.Error("Expected a new renderer to resume the animation")
	}
}

type countingTheme struct {
	fyne.Theme
	lookups int
}

func (c *countingTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == SizeNameMarqueeText {
		c.lookups++
		return 0
	}
	return c.Theme.Size(name)
}

func TestMarqueeTextSizeCachedPerTheme(t *testing.T) {
	a := test.NewApp()
	th := &countingTheme{Theme: test.Theme()}
	a.Settings().SetTheme(th)

	frames := marquee.NewManualFrames()
	m := NewMarquee(marquee.Options{Text: "AB", Speed: 1, Interactive: true}, WithMeasurer(perRune), WithFrameSource(frames))
	t.Cleanup(m.Destroy)
	test.TempWidgetRenderer(t, m)

	for i := 0; i < 10; i++ {
		frames.Tick()
	}
	if th.lookups != 1 {
		t.Errorf("Expected one text size lookup per theme, got %d", th.lookups)
	}
	if want := test.Theme().Size(theme.SizeNameText); m.textSize != want {
		t.Errorf("Expected fallback text size %v, got %v", want, m.textSize)
	}

	next := &countingTheme{Theme: test.Theme()}
	a.Settings().SetTheme(next)
	m.Refresh()
	m.Refresh()
	if next.lookups != 1 {
		t.Errorf("Expected one lookup after theme change, got %d", next.lookups)
	}
}

func TestParseMarqueeClass(t *testing.T) {
	tests := []struct {
		class    string
		expected marqueeStyle
	}{
		{"", marqueeStyle{color: theme.ColorNameForeground}},
		{"primary", marqueeStyle{color: theme.ColorNamePrimary}},
		{"error bold", marqueeStyle{color: theme.ColorNameError, text: fyne.TextStyle{Bold: true}}},
		{"  Success  Italic monospace ", marqueeStyle{color: theme.ColorNameSuccess, text: fyne.TextStyle{Italic: true, Monospace: true}}},
		{"warning primary", marqueeStyle{color: theme.ColorNamePrimary}},
		{"unknown-token", marqueeStyle{color: theme.ColorNameForeground}},
	}

	for _, tc := range tests {
		if got := parseMarqueeClass(tc.class); got != tc.expected {
			t.Errorf("parseMarqueeClass(%q) = %+v, expected %+v", tc.class, got, tc.expected)
		}
	}
}
