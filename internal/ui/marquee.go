package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mediadl/internal/marquee"
)

// Marquee geometry
const (
	// MarqueeOverscan extends the travel path past both edges so tiles enter and leave
	// the visible area smoothly.
	MarqueeOverscan float32 = 100
	MarqueeMinWidth float32 = 60
)

// SizeNameMarqueeText is the theme size used for the ribbon text.
const SizeNameMarqueeText fyne.ThemeSizeName = "marqueeText"

// marqueeStyle is the parsed form of a class name.
type marqueeStyle struct {
	color fyne.ThemeColorName
	text  fyne.TextStyle
}

// parseMarqueeClass reads space-separated tokens. Unknown tokens are ignored; the last
// color token wins.
func parseMarqueeClass(class string) marqueeStyle {
	st := marqueeStyle{color: theme.ColorNameForeground}
	for _, tok := range strings.Fields(strings.ToLower(class)) {
		switch tok {
		case "primary":
			st.color = theme.ColorNamePrimary
		case "error":
			st.color = theme.ColorNameError
		case "success":
			st.color = theme.ColorNameSuccess
		case "warning":
			st.color = theme.ColorNameWarning
		case "disabled":
			st.color = theme.ColorNameDisabled
		case "foreground":
			st.color = theme.ColorNameForeground
		case "bold":
			st.text.Bold = true
		case "italic":
			st.text.Italic = true
		case "monospace":
			st.text.Monospace = true
		}
	}
	return st
}

// textMeasurer measures with the same size and style the tiles are drawn with.
type textMeasurer struct {
	size  float32
	style fyne.TextStyle
}

func (m *textMeasurer) Advance(text string) float64 {
	return float64(fyne.MeasureText(text, m.size, m.style).Width)
}

// MarqueeOption customises a Marquee at construction.
type MarqueeOption func(*Marquee)

// WithMeasurer replaces the fyne text measurer.
func WithMeasurer(m marquee.Measurer) MarqueeOption {
	return func(w *Marquee) {
		w.measurer = m
		w.customMeasurer = true
	}
}

// WithFrameSource replaces the animation-driven frame source. The caller is responsible
// for delivering frames.
func WithFrameSource(f marquee.FrameSource) MarqueeOption {
	return func(w *Marquee) {
		w.frames = f
	}
}

// Marquee is a horizontally scrolling, draggable ribbon of repeated text.
type Marquee struct {
	widget.BaseWidget

	engine         *marquee.Marquee
	style          marqueeStyle
	textSize       float32
	measurer       marquee.Measurer
	customMeasurer bool
	frames         marquee.FrameSource
	anim           *animationFrames
	width          float32

	// theme the cached text size was resolved against
	sizeTheme fyne.Theme
}

var (
	_ fyne.Draggable     = (*Marquee)(nil)
	_ desktop.Hoverable  = (*Marquee)(nil)
	_ desktop.Cursorable = (*Marquee)(nil)
)

// NewMarquee creates a ribbon that starts scrolling immediately.
func NewMarquee(opts marquee.Options, options ...MarqueeOption) *Marquee {
	m := &Marquee{style: parseMarqueeClass(opts.ClassName)}
	m.ExtendBaseWidget(m)
	for _, o := range options {
		o(m)
	}

	m.textSize = m.currentTextSize()
	if m.measurer == nil {
		m.measurer = &textMeasurer{size: m.textSize, style: m.style.text}
	}
	if m.frames == nil {
		m.anim = newAnimationFrames()
		m.frames = m.anim
	}

	m.engine = marquee.New(opts, m.measurer, pathLengthFor(0), m.frames)
	m.engine.OnChange(m.Refresh)
	if m.anim != nil {
		m.anim.start()
	}
	return m
}

func pathLengthFor(width float32) float64 {
	return float64(width + 2*MarqueeOverscan)
}

// currentTextSize resolves the tile text size, looking it up again only when the theme changes.
func (m *Marquee) currentTextSize() float32 {
	th := m.Theme()
	if m.sizeTheme != nil && m.sizeTheme == th {
		return m.textSize
	}
	m.sizeTheme = th
	if s := th.Size(SizeNameMarqueeText); s > 0 {
		return s
	}
	return th.Size(theme.SizeNameText)
}

// Engine returns the underlying ribbon state.
func (m *Marquee) Engine() *marquee.Marquee {
	return m.engine
}

// SetText replaces the ribbon text and rebuilds the tiles.
func (m *Marquee) SetText(text string) {
	m.engine.SetText(text)
}

// Text returns the text as drawn, including the trailing separator.
func (m *Marquee) Text() string {
	return m.engine.Text()
}

// Dragged follows the pointer. The first event of a gesture also captures it.
func (m *Marquee) Dragged(e *fyne.DragEvent) {
	if !m.engine.Dragging() {
		m.engine.DragStart(float64(e.Position.X - e.Dragged.DX))
	}
	m.engine.DragMove(float64(e.Position.X))
}

// DragEnd releases the pointer.
func (m *Marquee) DragEnd() {
	m.engine.DragEnd()
}

// MouseIn is part of desktop.Hoverable.
func (m *Marquee) MouseIn(*desktop.MouseEvent) {}

// MouseMoved is part of desktop.Hoverable.
func (m *Marquee) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends a drag when the pointer leaves the ribbon.
func (m *Marquee) MouseOut() {
	if m.engine.Dragging() {
		m.engine.DragEnd()
	}
}

// Cursor shows a pointer over an interactive ribbon.
func (m *Marquee) Cursor() desktop.Cursor {
	if m.engine.Options().Interactive && !m.engine.Destroyed() {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

// Hide pauses the animation while the ribbon is not visible.
func (m *Marquee) Hide() {
	if m.anim != nil {
		m.anim.stop()
	}
	m.BaseWidget.Hide()
}

// Show resumes the animation.
func (m *Marquee) Show() {
	if m.anim != nil && !m.engine.Destroyed() {
		m.anim.start()
	}
	m.BaseWidget.Show()
}

// Destroy stops the ribbon for good. Releasing the renderer only pauses it.
func (m *Marquee) Destroy() {
	m.engine.Destroy()
	if m.anim != nil {
		m.anim.stop()
	}
}

// CreateRenderer is a private method to Fyne which links this widget to its renderer
func (m *Marquee) CreateRenderer() fyne.WidgetRenderer {
	if m.anim != nil && !m.engine.Destroyed() && m.Visible() {
		m.anim.start()
	}
	return &marqueeRenderer{m: m}
}

type marqueeRenderer struct {
	m       *Marquee
	tiles   []*canvas.Text
	objects []fyne.CanvasObject
	size    fyne.Size
}

func (r *marqueeRenderer) Destroy() {
	if r.m.anim != nil {
		r.m.anim.stop()
	}
}

func (r *marqueeRenderer) Layout(size fyne.Size) {
	r.size = size
	if size.Width != r.m.width {
		r.m.width = size.Width
		r.m.engine.Remeasure(pathLengthFor(size.Width))
		r.sync()
		return
	}
	r.place()
}

func (r *marqueeRenderer) MinSize() fyne.Size {
	h := fyne.MeasureText("M", r.m.textSize, r.m.style.text).Height
	return fyne.NewSize(MarqueeMinWidth, h+2*r.m.Theme().Size(theme.SizeNamePadding))
}

func (r *marqueeRenderer) Objects() []fyne.CanvasObject {
	if r.objects == nil {
		r.sync()
	}
	return r.objects
}

func (r *marqueeRenderer) Refresh() {
	if size := r.m.currentTextSize(); size != r.m.textSize {
		r.m.textSize = size
		if tm, ok := r.m.measurer.(*textMeasurer); ok && !r.m.customMeasurer {
			tm.size = size
			r.m.engine.Remeasure(pathLengthFor(r.m.width))
			return
		}
	}
	r.sync()
	canvas.Refresh(r.m)
}

// sync makes one canvas.Text per tile and positions them.
func (r *marqueeRenderer) sync() {
	n := r.m.engine.TileCount()
	text := r.m.engine.Text()
	col := r.color()

	for len(r.tiles) < n {
		r.tiles = append(r.tiles, canvas.NewText("", col))
	}
	r.tiles = r.tiles[:n]

	if len(r.objects) != n {
		r.objects = make([]fyne.CanvasObject, n)
		for i, t := range r.tiles {
			r.objects[i] = t
		}
	}
	for _, t := range r.tiles {
		t.Text = text
		t.Color = col
		t.TextSize = r.m.textSize
		t.TextStyle = r.m.style.text
	}
	r.place()
}

// place moves tile i to its offset shifted left by the overscan.
func (r *marqueeRenderer) place() {
	offsets := r.m.engine.Offsets()
	spacing := float32(r.m.engine.Spacing())
	for i, t := range r.tiles {
		if i >= len(offsets) {
			break
		}
		h := t.MinSize().Height
		x := float32(offsets[i]) - MarqueeOverscan
		t.Resize(fyne.NewSize(spacing, h))
		t.Move(fyne.NewPos(x, (r.size.Height-h)/2))
		if x+spacing <= 0 || x >= r.size.Width {
			t.Hide()
		} else {
			t.Show()
		}
	}
}

func (r *marqueeRenderer) color() color.Color {
	variant := fyne.CurrentApp().Settings().ThemeVariant()
	return r.m.Theme().Color(r.m.style.color, variant)
}
