package ui

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/mediadl/internal/marquee"
)

// animationFrames drives a marquee.ManualFrames queue from a fyne animation that never
// ends. fyne calls the tick function once per rendered frame on its main goroutine.
type animationFrames struct {
	*marquee.ManualFrames
	anim    *fyne.Animation
	running bool
}

func newAnimationFrames() *animationFrames {
	f := &animationFrames{ManualFrames: marquee.NewManualFrames()}
	f.anim = fyne.NewAnimation(time.Second, func(float32) {
		f.Tick()
	})
	f.anim.Curve = fyne.AnimationLinear
	f.anim.RepeatCount = fyne.AnimationRepeatForever
	return f
}

func (f *animationFrames) start() {
	if f.running {
		return
	}
	f.running = true
	f.anim.Start()
}

func (f *animationFrames) stop() {
	if !f.running {
		return
	}
	f.running = false
	f.anim.Stop()
}
