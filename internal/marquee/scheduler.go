package marquee

// Scheduler runs step once per frame by re-requesting a frame from its source each cycle.
type Scheduler struct {
	frames  FrameSource
	step    func()
	handle  FrameHandle
	pending bool
	stopped bool
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(frames FrameSource, step func()) *Scheduler {
	return &Scheduler{frames: frames, step: step}
}

// Start requests the first frame. It has no effect once the scheduler is running or stopped.
func (s *Scheduler) Start() {
	if s.stopped || s.pending || s.frames == nil {
		return
	}
	s.schedule()
}

func (s *Scheduler) schedule() {
	s.handle = s.frames.RequestFrame(s.frame)
	s.pending = true
}

func (s *Scheduler) frame() {
	s.pending = false
	if s.stopped {
		return
	}
	s.step()
	if !s.stopped {
		s.schedule()
	}
}

// Stop cancels the pending frame. Calling it more than once is harmless.
func (s *Scheduler) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	if s.pending {
		s.frames.CancelFrame(s.handle)
		s.pending = false
	}
}

// Running reports whether a frame is pending.
func (s *Scheduler) Running() bool {
	return s.pending && !s.stopped
}
