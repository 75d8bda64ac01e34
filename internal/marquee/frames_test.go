package marquee

import "testing"

func TestManualFramesOrder(t *testing.T) {
	f := NewManualFrames()
	var got []int

	f.RequestFrame(func() { got = append(got, 1) })
	f.RequestFrame(func() {
		got = append(got, 2)
		f.RequestFrame(func() { got = append(got, 4) })
	})
	f.RequestFrame(func() { got = append(got, 3) })

	if n := f.Tick(); n != 3 {
		t.Errorf("Expected 3 callbacks on first tick, got %d", n)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Unexpected order %v", got)
	}
	if f.Pending() != 1 {
		t.Errorf("Request made during a tick should wait, pending = %d", f.Pending())
	}

	f.Tick()
	if len(got) != 4 || got[3] != 4 {
		t.Errorf("Expected deferred callback on second tick, got %v", got)
	}
}

func TestManualFramesCancel(t *testing.T) {
	f := NewManualFrames()
	ran := false

	h := f.RequestFrame(func() { ran = true })
	f.CancelFrame(h)
	f.CancelFrame(h)
	f.CancelFrame(FrameHandle(999))

	if f.Tick() != 0 || ran {
		t.Error("Cancelled frame should not run")
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	f := NewManualFrames()
	steps := 0
	s := NewScheduler(f, func() { steps++ })

	if s.Running() {
		t.Error("New scheduler should not be running")
	}
	s.Start()
	s.Start()
	if f.Pending() != 1 {
		t.Fatalf("Start should request exactly one frame, pending = %d", f.Pending())
	}

	for i := 0; i < 5; i++ {
		f.Tick()
	}
	if steps != 5 {
		t.Errorf("Expected 5 steps, got %d", steps)
	}
	if !s.Running() {
		t.Error("Scheduler should reschedule itself each frame")
	}

	s.Stop()
	s.Stop()
	if s.Running() || f.Pending() != 0 {
		t.Errorf("Stop should cancel the pending frame, pending = %d", f.Pending())
	}
	f.Tick()
	if steps != 5 {
		t.Errorf("No steps expected after Stop, got %d", steps)
	}

	s.Start()
	if f.Pending() != 0 {
		t.Error("Start after Stop should have no effect")
	}
}

func TestSchedulerStopFromStep(t *testing.T) {
	f := NewManualFrames()
	var s *Scheduler
	s = NewScheduler(f, func() { s.Stop() })
	s.Start()
	f.Tick()
	if f.Pending() != 0 {
		t.Error("Stop inside step should prevent rescheduling")
	}
}
