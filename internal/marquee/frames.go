package marquee

// FrameHandle identifies a pending frame callback.
type FrameHandle uint64

// FrameSource delivers frame-ready notifications. RequestFrame schedules fn to run once on
// the next frame; CancelFrame removes a pending request. Implementations call fn on the
// same goroutine that delivers input events.
type FrameSource interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}

type frameRequest struct {
	handle FrameHandle
	fn     func()
}

// ManualFrames is a FrameSource driven by explicit Tick calls. Hosts call Tick from their
// own frame notification (a fyne animation tick, a terminal ticker); tests call it directly.
type ManualFrames struct {
	next    FrameHandle
	pending []frameRequest
}

// NewManualFrames creates an empty frame queue.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{}
}

// RequestFrame queues fn for the next Tick.
func (f *ManualFrames) RequestFrame(fn func()) FrameHandle {
	f.next++
	f.pending = append(f.pending, frameRequest{handle: f.next, fn: fn})
	return f.next
}

// CancelFrame drops a pending request. Unknown or already-run handles are ignored.
func (f *ManualFrames) CancelFrame(h FrameHandle) {
	for i, r := range f.pending {
		if r.handle == h {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued requests.
func (f *ManualFrames) Pending() int {
	return len(f.pending)
}

// Tick runs the requests that were pending when it was called, in request order.
// Requests made by those callbacks wait for the next Tick. It returns the number run.
func (f *ManualFrames) Tick() int {
	batch := f.pending
	f.pending = nil
	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}
