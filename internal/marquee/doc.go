// Package marquee implements the scrolling text ribbon shown in the application header.
//
// The engine is independent of any rendering surface: a host supplies a Measurer for the
// advance of one copy of the text, the length of the path the ribbon travels along, and a
// FrameSource that delivers frame-ready notifications. Pointer drags and animation frames both
// mutate tile offsets through the same wrap-around rule, so every tile satisfies
// -spacing <= offset < tileCount*spacing - spacing after each individual mutation.
//
// A Marquee is not safe for concurrent use. Hosts deliver input events and frames from a single
// goroutine (fyne's main goroutine, or the terminal event loop).
package marquee
