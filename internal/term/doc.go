// Package term draws the marquee ribbon on a tcell screen.
//
// The surface measures text in display cells with go-runewidth, advances the ribbon from a
// 16 ms ticker in its event loop and drags it with the primary mouse button.
package term
