package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ClassStyle maps space-separated class tokens to a tcell style. Unknown tokens are
// ignored; the last color token wins.
func ClassStyle(class string) tcell.Style {
	st := tcell.StyleDefault
	for _, tok := range strings.Fields(strings.ToLower(class)) {
		switch tok {
		case "primary":
			st = st.Foreground(tcell.ColorBlue)
		case "error":
			st = st.Foreground(tcell.ColorRed)
		case "success":
			st = st.Foreground(tcell.ColorGreen)
		case "warning":
			st = st.Foreground(tcell.ColorYellow)
		case "disabled":
			st = st.Foreground(tcell.ColorGray)
		case "foreground":
			st = st.Foreground(tcell.ColorDefault)
		case "bold":
			st = st.Bold(true)
		case "italic":
			st = st.Italic(true)
		}
	}
	return st
}
