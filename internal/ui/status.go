package ui

import (
	"github.com/gdamore/tcell/v2"
)

// StatusLine shows the active setup's path, the dirty marker, and
// transient messages.
type StatusLine struct {
	path    string
	dirty   bool
	message string
}

// NewStatusLine creates an empty status line.
func NewStatusLine() *StatusLine {
	return &StatusLine{}
}

// SetState updates the path and dirty marker.
func (sl *StatusLine) SetState(path string, dirty bool) {
	sl.path = path
	sl.dirty = dirty
}

// SetMessage sets a message shown instead of the path until the next
// SetMessage call clears or replaces it.
func (sl *StatusLine) SetMessage(msg string) {
	sl.message = msg
}

// Draw renders the status line.
func (sl *StatusLine) Draw(s tcell.Screen, x, y, width int) {
	style := tcell.StyleDefault.Reverse(true)

	text := sl.message
	if text == "" {
		switch {
		case sl.path == "":
			text = "(unsaved setup)"
		case sl.dirty:
			text = sl.path + " *"
		default:
			text = sl.path
		}
	}

	drawString(s, x, y, width, style, text)
}
