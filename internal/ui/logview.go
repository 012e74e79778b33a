package ui

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// LogView is a ring buffer of log lines that implements io.Writer, so it
// can be installed directly as a logger output. It is the terminal
// counterpart of the original application's UI log handler.
type LogView struct {
	mu    sync.Mutex
	lines []string
	max   int
}

// NewLogView creates a log view keeping at most max lines.
func NewLogView(max int) *LogView {
	if max <= 0 {
		max = 100
	}
	return &LogView{max: max}
}

// Write appends log output, splitting it into lines. It never fails.
func (v *LogView) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		v.lines = append(v.lines, line)
	}
	if excess := len(v.lines) - v.max; excess > 0 {
		v.lines = v.lines[excess:]
	}

	return len(p), nil
}

// Tail returns the last n lines.
func (v *LogView) Tail(n int) []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n > len(v.lines) {
		n = len(v.lines)
	}
	out := make([]string, n)
	copy(out, v.lines[len(v.lines)-n:])
	return out
}

// Draw renders the last lines fitting the given rectangle.
func (v *LogView) Draw(s tcell.Screen, x, y, width, height int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)

	lines := v.Tail(height)
	for i := 0; i < height; i++ {
		if i < len(lines) {
			drawString(s, x, y+i, width, style, lines[i])
		} else {
			drawString(s, x, y+i, width, style, "")
		}
	}
}
