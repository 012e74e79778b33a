// Package ui provides the terminal user interface of ElephAnt.
//
// The package renders a form for the active setup, a tree of open setups,
// a status line, and a log view on a tcell screen. Its text fields and
// labels implement the binder's field interfaces, so the form is bound to
// a setup document purely through the binder's naming convention.
package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Label is a one-way bound text display.
type Label struct {
	text string
}

// NewLabel creates a label with initial text.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// SetText replaces the displayed text.
func (l *Label) SetText(text string) {
	l.text = text
}

// Text returns the displayed text.
func (l *Label) Text() string {
	return l.text
}

// Draw renders the label at x,y clipped to width.
func (l *Label) Draw(s tcell.Screen, x, y, width int, style tcell.Style) {
	drawString(s, x, y, width, style, l.text)
}

// TextField is a single-line editable text field. Programmatic SetText
// does not fire the change handler; only user edits through HandleKey do.
// The binder relies on this: bind-time population must not dirty the setup.
type TextField struct {
	text     []rune
	cursor   int
	onChange func(string)
}

// NewTextField creates an empty text field.
func NewTextField() *TextField {
	return &TextField{}
}

// Text returns the current text.
func (f *TextField) Text() string {
	return string(f.text)
}

// SetText replaces the text and moves the cursor to the end without
// firing the change handler.
func (f *TextField) SetText(text string) {
	f.text = []rune(text)
	f.cursor = len(f.text)
}

// OnChange registers the handler fired on every user edit. Passing nil
// removes the handler.
func (f *TextField) OnChange(fn func(string)) {
	f.onChange = fn
}

// HandleKey applies a key event to the field. Returns true if the event
// was consumed.
func (f *TextField) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		f.insert(ev.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if f.cursor == 0 {
			return true
		}
		f.text = append(f.text[:f.cursor-1], f.text[f.cursor:]...)
		f.cursor--
		f.fireChange()
	case tcell.KeyDelete:
		if f.cursor >= len(f.text) {
			return true
		}
		f.text = append(f.text[:f.cursor], f.text[f.cursor+1:]...)
		f.fireChange()
	case tcell.KeyLeft:
		if f.cursor > 0 {
			f.cursor--
		}
	case tcell.KeyRight:
		if f.cursor < len(f.text) {
			f.cursor++
		}
	case tcell.KeyHome:
		f.cursor = 0
	case tcell.KeyEnd:
		f.cursor = len(f.text)
	default:
		return false
	}
	return true
}

// insert places a rune at the cursor.
func (f *TextField) insert(r rune) {
	f.text = append(f.text, 0)
	copy(f.text[f.cursor+1:], f.text[f.cursor:])
	f.text[f.cursor] = r
	f.cursor++
	f.fireChange()
}

// fireChange invokes the change handler, if any.
func (f *TextField) fireChange() {
	if f.onChange != nil {
		f.onChange(string(f.text))
	}
}

// Cursor returns the cursor position in runes.
func (f *TextField) Cursor() int {
	return f.cursor
}

// Draw renders the field at x,y clipped to width.
func (f *TextField) Draw(s tcell.Screen, x, y, width int, style tcell.Style) {
	drawString(s, x, y, width, style, string(f.text))
}

// drawString writes text at x,y, clipped to width, padding the remainder
// with spaces so stale content is overwritten.
func drawString(s tcell.Screen, x, y, width int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		if col >= width {
			break
		}
		s.SetContent(x+col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.SetContent(x+col, y, ' ', nil, style)
	}
}
