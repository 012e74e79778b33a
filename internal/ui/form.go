package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/elephant-hq/elephant/internal/binder"
)

// row is one form line: a caption next to a named, bindable widget.
type row struct {
	caption string
	name    string
	field   *TextField
	label   *Label
}

// Form lays out the setup fields. Field names follow the binder's
// convention, so binding the form to a setup is a single Bind call on
// the map returned by Fields.
type Form struct {
	rows  []row
	focus int
}

// NewForm creates the setup form with the default-schema fields.
func NewForm() *Form {
	return &Form{
		rows: []row{
			{caption: "Setup Name", name: "tb_setup_name", field: NewTextField()},
			{caption: "Comment", name: "tb_setup_comment", field: NewTextField()},
			{caption: "AUT Name", name: "tb_aut_name", field: NewTextField()},
			{caption: "HW Attribute", name: "tb_some_hw_attr", field: NewTextField()},
			{caption: "Last Modified", name: "l_last_modified", label: NewLabel("")},
		},
	}
}

// Fields returns the name-to-field map the binder binds against.
func (f *Form) Fields() map[string]binder.Label {
	fields := make(map[string]binder.Label, len(f.rows))
	for _, r := range f.rows {
		if r.field != nil {
			fields[r.name] = r.field
		} else {
			fields[r.name] = r.label
		}
	}
	return fields
}

// FocusNext moves focus to the next editable row.
func (f *Form) FocusNext() {
	f.moveFocus(1)
}

// FocusPrev moves focus to the previous editable row.
func (f *Form) FocusPrev() {
	f.moveFocus(-1)
}

// moveFocus steps over read-only rows.
func (f *Form) moveFocus(dir int) {
	for i := 0; i < len(f.rows); i++ {
		f.focus = (f.focus + dir + len(f.rows)) % len(f.rows)
		if f.rows[f.focus].field != nil {
			return
		}
	}
}

// Focused returns the text field holding focus, or nil if the focused
// row is read-only.
func (f *Form) Focused() *TextField {
	return f.rows[f.focus].field
}

// HandleKey routes a key event to the focused text field.
func (f *Form) HandleKey(ev *tcell.EventKey) bool {
	field := f.Focused()
	if field == nil {
		return false
	}
	return field.HandleKey(ev)
}

// captionWidth is the fixed width of the caption column.
const captionWidth = 15

// Draw renders the form rows. The focused row's field is highlighted and
// the screen cursor is placed at its edit position.
func (f *Form) Draw(s tcell.Screen, x, y, width int, focused bool) {
	captionStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	fieldStyle := tcell.StyleDefault
	focusStyle := tcell.StyleDefault.Underline(true)

	for i, r := range f.rows {
		drawString(s, x, y+i, captionWidth, captionStyle, r.caption)

		fx := x + captionWidth + 1
		fw := width - captionWidth - 1
		if fw <= 0 {
			continue
		}

		style := fieldStyle
		if focused && i == f.focus && r.field != nil {
			style = focusStyle
		}

		if r.field != nil {
			r.field.Draw(s, fx, y+i, fw, style)
			if focused && i == f.focus {
				s.ShowCursor(fx+r.field.Cursor(), y+i)
			}
		} else {
			r.label.Draw(s, fx, y+i, fw, fieldStyle)
		}
	}
}

// Height returns the number of rows the form occupies.
func (f *Form) Height() int {
	return len(f.rows)
}
