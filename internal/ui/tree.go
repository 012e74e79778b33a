package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/elephant-hq/elephant/internal/setup"
)

// Tree renders the open setups. The active setup is expanded to show its
// sections; dirty setups carry a "*" marker after their name.
type Tree struct {
	setups []*setup.Setup
	active *setup.Setup
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// SetState replaces the tree's view of the open setups.
func (t *Tree) SetState(setups []*setup.Setup, active *setup.Setup) {
	t.setups = setups
	t.active = active
}

// Lines renders the tree content as text lines.
func (t *Tree) Lines() []string {
	var lines []string
	for _, st := range t.setups {
		name := st.General().Get(setup.KeySetupName)
		if st.IsDirty() {
			name += "*"
		}
		if st == t.active {
			lines = append(lines, "- "+name+" - Active")
			for _, section := range st.Sections() {
				lines = append(lines, "    ["+section+"]")
			}
		} else {
			lines = append(lines, "+ "+name)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "(no open setups)")
	}
	return lines
}

// Draw renders the tree into the given rectangle.
func (t *Tree) Draw(s tcell.Screen, x, y, width, height int) {
	style := tcell.StyleDefault
	activeStyle := tcell.StyleDefault.Bold(true)

	lines := t.Lines()
	for i := 0; i < height; i++ {
		if i >= len(lines) {
			drawString(s, x, y+i, width, style, "")
			continue
		}
		lineStyle := style
		if len(lines[i]) > 0 && lines[i][0] == '-' {
			lineStyle = activeStyle
		}
		drawString(s, x, y+i, width, lineStyle, lines[i])
	}
}
