package ui

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/elephant-hq/elephant/internal/setup"
)

// Controller is what the shell needs from the application logic. The
// shell owns presentation and input only; every operation on setups goes
// through this interface.
type Controller interface {
	// NewSetup creates a blank setup and makes it active.
	NewSetup()
	// OpenSetup loads a setup file and makes it active.
	OpenSetup(path string) error
	// SaveSetup saves the active setup ("" = remembered path).
	SaveSetup(path string) error
	// ExportJSON writes the active setup as JSON to path.
	ExportJSON(path string) error
	// CloseSetup removes the active setup. With force false it refuses
	// when the setup has unsaved changes and returns false.
	CloseSetup(force bool) bool
	// CycleSetup activates the next open setup.
	CycleSetup()
	// CurrentSetup returns the active setup (nil if none).
	CurrentSetup() *setup.Setup
	// Setups returns all open setups.
	Setups() []*setup.Setup
}

// promptKind selects what the status row is doing.
type promptKind int

const (
	promptNone promptKind = iota
	promptInput
	promptConfirm
)

// prompt is the inline input/confirm overlay on the status row.
type prompt struct {
	kind    promptKind
	caption string
	input   *TextField
	submit  func(text string)
	confirm func()
}

// Shell owns the tcell screen and runs the event loop.
type Shell struct {
	screen     tcell.Screen
	controller Controller

	form    *Form
	tree    *Tree
	status  *StatusLine
	logview *LogView
	prompt  prompt

	confirmQuit bool
	quit        bool
}

// treeWidth is the width of the setup tree column.
const treeWidth = 28

// logHeight is the height of the log view above the status row.
const logHeight = 4

// NewShell creates a shell on the given screen. The screen is not
// initialized until Run.
func NewShell(screen tcell.Screen) *Shell {
	return &Shell{
		screen:  screen,
		form:    NewForm(),
		tree:    NewTree(),
		status:  NewStatusLine(),
		logview: NewLogView(200),
	}
}

// SetController attaches the application logic.
func (s *Shell) SetController(c Controller) {
	s.controller = c
}

// Form returns the setup form; the application binds it to setups.
func (s *Shell) Form() *Form {
	return s.form
}

// LogView returns the log sink; the application installs it as a logger
// output.
func (s *Shell) LogView() *LogView {
	return s.logview
}

// Status returns the status line.
func (s *Shell) Status() *StatusLine {
	return s.status
}

// Refresh pulls the current application state into the tree and status
// line. The application calls this from its dirty callback.
func (s *Shell) Refresh() {
	if s.controller == nil {
		return
	}
	s.tree.SetState(s.controller.Setups(), s.controller.CurrentSetup())
	if st := s.controller.CurrentSetup(); st != nil {
		s.status.SetState(st.Path(), st.IsDirty())
	} else {
		s.status.SetState("", false)
	}
}

// Quit asks the event loop to stop. Safe to call from another goroutine.
func (s *Shell) Quit() {
	s.quit = true
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run initializes the screen and processes events until quit.
func (s *Shell) Run() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	defer s.screen.Fini()

	s.screen.EnablePaste()
	s.Refresh()

	for !s.quit {
		s.draw()

		ev := s.screen.PollEvent()
		if ev == nil {
			break
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventInterrupt:
			// Quit() posted this; the loop condition decides.
		case *tcell.EventKey:
			s.handleKey(ev)
			s.Refresh()
		}
	}

	return nil
}

// handleKey dispatches one key event.
func (s *Shell) handleKey(ev *tcell.EventKey) {
	if s.prompt.kind != promptNone {
		s.handlePromptKey(ev)
		return
	}

	if ev.Key() != tcell.KeyCtrlQ {
		s.confirmQuit = false
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		s.requestQuit()
	case tcell.KeyCtrlN:
		s.controller.NewSetup()
		s.openInput("Save new setup as: ", func(path string) {
			s.reportError(s.controller.SaveSetup(path))
		})
	case tcell.KeyCtrlO:
		s.openInput("Open setup: ", func(path string) {
			s.reportError(s.controller.OpenSetup(path))
		})
	case tcell.KeyCtrlS:
		err := s.controller.SaveSetup("")
		if errors.Is(err, setup.ErrNoTarget) {
			s.openInput("Save setup as: ", func(path string) {
				s.reportError(s.controller.SaveSetup(path))
			})
			return
		}
		s.reportError(err)
	case tcell.KeyCtrlA:
		s.openInput("Save setup as: ", func(path string) {
			s.reportError(s.controller.SaveSetup(path))
		})
	case tcell.KeyCtrlE:
		s.openInput("Export JSON to: ", func(path string) {
			s.reportError(s.controller.ExportJSON(path))
		})
	case tcell.KeyCtrlW:
		if !s.controller.CloseSetup(false) {
			s.openConfirm("Close setup with unsaved changes? (y/n)", func() {
				s.controller.CloseSetup(true)
			})
		}
	case tcell.KeyCtrlT:
		s.controller.CycleSetup()
	case tcell.KeyTab:
		s.form.FocusNext()
	case tcell.KeyBacktab:
		s.form.FocusPrev()
	default:
		s.form.HandleKey(ev)
	}
}

// requestQuit quits immediately when no setup is dirty; otherwise the
// first press warns and the second discards the changes.
func (s *Shell) requestQuit() {
	if !s.anyDirty() || s.confirmQuit {
		s.quit = true
		return
	}
	s.confirmQuit = true
	s.status.SetMessage("Unsaved changes. Ctrl-Q again to discard and quit.")
}

// anyDirty reports whether any open setup has unsaved changes.
func (s *Shell) anyDirty() bool {
	for _, st := range s.controller.Setups() {
		if st.IsDirty() {
			return true
		}
	}
	return false
}

// handlePromptKey routes a key to the active prompt.
func (s *Shell) handlePromptKey(ev *tcell.EventKey) {
	switch s.prompt.kind {
	case promptInput:
		switch ev.Key() {
		case tcell.KeyEscape:
			s.closePrompt()
		case tcell.KeyEnter:
			submit := s.prompt.submit
			text := s.prompt.input.Text()
			s.closePrompt()
			if text != "" {
				submit(text)
			}
		default:
			s.prompt.input.HandleKey(ev)
		}
	case promptConfirm:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Rune() == 'n':
			s.closePrompt()
		case ev.Rune() == 'y':
			confirm := s.prompt.confirm
			s.closePrompt()
			confirm()
		}
	case promptNone:
	}
}

// openInput shows an inline input prompt on the status row.
func (s *Shell) openInput(caption string, submit func(text string)) {
	s.prompt = prompt{
		kind:    promptInput,
		caption: caption,
		input:   NewTextField(),
		submit:  submit,
	}
}

// openConfirm shows a yes/no prompt on the status row.
func (s *Shell) openConfirm(caption string, confirm func()) {
	s.prompt = prompt{
		kind:    promptConfirm,
		caption: caption,
		confirm: confirm,
	}
}

// closePrompt dismisses the active prompt.
func (s *Shell) closePrompt() {
	s.prompt = prompt{}
}

// reportError surfaces an operation result on the status line.
func (s *Shell) reportError(err error) {
	if err != nil {
		s.status.SetMessage("Error: " + err.Error())
		return
	}
	s.status.SetMessage("")
}

// draw renders the whole screen.
func (s *Shell) draw() {
	width, height := s.screen.Size()
	s.screen.HideCursor()

	titleStyle := tcell.StyleDefault.Bold(true)
	title := "ElephAnt"
	if st := s.currentSetup(); st != nil {
		title += " - " + st.General().Get(setup.KeySetupName)
		if st.IsDirty() {
			title += "*"
		}
	}
	drawString(s.screen, 0, 0, width, titleStyle, title)

	bodyTop := 2
	bodyHeight := height - bodyTop - logHeight - 1
	if bodyHeight < 0 {
		bodyHeight = 0
	}

	s.tree.Draw(s.screen, 0, bodyTop, treeWidth, bodyHeight)

	formX := treeWidth + 2
	if formX < width {
		s.form.Draw(s.screen, formX, bodyTop, width-formX, s.prompt.kind == promptNone)
	}

	s.logview.Draw(s.screen, 0, height-logHeight-1, width, logHeight)

	if s.prompt.kind != promptNone {
		s.drawPrompt(width, height-1)
	} else {
		s.status.Draw(s.screen, 0, height-1, width)
	}

	s.screen.Show()
}

// drawPrompt renders the prompt on the status row and places the cursor.
func (s *Shell) drawPrompt(width, y int) {
	style := tcell.StyleDefault.Reverse(true)

	text := s.prompt.caption
	if s.prompt.kind == promptInput {
		text += s.prompt.input.Text()
	}
	drawString(s.screen, 0, y, width, style, text)

	if s.prompt.kind == promptInput {
		captionLen := len([]rune(s.prompt.caption))
		s.screen.ShowCursor(captionLen+s.prompt.input.Cursor(), y)
	}
}

// currentSetup is a nil-safe view of the controller's active setup.
func (s *Shell) currentSetup() *setup.Setup {
	if s.controller == nil {
		return nil
	}
	return s.controller.CurrentSetup()
}
