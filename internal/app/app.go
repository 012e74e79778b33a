// Package app wires the ElephAnt components together: it owns the
// collection of open setups, tracks which one is active, and connects
// the binder and the terminal shell.
package app

import (
	"errors"
	"io/fs"
	"time"

	"github.com/elephant-hq/elephant/internal/binder"
	"github.com/elephant-hq/elephant/internal/setup"
	"github.com/elephant-hq/elephant/internal/ui"
)

// Errors returned by application commands.
var (
	// ErrNoSetup indicates a command that needs an active setup ran
	// without one.
	ErrNoSetup = errors.New("no active setup")

	// ErrAlreadyOpen indicates the setup file is already open.
	ErrAlreadyOpen = errors.New("setup file is already open")
)

// Logic is the thin holder tracking which setup is active. The UI layer
// reads and switches the active setup exclusively through it.
type Logic struct {
	current *setup.Setup
}

// NewLogic creates a Logic with no active setup.
func NewLogic() *Logic {
	return &Logic{}
}

// CurrentSetup returns the active setup (nil if none).
func (l *Logic) CurrentSetup() *setup.Setup {
	return l.current
}

// SetCurrentSetup switches the active setup.
func (l *Logic) SetCurrentSetup(st *setup.Setup) {
	l.current = st
}

// Options configures the application.
type Options struct {
	// SetupPath is a setup file to open on startup.
	SetupPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Debug forces debug-level logging.
	Debug bool
}

// Application is the central coordinator. It owns the open setups (an
// explicit collection, not process state), the binder, and the shell.
type Application struct {
	opts   Options
	logic  *Logic
	logger *Logger
	setups []*setup.Setup
	binder *binder.Binder
	shell  *ui.Shell

	fs  setup.FileSystem
	now func() time.Time
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	level := ParseLogLevel(opts.LogLevel)
	if opts.Debug {
		level = LogLevelDebug
	}

	logger := NewLogger(LoggerConfig{Level: level, Prefix: "elephant"})

	app := &Application{
		opts:   opts,
		logic:  NewLogic(),
		logger: logger,
		binder: binder.New(binder.WithLogger(logger.WithComponent("binder"))),
		fs:     setup.DefaultFS(),
		now:    time.Now,
	}
	app.binder.OnValueChanged(app.refreshShell)

	return app, nil
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// SetShell attaches the terminal shell. Log output is redirected to the
// shell's log view, the original UI-log-handler behavior.
func (app *Application) SetShell(sh *ui.Shell) {
	app.shell = sh
	sh.SetController(app)
	app.logger.SetOutput(sh.LogView())
}

// Run opens the startup setup, if any, and runs the shell event loop.
func (app *Application) Run() error {
	if app.shell == nil {
		return errors.New("no shell attached")
	}

	if app.opts.SetupPath != "" {
		if err := app.OpenSetup(app.opts.SetupPath); err != nil {
			app.logger.Error("opening startup setup: %v", err)
		}
	}

	app.logger.Info("UI init finished")
	return app.shell.Run()
}

// newSetup constructs a setup wired to the application's logger, file
// system, and dirty-refresh callback.
func (app *Application) newSetup() *setup.Setup {
	return setup.New(
		setup.WithLogger(app.logger.WithComponent("setup")),
		setup.WithFS(app.fs),
		setup.WithDirtyFunc(app.refreshShell),
	)
}

// refreshShell updates the tree and status line after any state change.
func (app *Application) refreshShell() {
	if app.shell != nil {
		app.shell.Refresh()
	}
}

// NewSetup creates a blank setup, adds it to the open collection, and
// makes it active.
func (app *Application) NewSetup() {
	app.logger.Info("generating a new setup")

	st := app.newSetup()
	st.General().Set(setup.KeySetupName, "Blank Setup")

	app.setups = append(app.setups, st)
	app.SetCurrentSetup(st)
}

// OpenSetup loads a setup file, adds it to the open collection, and
// makes it active. A path that is already open is rejected with
// ErrAlreadyOpen.
func (app *Application) OpenSetup(path string) error {
	for _, st := range app.setups {
		if st.Path() == path {
			app.logger.Error("selected setup file is already open: %s", path)
			return ErrAlreadyOpen
		}
	}

	st := app.newSetup()
	if err := st.Load(path); err != nil {
		app.logger.Error("failed to load setup: %v", err)
		return err
	}

	app.setups = append(app.setups, st)
	app.SetCurrentSetup(st)
	app.logger.Info("loaded setup successfully")

	return nil
}

// SaveSetup saves the active setup, stamping last_modified first. An
// empty path reuses the setup's remembered location.
func (app *Application) SaveSetup(path string) error {
	st := app.logic.CurrentSetup()
	if st == nil {
		app.logger.Error("current setup is nil, cannot save setup")
		return ErrNoSetup
	}

	st.General().Set(setup.KeyLastModified, app.now().Format("2006-01-02 15:04:05"))

	if err := st.Save(path); err != nil {
		return err
	}

	// Refresh the bound fields so the stamped last_modified shows up.
	app.rebind(st)
	return nil
}

// ExportJSON writes the active setup as JSON to path.
func (app *Application) ExportJSON(path string) error {
	st := app.logic.CurrentSetup()
	if st == nil {
		return ErrNoSetup
	}

	data, err := st.ExportJSON()
	if err != nil {
		return err
	}
	if err := app.fs.WriteFile(path, data, fs.FileMode(0o644)); err != nil {
		return err
	}

	app.logger.Info("exported setup to %s", path)
	return nil
}

// CloseSetup removes the active setup from the open collection and
// activates the most recently opened remaining one. With force false it
// refuses a dirty setup and returns false so the UI can ask first.
func (app *Application) CloseSetup(force bool) bool {
	st := app.logic.CurrentSetup()
	if st == nil {
		app.logger.Info("nothing to close, no active setups")
		return true
	}

	if st.IsDirty() && !force {
		return false
	}
	if st.IsDirty() {
		app.logger.Info("closing setup with unsaved changes")
	}

	for i, open := range app.setups {
		if open == st {
			app.setups = append(app.setups[:i], app.setups[i+1:]...)
			break
		}
	}

	if len(app.setups) == 0 {
		app.SetCurrentSetup(nil)
	} else {
		app.SetCurrentSetup(app.setups[len(app.setups)-1])
	}

	return true
}

// CycleSetup activates the next open setup.
func (app *Application) CycleSetup() {
	if len(app.setups) < 2 {
		return
	}

	current := app.logic.CurrentSetup()
	for i, st := range app.setups {
		if st == current {
			app.SetCurrentSetup(app.setups[(i+1)%len(app.setups)])
			return
		}
	}
	app.SetCurrentSetup(app.setups[0])
}

// CurrentSetup returns the active setup (nil if none).
func (app *Application) CurrentSetup() *setup.Setup {
	return app.logic.CurrentSetup()
}

// Setups returns the open setups.
func (app *Application) Setups() []*setup.Setup {
	out := make([]*setup.Setup, len(app.setups))
	copy(out, app.setups)
	return out
}

// SetCurrentSetup switches the active setup and rebinds the form.
func (app *Application) SetCurrentSetup(st *setup.Setup) {
	app.logic.SetCurrentSetup(st)

	if st != nil {
		app.logger.Info("switched active setup to: %s", st.General().Get(setup.KeySetupName))
		app.rebind(st)
	} else if app.shell != nil {
		app.binder.Unbind()
	}

	app.refreshShell()
}

// rebind re-applies the binder against the shell's form fields.
func (app *Application) rebind(st *setup.Setup) {
	if app.shell == nil {
		return
	}
	app.binder.Rebind(st, app.shell.Form().Fields())
}
