package app

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/elephant-hq/elephant/internal/setup"
)

// memFS is an in-memory file system for application tests.
type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) WriteFile(path string, data []byte, _ fs.FileMode) error {
	m.files[path] = data
	return nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return nil, nil
	}
	return nil, fs.ErrNotExist
}

// newTestApp builds an application on an in-memory FS with silent logging.
func newTestApp(t *testing.T) (*Application, *memFS) {
	t.Helper()

	app, err := New(Options{LogLevel: "error"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	app.logger = NullLogger

	mem := newMemFS()
	app.fs = mem
	app.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return app, mem
}

func TestNewSetup_ActivatesBlankSetup(t *testing.T) {
	app, _ := newTestApp(t)

	app.NewSetup()

	st := app.CurrentSetup()
	if st == nil {
		t.Fatal("no current setup after NewSetup")
	}
	if got := st.General().Get(setup.KeySetupName); got != "Blank Setup" {
		t.Errorf("setup_name = %q, want %q", got, "Blank Setup")
	}
	if len(app.Setups()) != 1 {
		t.Errorf("open setups = %d, want 1", len(app.Setups()))
	}
}

func TestOpenSetup(t *testing.T) {
	app, mem := newTestApp(t)
	mem.files["/bench.toml"] = []byte("[general]\nsetup_name = \"Bench\"\n")

	if err := app.OpenSetup("/bench.toml"); err != nil {
		t.Fatalf("OpenSetup failed: %v", err)
	}

	st := app.CurrentSetup()
	if st == nil || st.General().Get(setup.KeySetupName) != "Bench" {
		t.Fatal("opened setup is not active")
	}

	// Re-opening the same path is rejected
	err := app.OpenSetup("/bench.toml")
	if !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("OpenSetup twice = %v, want ErrAlreadyOpen", err)
	}
	if len(app.Setups()) != 1 {
		t.Errorf("open setups = %d, want 1", len(app.Setups()))
	}
}

func TestOpenSetup_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	err := app.OpenSetup("/missing.toml")
	if !errors.Is(err, setup.ErrNotFound) {
		t.Fatalf("OpenSetup = %v, want ErrNotFound", err)
	}
	if len(app.Setups()) != 0 {
		t.Error("failed open must not add a setup")
	}
}

func TestSaveSetup_StampsLastModified(t *testing.T) {
	app, mem := newTestApp(t)
	app.NewSetup()

	if err := app.SaveSetup("/blank.toml"); err != nil {
		t.Fatalf("SaveSetup failed: %v", err)
	}

	st := app.CurrentSetup()
	if got := st.General().Get(setup.KeyLastModified); got != "2025-06-01 12:00:00" {
		t.Errorf("last_modified = %q, want stamped time", got)
	}
	if st.IsDirty() {
		t.Error("setup should be clean after save")
	}

	data, ok := mem.files["/blank.toml"]
	if !ok {
		t.Fatal("save did not write the file")
	}
	if !strings.Contains(string(data), "Blank Setup") {
		t.Error("saved file does not contain the setup name")
	}
}

func TestSaveSetup_NoActive(t *testing.T) {
	app, _ := newTestApp(t)

	if err := app.SaveSetup("/x.toml"); !errors.Is(err, ErrNoSetup) {
		t.Fatalf("SaveSetup = %v, want ErrNoSetup", err)
	}
}

func TestCloseSetup(t *testing.T) {
	app, _ := newTestApp(t)
	app.NewSetup() // dirty: NewSetup writes the blank name through Set

	if app.CloseSetup(false) {
		t.Fatal("CloseSetup(false) must refuse a dirty setup")
	}
	if app.CloseSetup(true) != true {
		t.Fatal("CloseSetup(true) must force-close")
	}
	if app.CurrentSetup() != nil {
		t.Error("no setup should be active after closing the last one")
	}

	// Closing with nothing open is a no-op success
	if !app.CloseSetup(false) {
		t.Error("CloseSetup with nothing open should report success")
	}
}

func TestCloseSetup_ActivatesRemaining(t *testing.T) {
	app, mem := newTestApp(t)
	mem.files["/a.toml"] = []byte("[general]\nsetup_name = \"A\"\n")
	mem.files["/b.toml"] = []byte("[general]\nsetup_name = \"B\"\n")

	if err := app.OpenSetup("/a.toml"); err != nil {
		t.Fatal(err)
	}
	if err := app.OpenSetup("/b.toml"); err != nil {
		t.Fatal(err)
	}

	if !app.CloseSetup(false) {
		t.Fatal("clean setup should close")
	}
	st := app.CurrentSetup()
	if st == nil || st.General().Get(setup.KeySetupName) != "A" {
		t.Error("remaining setup should become active")
	}
}

func TestCycleSetup(t *testing.T) {
	app, mem := newTestApp(t)
	mem.files["/a.toml"] = []byte("[general]\nsetup_name = \"A\"\n")
	mem.files["/b.toml"] = []byte("[general]\nsetup_name = \"B\"\n")

	if err := app.OpenSetup("/a.toml"); err != nil {
		t.Fatal(err)
	}
	if err := app.OpenSetup("/b.toml"); err != nil {
		t.Fatal(err)
	}

	app.CycleSetup()
	if got := app.CurrentSetup().General().Get(setup.KeySetupName); got != "A" {
		t.Errorf("active after cycle = %q, want %q", got, "A")
	}

	app.CycleSetup()
	if got := app.CurrentSetup().General().Get(setup.KeySetupName); got != "B" {
		t.Errorf("active after second cycle = %q, want %q", got, "B")
	}
}

func TestExportJSON(t *testing.T) {
	app, mem := newTestApp(t)
	app.NewSetup()

	if err := app.ExportJSON("/out.json"); err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	data, ok := mem.files["/out.json"]
	if !ok {
		t.Fatal("export did not write the file")
	}
	if !strings.Contains(string(data), "\"setup_name\":\"Blank Setup\"") {
		t.Errorf("exported JSON = %s, want setup_name entry", data)
	}
}

func TestExportJSON_NoActive(t *testing.T) {
	app, _ := newTestApp(t)

	if err := app.ExportJSON("/out.json"); !errors.Is(err, ErrNoSetup) {
		t.Fatalf("ExportJSON = %v, want ErrNoSetup", err)
	}
}

func TestLogic(t *testing.T) {
	logic := NewLogic()
	if logic.CurrentSetup() != nil {
		t.Fatal("fresh logic should have no current setup")
	}

	st := setup.New()
	logic.SetCurrentSetup(st)
	if logic.CurrentSetup() != st {
		t.Error("SetCurrentSetup did not stick")
	}

	logic.SetCurrentSetup(nil)
	if logic.CurrentSetup() != nil {
		t.Error("clearing the current setup did not stick")
	}
}
