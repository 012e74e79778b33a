package setup

import (
	"fmt"
	"io/fs"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/elephant-hq/elephant/internal/setup/notify"
)

// Logger is the minimal logging interface the setup package uses.
// *app.Logger satisfies it; the default discards everything.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger discards all log messages.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Setup is a sectioned key-value document with dirty tracking.
//
// A Setup always contains every section and key of the default schema;
// additional sections and keys may be created by Set. Values are written
// through Set (or a Section view), which marks the document dirty and
// notifies observers. Setup is not safe for concurrent use; all mutation
// happens on the UI event loop.
type Setup struct {
	// sections holds section names in declared order: the default schema
	// first, then any sections created by Set or found in a loaded file.
	sections []string

	// values maps section -> key -> value.
	values map[string]map[string]string

	// keyOrder maps section -> keys in insertion order.
	keyOrder map[string][]string

	// path is the remembered load/save location ("" = none).
	path string

	dirty    bool
	dirtyFn  func()
	notifier *notify.Notifier
	fs       FileSystem
	log      Logger
}

// Option configures a Setup.
type Option func(*Setup)

// WithDirtyFunc registers a callback invoked whenever the dirty flag
// changes in either direction.
func WithDirtyFunc(fn func()) Option {
	return func(s *Setup) {
		s.dirtyFn = fn
	}
}

// WithFS sets a custom file system for load and save.
func WithFS(fsys FileSystem) Option {
	return func(s *Setup) {
		s.fs = fsys
	}
}

// WithLogger sets the logger used by the setup document.
func WithLogger(log Logger) Option {
	return func(s *Setup) {
		s.log = log
	}
}

// New creates a Setup populated with the default schema. The new document
// is clean and has no remembered path.
func New(opts ...Option) *Setup {
	s := &Setup{
		values:   make(map[string]map[string]string),
		keyOrder: make(map[string][]string),
		notifier: notify.New(),
		fs:       DefaultFS(),
		log:      nopLogger{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log.Info("initializing new setup with defaults")
	s.resetToDefaults()

	return s
}

// resetToDefaults rebuilds the store from the default schema.
// It does not touch the dirty flag and fires no notifications.
func (s *Setup) resetToDefaults() {
	s.sections = s.sections[:0]
	s.values = make(map[string]map[string]string)
	s.keyOrder = make(map[string][]string)

	for _, section := range defaultSections {
		for _, key := range defaultKeys[section] {
			s.store(section, key, defaultValues[section][key])
			s.log.Debug("loaded default [%s] %s = %s", section, key, defaultValues[section][key])
		}
	}
}

// store writes a value without dirty tracking or notification,
// creating the section and key slot as needed.
func (s *Setup) store(section, key, value string) {
	if _, ok := s.values[section]; !ok {
		s.values[section] = make(map[string]string)
		s.sections = append(s.sections, section)
	}
	if _, ok := s.values[section][key]; !ok {
		s.keyOrder[section] = append(s.keyOrder[section], key)
	}
	s.values[section][key] = value
}

// Sections returns the section names in declared order.
func (s *Setup) Sections() []string {
	out := make([]string, len(s.sections))
	copy(out, s.sections)
	return out
}

// Keys returns the keys of a section in insertion order.
// Returns nil for an unknown section.
func (s *Setup) Keys(section string) []string {
	keys, ok := s.keyOrder[section]
	if !ok {
		return nil
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Has reports whether the section exists and defines the key.
func (s *Setup) Has(section, key string) bool {
	sec, ok := s.values[section]
	if !ok {
		return false
	}
	_, ok = sec[key]
	return ok
}

// Get returns the value at section/key, or "" if either is absent.
func (s *Setup) Get(section, key string) string {
	return s.values[section][key]
}

// Set stores a value, creating the section if absent, marks the setup
// dirty, and notifies observers.
func (s *Setup) Set(section, key, value string) {
	old := s.values[section][key]
	s.store(section, key, value)
	s.log.Debug("set [%s] %s = %s", section, key, value)
	s.markDirty()
	s.notifier.Notify(notify.Change{
		Section: section,
		Key:     key,
		Old:     old,
		New:     value,
	})
}

// Subscribe registers an observer for value changes.
func (s *Setup) Subscribe(observer notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(observer)
}

// IsDirty reports whether the setup has unsaved changes.
func (s *Setup) IsDirty() bool {
	return s.dirty
}

// Path returns the remembered load/save location ("" if none).
func (s *Setup) Path() string {
	return s.path
}

// markDirty sets the dirty flag and fires the dirty callback.
func (s *Setup) markDirty() {
	s.dirty = true
	if s.dirtyFn != nil {
		s.dirtyFn()
	}
}

// markClean clears the dirty flag and fires the dirty callback.
func (s *Setup) markClean() {
	s.dirty = false
	if s.dirtyFn != nil {
		s.dirtyFn()
	}
}

// Load reads a setup file and replaces the document's contents with the
// file's values merged over the default schema. Any schema key missing
// from the file is repaired with its default value and logged as a
// warning. On success the path is remembered for future saves and the
// setup is clean.
//
// Returns ErrNotFound if path does not exist and *ParseError if the file
// is not valid TOML; in both cases the document is left unchanged.
func (s *Setup) Load(path string) error {
	s.log.Info("loading setup from %s", path)

	if _, err := s.fs.Stat(path); err != nil {
		s.log.Error("loading setup failed: %v", err)
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		s.log.Error("loading setup failed: %v", err)
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		s.log.Error("loading setup failed: %v", err)
		return &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}

	s.resetToDefaults()
	s.merge(parsed)
	s.repairDefaults(parsed)

	s.path = path
	s.markClean()
	s.log.Debug("setup loaded and marked as clean")

	return nil
}

// merge overlays parsed file values onto the store. Sections are applied
// in declared order first so that unknown file sections land after the
// schema sections; keys keep their schema order where they exist.
func (s *Setup) merge(parsed map[string]any) {
	for _, section := range orderedSections(parsed, defaultSections) {
		table, ok := parsed[section].(map[string]any)
		if !ok {
			// Top-level scalar outside any section; not part of the
			// sectioned model, skipped.
			s.log.Warn("ignoring top-level value %q in setup file", section)
			continue
		}
		for _, key := range orderedKeys(table, defaultKeys[section]) {
			s.store(section, key, stringify(table[key]))
		}
	}
}

// repairDefaults logs every schema entry the file lacked. The values are
// already present from resetToDefaults; this is bookkeeping only.
func (s *Setup) repairDefaults(parsed map[string]any) {
	for _, section := range defaultSections {
		table, ok := parsed[section].(map[string]any)
		if !ok {
			s.log.Warn("section [%s] missing in file, added with defaults", section)
			continue
		}
		for _, key := range defaultKeys[section] {
			if _, ok := table[key]; !ok {
				s.log.Warn("missing [%s] %s in file, set to default: %s",
					section, key, defaultValues[section][key])
			}
		}
	}
}

// Save writes the setup as TOML. The effective target is path if non-empty,
// else the remembered location from a previous Load or Save. On success the
// target becomes the remembered location and the setup is clean.
//
// Returns ErrNoTarget if no path was supplied and none is remembered, and
// ErrWriteFailed on I/O errors; in both cases the dirty state is unchanged.
func (s *Setup) Save(path string) error {
	s.log.Info("saving setup")

	target := path
	switch {
	case target != "":
		s.log.Debug("using the specified path for saving: %s", target)
	case s.path != "":
		target = s.path
		s.log.Debug("using the remembered path for saving: %s", target)
	default:
		s.log.Error("no path specified for saving setup")
		return ErrNoTarget
	}

	doc := make(map[string]map[string]string, len(s.sections))
	for _, section := range s.sections {
		table := make(map[string]string, len(s.values[section]))
		for key, value := range s.values[section] {
			table[key] = value
		}
		doc[section] = table
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		s.log.Error("failed to serialize setup: %v", err)
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, target, err)
	}

	if err := s.fs.WriteFile(target, data, fs.FileMode(0o644)); err != nil {
		s.log.Error("failed to write setup: %v", err)
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, target, err)
	}

	s.path = target
	s.markClean()
	s.log.Info("saved setup to %s", target)

	return nil
}

// orderedSections returns the keys of parsed with the declared sections
// first (in declared order), then any remaining sections sorted by name.
func orderedSections(parsed map[string]any, declared []string) []string {
	out := make([]string, 0, len(parsed))
	seen := make(map[string]bool, len(parsed))

	for _, section := range declared {
		if _, ok := parsed[section]; ok {
			out = append(out, section)
			seen[section] = true
		}
	}

	var rest []string
	for section := range parsed {
		if !seen[section] {
			rest = append(rest, section)
		}
	}
	sort.Strings(rest)

	return append(out, rest...)
}

// orderedKeys returns the keys of table with the declared keys first,
// then any remaining keys sorted by name.
func orderedKeys(table map[string]any, declared []string) []string {
	out := make([]string, 0, len(table))
	seen := make(map[string]bool, len(table))

	for _, key := range declared {
		if _, ok := table[key]; ok {
			out = append(out, key)
			seen[key] = true
		}
	}

	var rest []string
	for key := range table {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	return append(out, rest...)
}

// stringify converts a parsed TOML value to the document's string form.
// Setup values are strings; hand-edited files may carry bare numbers or
// booleans, which are normalized here rather than rejected.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
