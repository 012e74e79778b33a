// Package binder connects named UI fields to setup keys by naming
// convention.
//
// Field names carry a prefix that selects the binding direction: "tb_"
// for editable text fields (two-way) and "l_" for read-only labels
// (one-way). Stripping the prefix yields a candidate key name, which is
// resolved against the setup's sections in declared order; the first
// section defining the key wins. Names that match no key in any section
// are left unbound, which is deliberate: layouts may contain fields
// unrelated to the setup schema.
//
// The host supplies fields as an explicit name-to-field map; the binder
// never introspects widget internals.
package binder

import (
	"sort"
	"strings"

	"github.com/elephant-hq/elephant/internal/setup"
)

// Field name prefixes recognized by the binder.
const (
	// EditablePrefix marks a two-way bound text field.
	EditablePrefix = "tb_"

	// LabelPrefix marks a one-way bound read-only label.
	LabelPrefix = "l_"
)

// Label is the minimal capability of a one-way bound field: its
// displayed text can be set.
type Label interface {
	SetText(text string)
}

// TextField is the capability of a two-way bound field: its text can be
// read and set, and a change handler can be registered. Passing nil to
// OnChange removes the handler.
type TextField interface {
	Label
	Text() string
	OnChange(fn func(text string))
}

// binding records one installed binding so Unbind can remove exactly
// the handlers Bind added.
type binding struct {
	name    string
	section string
	key     string
	field   Label
}

// Binder reflects a setup's values onto named fields and propagates
// edits back into the setup.
type Binder struct {
	st       *setup.Setup
	bindings []binding
	changed  func()
	log      setup.Logger
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger sets the logger used by the binder.
func WithLogger(log setup.Logger) Option {
	return func(b *Binder) {
		b.log = log
	}
}

// New creates an unbound Binder.
func New(opts ...Option) *Binder {
	b := &Binder{
		log: nopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// OnValueChanged registers a callback fired after any bound field writes
// a value into the setup.
func (b *Binder) OnValueChanged(fn func()) {
	b.changed = fn
}

// Bind populates every recognized field from st and wires editable
// fields to write back. Fields whose stripped name matches no key in any
// section are left unbound. Fields are processed in name order so that
// repeated binds behave identically.
func (b *Binder) Bind(st *setup.Setup, fields map[string]Label) {
	b.st = st

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := fields[name]
		switch {
		case strings.HasPrefix(name, EditablePrefix):
			tf, ok := field.(TextField)
			if !ok {
				b.log.Warn("field %q has the editable prefix but is not a text field", name)
				continue
			}
			b.bindTextField(name, name[len(EditablePrefix):], tf)
		case strings.HasPrefix(name, LabelPrefix):
			b.bindLabel(name, name[len(LabelPrefix):], field)
		}
	}
}

// bindTextField installs a two-way binding for an editable field.
func (b *Binder) bindTextField(name, key string, field TextField) {
	section, ok := b.resolve(key)
	if !ok {
		b.log.Debug("no setup key for field %q, left unbound", name)
		return
	}

	field.SetText(b.st.Get(section, key))
	b.log.Debug("bound text field %q to [%s] %s", name, section, key)

	st := b.st
	field.OnChange(func(text string) {
		st.Set(section, key, text)
		if b.changed != nil {
			b.changed()
		}
		b.log.Debug("updated setup [%s] %s from field %q", section, key, name)
	})

	b.bindings = append(b.bindings, binding{
		name:    name,
		section: section,
		key:     key,
		field:   field,
	})
}

// bindLabel installs a one-way binding for a read-only label.
func (b *Binder) bindLabel(name, key string, field Label) {
	section, ok := b.resolve(key)
	if !ok {
		b.log.Debug("no setup key for label %q, left unbound", name)
		return
	}

	field.SetText(b.st.Get(section, key))
	b.log.Debug("bound label %q to [%s] %s", name, section, key)

	b.bindings = append(b.bindings, binding{
		name:    name,
		section: section,
		key:     key,
		field:   field,
	})
}

// resolve scans the setup's sections in declared order and returns the
// first section defining key. Later matches are ignored.
func (b *Binder) resolve(key string) (string, bool) {
	for _, section := range b.st.Sections() {
		if b.st.Has(section, key) {
			return section, true
		}
	}
	return "", false
}

// Unbind removes every change handler installed by Bind and clears the
// binding table. Fields without handlers (labels, unbound fields) are
// unaffected.
func (b *Binder) Unbind() {
	for _, bd := range b.bindings {
		if tf, ok := bd.field.(TextField); ok {
			tf.OnChange(nil)
		}
	}
	b.bindings = b.bindings[:0]
}

// Rebind switches the binder to a new setup: it unbinds the previous
// fields and binds the given ones against newSetup. The previously
// bound setup is not mutated.
func (b *Binder) Rebind(newSetup *setup.Setup, fields map[string]Label) {
	b.log.Info("changing setup bound to fields")
	b.Unbind()
	b.Bind(newSetup, fields)
}

// Bindings returns the number of active bindings.
func (b *Binder) Bindings() int {
	return len(b.bindings)
}
