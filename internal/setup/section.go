package setup

// Section is a live view over one named section of a Setup. Reads and
// writes go through the parent document, so a write through a Section
// marks the setup dirty and notifies observers exactly like Setup.Set.
//
// The view replaces the original application's dynamic per-attribute
// interception with an explicit Get/Set accessor pair.
type Section struct {
	name  string
	setup *Setup
}

// Section returns a live view over the named section. The section does
// not need to exist yet; the first Set through the view creates it.
func (s *Setup) Section(name string) *Section {
	return &Section{name: name, setup: s}
}

// General returns a view over the "general" section.
func (s *Setup) General() *Section {
	return s.Section(SectionGeneral)
}

// Hardware returns a view over the "hardware" section.
func (s *Setup) Hardware() *Section {
	return s.Section(SectionHardware)
}

// Name returns the section name.
func (sec *Section) Name() string {
	return sec.name
}

// Get returns the value for key, or "" if the key is absent. It never fails.
func (sec *Section) Get(key string) string {
	return sec.setup.Get(sec.name, key)
}

// Set writes a value through to the parent setup, creating the section
// if absent, marking the setup dirty, and notifying observers.
func (sec *Section) Set(key, value string) {
	sec.setup.Set(sec.name, key, value)
}

// Has reports whether the section defines key.
func (sec *Section) Has(key string) bool {
	return sec.setup.Has(sec.name, key)
}

// Keys returns the section's keys in insertion order.
func (sec *Section) Keys() []string {
	return sec.setup.Keys(sec.name)
}
