package setup

// Default schema section names, in declared order.
const (
	SectionGeneral  = "general"
	SectionHardware = "hardware"
)

// Keys of the default schema.
const (
	KeySetupName    = "setup_name"
	KeySetupComment = "setup_comment"
	KeyLastModified = "last_modified"
	KeyAUTName      = "aut_name"
	KeyHWAttr       = "some_hw_attr"
)

// defaultSections lists the schema sections in declared order. Binder
// resolution and the UI tree both depend on this order being stable.
var defaultSections = []string{SectionGeneral, SectionHardware}

// defaultKeys lists each section's keys in declared order.
var defaultKeys = map[string][]string{
	SectionGeneral:  {KeySetupName, KeySetupComment, KeyLastModified, KeyAUTName},
	SectionHardware: {KeyHWAttr},
}

// defaultValues holds the default value for every schema key. Any key
// missing from a loaded setup file is repaired with its value from here.
var defaultValues = map[string]map[string]string{
	SectionGeneral: {
		KeySetupName:    "New Setup",
		KeySetupComment: "",
		KeyLastModified: "---",
		KeyAUTName:      "No AUT Name",
	},
	SectionHardware: {
		KeyHWAttr: "12321",
	},
}

// DefaultSections returns the schema section names in declared order.
// The UI uses this to render the field tree without duplicating the schema.
func DefaultSections() []string {
	out := make([]string, len(defaultSections))
	copy(out, defaultSections)
	return out
}

// DefaultKeys returns the schema keys of a section in declared order.
// Returns nil for sections outside the default schema.
func DefaultKeys(section string) []string {
	keys, ok := defaultKeys[section]
	if !ok {
		return nil
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}
