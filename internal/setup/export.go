package setup

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ExportJSON renders the setup as a nested JSON object keyed by section
// and key, e.g. {"general":{"setup_name":"New Setup"}}. The output is an
// interchange form only; TOML remains the persisted format.
func (s *Setup) ExportJSON() ([]byte, error) {
	out := []byte("{}")

	var err error
	for _, section := range s.sections {
		for _, key := range s.keyOrder[section] {
			out, err = sjson.SetBytes(out, section+"."+key, s.values[section][key])
			if err != nil {
				return nil, fmt.Errorf("exporting [%s] %s: %w", section, key, err)
			}
		}
	}

	return out, nil
}

// ImportJSON applies a nested section/key JSON object to the setup. Every
// value is written through Set, so an import marks the setup dirty and
// notifies observers per key.
//
// Returns ErrInvalidJSON if data is not a JSON object of objects.
func (s *Setup) ImportJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("%w: top level is not an object", ErrInvalidJSON)
	}

	var badSection string
	root.ForEach(func(section, table gjson.Result) bool {
		if !table.IsObject() {
			badSection = section.String()
			return false
		}
		return true
	})
	if badSection != "" {
		return fmt.Errorf("%w: section %q is not an object", ErrInvalidJSON, badSection)
	}

	root.ForEach(func(section, table gjson.Result) bool {
		table.ForEach(func(key, value gjson.Result) bool {
			s.Set(section.String(), key.String(), value.String())
			return true
		})
		return true
	})

	return nil
}
