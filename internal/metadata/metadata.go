package metadata

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Descriptor is the typed form of a module's embedded metadata record. It is
// immutable once constructed; validity is a bit the caller checks, never an
// error signal.
type Descriptor struct {
	Name         string
	Version      string
	Description  string
	Author       string
	Type         string
	Dependencies []string

	// Extra preserves unrecognized record fields for forward compatibility.
	Extra map[string]any
}

// IsValid reports whether the descriptor carries its identity key.
func (d Descriptor) IsValid() bool {
	return d.Name != ""
}

// FromRaw builds a Descriptor from a full embedded record. The record is
// expected to nest the actual fields under a "MetaData" object; a missing or
// empty "MetaData" field, or a record whose fields produce an invalid
// descriptor, both collapse into the single absent outcome.
func FromRaw(raw map[string]any) (Descriptor, bool) {
	fields, ok := raw["MetaData"].(map[string]any)
	if !ok || len(fields) == 0 {
		return Descriptor{}, false
	}

	d := FromFields(fields)
	if !d.IsValid() {
		return Descriptor{}, false
	}
	return d, true
}

// ParseRecord decodes a JSON metadata record and delegates to FromRaw.
// Malformed JSON is another shade of absent.
func ParseRecord(record []byte) (Descriptor, bool) {
	var raw map[string]any
	if err := json.Unmarshal(record, &raw); err != nil {
		return Descriptor{}, false
	}
	return FromRaw(raw)
}

// FromFields maps the recognized keys of the inner metadata object into a
// Descriptor. Unrecognized keys are kept verbatim in Extra. The result is
// invalid when the name key is missing or empty.
func FromFields(fields map[string]any) Descriptor {
	var d Descriptor

	for key, value := range fields {
		switch key {
		case "name":
			d.Name, _ = value.(string)
		case "version":
			d.Version, _ = value.(string)
		case "description":
			d.Description, _ = value.(string)
		case "author":
			d.Author, _ = value.(string)
		case "type":
			d.Type, _ = value.(string)
		case "dependencies":
			d.Dependencies = dependencyList(value)
		default:
			if d.Extra == nil {
				d.Extra = make(map[string]any)
			}
			d.Extra[key] = value
		}
	}

	return d
}

// dependencyList extracts an ordered list of module names, dropping empty
// entries and anything that is not a string.
func dependencyList(value any) []string {
	entries, ok := value.([]any)
	if !ok {
		// Callers assembling fields in Go may pass a []string directly.
		if names, ok := value.([]string); ok {
			var deps []string
			for _, name := range names {
				if name != "" {
					deps = append(deps, name)
				}
			}
			return deps
		}
		return nil
	}

	var deps []string
	for _, entry := range entries {
		if name, ok := entry.(string); ok && name != "" {
			deps = append(deps, name)
		}
	}
	return deps
}
