// Package metadata extracts the structured metadata record embedded in a
// module binary into a typed, immutable Descriptor.
//
// The record schema is a JSON object nesting the actual key/value fields
// under "MetaData":
//
//	{"MetaData": {"name": "...", "version": "...", "dependencies": [...]}}
//
// Extraction is deliberately forgiving: no record, a record without the
// MetaData wrapper, and a record whose fields fail validity all collapse
// into one absent outcome rather than three distinct errors.
package metadata
