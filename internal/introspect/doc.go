// Package introspect enumerates the callable operations a loaded module
// instance exposes, normalizing Go's runtime type information into a stable,
// serializable contract.
//
// It is stateless and operates on raw instance references, never on module
// handles: instances routinely originate from a failed load, so every entry
// point accepts nil and returns the empty form of its result.
package introspect
