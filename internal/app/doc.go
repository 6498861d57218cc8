// Package app wires the inspector together: it owns the logger, the built-in
// module registry with its manifests, and the loader, and dispatches the
// metadata, operations, and builtins commands onto them. Output rendering
// (human and JSON) lives here so that the inspection packages stay free of
// presentation concerns.
package app
