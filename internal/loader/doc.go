// Package loader owns the lifecycle of loaded modules. A Handle is the
// single owner of a loaded module's instance and, for path-loaded modules,
// of its native library resource; the Loader is the factory producing
// handles from the three load paths (by path, wrapping an existing instance,
// and enumerating statically registered instances).
//
// Loading is synchronous and blocking, with no timeout or cancellation:
// callers needing bounded latency must impose it externally.
package loader
