// Package registry is the host process's registration mechanism for
// statically linked modules.
//
// Built-in module packages register their live instances here at startup;
// the loader's static enumeration wraps these entries into handles. Each
// entry may additionally carry an operation table parsed from the module's
// HCL manifest, which introspection overlays onto the reflected method set
// (declared parameter names, property accessors). Validate performs a strict
// parity check between manifests and Go code so that mismatches surface at
// startup, not at inspection time.
package registry
