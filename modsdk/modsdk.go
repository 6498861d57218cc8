// Package modsdk is the public contract between the lm host and module
// authors. Dynamically loaded modules cannot import internal packages, so the
// capability interface, the well-known symbol names, and the embeddable Base
// live here.
package modsdk

import "context"

// EntryPointSymbol is the exported symbol a dynamic module must provide.
// The symbol is a func() any returning the module's root instance.
const EntryPointSymbol = "NewLogosModule"

// MetadataSymbol is the exported symbol holding the module's embedded
// metadata record: a string (or []byte) of JSON with the structure
// {"MetaData": {"name": ..., "version": ..., ...}}.
const MetadataSymbol = "LogosModuleMetadata"

// Module is the capability set every module instance implements. These
// operations are host plumbing, not module-specific functionality, which is
// why introspection excludes them by default.
type Module interface {
	// Init prepares the module for use. Called once after loading.
	Init(ctx context.Context) error

	// Shutdown releases module resources. Called once before unload.
	Shutdown(ctx context.Context) error

	// Health reports the module's current health as a short string.
	Health() string
}

// Base is a no-op Module implementation for embedding. Instances that embed
// Base satisfy the capability set and inherit its methods as promoted
// members, so they surface only under exhaustive introspection.
type Base struct{}

// Init implements Module.
func (Base) Init(ctx context.Context) error { return nil }

// Shutdown implements Module.
func (Base) Shutdown(ctx context.Context) error { return nil }

// Health implements Module.
func (Base) Health() string { return "ok" }
