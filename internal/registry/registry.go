package registry

import (
	"fmt"
	"log/slog"

	"github.com/logos-core/lm/internal/introspect"
	"github.com/logos-core/lm/internal/metadata"
)

// Module is the interface built-in module packages implement to be
// registered into the host process.
type Module interface {
	Register(r *Registry)
}

// Entry is one statically registered module: its live instance, its
// descriptor, and (once manifests are loaded) its self-registered operation
// table.
type Entry struct {
	Name       string
	Instance   any
	Descriptor metadata.Descriptor
	Table      *introspect.Table
}

// Registry holds the statically registered module instances of a single
// application, in registration order.
type Registry struct {
	order   []string
	entries map[string]*Entry
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds a module entry. Registering two modules under one name is a
// programmer error and panics.
func (r *Registry) Register(entry *Entry) {
	if entry == nil || entry.Name == "" {
		panic("registry: entry must have a name")
	}
	if _, exists := r.entries[entry.Name]; exists {
		panic(fmt.Sprintf("module with name '%s' already registered", entry.Name))
	}

	if !entry.Descriptor.IsValid() {
		// Until a manifest supplies richer metadata, the registration name
		// is the descriptor's identity.
		entry.Descriptor = metadata.FromFields(map[string]any{"name": entry.Name})
	}

	slog.Debug("Registering module.", "name", entry.Name)
	r.order = append(r.order, entry.Name)
	r.entries[entry.Name] = entry
}

// Modules returns the registered entries in registration order.
func (r *Registry) Modules() []*Entry {
	out := make([]*Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}
