package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/logos-core/lm/internal/ctxlog"
	"github.com/logos-core/lm/internal/metadata"
	"github.com/logos-core/lm/internal/registry"
)

// Loader produces module handles. It holds no mutable state of its own; the
// registry reference is only consulted to enumerate statically registered
// instances.
type Loader struct {
	registry *registry.Registry
}

// New creates a Loader backed by the given static module registry.
func New(reg *registry.Registry) *Loader {
	return &Loader{registry: reg}
}

// Load opens the native library at path and requests the module's root
// instance. The descriptor is extracted before instantiation, so metadata
// survives an instantiation failure. Library-not-found, a missing entry
// point, and an entry point yielding no instance all surface uniformly as an
// invalid handle whose error text carries the underlying diagnostic; no
// partial resource survives a failed load.
func (l *Loader) Load(ctx context.Context, path string) *Handle {
	logger := ctxlog.FromContext(ctx)
	h := &Handle{}

	lib, err := open(ctx, path)
	if err != nil {
		h.loadErr = fmt.Errorf("load failed: %w", err)
		logger.Warn("Failed to open module library.", "path", path, "error", err)
		return h
	}

	if meta, ok := metadata.FromPath(ctx, path); ok {
		h.meta = meta
	}

	instance, err := lib.native.instantiate()
	if err != nil {
		h.loadErr = fmt.Errorf("load failed: %w", err)
		logger.Warn("Failed to instantiate module.", "path", path, "error", err)
		lib.close(ctx)
		return h
	}

	h.instance = instance
	h.owner = &dynamicOwnership{lib: lib}
	logger.Debug("Module loaded.", "path", path, "module", h.meta.Name)
	return h
}

// StaticModules wraps every instance registered directly into the host
// process, in registration order. The handles are static: there is no path
// and no dynamic resource to manage.
func (l *Loader) StaticModules(ctx context.Context) []*Handle {
	entries := l.registry.Modules()
	ctxlog.FromContext(ctx).Debug("Enumerating statically registered modules.", "count", len(entries))

	handles := make([]*Handle, 0, len(entries))
	for _, entry := range entries {
		h := l.WrapExisting(entry.Instance, entry.Descriptor)
		if h.IsValid() {
			handles = append(handles, h)
		}
	}
	return handles
}

// WrapExisting constructs a static handle around a caller-supplied instance
// with no loading step. A nil instance yields an invalid handle carrying an
// explanatory error.
func (l *Loader) WrapExisting(instance any, desc metadata.Descriptor) *Handle {
	if instance == nil {
		return &Handle{loadErr: errors.New("nil module instance"), owner: staticOwnership{}}
	}
	return &Handle{instance: instance, meta: desc, owner: staticOwnership{}}
}

// ExtractMetadata reads a module's embedded metadata record with no
// instantiation side effects.
func (l *Loader) ExtractMetadata(ctx context.Context, path string) (metadata.Descriptor, bool) {
	return metadata.FromPath(ctx, path)
}
