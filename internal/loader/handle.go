package loader

import (
	"context"

	"github.com/logos-core/lm/internal/metadata"
)

// noCopy triggers the copylocks vet check when a Handle is duplicated by
// value. Exactly one live owner of the underlying library resource may exist
// at a time, so duplication is disallowed at the type level.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ownership is the tagged variant over a handle's two lifecycle cases, so
// that unload logic is a total match rather than a boolean guard.
type ownership interface {
	isStatic() bool
}

// staticOwnership marks an instance whose lifetime belongs to the host
// process: statically registered modules, wrapped instances, and anything a
// handle has already let go of.
type staticOwnership struct{}

func (staticOwnership) isStatic() bool { return true }

// dynamicOwnership marks a handle that exclusively owns a native library
// resource opened from a path.
type dynamicOwnership struct {
	lib *openLibrary
}

func (*dynamicOwnership) isStatic() bool { return false }

// Handle is the single owner of at most one loaded module: its instance, its
// descriptor, its load error, and (for path-loaded modules) the native
// library resource. The zero value is an invalid static handle. Handles
// travel as pointers; the embedded noCopy makes value copies a vet error.
type Handle struct {
	noCopy noCopy

	instance any
	owner    ownership
	meta     metadata.Descriptor
	loadErr  error
}

// IsValid reports whether the handle holds a loaded instance.
func (h *Handle) IsValid() bool {
	return h.instance != nil
}

// Instance returns the raw module instance, or nil for an invalid handle.
func (h *Handle) Instance() any {
	return h.instance
}

// Metadata returns the descriptor extracted when the module was loaded. The
// descriptor may be invalid even for a valid handle; metadata survival is
// independent of instantiation.
func (h *Handle) Metadata() metadata.Descriptor {
	return h.meta
}

// ErrorString returns the diagnostic text of the last load failure, or the
// empty string.
func (h *Handle) ErrorString() string {
	if h.loadErr == nil {
		return ""
	}
	return h.loadErr.Error()
}

// Static reports whether the handle's instance lifetime is owned by the host
// process rather than the handle.
func (h *Handle) Static() bool {
	if h.owner == nil {
		return true
	}
	return h.owner.isStatic()
}

// Unload releases the handle's library resource and drops the instance
// reference. It is idempotent, and for static handles it is a no-op by
// contract: the host process owns that lifetime, so repeated calls must
// never release anything or disturb the instance.
func (h *Handle) Unload(ctx context.Context) {
	switch owner := h.owner.(type) {
	case *dynamicOwnership:
		owner.lib.close(ctx)
		h.owner = staticOwnership{}
		h.instance = nil
	default:
		// Static or zero-value handle: nothing to release.
	}
}

// Release detaches and returns the instance, leaving the handle in the same
// observable state as a freshly constructed one. The native library is
// intentionally left open so the module can outlive the handle; the library
// tracker records it as leaked since it is otherwise unobservable for the
// rest of the process lifetime.
func (h *Handle) Release() any {
	instance := h.instance

	if owner, ok := h.owner.(*dynamicOwnership); ok {
		owner.lib.leak()
	}

	// Forcing static ownership here prevents any later Unload from touching
	// the now externally owned resource.
	h.owner = staticOwnership{}
	h.instance = nil

	return instance
}
