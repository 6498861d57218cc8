package loader

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/logos-core/lm/internal/ctxlog"
)

// LibraryState describes where a dynamically opened library is in its
// lifecycle. Go's native loading facility cannot unmap a library once
// opened, so "released" and "leaked" record who stopped caring about it and
// why, rather than an actual unmap.
type LibraryState string

const (
	// LibraryOpen means a handle currently owns the library.
	LibraryOpen LibraryState = "open"
	// LibraryReleased means the owning handle was unloaded.
	LibraryReleased LibraryState = "released"
	// LibraryLeaked means Release() deliberately left the library resident
	// so its instance can outlive the handle.
	LibraryLeaked LibraryState = "leaked"
)

// LibraryRecord is one entry in the process-wide table of opened libraries.
type LibraryRecord struct {
	ID    uuid.UUID
	Path  string
	State LibraryState
}

// libraryTracker keeps the table. There is one per process, like the native
// loader's own cache of opened libraries.
type libraryTracker struct {
	mu      sync.Mutex
	order   []uuid.UUID
	records map[uuid.UUID]*LibraryRecord
}

var libraries = &libraryTracker{records: make(map[uuid.UUID]*LibraryRecord)}

func (t *libraryTracker) track(path string) uuid.UUID {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := uuid.New()
	t.order = append(t.order, id)
	t.records[id] = &LibraryRecord{ID: id, Path: path, State: LibraryOpen}
	return id
}

func (t *libraryTracker) setState(id uuid.UUID, state LibraryState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if rec, ok := t.records[id]; ok {
		rec.State = state
	}
}

func (t *libraryTracker) snapshot() []LibraryRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]LibraryRecord, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.records[id])
	}
	return out
}

// OpenLibraries returns a snapshot of every library opened through the
// loader during this process run, in open order, with its current state.
func OpenLibraries() []LibraryRecord {
	return libraries.snapshot()
}

// openLibrary pairs a native library with its tracker record.
type openLibrary struct {
	native *nativeLibrary
	path   string
	id     uuid.UUID
}

func open(ctx context.Context, path string) (*openLibrary, error) {
	native, err := openNative(path)
	if err != nil {
		return nil, err
	}
	return &openLibrary{native: native, path: path, id: libraries.track(path)}, nil
}

// close drops the reference to the native library and records the release.
// The OS mapping itself stays in place; the native facility offers no
// unload.
func (l *openLibrary) close(ctx context.Context) {
	l.native = nil
	libraries.setState(l.id, LibraryReleased)
	ctxlog.FromContext(ctx).Debug("Module library released.", "path", l.path, "library_id", l.id)
}

// leak records that the library was deliberately left resident.
func (l *openLibrary) leak() {
	l.native = nil
	libraries.setState(l.id, LibraryLeaked)
	slog.Warn("Module library intentionally leaked; it stays resident for the process lifetime.",
		"path", l.path, "library_id", l.id)
}
