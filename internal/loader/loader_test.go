package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-core/lm/internal/metadata"
	"github.com/logos-core/lm/internal/registry"
)

type stubModule struct{ name string }

func TestLoad_NonexistentPathYieldsInvalidHandle(t *testing.T) {
	t.Parallel()

	// Arrange
	l := New(registry.New())
	ctx := context.Background()

	// Act
	h := l.Load(ctx, "/nonexistent/module.so")

	// Assert
	require.NotNil(t, h)
	assert.False(t, h.IsValid())
	assert.Nil(t, h.Instance())
	assert.Contains(t, h.ErrorString(), "load failed")
	assert.False(t, h.Metadata().IsValid())

	// A failed load must not leave a partially loaded module behind.
	h.Unload(ctx)
	assert.False(t, h.IsValid())
}

func TestWrapExisting(t *testing.T) {
	t.Parallel()

	l := New(registry.New())

	t.Run("wraps a live instance as static", func(t *testing.T) {
		t.Parallel()

		instance := &stubModule{name: "wrapped"}
		desc := metadata.FromFields(map[string]any{"name": "wrapped"})

		h := l.WrapExisting(instance, desc)

		require.True(t, h.IsValid())
		assert.Same(t, instance, h.Instance())
		assert.True(t, h.Static())
		assert.Equal(t, "wrapped", h.Metadata().Name)
		assert.Equal(t, "", h.ErrorString())
	})

	t.Run("nil instance yields an invalid handle", func(t *testing.T) {
		t.Parallel()

		h := l.WrapExisting(nil, metadata.Descriptor{})

		assert.False(t, h.IsValid())
		assert.Equal(t, "nil module instance", h.ErrorString())
	})
}

func TestStaticModules_PreservesRegistrationOrder(t *testing.T) {
	t.Parallel()

	// Arrange
	reg := registry.New()
	reg.Register(&registry.Entry{Name: "alpha", Instance: &stubModule{name: "alpha"}})
	reg.Register(&registry.Entry{Name: "beta", Instance: &stubModule{name: "beta"}})
	l := New(reg)

	// Act
	handles := l.StaticModules(context.Background())

	// Assert
	require.Len(t, handles, 2)
	assert.Equal(t, "alpha", handles[0].Metadata().Name)
	assert.Equal(t, "beta", handles[1].Metadata().Name)
	for _, h := range handles {
		assert.True(t, h.IsValid())
		assert.True(t, h.Static())
	}
}

func TestHandle_ZeroValue(t *testing.T) {
	t.Parallel()

	h := &Handle{}

	assert.False(t, h.IsValid())
	assert.Nil(t, h.Instance())
	assert.True(t, h.Static())
	assert.Equal(t, "", h.ErrorString())
	assert.False(t, h.Metadata().IsValid())
}

func TestHandle_UnloadIsIdempotentNoOpForStatic(t *testing.T) {
	t.Parallel()

	// Arrange
	ctx := context.Background()
	instance := &stubModule{name: "static"}
	h := New(registry.New()).WrapExisting(instance, metadata.Descriptor{Name: "static"})

	// Act: unloading a static handle repeatedly must not disturb the instance.
	h.Unload(ctx)
	h.Unload(ctx)

	// Assert
	assert.True(t, h.IsValid())
	assert.Same(t, instance, h.Instance())
	assert.True(t, h.Static())
}

func TestHandle_Release(t *testing.T) {
	t.Parallel()

	// Arrange
	ctx := context.Background()
	instance := &stubModule{name: "released"}
	h := New(registry.New()).WrapExisting(instance, metadata.Descriptor{Name: "released"})

	// Act
	detached := h.Release()

	// Assert: the caller now owns the instance, the handle is spent.
	assert.Same(t, instance, detached)
	assert.False(t, h.IsValid())
	assert.Nil(t, h.Instance())
	assert.True(t, h.Static())

	// Unloading a released handle is safe.
	h.Unload(ctx)
	assert.Nil(t, h.Release())
}

func TestLibraryTracker(t *testing.T) {
	t.Parallel()

	// Arrange: drive a record through the full lifecycle without the native
	// loader, which refuses paths that are not real libraries.
	lib := &openLibrary{path: "fixture.so", id: libraries.track("fixture.so")}

	requireState := func(t *testing.T, expected LibraryState) {
		t.Helper()
		for _, rec := range OpenLibraries() {
			if rec.ID == lib.id {
				assert.Equal(t, expected, rec.State)
				assert.Equal(t, "fixture.so", rec.Path)
				return
			}
		}
		t.Fatalf("library %s not found in tracker", lib.id)
	}

	requireState(t, LibraryOpen)

	// Act + Assert
	lib.close(context.Background())
	requireState(t, LibraryReleased)

	lib.leak()
	requireState(t, LibraryLeaked)
}
