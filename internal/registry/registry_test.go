package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-core/lm/internal/testutil"
)

// greeter is a registration fixture with a small operation surface.
type greeter struct{}

func (g *greeter) Greet(name string) string          { return "hello " + name }
func (g *greeter) Repeat(message string, count int)  {}
func (g *greeter) Status(ctx context.Context) string { return "ok" }
func (g *greeter) Accept(value any)                  {}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("fills a fallback descriptor from the registration name", func(t *testing.T) {
		t.Parallel()

		// Arrange
		r := New()

		// Act
		r.Register(&Entry{Name: "greeter", Instance: &greeter{}})

		// Assert
		entry, ok := r.Lookup("greeter")
		require.True(t, ok)
		assert.True(t, entry.Descriptor.IsValid())
		assert.Equal(t, "greeter", entry.Descriptor.Name)
	})

	t.Run("panics on a duplicate name", func(t *testing.T) {
		t.Parallel()

		r := New()
		r.Register(&Entry{Name: "greeter", Instance: &greeter{}})

		assert.PanicsWithValue(t, "module with name 'greeter' already registered", func() {
			r.Register(&Entry{Name: "greeter", Instance: &greeter{}})
		})
	})

	t.Run("panics on a nameless entry", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			New().Register(&Entry{Instance: &greeter{}})
		})
	})
}

func TestModules_PreservesRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := New()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		r.Register(&Entry{Name: name, Instance: &greeter{}})
	}

	entries := r.Modules()
	require.Len(t, entries, 3)
	assert.Equal(t, "charlie", entries[0].Name)
	assert.Equal(t, "alpha", entries[1].Name)
	assert.Equal(t, "bravo", entries[2].Name)
}

func TestLoadManifests_BindsDescriptorAndTable(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := testutil.WriteFiles(t, map[string]string{
		"greeter/manifest.hcl": `
module "greeter" {
  description = "Greets people."

  metadata {
    name    = "greeter"
    version = "1.2.3"
    author  = "Logos Core Team"
  }

  operation "Greet" {
    kind = "method"

    param "name" {
      type = string
    }
  }
}
`,
	})

	r := New()
	r.Register(&Entry{Name: "greeter", Instance: &greeter{}})

	// Act
	err := r.LoadManifests(context.Background(), dir)

	// Assert
	require.NoError(t, err)
	entry, ok := r.Lookup("greeter")
	require.True(t, ok)
	assert.Equal(t, "1.2.3", entry.Descriptor.Version)
	assert.Equal(t, "Logos Core Team", entry.Descriptor.Author)
	assert.Equal(t, "Greets people.", entry.Descriptor.Description)

	require.NotNil(t, entry.Table)
	decl, ok := entry.Table.Declaration("Greet")
	require.True(t, ok)
	require.Len(t, decl.Params, 1)
	assert.Equal(t, "name", decl.Params[0].Name)
}

func TestLoadManifests_UnregisteredModuleIsSkipped(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"ghost.hcl": `
module "ghost" {
  metadata {
    name = "ghost"
  }
}
`,
	})

	r := New()
	err := r.LoadManifests(context.Background(), dir)

	assert.NoError(t, err)
	_, ok := r.Lookup("ghost")
	assert.False(t, ok)
}

func TestLoadManifests_MalformedManifestFails(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"broken.hcl": `module "broken" {`,
	})

	r := New()
	err := r.LoadManifests(context.Background(), dir)

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	register := func(t *testing.T, manifestBody string) *Registry {
		t.Helper()
		dir := testutil.WriteFiles(t, map[string]string{"greeter.hcl": manifestBody})
		r := New()
		r.Register(&Entry{Name: "greeter", Instance: &greeter{}})
		require.NoError(t, r.LoadManifests(ctx, dir))
		return r
	}

	t.Run("matching declaration passes", func(t *testing.T) {
		t.Parallel()

		r := register(t, `
module "greeter" {
  operation "Repeat" {
    param "message" { type = string }
    param "count"   { type = number }
  }

  operation "Status" {
    kind = "accessor"
  }
}
`)

		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("unknown operation fails", func(t *testing.T) {
		t.Parallel()

		r := register(t, `
module "greeter" {
  operation "Vanish" {}
}
`)

		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registry validation failed")
		assert.Contains(t, err.Error(), "'Vanish' which is not found")
	})

	t.Run("parameter count mismatch fails", func(t *testing.T) {
		t.Parallel()

		r := register(t, `
module "greeter" {
  operation "Greet" {
    param "name"  { type = string }
    param "extra" { type = string }
  }
}
`)

		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declares 2 parameter(s) but Go method takes 1")
	})

	t.Run("parameter type mismatch fails", func(t *testing.T) {
		t.Parallel()

		r := register(t, `
module "greeter" {
  operation "Greet" {
    param "name" { type = number }
  }
}
`)

		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type mismatch")
	})

	t.Run("interface-typed Go parameter degrades to a skip", func(t *testing.T) {
		t.Parallel()

		// The Go side takes 'any'; its nil zero value cannot be handed to
		// the cty conversion, so the check must warn and move on rather
		// than fail (or worse) at startup.
		r := register(t, `
module "greeter" {
  operation "Accept" {
    param "value" { type = string }
  }
}
`)

		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("declared any skips the type check", func(t *testing.T) {
		t.Parallel()

		r := register(t, `
module "greeter" {
  operation "Greet" {
    param "name" { type = any }
  }
}
`)

		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("host-injected context is not a declared parameter", func(t *testing.T) {
		t.Parallel()

		// Status(ctx) declares no params; the leading context is skipped.
		r := register(t, `
module "greeter" {
  operation "Status" {}
}
`)

		assert.NoError(t, r.Validate(ctx))
	})
}
