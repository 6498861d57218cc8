package manifest

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/logos-core/lm/internal/introspect"
)

func parseManifest(t *testing.T, src string) ([]*Module, error) {
	t.Helper()
	hclFile, diags := hclparse.NewParser().ParseHCL([]byte(src), "manifest.hcl")
	require.False(t, diags.HasErrors(), "fixture must be syntactically valid: %s", diags)
	return ParseFile(context.Background(), hclFile, "manifest.hcl")
}

func TestParseFile_FullModule(t *testing.T) {
	t.Parallel()

	// Arrange
	src := `
module "printer" {
  description = "Formatted output."

  metadata {
    name         = "printer"
    version      = "1.0.0"
    author       = "Logos Core Team"
    type         = "output"
    dependencies = ["env_vars"]
  }

  operation "Print" {
    kind = "method"

    param "message" {
      type = string
    }
  }

  operation "SetPrefix" {
    kind = "accessor"

    param "prefix" {
      type = string
    }
  }
}
`

	// Act
	mods, err := parseManifest(t, src)

	// Assert
	require.NoError(t, err)
	require.Len(t, mods, 1)
	mod := mods[0]

	assert.Equal(t, "printer", mod.Name)
	assert.Equal(t, "Formatted output.", mod.Description)
	assert.Equal(t, "printer", mod.MetadataFields["name"])
	assert.Equal(t, "1.0.0", mod.MetadataFields["version"])
	assert.Equal(t, []any{"env_vars"}, mod.MetadataFields["dependencies"])

	printDecl, ok := mod.Table.Declaration("Print")
	require.True(t, ok)
	assert.Equal(t, introspect.KindMethod, printDecl.Kind)
	require.Len(t, printDecl.Params, 1)
	assert.Equal(t, "message", printDecl.Params[0].Name)
	assert.Equal(t, cty.String, printDecl.Params[0].Type)

	prefixDecl, ok := mod.Table.Declaration("SetPrefix")
	require.True(t, ok)
	assert.Equal(t, introspect.KindAccessor, prefixDecl.Kind)
}

func TestParseFile_MultipleModulesPerFile(t *testing.T) {
	t.Parallel()

	mods, err := parseManifest(t, `
module "alpha" {}
module "beta" {}
`)

	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "alpha", mods[0].Name)
	assert.Equal(t, "beta", mods[1].Name)
}

func TestParseFile_KindDefaultsToMethod(t *testing.T) {
	t.Parallel()

	mods, err := parseManifest(t, `
module "m" {
  operation "Run" {}
}
`)

	require.NoError(t, err)
	decl, ok := mods[0].Table.Declaration("Run")
	require.True(t, ok)
	assert.Equal(t, introspect.KindMethod, decl.Kind)
	assert.Empty(t, decl.Params)
}

func TestParseFile_ParamOrderFollowsDeclarationOrder(t *testing.T) {
	t.Parallel()

	mods, err := parseManifest(t, `
module "m" {
  operation "Configure" {
    param "zulu"  { type = string }
    param "alpha" { type = number }
    param "mike"  { type = bool }
  }
}
`)

	require.NoError(t, err)
	decl, _ := mods[0].Table.Declaration("Configure")
	require.Len(t, decl.Params, 3)
	assert.Equal(t, "zulu", decl.Params[0].Name)
	assert.Equal(t, "alpha", decl.Params[1].Name)
	assert.Equal(t, "mike", decl.Params[2].Name)
	assert.Equal(t, cty.Number, decl.Params[1].Type)
}

func TestParseFile_TypeConstraintExpressions(t *testing.T) {
	t.Parallel()

	mods, err := parseManifest(t, `
module "m" {
  operation "Apply" {
    param "values" { type = map(string) }
    param "items"  { type = list(number) }
    param "loose"  { type = any }
  }
}
`)

	require.NoError(t, err)
	decl, _ := mods[0].Table.Declaration("Apply")
	require.Len(t, decl.Params, 3)
	assert.Equal(t, cty.Map(cty.String), decl.Params[0].Type)
	assert.Equal(t, cty.List(cty.Number), decl.Params[1].Type)
	assert.Equal(t, cty.DynamicPseudoType, decl.Params[2].Type)
}

func TestParseFile_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
	}{
		{
			name: "invalid operation kind",
			src: `
module "m" {
  operation "Run" {
    kind = "telepathy"
  }
}
`,
		},
		{
			name: "duplicate operation declaration",
			src: `
module "m" {
  operation "Run" {}
  operation "Run" {}
}
`,
		},
		{
			name: "param without a type",
			src: `
module "m" {
  operation "Run" {
    param "x" {}
  }
}
`,
		},
		{
			name: "unknown attribute",
			src: `
module "m" {
  color = "red"
}
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseManifest(t, tc.src)
			assert.Error(t, err)
		})
	}
}

func TestCtyToGo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    cty.Value
		expected any
	}{
		{name: "string", value: cty.StringVal("x"), expected: "x"},
		{name: "bool", value: cty.True, expected: true},
		{name: "integral number", value: cty.NumberIntVal(3), expected: int64(3)},
		{name: "fractional number", value: cty.NumberFloatVal(1.5), expected: 1.5},
		{name: "null", value: cty.NullVal(cty.String), expected: nil},
		{
			name:     "tuple",
			value:    cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
			expected: []any{"a", "b"},
		},
		{
			name:     "object",
			value:    cty.ObjectVal(map[string]cty.Value{"k": cty.NumberIntVal(1)}),
			expected: map[string]any{"k": int64(1)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, ctyToGo(tc.value))
		})
	}
}
