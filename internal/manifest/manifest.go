// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Logos Core Team
//
// This file parses module manifests: the HCL files that accompany built-in
// modules and declare the parts of their interface that Go's reflection
// facility cannot recover: parameter names, property accessors, and the
// metadata descriptor for modules that have no binary to embed one in.
package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/logos-core/lm/internal/ctxlog"
	"github.com/logos-core/lm/internal/introspect"
)

// Module is the format-agnostic representation of one module manifest.
type Module struct {
	Name        string
	Description string

	// MetadataFields holds the manifest's metadata block as the same loose
	// field mapping an embedded binary record would produce.
	MetadataFields map[string]any

	// Table is the module's declared operation table.
	Table *introspect.Table
}

// rootSchema captures the top-level structure: one or more 'module' blocks.
type rootSchema struct {
	Modules []*hclModule `hcl:"module,block"`
}

// hclModule defers decoding of a single 'module' block body.
type hclModule struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var moduleBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "metadata"},
		{Type: "operation", LabelNames: []string{"name"}},
	},
}

var operationBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "kind"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "param", LabelNames: []string{"name"}},
	},
}

var paramBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
	},
}

// ParseFile decodes every 'module' block in an HCL manifest file.
func ParseFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*Module, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing module manifest.", "file_path", filePath)

	if hclFile == nil {
		return nil, fmt.Errorf("manifest file %s: nil HCL file", filePath)
	}

	root := &rootSchema{}
	if diags := gohcl.DecodeBody(hclFile.Body, nil, root); diags.HasErrors() {
		return nil, fmt.Errorf("manifest file %s: %w", filePath, diags)
	}

	modules := make([]*Module, 0, len(root.Modules))
	for _, parsed := range root.Modules {
		mod, diags := decodeModule(parsed)
		if diags.HasErrors() {
			return nil, fmt.Errorf("manifest file %s: %w", filePath, diags)
		}
		modules = append(modules, mod)
	}

	return modules, nil
}

func decodeModule(parsed *hclModule) (*Module, hcl.Diagnostics) {
	mod := &Module{
		Name:  parsed.Name,
		Table: &introspect.Table{Operations: make(map[string]introspect.Declaration)},
	}

	bodyContent, diags := parsed.Body.Content(moduleBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	if attr, exists := bodyContent.Attributes["description"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &mod.Description)...)
	}

	for _, block := range bodyContent.Blocks.OfType("metadata") {
		fields, metaDiags := decodeMetadata(block)
		diags = append(diags, metaDiags...)
		mod.MetadataFields = fields
	}

	for _, block := range bodyContent.Blocks.OfType("operation") {
		opName := block.Labels[0]
		if _, exists := mod.Table.Operations[opName]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate operation declaration",
				Detail:   fmt.Sprintf("An operation named '%s' has already been declared.", opName),
				Subject:  &block.DefRange,
			})
			continue
		}

		decl, opDiags := decodeOperation(block)
		diags = append(diags, opDiags...)
		if opDiags.HasErrors() {
			continue
		}
		mod.Table.Operations[opName] = decl
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return mod, nil
}

// decodeMetadata flattens a 'metadata' block into the loose field mapping
// the descriptor layer expects.
func decodeMetadata(block *hcl.Block) (map[string]any, hcl.Diagnostics) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	fields := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		fields[name] = ctyToGo(val)
	}
	return fields, diags
}

func decodeOperation(block *hcl.Block) (introspect.Declaration, hcl.Diagnostics) {
	decl := introspect.Declaration{Kind: introspect.KindMethod}

	bodyContent, diags := block.Body.Content(operationBodySchema)
	if diags.HasErrors() {
		return decl, diags
	}

	if attr, exists := bodyContent.Attributes["kind"]; exists {
		var kind string
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &kind)...)
		switch introspect.Kind(kind) {
		case introspect.KindMethod, introspect.KindHandler, introspect.KindAccessor:
			decl.Kind = introspect.Kind(kind)
		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid operation kind",
				Detail:   fmt.Sprintf("The kind '%s' is not valid. Supported kinds are: method, handler, accessor.", kind),
				Subject:  attr.Expr.Range().Ptr(),
			})
		}
	}

	// Block order in the manifest defines positional parameter order.
	for _, paramBlock := range bodyContent.Blocks.OfType("param") {
		param, paramDiags := decodeParam(paramBlock)
		diags = append(diags, paramDiags...)
		if paramDiags.HasErrors() {
			continue
		}
		decl.Params = append(decl.Params, param)
	}

	return decl, diags
}

func decodeParam(block *hcl.Block) (introspect.DeclaredParam, hcl.Diagnostics) {
	param := introspect.DeclaredParam{Name: block.Labels[0]}

	bodyContent, diags := block.Body.Content(paramBodySchema)
	if diags.HasErrors() {
		return param, diags
	}

	typeAttr, exists := bodyContent.Attributes["type"]
	if !exists {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'type' attribute",
			Detail:   "The 'type' attribute is required for all param blocks.",
			Subject:  &missingItemRange,
		})
		return param, diags
	}

	ctyType, typeDiags := typeexpr.TypeConstraint(typeAttr.Expr)
	diags = append(diags, typeDiags...)
	if typeDiags.HasErrors() {
		return param, diags
	}
	param.Type = ctyType

	return param, diags
}
