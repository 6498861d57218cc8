package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/logos-core/lm/internal/ctxlog"
	"github.com/logos-core/lm/internal/fsutil"
	"github.com/logos-core/lm/internal/manifest"
	"github.com/logos-core/lm/internal/metadata"
)

// LoadManifests discovers every *.hcl manifest under modulesPath and binds
// the declared descriptor and operation table onto the matching registered
// entry. A manifest for a module that was never registered is reported and
// skipped rather than failing the whole startup.
func (r *Registry) LoadManifests(ctx context.Context, modulesPath string) error {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.FindFilesByExtension(modulesPath, ".hcl")
	if err != nil {
		return fmt.Errorf("discovering module manifests in %s: %w", modulesPath, err)
	}
	logger.Debug("Discovered module manifests.", "path", modulesPath, "count", len(paths))

	parser := hclparse.NewParser()
	for _, path := range paths {
		hclFile, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return fmt.Errorf("parsing manifest %s: %w", path, diags)
		}

		mods, err := manifest.ParseFile(ctx, hclFile, path)
		if err != nil {
			return err
		}

		for _, mod := range mods {
			entry, ok := r.entries[mod.Name]
			if !ok {
				logger.Warn("Manifest declares a module that is not registered; ignoring.",
					"name", mod.Name, "file_path", path)
				continue
			}
			r.bindManifest(entry, mod)
		}
	}

	return nil
}

// bindManifest overlays one parsed manifest onto a registered entry.
func (r *Registry) bindManifest(entry *Entry, mod *manifest.Module) {
	if len(mod.MetadataFields) > 0 {
		fields := mod.MetadataFields
		if _, ok := fields["name"]; !ok {
			// The manifest's block label is authoritative for identity.
			fields["name"] = mod.Name
		}
		if _, ok := fields["description"]; !ok && mod.Description != "" {
			fields["description"] = mod.Description
		}
		entry.Descriptor = metadata.FromFields(fields)
	} else if mod.Description != "" {
		entry.Descriptor = metadata.FromFields(map[string]any{
			"name":        mod.Name,
			"description": mod.Description,
		})
	}

	if mod.Table != nil && len(mod.Table.Operations) > 0 {
		entry.Table = mod.Table
	}
}
