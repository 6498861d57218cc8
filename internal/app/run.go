package app

import (
	"context"
	"fmt"

	"github.com/logos-core/lm/internal/ctxlog"
	"github.com/logos-core/lm/internal/fsutil"
	"github.com/logos-core/lm/internal/introspect"
)

// Run executes the requested inspection command.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", appConfig.Command)

	switch appConfig.Command {
	case CommandMetadata:
		return a.runMetadata(ctx, appConfig)
	case CommandOperations:
		return a.runOperations(ctx, appConfig)
	case CommandBuiltins:
		return a.runBuiltins(ctx, appConfig)
	default:
		return fmt.Errorf("unknown command '%s'", appConfig.Command)
	}
}

// runMetadata reads a module's metadata record without instantiating it.
func (a *App) runMetadata(ctx context.Context, appConfig *Config) error {
	if !fsutil.FileExists(appConfig.ModulePath) {
		return fmt.Errorf("module file not found: %s", appConfig.ModulePath)
	}

	desc, ok := a.loader.ExtractMetadata(ctx, appConfig.ModulePath)
	if !ok {
		return fmt.Errorf("failed to read metadata from %s", appConfig.ModulePath)
	}

	if appConfig.JSONOutput {
		return renderMetadataJSON(a.outW, desc)
	}
	renderMetadataHuman(a.outW, desc)
	return nil
}

// runOperations loads the module and enumerates its own operations, excluding
// the ones promoted from the embedded capability base.
func (a *App) runOperations(ctx context.Context, appConfig *Config) error {
	if !fsutil.FileExists(appConfig.ModulePath) {
		return fmt.Errorf("module file not found: %s", appConfig.ModulePath)
	}

	handle := a.loader.Load(ctx, appConfig.ModulePath)
	defer handle.Unload(ctx)

	if !handle.IsValid() {
		return fmt.Errorf("failed to load module: %s", handle.ErrorString())
	}

	ops := introspect.Enumerate(handle.Instance(), true)

	if appConfig.JSONOutput {
		return renderOperationsJSON(a.outW, ops)
	}
	renderOperationsHuman(a.outW, ops)
	return nil
}

// runBuiltins reports every statically registered module with its descriptor
// and its manifest-enriched operation set.
func (a *App) runBuiltins(ctx context.Context, appConfig *Config) error {
	var reports []builtinReport
	for _, handle := range a.loader.StaticModules(ctx) {
		report := builtinReport{Metadata: handle.Metadata()}
		if entry, ok := a.registry.Lookup(report.Metadata.Name); ok {
			report.Operations = introspect.EnumerateWithTable(handle.Instance(), true, entry.Table)
		} else {
			report.Operations = introspect.Enumerate(handle.Instance(), true)
		}
		reports = append(reports, report)
	}

	if appConfig.JSONOutput {
		return renderBuiltinsJSON(a.outW, reports)
	}
	renderBuiltinsHuman(a.outW, reports)
	return nil
}
