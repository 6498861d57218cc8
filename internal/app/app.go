package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/logos-core/lm/internal/ctxlog"
	"github.com/logos-core/lm/internal/loader"
	"github.com/logos-core/lm/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	loader   *loader.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Reports go to outW; diagnostics go to logW so that machine-readable output
// stays clean.
func NewApp(outW, logW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Create and populate the registry with the built-in modules.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All built-in modules registered.", "count", len(modules))

	// Overlay manifests onto the registered entries. A missing manifests
	// directory is fine: inspecting a dynamic module needs no manifests.
	if appConfig.ModulesPath != "" {
		if _, err := os.Stat(appConfig.ModulesPath); err == nil {
			if err := reg.LoadManifests(ctx, appConfig.ModulesPath); err != nil {
				// A malformed manifest is a fatal startup error.
				panic(err)
			}
			logger.Debug("Module manifests loaded.")
		} else {
			logger.Debug("Manifests directory not found, skipping.", "path", appConfig.ModulesPath)
		}
	}

	// Validate the integrity of the registry.
	if err := reg.Validate(ctx); err != nil {
		// This is a programmer error (mismatch between code and manifests).
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		loader:   loader.New(reg),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
