package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/registry"
)

// loadRegistry registers the Go modules, loads the manifest directory when
// one is configured and validates the result as a whole.
func loadRegistry(ctx context.Context, cfg *Config, modules []registry.Module) (*registry.Registry, error) {
	logger := ctxlog.FromContext(ctx)

	reg := registry.New()
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if cfg.ManifestsPath != "" {
		logger.Debug("Loading manifests...", "manifests_path", cfg.ManifestsPath)
		if err := reg.LoadManifests(ctx, cfg.ManifestsPath); err != nil {
			return nil, fmt.Errorf("failed to load manifests: %w", err)
		}
	}

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.", "handlers", len(reg.HandlerRegistry), "manifests", len(reg.Manifests()))

	return reg, nil
}
