package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/manifest"
	"github.com/specialistvlad/gridtask/internal/task"
)

// LoadManifests parses every .hcl file below path into the registry.
func (r *Registry) LoadManifests(ctx context.Context, path string) error {
	defs, err := manifest.LoadDir(ctx, path)
	if err != nil {
		return err
	}
	r.AddManifests(defs...)
	ctxlog.FromContext(ctx).Debug("Registry manifests loaded.", "path", path, "tasks", len(defs))
	return nil
}

// BuildTasks returns the full set of top-level tasks: Go-registered tasks
// first, then one task tree per manifest definition. Call ValidateRegistry
// first for aggregated diagnostics.
func (r *Registry) BuildTasks(ctx context.Context) ([]*task.Task, error) {
	logger := ctxlog.FromContext(ctx)

	tasks := r.Tasks()
	for _, def := range r.manifests {
		t, err := manifest.Build(def, r.Handler)
		if err != nil {
			return nil, fmt.Errorf("building task from %s: %w", def.FilePath, err)
		}
		tasks = append(tasks, t)
	}

	logger.Debug("Task trees built.", "go_tasks", len(r.tasks), "manifest_tasks", len(r.manifests))
	return tasks, nil
}

// MustAddManifestSource parses a manifest compiled into a module. A parse
// error is a programmer error and panics.
func (r *Registry) MustAddManifestSource(filename string, src []byte) {
	defs, err := manifest.ParseSource(context.Background(), src, filename)
	if err != nil {
		panic(fmt.Sprintf("parsing manifest %s: %v", filename, err))
	}
	r.AddManifests(defs...)
}
