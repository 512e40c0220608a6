package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/fsarg"
	"github.com/specialistvlad/gridtask/internal/help"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/runner"
	"github.com/specialistvlad/gridtask/internal/task"
)

// RootName is the name of the root task and the title of the top-level help.
const RootName = "gridtask"

const rootDescription = "Runs tasks declared in Go modules and HCL manifests."

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	root     *task.Task
	runner   *runner.Runner
	help     runner.HelpFunc
}

// NewApp builds an application instance with its own logger and registry.
// Handler output and help go to outW, log records to logW. When no modules
// are given the built-in set is registered.
//
// A module registering the same handler or task name twice panics; callers
// at the process boundary recover it.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg, err := loadRegistry(ctx, cfg, modules)
	if err != nil {
		return nil, err
	}

	tasks, err := reg.BuildTasks(ctx)
	if err != nil {
		return nil, err
	}
	root, err := task.New(RootName, func(b *task.Builder) error {
		b.Describe(rootDescription)
		for _, t := range tasks {
			b.AddSubTask(t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Task tree mounted.", "root", RootName, "tasks", len(tasks))

	showHelp := help.NewRenderer(outW, cfg.HelpWidth).Render
	r := runner.New(
		runner.WithHelp(showHelp),
		runner.WithMaterializer(fsarg.OS{}),
	)

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		root:     root,
		runner:   r,
		help:     showHelp,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Root returns the root of the mounted task tree.
func (a *App) Root() *task.Task {
	return a.root
}
