package app

import (
	"context"

	"github.com/specialistvlad/gridtask/internal/argv"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/help"
	"github.com/specialistvlad/gridtask/internal/taskerr"
)

// Run dispatches one command line through the task tree. tokens is the part
// of the process arguments that belongs to the tree, starting with a task
// name. Reaching a task without a handler, the root included, shows its help.
func (a *App) Run(ctx context.Context, tokens []string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "tokens", len(tokens))

	args, opts := argv.Parse(tokens)
	res, err := a.runner.Run(ctx, a.root, args, opts)
	if err != nil {
		if res == nil || res.Task.HasHandler() || !taskerr.HasCode(err, taskerr.NoHandlerBound) {
			return err
		}
		a.logger.Debug("Namespace reached directly, showing help instead.", "task", res.Task.Name())
		return a.help(ctx, help.ForTask(res.Task, res.Path))
	}

	if res.Help {
		a.logger.Debug("Help shown.", "task", res.Task.Name())
		return nil
	}
	a.logger.Info("Task finished.", "task", res.Task.Name())

	return writeOutput(a.outW, res.Output)
}
