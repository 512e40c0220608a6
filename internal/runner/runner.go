// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package runner dispatches a raw argument list through a task tree.
//
// One Run walks the tree from the root, consuming leading positional tokens
// that name sub-tasks, then validates the remaining tokens and the option
// map against the resolved task and invokes its handler. A help request, or
// a token that names no sub-task, shows help instead and is not an error.
package runner

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/fsarg"
	"github.com/specialistvlad/gridtask/internal/help"
	"github.com/specialistvlad/gridtask/internal/task"
)

// HelpFunc displays a help message.
type HelpFunc func(ctx context.Context, msg help.Message) error

// Runner holds the collaborators used during dispatch. It has no
// per-invocation state and may be shared.
type Runner struct {
	help         HelpFunc
	materializer fsarg.Materializer
}

// Option configures a Runner.
type Option func(*Runner)

// WithHelp replaces the help renderer.
func WithHelp(h HelpFunc) Option {
	return func(r *Runner) { r.help = h }
}

// WithMaterializer replaces the file system used for File and Directory inputs.
func WithMaterializer(m fsarg.Materializer) Option {
	return func(r *Runner) { r.materializer = m }
}

// New creates a Runner. By default help goes to standard output and paths
// are resolved against the local file system.
func New(opts ...Option) *Runner {
	r := &Runner{
		help:         help.NewRenderer(os.Stdout, 0).Render,
		materializer: fsarg.OS{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result describes how an invocation ended.
type Result struct {
	// Task is the resolved task, or the task whose help was shown.
	Task *task.Task
	// Path lists task names from the root to Task.
	Path []string
	// Help is true when help was shown instead of invoking a handler.
	Help   bool
	Params task.Params
	Output any
}

// Run dispatches args and opts through the tree rooted at root. Neither args
// nor opts is modified. Handler errors are returned unchanged. Files opened
// for File inputs are closed once the handler returns.
//
// When the resolved task has no handler, Run returns a NoHandlerBound error
// together with a Result naming that task, so callers can show its help.
// Every other error comes with a nil Result.
func (r *Runner) Run(ctx context.Context, root *task.Task, args []any, opts map[string]any) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("invocation_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)

	return r.dispatch(ctx, root, []string{root.Name()}, args, opts)
}

func (r *Runner) dispatch(ctx context.Context, t *task.Task, path []string, args []any, opts map[string]any) (*Result, error) {
	enter(ctx, ResolvingTarget, path)

	if len(args) > 0 && args[0] == "help" {
		args = args[1:]
		opts = forceHelp(opts)
	}

	if len(t.SubTasks()) > 0 && len(args) > 0 {
		name, ok := args[0].(string)
		if ok {
			if child, found := t.SubTask(name); found {
				childPath := append(slices.Clone(path), child.Name())
				return r.dispatch(ctx, child, childPath, args[1:], opts)
			}
		}
		ctxlog.FromContext(ctx).Debug("No sub-task matches token, showing help.", "token", args[0], "task", strings.Join(path, " "))
		return r.emitHelp(ctx, t, path)
	}

	if helpRequested(opts) {
		return r.emitHelp(ctx, t, path)
	}

	enter(ctx, ValidatingInputs, path)
	params, err := r.bind(ctx, t, args, opts)
	if err != nil {
		return nil, err
	}

	enter(ctx, Invoking, path)
	out, err := t.Invoke(ctx, params)
	fsarg.CloseAll(valuesOf(params)...)
	if err != nil {
		if !t.HasHandler() {
			return &Result{Task: t, Path: path}, err
		}
		return nil, err
	}

	enter(ctx, Done, path)
	return &Result{Task: t, Path: path, Params: params, Output: out}, nil
}

func (r *Runner) emitHelp(ctx context.Context, t *task.Task, path []string) (*Result, error) {
	enter(ctx, EmittingHelp, path)
	if err := r.help(ctx, help.ForTask(t, path)); err != nil {
		return nil, fmt.Errorf("rendering help for %q: %w", strings.Join(path, " "), err)
	}
	return &Result{Task: t, Path: path, Help: true}, nil
}

func forceHelp(opts map[string]any) map[string]any {
	cp := make(map[string]any, len(opts)+1)
	for k, v := range opts {
		cp[k] = v
	}
	cp["h"] = true
	return cp
}

func helpRequested(opts map[string]any) bool {
	return truthy(opts["help"]) || truthy(opts["h"])
}

// truthy treats nil, false, zero of any numeric kind and the strings "",
// "false" and "0" as unset.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "false" && x != "0"
	}
	if f, ok := argtype.AsFloat(v); ok {
		return f != 0
	}
	return true
}
