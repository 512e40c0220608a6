// Package task implements the command tree: a Task owns an ordered list of
// positional argument declarations, an insertion-ordered set of option
// declarations, named sub-tasks and an optional handler.
package task

import (
	"context"
	"slices"

	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/decl"
	"github.com/specialistvlad/gridtask/internal/taskerr"
)

// Handler receives the validated parameter record of one invocation.
type Handler func(ctx context.Context, p Params) (any, error)

// Option names the runner interprets itself.
var reservedOptions = []string{"help", "h"}

// Task is one node of the command tree. It is read-only once New returns,
// except that sub-tasks may still be attached with AddSubTask.
type Task struct {
	name        string
	description string
	handler     Handler

	arguments []*decl.Decl

	options     []*decl.Decl
	optionIndex map[string]int

	subTasks []*Task
	subIndex map[string]int
}

// Builder is the configuration surface handed to the build callback of New.
type Builder struct {
	t *Task
}

// New creates a task and lets build configure it. A nil build yields a
// namespace placeholder with no inputs and no handler.
func New(name string, build func(b *Builder) error) (*Task, error) {
	t := &Task{
		name:        name,
		optionIndex: make(map[string]int),
		subIndex:    make(map[string]int),
	}
	if build != nil {
		if err := build(&Builder{t: t}); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Describe sets the task description shown in help.
func (b *Builder) Describe(description string) {
	b.t.description = description
}

// Handle binds the handler invoked when this task is dispatched.
func (b *Builder) Handle(h Handler) {
	b.t.handler = h
}

// AddArgument appends a positional argument. A required argument may not
// follow an optional one, and names must be unique across arguments and
// options.
func (b *Builder) AddArgument(name string, kind argtype.Kind, configure func(*decl.Config)) error {
	d, err := decl.New(decl.Argument, name, kind, configure)
	if err != nil {
		return err
	}
	for _, existing := range b.t.arguments {
		if existing.Name() == name {
			return taskerr.Configf(taskerr.DuplicateArgument, "argument is declared more than once on task %q", b.t.name).WithField(d.Label())
		}
	}
	if _, ok := b.t.optionIndex[name]; ok {
		return taskerr.Configf(taskerr.DuplicateArgument, "name is already used by an option on task %q", b.t.name).WithField(d.Label())
	}
	if d.Required() {
		for _, existing := range b.t.arguments {
			if !existing.Required() {
				return taskerr.Configf(taskerr.ArgumentOrderingViolation,
					"required argument cannot follow optional argument %s on task %q", existing.Label(), b.t.name).WithField(d.Label())
			}
		}
	}
	b.t.arguments = append(b.t.arguments, d)
	return nil
}

// AddOption declares a named option. Redeclaring a name replaces the earlier
// declaration in place.
func (b *Builder) AddOption(name string, kind argtype.Kind, configure func(*decl.Config)) error {
	d, err := decl.New(decl.Option, name, kind, configure)
	if err != nil {
		return err
	}
	if slices.Contains(reservedOptions, name) {
		return taskerr.Configf(taskerr.ReservedName, "option name is reserved for help").WithField(d.Label())
	}
	for _, a := range b.t.arguments {
		if a.Name() == name {
			return taskerr.Configf(taskerr.DuplicateArgument, "name is already used by argument %s on task %q", a.Label(), b.t.name).WithField(d.Label())
		}
	}
	if i, ok := b.t.optionIndex[name]; ok {
		b.t.options[i] = d
		return nil
	}
	b.t.optionIndex[name] = len(b.t.options)
	b.t.options = append(b.t.options, d)
	return nil
}

// AddSubTask attaches child during construction. See Task.AddSubTask.
func (b *Builder) AddSubTask(child *Task) {
	b.t.AddSubTask(child)
}

// AddSubTask attaches child under its own name. A sub-task with the same name
// is replaced silently and keeps its position in the listing.
func (t *Task) AddSubTask(child *Task) {
	if i, ok := t.subIndex[child.name]; ok {
		t.subTasks[i] = child
		return
	}
	t.subIndex[child.name] = len(t.subTasks)
	t.subTasks = append(t.subTasks, child)
}

// Name is the name the task is dispatched by.
func (t *Task) Name() string { return t.name }

// Description is the help text, possibly empty.
func (t *Task) Description() string { return t.description }

// HasHandler reports whether a handler was bound.
func (t *Task) HasHandler() bool { return t.handler != nil }

// Arguments returns the positional declarations in order.
func (t *Task) Arguments() []*decl.Decl { return slices.Clone(t.arguments) }

// Options returns the option declarations in insertion order.
func (t *Task) Options() []*decl.Decl { return slices.Clone(t.options) }

// Option looks up an option declaration by name.
func (t *Task) Option(name string) (*decl.Decl, bool) {
	i, ok := t.optionIndex[name]
	if !ok {
		return nil, false
	}
	return t.options[i], true
}

// SubTasks returns the children in insertion order.
func (t *Task) SubTasks() []*Task { return slices.Clone(t.subTasks) }

// SubTask looks up a child by name.
func (t *Task) SubTask(name string) (*Task, bool) {
	i, ok := t.subIndex[name]
	if !ok {
		return nil, false
	}
	return t.subTasks[i], true
}

// Invoke calls the bound handler. Handler errors are returned unchanged.
func (t *Task) Invoke(ctx context.Context, p Params) (any, error) {
	if t.handler == nil {
		return nil, taskerr.Invocationf(taskerr.NoHandlerBound, "task %q has no handler bound", t.name)
	}
	return t.handler(ctx, p)
}
