package manifest

import (
	"fmt"

	"github.com/specialistvlad/gridtask/internal/task"
)

// HandlerLookup resolves a handler name from a manifest.
type HandlerLookup func(name string) (task.Handler, bool)

// Build turns def and its sub-tasks into a task tree. Unknown handler names
// are reported as errors; declaration errors such as argument ordering are
// returned as they come from the task package.
func Build(def *TaskDef, lookup HandlerLookup) (*task.Task, error) {
	children := make([]*task.Task, 0, len(def.SubTasks))
	for _, sub := range def.SubTasks {
		child, err := Build(sub, lookup)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	t, err := task.New(def.Name, func(b *task.Builder) error {
		b.Describe(def.Description)

		if def.Handler != "" {
			h, ok := lookup(def.Handler)
			if !ok {
				return fmt.Errorf("handler '%s' is not registered", def.Handler)
			}
			b.Handle(h)
		}

		for _, in := range def.Arguments {
			if err := b.AddArgument(in.Name, in.Kind, in.Configure); err != nil {
				return err
			}
		}
		for _, in := range def.Options {
			if err := b.AddOption(in.Name, in.Kind, in.Configure); err != nil {
				return err
			}
		}
		for _, child := range children {
			b.AddSubTask(child)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("task '%s' (%s): %w", def.Name, def.DefRange, err)
	}
	return t, nil
}
