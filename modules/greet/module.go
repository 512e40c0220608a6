package greet

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/decl"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the inputs of the greet task.
type Input struct {
	Name     string  `cty:"name"`
	Greeting *string `cty:"greeting"`
	Quiet    *bool   `cty:"quiet"`
}

// OnRunGreet is the handler for the 'greet' task.
func OnRunGreet(ctx context.Context, input *Input) (any, error) {
	greeting := "Hello"
	if input.Greeting != nil {
		greeting = *input.Greeting
	}
	msg := fmt.Sprintf("%s, %s!", greeting, input.Name)

	ctxlog.FromContext(ctx).Info("Greeting", "name", input.Name, "quiet", input.Quiet != nil && *input.Quiet)
	if input.Quiet != nil && *input.Quiet {
		return nil, nil
	}
	return msg, nil
}

// Register registers the task with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTask(registry.MustTask("greet", func(b *task.Builder) error {
		b.Describe("Prints a greeting.")

		if err := b.AddArgument("name", argtype.String, func(c *decl.Config) {
			c.Description = "Who to greet."
			c.Required = true
		}); err != nil {
			return err
		}
		if err := b.AddOption("greeting", argtype.Enum, func(c *decl.Config) {
			c.Description = "Greeting word."
			c.Values = []string{"Hello", "Hi", "Hey"}
		}); err != nil {
			return err
		}
		if err := b.AddOption("quiet", argtype.Boolean, func(c *decl.Config) {
			c.Description = "Log the greeting instead of printing it."
		}); err != nil {
			return err
		}

		b.Handle(task.Bind(OnRunGreet))
		return nil
	}))
}
