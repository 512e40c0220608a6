package env_vars

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/decl"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the inputs of the env task.
type Input struct {
	Prefix *string `cty:"prefix"`
}

// environ is swapped in tests.
var environ = os.Environ

// OnRunEnvVars is the handler for the 'env' task. It returns the process
// environment as sorted KEY=value lines.
func OnRunEnvVars(ctx context.Context, input *Input) (any, error) {
	var lines []string
	for _, e := range environ() {
		key, _, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if input.Prefix != nil && !strings.HasPrefix(key, *input.Prefix) {
			continue
		}
		lines = append(lines, e)
	}
	sort.Strings(lines)
	return lines, nil
}

// Register registers the task with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTask(registry.MustTask("env", func(b *task.Builder) error {
		b.Describe("Lists environment variables.")
		if err := b.AddOption("prefix", argtype.String, func(c *decl.Config) {
			c.Description = "Only list variables whose name starts with this prefix."
		}); err != nil {
			return err
		}
		b.Handle(task.Bind(OnRunEnvVars))
		return nil
	}))
}
