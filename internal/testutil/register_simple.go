package testutil

import (
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/task"
)

// SimpleModule is a test helper for easily creating a mock module that
// registers a single handler, a Go task, or both.
type SimpleModule struct {
	HandlerName string
	Handler     *registry.RegisteredHandler

	Task *task.Task
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	if m.HandlerName != "" && m.Handler != nil {
		r.RegisterHandler(m.HandlerName, m.Handler)
	}
	if m.Task != nil {
		r.RegisterTask(m.Task)
	}
}
