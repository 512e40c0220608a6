package registry

import (
	"github.com/specialistvlad/gridtask/internal/manifest"
	"github.com/specialistvlad/gridtask/internal/task"
)

// Module is the interface that all built-in modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered handlers, Go-declared tasks and manifest
// definitions for a single application instance.
type Registry struct {
	HandlerRegistry map[string]*RegisteredHandler

	tasks     []*task.Task
	manifests []*manifest.TaskDef
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		HandlerRegistry: make(map[string]*RegisteredHandler),
	}
}

// Tasks returns the tasks registered from Go, in registration order.
func (r *Registry) Tasks() []*task.Task {
	return append([]*task.Task(nil), r.tasks...)
}

// Manifests returns the loaded manifest definitions.
func (r *Registry) Manifests() []*manifest.TaskDef {
	return append([]*manifest.TaskDef(nil), r.manifests...)
}

// AddManifests appends parsed manifest definitions.
func (r *Registry) AddManifests(defs ...*manifest.TaskDef) {
	r.manifests = append(r.manifests, defs...)
}

// Handler looks up a handler by name. Its signature matches manifest.HandlerLookup.
func (r *Registry) Handler(name string) (task.Handler, bool) {
	h, ok := r.HandlerRegistry[name]
	if !ok {
		return nil, false
	}
	return h.Handler, true
}
