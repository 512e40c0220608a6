package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/specialistvlad/gridtask/internal/task"
)

// RegisteredHandler holds the compiled Go parts of a manifest handler.
type RegisteredHandler struct {
	// InputType is the struct the handler decodes its parameters into, or
	// nil when the handler reads task.Params directly.
	InputType reflect.Type
	Handler   task.Handler
}

// Typed builds a RegisteredHandler around a function taking a typed input
// struct whose fields carry `cty:"name"` tags.
func Typed[T any](fn func(ctx context.Context, in *T) (any, error)) *RegisteredHandler {
	return &RegisteredHandler{
		InputType: reflect.TypeOf((*T)(nil)).Elem(),
		Handler:   task.Bind(fn),
	}
}

// Untyped builds a RegisteredHandler that receives the raw parameter record.
func Untyped(h task.Handler) *RegisteredHandler {
	return &RegisteredHandler{Handler: h}
}

// RegisterHandler registers a Go function under the name manifests use for it.
func (r *Registry) RegisterHandler(name string, handler *RegisteredHandler) {
	if _, exists := r.HandlerRegistry[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering handler.", "name", name)
	r.HandlerRegistry[name] = handler
}

// RegisterTask registers a task declared entirely in Go. It is mounted under
// the application root next to manifest tasks.
func (r *Registry) RegisterTask(t *task.Task) {
	for _, existing := range r.tasks {
		if existing.Name() == t.Name() {
			panic(fmt.Sprintf("task with name '%s' already registered", t.Name()))
		}
	}
	slog.Debug("Registering task.", "name", t.Name())
	r.tasks = append(r.tasks, t)
}

// MustTask is task.New for module registration code, where a declaration
// error is a programmer error.
func MustTask(name string, build func(b *task.Builder) error) *task.Task {
	t, err := task.New(name, build)
	if err != nil {
		panic(fmt.Sprintf("declaring task '%s': %v", name, err))
	}
	return t
}
