package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/manifest"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry performs a strict parity check between manifests and Go
// code: every referenced handler must exist, and a typed handler's input
// struct must declare exactly the manifest's inputs with compatible types.
// All problems are reported together.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, root := range r.manifests {
		root.Walk(func(path []string, def *manifest.TaskDef) {
			if def.Handler == "" {
				return
			}
			taskName := strings.Join(path, " ")

			handler, ok := r.HandlerRegistry[def.Handler]
			if !ok {
				errs = append(errs, fmt.Sprintf("task '%s': handler '%s' is not registered", taskName, def.Handler))
				return
			}
			if handler.InputType == nil {
				logger.Debug("Handler reads raw parameters, skipping parity check.", "task", taskName, "handler", def.Handler)
				return
			}
			errs = append(errs, checkParity(taskName, def, handler.InputType)...)
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func checkParity(taskName string, def *manifest.TaskDef, inputType reflect.Type) []string {
	var errs []string

	if inputType.Kind() != reflect.Struct {
		return []string{fmt.Sprintf("task '%s': handler input type %s is not a struct", taskName, inputType)}
	}

	manifestInputs := make(map[string]manifest.InputDef)
	for _, in := range def.Arguments {
		manifestInputs[in.Name] = in
	}
	for _, in := range def.Options {
		manifestInputs[in.Name] = in
	}

	goInputs := make(map[string]reflect.StructField)
	for i := 0; i < inputType.NumField(); i++ {
		field := inputType.Field(i)
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get("cty"), ",")[0]
		if tagName != "" && tagName != "-" {
			goInputs[tagName] = field
		}
	}

	for name := range goInputs {
		if _, ok := manifestInputs[name]; !ok {
			errs = append(errs, fmt.Sprintf("task '%s': Go struct has field for input '%s' which is not declared in manifest", taskName, name))
		}
	}

	for name, in := range manifestInputs {
		field, ok := goInputs[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("task '%s': manifest declares input '%s' which is not found in Go struct", taskName, name))
			continue
		}

		if field.Type.Kind() == reflect.Interface {
			errs = append(errs, fmt.Sprintf("task '%s', input '%s': Go struct field '%s' is an interface type", taskName, name, field.Name))
			continue
		}
		goType, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
		if err != nil {
			errs = append(errs, fmt.Sprintf("task '%s', input '%s': could not imply cty type from Go field type %s: %v", taskName, name, field.Type, err))
			continue
		}

		if in.Kind.Resource() {
			if !goType.Equals(cty.DynamicPseudoType) {
				errs = append(errs, fmt.Sprintf("task '%s', input '%s': %s inputs must decode into a cty.Value field, Go struct field '%s' is %s",
					taskName, name, in.Kind, field.Name, field.Type))
			}
			continue
		}

		want, _ := argtype.PrimitiveType(in.Kind)
		if goType.Equals(cty.DynamicPseudoType) {
			continue
		}
		if !want.Equals(goType) {
			errs = append(errs, fmt.Sprintf("task '%s', input '%s': type mismatch. Manifest requires '%s' but Go struct field '%s' provides '%s'",
				taskName, name, want.FriendlyName(), field.Name, goType.FriendlyName()))
			continue
		}
		if !in.Required && field.Type.Kind() != reflect.Ptr {
			errs = append(errs, fmt.Sprintf("task '%s', input '%s': optional input needs a pointer field, Go struct field '%s' is %s",
				taskName, name, field.Name, field.Type))
		}
	}

	return errs
}
