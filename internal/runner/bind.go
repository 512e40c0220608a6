package runner

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/gridtask/internal/fsarg"
	"github.com/specialistvlad/gridtask/internal/task"
	"github.com/specialistvlad/gridtask/internal/taskerr"
	"github.com/zclconf/go-cty/cty"
)

// bind validates args and opts against t and assembles the parameter record.
// Arguments are checked by index, then surplus positionals, then options in
// declaration order. Files opened before a failure are closed again.
func (r *Runner) bind(ctx context.Context, t *task.Task, args []any, opts map[string]any) (_ task.Params, err error) {
	params := make(task.Params)
	defer func() {
		if err != nil {
			fsarg.CloseAll(valuesOf(params)...)
		}
	}()

	arguments := t.Arguments()
	for i, d := range arguments {
		if i >= len(args) && !d.Required() {
			params[d.Name()] = d.Absent()
			continue
		}
		var raw any
		if i < len(args) {
			raw = args[i]
		}
		v, err := d.Coerce(ctx, raw, r.materializer)
		if err != nil {
			return nil, err
		}
		params[d.Name()] = v
	}

	if len(args) > len(arguments) {
		surplus := make([]string, 0, len(args)-len(arguments))
		for _, a := range args[len(arguments):] {
			surplus = append(surplus, fmt.Sprint(a))
		}
		return nil, taskerr.Argumentf(taskerr.UnexpectedArguments, "unexpected argument(s) %s provided", quotedList(surplus))
	}

	var unknown []string
	for key := range opts {
		if _, ok := t.Option(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, taskerr.Argumentf(taskerr.UnexpectedOptions, "unexpected option(s) %s provided", quotedList(unknown))
	}

	for _, d := range t.Options() {
		raw, provided := opts[d.Name()]
		if !provided && !d.Required() {
			params[d.Name()] = d.Absent()
			continue
		}
		v, err := d.Coerce(ctx, raw, r.materializer)
		if err != nil {
			return nil, err
		}
		params[d.Name()] = v
	}
	return params, nil
}

func valuesOf(p task.Params) []cty.Value {
	values := make([]cty.Value, 0, len(p))
	for _, v := range p {
		values = append(values, v)
	}
	return values
}

// quotedList renders items as 'a', 'a' and 'b', or 'a', 'b' and 'c'.
func quotedList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	if len(quoted) <= 1 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1]
}
