package runner

import (
	"context"
	"strings"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
)

// State is a stage of one dispatch.
type State int

const (
	ResolvingTarget State = iota
	ValidatingInputs
	EmittingHelp
	Invoking
	Done
)

func (s State) String() string {
	switch s {
	case ResolvingTarget:
		return "resolving_target"
	case ValidatingInputs:
		return "validating_inputs"
	case EmittingHelp:
		return "emitting_help"
	case Invoking:
		return "invoking"
	case Done:
		return "done"
	}
	return "unknown"
}

func enter(ctx context.Context, s State, path []string) {
	ctxlog.FromContext(ctx).Debug("Runner state changed.", "state", s.String(), "task", strings.Join(path, " "))
}
