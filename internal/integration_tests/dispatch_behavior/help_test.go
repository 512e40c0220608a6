package integration_tests

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/decl"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/task"
	"github.com/specialistvlad/gridtask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDeployModule builds "deploy" with a handler of its own and a "status"
// sub-task. calls counts handler invocations across both.
func newDeployModule(calls *atomic.Int32) registry.Module {
	handler := func(context.Context, task.Params) (any, error) {
		calls.Add(1)
		return "ran", nil
	}

	status := registry.MustTask("status", func(b *task.Builder) error {
		b.Describe("Shows deployment status")
		b.Handle(handler)
		return b.AddOption("verbose", argtype.Boolean, nil)
	})
	deploy := registry.MustTask("deploy", func(b *task.Builder) error {
		b.Describe("Deploys the service")
		b.Handle(handler)
		b.AddSubTask(status)
		return b.AddOption("env", argtype.Enum, func(c *decl.Config) {
			c.Values = []string{"staging", "production"}
		})
	})
	return &testutil.SimpleModule{Task: deploy}
}

func TestDispatch_HelpForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		tokens []string
		title  string
	}{
		{"help token before task", []string{"help", "deploy"}, "gridtask deploy"},
		{"help token before sub-task", []string{"deploy", "help", "status"}, "gridtask deploy status"},
		{"long flag on sub-task", []string{"deploy", "status", "--help"}, "gridtask deploy status"},
		{"short flag", []string{"deploy", "-h"}, "gridtask deploy"},
		{"help flag with value", []string{"deploy", "--help=yes"}, "gridtask deploy"},
		{"unknown sub-task token", []string{"deploy", "rollback"}, "gridtask deploy"},
		{"help with unknown options", []string{"deploy", "status", "--help", "--nope"}, "gridtask deploy status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			var calls atomic.Int32
			h := testutil.Harness{Modules: []registry.Module{newDeployModule(&calls)}}

			// --- Act ---
			result := testutil.RunTask(t, h, tc.tokens...)

			// --- Assert ---
			testutil.AssertHelpShown(t, result, tc.title)
			assert.Zero(t, calls.Load(), "no handler may run when help is shown")
		})
	}
}

func TestDispatch_FalsyHelpIsUnexpectedOption(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"false", "0", ""} {
		t.Run("help="+value, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			h := testutil.Harness{Modules: []registry.Module{newDeployModule(&calls)}}

			result := testutil.RunTask(t, h, "deploy", "--help="+value)

			require.Error(t, result.Err)
			assert.Contains(t, result.Err.Error(), "unexpected option(s) 'help' provided")
			assert.Empty(t, result.Output)
			assert.Zero(t, calls.Load())
		})
	}
}

func TestDispatch_ParentHandlerRunsWithoutSubTaskToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	h := testutil.Harness{Modules: []registry.Module{newDeployModule(&calls)}}

	result := testutil.RunTask(t, h, "deploy", "--env", "staging")

	require.NoError(t, result.Err)
	assert.EqualValues(t, 1, calls.Load())
	testutil.AssertTaskRan(t, result, "deploy")
}

func TestDispatch_HelpListsSections(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	h := testutil.Harness{Modules: []registry.Module{newDeployModule(&calls)}}

	result := testutil.RunTask(t, h, "deploy", "--help")

	testutil.AssertHelpShown(t, result, "gridtask deploy")
	assert.Equal(t, `
  gridtask deploy

  Deploys the service

  Sub commands

      status  Shows deployment status

  Options

      --env  [No description provided]

`, result.Output)
}
