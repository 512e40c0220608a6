package integration_tests

import (
	"context"
	"testing"

	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/task"
	"github.com/specialistvlad/gridtask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoModule() *testutil.SimpleModule {
	return &testutil.SimpleModule{
		HandlerName: "OnRunEcho",
		Handler: registry.Untyped(func(_ context.Context, p task.Params) (any, error) {
			s, _ := p.String("text")
			return s, nil
		}),
	}
}

// TestManifests_MergedFromDirectoryTree validates that every .hcl file below
// the manifests directory contributes tasks, and hidden directories are skipped.
func TestManifests_MergedFromDirectoryTree(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tmpl := `
		task "%s" {
		  handler = "OnRunEcho"
		  argument "text" {
		    type     = string
		    required = true
		  }
		}
	`
	files := map[string]string{
		"a.hcl":             fmtTask(tmpl, "alpha"),
		"nested/b.hcl":      fmtTask(tmpl, "beta"),
		".git/ignored.hcl":  fmtTask(tmpl, "ignored"),
		"nested/readme.txt": "not a manifest",
	}
	h := testutil.Harness{Files: files, Modules: []registry.Module{echoModule()}}

	// --- Act ---
	result := testutil.RunTask(t, h, "beta", "from nested")

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, "from nested\n", result.Output)

	root := result.App.Root()
	_, ok := root.SubTask("alpha")
	assert.True(t, ok)
	_, ok = root.SubTask("ignored")
	assert.False(t, ok)
}

// TestManifests_NestedSubTasks validates that nested task blocks become
// sub-tasks dispatched by leading tokens.
func TestManifests_NestedSubTasks(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"tools.hcl": `
			task "tools" {
			  description = "Tool box"

			  task "say" {
			    handler = "OnRunEcho"
			    argument "text" {
			      type     = string
			      required = true
			    }
			  }
			}
		`,
	}
	h := testutil.Harness{Files: files, Modules: []registry.Module{echoModule()}}

	result := testutil.RunTask(t, h, "tools", "say", "hello")

	require.NoError(t, result.Err)
	assert.Equal(t, "hello\n", result.Output)
	testutil.AssertTaskRan(t, result, "say")
}

// TestManifests_DuplicateTaskAcrossFiles validates that two files declaring
// the same top-level task keep the one loaded last, in listing position of the first.
func TestManifests_DuplicateTaskAcrossFiles(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.hcl": `
			task "same" {
			  description = "first"
			}
		`,
		"b.hcl": `
			task "same" {
			  description = "second"
			}
			task "other" {}
		`,
	}
	h := testutil.Harness{Files: files, Modules: []registry.Module{echoModule()}}

	result := testutil.RunTask(t, h)

	require.NoError(t, result.Err)
	same, ok := result.App.Root().SubTask("same")
	require.True(t, ok)
	assert.Equal(t, "second", same.Description())
	assert.Equal(t, "same", result.App.Root().SubTasks()[0].Name())
}
