package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/fsarg"
	"github.com/specialistvlad/gridtask/internal/task"
	"github.com/specialistvlad/gridtask/internal/taskerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fsManifest = `
task "fs" {
  description = "File helpers"

  task "copy" {
    handler = "OnRunCopy"

    argument "src" {
      type        = file
      required    = true
      description = "Source file"
    }
    argument "dst" {
      type           = file
      allow_new      = true
      allow_existing = false
    }
    option "mode" {
      type   = enum
      values = ["fast", "safe"]
    }
    option "verbose" {
      type = bool
    }
  }
}
`

func noop(context.Context, task.Params) (any, error) { return nil, nil }

func lookupAll(string) (task.Handler, bool) { return noop, true }

func TestParseSource_NestedTasks(t *testing.T) {
	t.Parallel()

	// --- Act ---
	defs, err := ParseSource(context.Background(), []byte(fsManifest), "fs.hcl")

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, defs, 1)
	fs := defs[0]
	assert.Equal(t, "fs", fs.Name)
	assert.Equal(t, "File helpers", fs.Description)
	assert.Empty(t, fs.Handler)
	require.Len(t, fs.SubTasks, 1)

	cp := fs.SubTasks[0]
	assert.Equal(t, "OnRunCopy", cp.Handler)
	require.Len(t, cp.Arguments, 2)
	assert.Equal(t, "src", cp.Arguments[0].Name)
	assert.Equal(t, argtype.File, cp.Arguments[0].Kind)
	assert.True(t, cp.Arguments[0].Required)
	require.NotNil(t, cp.Arguments[1].AllowNew)
	assert.True(t, *cp.Arguments[1].AllowNew)
	require.Len(t, cp.Options, 2)
	assert.Equal(t, []string{"fast", "safe"}, cp.Options[0].Values)
	assert.Equal(t, argtype.Boolean, cp.Options[1].Kind)

	var paths []string
	fs.Walk(func(path []string, _ *TaskDef) { paths = append(paths, filepath.Join(path...)) })
	assert.Equal(t, []string{"fs", filepath.Join("fs", "copy")}, paths)
}

func TestBuild_ProducesTaskTree(t *testing.T) {
	t.Parallel()

	defs, err := ParseSource(context.Background(), []byte(fsManifest), "fs.hcl")
	require.NoError(t, err)

	root, err := Build(defs[0], lookupAll)
	require.NoError(t, err)

	assert.False(t, root.HasHandler())
	cp, ok := root.SubTask("copy")
	require.True(t, ok)
	assert.True(t, cp.HasHandler())

	args := cp.Arguments()
	require.Len(t, args, 2)
	assert.Equal(t, fsarg.Mode{AllowNew: true, AllowExisting: false}, args[1].Mode())
	assert.Equal(t, fsarg.DefaultMode(), args[0].Mode())

	mode, ok := cp.Option("mode")
	require.True(t, ok)
	assert.Equal(t, []string{"fast", "safe"}, mode.Values())
}

func TestBuild_UnknownHandler(t *testing.T) {
	t.Parallel()

	defs, err := ParseSource(context.Background(), []byte(`task "x" { handler = "Missing" }`), "x.hcl")
	require.NoError(t, err)

	_, err = Build(defs[0], func(string) (task.Handler, bool) { return nil, false })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler 'Missing' is not registered")
}

func TestBuild_ArgumentOrderingViolation(t *testing.T) {
	t.Parallel()

	src := `
task "bad" {
  handler = "OnRunBad"
  argument "a" { type = string }
  argument "b" {
    type     = string
    required = true
  }
}
`
	defs, err := ParseSource(context.Background(), []byte(src), "bad.hcl")
	require.NoError(t, err)

	_, err = Build(defs[0], lookupAll)
	require.ErrorIs(t, err, taskerr.ErrConfig)
	assert.True(t, taskerr.HasCode(err, taskerr.ArgumentOrderingViolation))
}

func TestParseSource_Diagnostics(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		src  string
		want string
	}{
		"missing type":       {"task \"t\" {\n argument \"a\" {}\n}", "Missing 'type' attribute"},
		"unknown type":       {"task \"t\" {\n argument \"a\" { type = list }\n}", "Unsupported type"},
		"complex type":       {"task \"t\" {\n argument \"a\" { type = \"string\" }\n}", "Invalid type specification"},
		"enum without value": {"task \"t\" {\n option \"m\" { type = enum }\n}", "Enum without values"},
		"values on string":   {"task \"t\" {\n option \"m\" {\n  type = string\n  values = [\"a\"]\n }\n}", "Unexpected 'values' attribute"},
		"mode on number":     {"task \"t\" {\n option \"m\" {\n  type = number\n  allow_new = true\n }\n}", "Unexpected path mode"},
		"duplicate option":   {"task \"t\" {\n option \"m\" { type = bool }\n option \"m\" { type = bool }\n}", "Duplicate option definition"},
		"duplicate task":     {"task \"t\" {}\ntask \"t\" {}", "Duplicate task definition"},
		"unknown attribute":  {`task "t" { colour = "red" }`, "Unsupported argument"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSource(context.Background(), []byte(tc.src), "t.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fs.hcl"), []byte(fsManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "hello.hcl"), []byte(`task "hello" { handler = "OnRunHello" }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	// --- Act ---
	defs, err := LoadDir(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	names := []string{}
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.ElementsMatch(t, []string{"fs", "hello"}, names)
}

func TestLoadDir_ReportsParseErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.hcl"), []byte(`task "x" {`), 0o644))

	_, err := LoadDir(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.hcl")
}

func TestLoadDir_Empty(t *testing.T) {
	t.Parallel()

	defs, err := LoadDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, defs)
}
