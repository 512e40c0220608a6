package integration_tests

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/gridtask/internal/fsarg"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/taskerr"
	"github.com/specialistvlad/gridtask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const typesManifest = `
task "types" {
  handler = "OnRunTypes"

  argument "count" {
    type     = number
    required = true
  }
  argument "out" {
    type           = file
    allow_new      = true
    allow_existing = false
  }
  option "enabled" {
    type = bool
  }
  option "level" {
    type   = enum
    values = ["low", "high"]
  }
  option "workdir" {
    type = directory
  }
}
`

type typesInput struct {
	Count   float64   `cty:"count"`
	Out     cty.Value `cty:"out"`
	Enabled *bool     `cty:"enabled"`
	Level   *string   `cty:"level"`
	Workdir cty.Value `cty:"workdir"`
}

type capture struct {
	mu     sync.Mutex
	inputs []typesInput
}

func (c *capture) module() *testutil.SimpleModule {
	return &testutil.SimpleModule{
		HandlerName: "OnRunTypes",
		Handler: registry.Typed(func(_ context.Context, in *typesInput) (any, error) {
			if f := fsarg.AsFile(in.Out); f != nil {
				if _, err := f.WriteString("written"); err != nil {
					return nil, err
				}
			}
			c.mu.Lock()
			defer c.mu.Unlock()
			c.inputs = append(c.inputs, *in)
			return nil, nil
		}),
	}
}

func run(t *testing.T, tokens ...string) (*testutil.HarnessResult, *capture) {
	t.Helper()
	c := &capture{}
	h := testutil.Harness{
		Files:   map[string]string{"types.hcl": typesManifest},
		Modules: []registry.Module{c.module()},
	}
	return testutil.RunTask(t, h, tokens...), c
}

func TestTypes_CoercesEveryKind(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	out := filepath.Join(dir, "result.txt")

	// --- Act ---
	result, c := run(t, "types", "2.5", out, "--enabled=1", "--level", "high", "--workdir", dir)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Len(t, c.inputs, 1)
	in := c.inputs[0]
	assert.Equal(t, 2.5, in.Count)
	require.NotNil(t, in.Enabled)
	assert.True(t, *in.Enabled)
	require.NotNil(t, in.Level)
	assert.Equal(t, "high", *in.Level)
	d := fsarg.AsDirectory(in.Workdir)
	require.NotNil(t, d)
	assert.True(t, d.Existed)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "written", string(data))
}

func TestTypes_OptionalInputsAreNull(t *testing.T) {
	t.Parallel()

	result, c := run(t, "types", "7")

	require.NoError(t, result.Err)
	require.Len(t, c.inputs, 1)
	in := c.inputs[0]
	assert.Equal(t, 7.0, in.Count)
	assert.True(t, in.Out.IsNull())
	assert.Nil(t, in.Enabled)
	assert.Nil(t, in.Level)
	assert.True(t, in.Workdir.IsNull())
}

func TestTypes_CoercionFailures(t *testing.T) {
	t.Parallel()

	existing := filepath.Join(t.TempDir(), "exists.txt")
	require.NoError(t, os.WriteFile(existing, nil, 0o644))

	cases := []struct {
		name   string
		tokens []string
		code   taskerr.Code
		field  string
	}{
		{"missing required number", []string{"types"}, taskerr.ExpectedNumber, "<count>"},
		{"non-numeric count", []string{"types", "many"}, taskerr.ExpectedNumber, "<count>"},
		{"existing file where only new allowed", []string{"types", "1", existing}, taskerr.PathExists, "<out>"},
		{"boolean out of range", []string{"types", "1", "--enabled=yes"}, taskerr.ExpectedBoolean, "--enabled"},
		{"enum outside values", []string{"types", "1", "--level", "mid"}, taskerr.InvalidEnumValue, "--level"},
		{"missing directory", []string{"types", "1", "--workdir", filepath.Join(t.TempDir(), "nope")}, taskerr.PathNotFound, "--workdir"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, c := run(t, tc.tokens...)

			require.Error(t, result.Err)
			assert.ErrorIs(t, result.Err, taskerr.ErrType)
			assert.True(t, taskerr.HasCode(result.Err, tc.code), "got %v", result.Err)
			assert.Contains(t, result.Err.Error(), tc.field)
			assert.Empty(t, c.inputs)
		})
	}
}
