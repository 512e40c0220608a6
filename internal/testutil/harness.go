package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/gridtask/internal/app"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of one task invocation.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// Harness describes an application under test.
type Harness struct {
	// Files are manifest files keyed by path relative to the manifests
	// directory. No manifests directory is configured when empty.
	Files map[string]string
	// Modules are registered instead of the built-in set when not empty.
	Modules []registry.Module
}

// RunTask builds a fresh application for h and runs one command line
// through it using a default background context.
func RunTask(t *testing.T, h Harness, tokens ...string) *HarnessResult {
	t.Helper()
	return RunTaskWithContext(context.Background(), t, h, tokens...)
}

// RunTaskWithContext is RunTask with a caller-provided context.
func RunTaskWithContext(ctx context.Context, t *testing.T, h Harness, tokens ...string) *HarnessResult {
	t.Helper()

	cfg := app.Config{
		LogLevel:  "debug",
		LogFormat: "text",
		HelpWidth: 80,
	}
	if len(h.Files) > 0 {
		cfg.ManifestsPath = WriteFiles(t, h.Files)
	}
	valid, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &app.SafeBuffer{}
	logs := &app.SafeBuffer{}

	var testApp *app.App
	var startErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				startErr = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		testApp, startErr = app.NewApp(out, logs, valid, h.Modules...)
	}()

	var runErr error
	if startErr != nil {
		runErr = startErr
	} else {
		runErr = testApp.Run(ctx, tokens)
	}

	if os.Getenv("GRIDTASK_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
	}
}

// WriteFiles writes files below a fresh temporary directory and returns it.
// Contents are unindented, so tests can keep HCL snippets indented.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(Unindent(content)), 0o644))
	}
	return dir
}
