package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/taskerr"
	"github.com/specialistvlad/gridtask/internal/testutil"
	"github.com/specialistvlad/gridtask/modules/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func harness() testutil.Harness {
	return testutil.Harness{Modules: []registry.Module{&fs.Module{}}}
}

func TestCat(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	// --- Act ---
	result := testutil.RunTask(t, harness(), "fs", "cat", path)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, "line one\nline two\n", result.Output)
	testutil.AssertTaskRan(t, result, "cat")
}

func TestCat_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.txt")

	result := testutil.RunTask(t, harness(), "fs", "cat", path)

	require.Error(t, result.Err)
	assert.True(t, taskerr.HasCode(result.Err, taskerr.PathNotFound))
	assert.Contains(t, result.Err.Error(), "<file>")
}

func TestLs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))

	cases := []struct {
		name   string
		tokens []string
		want   string
	}{
		{"visible entries", []string{"fs", "ls", dir}, "a/\nb.txt\n"},
		{"all entries", []string{"fs", "ls", dir, "--all"}, ".hidden\na/\nb.txt\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunTask(t, harness(), tc.tokens...)

			// --- Assert ---
			require.NoError(t, result.Err)
			assert.Equal(t, tc.want, result.Output)
		})
	}
}

func TestLs_FileIsNotADirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	result := testutil.RunTask(t, harness(), "fs", "ls", path)

	require.Error(t, result.Err)
	assert.True(t, taskerr.HasCode(result.Err, taskerr.NotADirectory))
}

func TestFs_NamespaceShowsHelp(t *testing.T) {
	t.Parallel()

	result := testutil.RunTask(t, harness(), "fs")

	testutil.AssertHelpShown(t, result, "gridtask fs")
	assert.Contains(t, result.Output, "Sub commands")
	assert.Contains(t, result.Output, "cat")
	assert.Contains(t, result.Output, "ls")
}
