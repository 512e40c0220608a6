package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SplitsProcessFlagsFromTaskTokens(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	args := []string{"--log-level", "DEBUG", "--log-format=json", "-m", dir, "--help-width", "72", "greet", "Ada", "--log-level", "x"}
	out := &bytes.Buffer{}

	// --- Act ---
	cfg, rest, err := Parse(args, out)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, dir, cfg.ManifestsPath)
	assert.Equal(t, 72, cfg.HelpWidth)
	assert.Equal(t, []string{"greet", "Ada", "--log-level", "x"}, rest)
	assert.Empty(t, out.String())
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, rest, err := Parse(nil, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.ManifestsPath)
	assert.Zero(t, cfg.HelpWidth)
	assert.Empty(t, rest)
}

func TestParse_HelpIsForwarded(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	_, rest, err := Parse([]string{"-h", "fs"}, out)

	require.NoError(t, err)
	assert.Equal(t, []string{"--help", "fs"}, rest)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "--manifests")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"--workers", "3"}, "unknown flag: --workers"},
		{"bad level", []string{"--log-level", "loud"}, "invalid log-level"},
		{"bad format", []string{"--log-format", "xml"}, "invalid log-format"},
		{"bad width", []string{"--help-width", "wide"}, "help-width"},
		{"missing manifests dir", []string{"--manifests", "/definitely/not/here"}, "manifests path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
