package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertTaskRan checks the log output within a HarnessResult to confirm that
// the named task's handler completed.
func AssertTaskRan(t *testing.T, result *HarnessResult, taskName string) {
	t.Helper()

	expectedLogSubstring := fmt.Sprintf("msg=\"Task finished.\" task=%s", taskName)

	require.True(t,
		strings.Contains(result.LogOutput, expectedLogSubstring),
		"expected log output for task '%s' was not found in logs", taskName,
	)
}

// AssertHelpShown checks that the invocation ended with a help screen titled
// with the given dispatch path.
func AssertHelpShown(t *testing.T, result *HarnessResult, title string) {
	t.Helper()

	require.NoError(t, result.Err)
	require.True(t,
		strings.HasPrefix(result.Output, "\n  "+title+"\n"),
		"expected help titled '%s', got:\n%s", title, result.Output,
	)
}
