package taskerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_CategoryAndCode(t *testing.T) {
	t.Parallel()

	err := Typef(ExpectedNumber, "requires a number").WithField("--count")
	wrapped := fmt.Errorf("while running: %w", err)

	require.ErrorIs(t, wrapped, ErrType)
	require.NotErrorIs(t, wrapped, ErrArgument)
	assert.True(t, HasCode(wrapped, ExpectedNumber))
	assert.False(t, HasCode(wrapped, ExpectedString))
	assert.Equal(t, "type error: --count: requires a number", err.Error())
}

func TestError_WithFieldDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := Configf(EmptyEnum, "no allowed values")
	named := base.WithField("--mode")

	assert.Empty(t, base.Field)
	assert.Equal(t, "--mode", named.Field)
	assert.Equal(t, "config error: no allowed values", base.Error())
}

func TestHasCode_PlainError(t *testing.T) {
	t.Parallel()

	assert.False(t, HasCode(errors.New("boom"), NoHandlerBound))
	assert.False(t, HasCode(nil, NoHandlerBound))
}
