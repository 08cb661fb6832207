package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSucceedsOnValidSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.bc")
	require.NoError(t, os.WriteFile(path, []byte("x := 1 + 2;\n"), 0600))

	code := execute(path, 1<<16, 1<<12, false)
	assert.Equal(t, exitOK, code)
}

func TestExecuteFailsOnMissingFile(t *testing.T) {
	code := execute(filepath.Join(t.TempDir(), "nope.bc"), 1<<16, 1<<12, false)
	assert.Equal(t, exitError, code)
}

func TestExecuteFailsOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bc")
	require.NoError(t, os.WriteFile(path, []byte("@@@ not valid\n"), 0600))

	code := execute(path, 1<<16, 1<<12, false)
	assert.Equal(t, exitError, code)
}
