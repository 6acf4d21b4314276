package torisat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(writeOptionsFile(t, `{"verbosity": true, "debug": false}`))
	require.NoError(t, err)
	assert.True(t, opts.Verbosity)
	assert.False(t, opts.Debug)
}

func TestLoadOptionsRejectsUnknownKeys(t *testing.T) {
	_, err := LoadOptions(writeOptionsFile(t, `{"verbsity": true}`))
	require.Error(t, err)
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
