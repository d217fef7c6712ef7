package workdir

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterRestores(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinked temp dirs make path comparison unreliable on windows")
	}
	orig, err := os.Getwd()
	require.NoError(t, err)

	dir := t.TempDir()
	restore, err := Enter(dir)
	require.NoError(t, err)

	got, err := os.Getwd()
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, got)

	restore()
	got, err = os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestEnter_MissingDir(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)

	_, err = Enter(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)

	// A failed switch must not move the process anywhere.
	got, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}
