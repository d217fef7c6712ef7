package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossbench/internal/score"
)

func TestEmit(t *testing.T) {
	dir := t.TempDir()
	e := &Emitter{Dir: filepath.Join(dir, "results"), Title: "verify"}

	entries := []score.Entry{
		{Label: "go", Score: 0.91, Display: "go (12.50 msec)"},
		{Label: "rust", Score: 0.84, Display: "rust (14.10 msec)"},
		{Label: "c", Score: 0.35, Display: "c (80.00 msec)"},
	}
	require.NoError(t, e.Emit(entries, "verify-valid-draft"))

	path := filepath.Join(dir, "results", "verify-valid-draft.svg")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	svg := string(data)
	assert.Contains(t, svg, "go (12.50 msec)")
	assert.Contains(t, svg, "c (80.00 msec)")
}

func TestEmit_NoEntries(t *testing.T) {
	e := &Emitter{Dir: t.TempDir()}
	assert.Error(t, e.Emit(nil, "empty"))
}
