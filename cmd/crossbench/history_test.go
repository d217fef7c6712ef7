package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossbench/internal/history"
	"crossbench/internal/score"
)

func TestHistoryCmd_Empty(t *testing.T) {
	setupRunTest(t, &mockRunner{}, &mockStore{}, nil)

	buf := new(bytes.Buffer)
	cmd := historyCmd
	cmd.SetOut(buf)

	require.NoError(t, runHistory(cmd, nil))
	assert.Contains(t, buf.String(), "No saved runs.")
}

func TestHistoryCmd_ComparesLatestTwo(t *testing.T) {
	store := &mockStore{saved: []history.Record{
		{
			Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			Scenarios: map[string][]score.Entry{"verify": {{Label: "go", Score: 0.8}}},
		},
		{
			Timestamp: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
			Scenarios: map[string][]score.Entry{"verify": {{Label: "go", Score: 0.88}}},
		},
	}}
	setupRunTest(t, &mockRunner{}, store, nil)

	buf := new(bytes.Buffer)
	cmd := historyCmd
	cmd.SetOut(buf)

	require.NoError(t, runHistory(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "2026-08-01 10:00:00")
	assert.Contains(t, out, "verify")
	assert.Contains(t, out, "+10.00%")
}
