package sober

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_ProcessSurvivesContextCancel(t *testing.T) {
	executor := NewRealExecutor()
	ctx, cancel := context.WithCancel(context.Background())

	process, err := executor.CreateProcess(ctx, t.TempDir(), "sleep", "0.2")
	require.NoError(t, err)
	require.NoError(t, process.Start())

	cancel()

	assert.NoError(t, process.Wait())
}

func TestRealExecutor_CancelledContextBlocksCreation(t *testing.T) {
	executor := NewRealExecutor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executor.CreateProcess(ctx, t.TempDir(), "true")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRealExecutor_TerminateBeforeStart(t *testing.T) {
	executor := NewRealExecutor()

	process, err := executor.CreateProcess(context.Background(), t.TempDir(), "true")
	require.NoError(t, err)

	assert.NoError(t, process.Terminate())
	assert.Equal(t, 0, process.Pid())
}
