package sober

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_IsProfileRunning_ViaFlatpakPS(t *testing.T) {
	runner := NewMockRunner()
	runner.SetOutput("flatpak", "2914868 1234 org.vinegarhq.Sober runtime /home/user/homes/main")
	detector := NewDetectorWithRunner(runner)

	assert.True(t, detector.IsProfileRunning(context.Background(), "/home/user/homes/main"))
	assert.False(t, detector.IsProfileRunning(context.Background(), "/home/user/homes/alt"))
}

func TestDetector_IsProfileRunning_PSFallback(t *testing.T) {
	runner := NewMockRunner()
	runner.SetOutput("flatpak", "")
	runner.SetOutput("ps", "user 1234 env HOME=/home/user/homes/main flatpak run org.vinegarhq.Sober")
	detector := NewDetectorWithRunner(runner)

	assert.True(t, detector.IsProfileRunning(context.Background(), "/home/user/homes/main"))
}

func TestDetector_IsProfileRunning_NothingRunning(t *testing.T) {
	runner := NewMockRunner()
	detector := NewDetectorWithRunner(runner)

	assert.False(t, detector.IsProfileRunning(context.Background(), "/home/user/homes/main"))
}

func TestDetector_IsProfileRunning_CommandsFail(t *testing.T) {
	runner := NewMockRunner()
	runner.SetOutputError(errors.New("exec: not found"))
	detector := NewDetectorWithRunner(runner)

	assert.False(t, detector.IsProfileRunning(context.Background(), "/home/user/homes/main"))
}

func TestDetector_AnyInstanceRunning(t *testing.T) {
	runner := NewMockRunner()
	runner.SetOutput("flatpak", "2914868 1234 org.vinegarhq.Sober runtime")
	detector := NewDetectorWithRunner(runner)

	assert.True(t, detector.AnyInstanceRunning(context.Background()))

	runner.SetOutput("flatpak", "1077155 5678 org.mozilla.firefox runtime")
	assert.False(t, detector.AnyInstanceRunning(context.Background()))
}

func TestDetector_KillAllInstances(t *testing.T) {
	runner := NewMockRunner()
	detector := NewDetectorWithRunner(runner)

	require.NoError(t, detector.KillAllInstances(context.Background()))

	calls := runner.RunCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"flatpak", "kill", "org.vinegarhq.Sober"}, calls[0])
}

func TestDetector_WaitForInstance(t *testing.T) {
	runner := NewMockRunner()
	runner.SetOutput("flatpak", "2914868 1234 org.vinegarhq.Sober runtime /home/user/homes/main")
	detector := NewDetectorWithRunner(runner)

	err := detector.WaitForInstance(context.Background(), "/home/user/homes/main", 3, time.Millisecond)
	assert.NoError(t, err)
}

func TestDetector_WaitForInstance_Exhausted(t *testing.T) {
	runner := NewMockRunner()
	detector := NewDetectorWithRunner(runner)

	err := detector.WaitForInstance(context.Background(), "/home/user/homes/main", 2, time.Millisecond)
	assert.ErrorIs(t, err, ErrInstanceNotFound)
}

func TestDetector_WaitForInstance_ContextCancelled(t *testing.T) {
	runner := NewMockRunner()
	detector := NewDetectorWithRunner(runner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := detector.WaitForInstance(ctx, "/home/user/homes/main", 5, 10*time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}
