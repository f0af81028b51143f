package stats

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTargets(t *testing.T) (TargetFunc, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.bin"), make([]byte, 200), 0600))

	return func() []Target {
		return []Target{{ProfileID: "p1", Path: dir}}
	}, dir
}

func noUptime(string) (time.Time, bool) {
	return time.Time{}, false
}

func TestCollector_Collect(t *testing.T) {
	targets, dir := testTargets(t)
	c := NewCollector(time.Minute, targets, noUptime)

	samples := c.Collect()

	require.Len(t, samples, 1)
	assert.Equal(t, "p1", samples[0].ProfileID)
	assert.Equal(t, dir, samples[0].Path)
	assert.Equal(t, uint64(200), samples[0].DiskBytes)
	assert.False(t, samples[0].Running)
	assert.Zero(t, samples[0].Uptime)
}

func TestCollector_Collect_WithUptime(t *testing.T) {
	targets, _ := testTargets(t)
	startedAt := time.Now().Add(-time.Minute)
	c := NewCollector(time.Minute, targets, func(id string) (time.Time, bool) {
		return startedAt, id == "p1"
	})

	samples := c.Collect()

	require.Len(t, samples, 1)
	assert.True(t, samples[0].Running)
	assert.GreaterOrEqual(t, samples[0].Uptime, time.Minute)
}

func TestCollector_StartStop(t *testing.T) {
	targets, _ := testTargets(t)
	c := NewCollector(10*time.Millisecond, targets, noUptime)

	var mu sync.Mutex
	var batches int
	c.OnUsage(func(_ []ProfileUsage) {
		mu.Lock()
		defer mu.Unlock()
		batches++
	})

	c.Start()
	assert.True(t, c.IsRunning())

	// Wait for at least the initial emission
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := batches
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	c.Stop()
	assert.False(t, c.IsRunning())

	mu.Lock()
	assert.Greater(t, batches, 0)
	mu.Unlock()
}

func TestCollector_StartTwice(t *testing.T) {
	targets, _ := testTargets(t)
	c := NewCollector(time.Minute, targets, noUptime)

	c.Start()
	c.Start()
	assert.True(t, c.IsRunning())
	c.Stop()
}

func TestCollector_StopWithoutStart(t *testing.T) {
	targets, _ := testTargets(t)
	c := NewCollector(time.Minute, targets, noUptime)

	c.Stop()
	assert.False(t, c.IsRunning())
}
