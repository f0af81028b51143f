package ui

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTrayIcon_InitializesCorrectly(t *testing.T) {
	tray := NewTrayIcon()

	assert.NotNil(t, tray, "tray should not be nil")
	assert.Equal(t, 0, tray.runningCount, "no instances should be running initially")
	assert.NotNil(t, tray.done, "done channel should be initialized")
	assert.NotNil(t, tray.iconIdle, "idle icon should be set")
	assert.NotNil(t, tray.iconActive, "active icon should be set")
	assert.False(t, tray.running, "should not be running initially")
}

func TestTrayIcon_CallbackRegistration(t *testing.T) {
	tray := NewTrayIcon()

	// Should return no error when setting callbacks before Run()
	launchCalled := false
	stopAllCalled := false
	showCalled := false
	quitCalled := false

	err := tray.OnLaunchLast(func() { launchCalled = true })
	assert.NoError(t, err, "OnLaunchLast should succeed before Run()")

	err = tray.OnStopAll(func() { stopAllCalled = true })
	assert.NoError(t, err, "OnStopAll should succeed before Run()")

	err = tray.OnShow(func() { showCalled = true })
	assert.NoError(t, err, "OnShow should succeed before Run()")

	err = tray.OnQuit(func() { quitCalled = true })
	assert.NoError(t, err, "OnQuit should succeed before Run()")

	// Verify callbacks are set
	assert.NotNil(t, tray.onLaunchLast)
	assert.NotNil(t, tray.onStopAll)
	assert.NotNil(t, tray.onShow)
	assert.NotNil(t, tray.onQuit)

	// Test that callbacks work
	tray.onLaunchLast()
	tray.onStopAll()
	tray.onShow()
	tray.onQuit()

	assert.True(t, launchCalled)
	assert.True(t, stopAllCalled)
	assert.True(t, showCalled)
	assert.True(t, quitCalled)
}

func TestTrayIcon_CallbackErrorsAfterRunning(t *testing.T) {
	tray := NewTrayIcon()

	// Simulate running state without actually calling Run()
	// (Run() would block waiting for systray which requires a display)
	tray.mu.Lock()
	tray.running = true
	tray.mu.Unlock()

	err := tray.OnLaunchLast(func() {})
	assert.ErrorIs(t, err, ErrTrayAlreadyRunning, "OnLaunchLast should return ErrTrayAlreadyRunning after running")

	err = tray.OnStopAll(func() {})
	assert.ErrorIs(t, err, ErrTrayAlreadyRunning, "OnStopAll should return ErrTrayAlreadyRunning after running")

	err = tray.OnShow(func() {})
	assert.ErrorIs(t, err, ErrTrayAlreadyRunning, "OnShow should return ErrTrayAlreadyRunning after running")

	err = tray.OnQuit(func() {})
	assert.ErrorIs(t, err, ErrTrayAlreadyRunning, "OnQuit should return ErrTrayAlreadyRunning after running")
}

func TestTrayIcon_SetRunningCount(t *testing.T) {
	tray := NewTrayIcon()

	for _, count := range []int{1, 3, 0, 2} {
		tray.SetRunningCount(count)

		tray.mu.RLock()
		assert.Equal(t, count, tray.runningCount, "running count should be updated to %d", count)
		tray.mu.RUnlock()
	}
}

func TestTrayIcon_SetLastProfileName(t *testing.T) {
	tray := NewTrayIcon()

	testName := "Alt Account"
	tray.SetLastProfileName(testName)

	tray.mu.RLock()
	assert.Equal(t, testName, tray.lastProfileName, "last profile name should be updated")
	tray.mu.RUnlock()
}

func TestTrayIcon_QuitSafeToCallMultipleTimes(t *testing.T) {
	tray := NewTrayIcon()

	// First call should not panic
	assert.NotPanics(t, func() {
		tray.Quit()
	}, "first Quit() should not panic")

	// Second call should also not panic (closeOnce protects the channel)
	assert.NotPanics(t, func() {
		tray.Quit()
	}, "second Quit() should not panic")

	// Third call for good measure
	assert.NotPanics(t, func() {
		tray.Quit()
	}, "third Quit() should not panic")
}

func TestTrayIcon_DoneChannelClosed(t *testing.T) {
	tray := NewTrayIcon()

	// Verify done channel is open initially
	select {
	case <-tray.done:
		t.Fatal("done channel should not be closed initially")
	default:
		// Expected - channel is open
	}

	// Close via Quit
	tray.Quit()

	// Verify done channel is now closed
	select {
	case <-tray.done:
		// Expected - channel is closed
	default:
		t.Fatal("done channel should be closed after Quit()")
	}
}

func TestTrayIcon_RunErrorsIfCalledTwice(t *testing.T) {
	tray := NewTrayIcon()

	// Simulate running state without actually calling Run()
	tray.mu.Lock()
	tray.running = true
	tray.mu.Unlock()

	// Calling Run() when already running should return ErrTrayRunTwice
	err := tray.Run()
	assert.ErrorIs(t, err, ErrTrayRunTwice, "Run() should return ErrTrayRunTwice if called twice")
}

func TestTrayIcon_RunErrorsIfMissingCallbacks(t *testing.T) {
	tests := []struct {
		name        string
		setLaunch   bool
		setStopAll  bool
		setShow     bool
		setQuit     bool
		shouldError bool
	}{
		{"no callbacks", false, false, false, false, true},
		{"missing OnLaunchLast", false, true, true, true, true},
		{"missing OnStopAll", true, false, true, true, true},
		{"missing OnShow", true, true, false, true, true},
		{"missing OnQuit", true, true, true, false, true},
		{"all callbacks set", true, true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tray := NewTrayIcon()
			noop := func() {}

			if tt.setLaunch {
				_ = tray.OnLaunchLast(noop)
			}
			if tt.setStopAll {
				_ = tray.OnStopAll(noop)
			}
			if tt.setShow {
				_ = tray.OnShow(noop)
			}
			if tt.setQuit {
				_ = tray.OnQuit(noop)
			}

			// We can't actually call Run() without blocking, so we test the validation
			// by checking if an error would be returned
			tray.mu.Lock()
			hasAllCallbacks := tray.onLaunchLast != nil && tray.onStopAll != nil &&
				tray.onShow != nil && tray.onQuit != nil
			tray.mu.Unlock()

			if tt.shouldError {
				assert.False(t, hasAllCallbacks, "should be missing at least one callback")
			} else {
				assert.True(t, hasAllCallbacks, "all callbacks should be set")
			}
		})
	}
}

func TestTrayIcon_StateAccessConcurrency(t *testing.T) {
	tray := NewTrayIcon()

	iterations := 1000
	if testing.Short() {
		iterations = 100
	}

	var wg sync.WaitGroup

	// Running count writer goroutines
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				tray.SetRunningCount(1)
				tray.SetRunningCount(2)
				tray.SetRunningCount(0)
			}
		}()
	}

	// Profile name writer goroutines
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				tray.SetLastProfileName("Profile A")
				tray.SetLastProfileName("Profile B")
			}
		}()
	}

	// Wait for all goroutines - the race detector will catch any data races
	wg.Wait()

	// Verify final state is readable without panic
	tray.mu.RLock()
	_ = tray.runningCount
	_ = tray.lastProfileName
	tray.mu.RUnlock()
}

func TestTrayIcon_CallbacksNilByDefault(t *testing.T) {
	tray := NewTrayIcon()

	// Verify callbacks are nil by default until explicitly set
	assert.Nil(t, tray.onLaunchLast, "onLaunchLast should be nil by default")
	assert.Nil(t, tray.onStopAll, "onStopAll should be nil by default")
	assert.Nil(t, tray.onShow, "onShow should be nil by default")
	assert.Nil(t, tray.onQuit, "onQuit should be nil by default")
}
