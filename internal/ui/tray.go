// Package ui provides the GTK4/libadwaita user interface for sober-profile-manager.
package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/systray"
)

var (
	// ErrTrayAlreadyRunning is returned when attempting to modify callbacks after Run() has been called.
	ErrTrayAlreadyRunning = errors.New("cannot modify callbacks after TrayIcon.Run() is called")
	// ErrTrayRunTwice is returned when Run() is called more than once.
	ErrTrayRunTwice = errors.New("TrayIcon.Run() called twice")
	// ErrTrayMissingCallbacks is returned when Run() is called without all required callbacks set.
	ErrTrayMissingCallbacks = errors.New("all callbacks (OnLaunchLast, OnStopAll, OnShow, OnQuit) must be set before calling Run()")
)

// TrayIcon manages the system tray icon and menu.
type TrayIcon struct {
	mu sync.RWMutex

	// State
	runningCount    int
	lastProfileName string

	// Menu items
	menuStatus     *systray.MenuItem
	menuLaunchLast *systray.MenuItem
	menuStopAll    *systray.MenuItem
	menuShow       *systray.MenuItem
	menuQuit       *systray.MenuItem

	// Callbacks - must be set before Run() is called
	onLaunchLast func()
	onStopAll    func()
	onShow       func()
	onQuit       func()

	// Icons (set once in NewTrayIcon, read-only after initialization)
	iconIdle   []byte
	iconActive []byte

	// Done channel to signal goroutine termination
	done chan struct{}

	// Lifecycle flags
	running   bool
	closeOnce sync.Once
}

// NewTrayIcon creates a new system tray icon manager.
func NewTrayIcon() *TrayIcon {
	return &TrayIcon{
		iconIdle:   iconIdlePNG,
		iconActive: iconActivePNG,
		done:       make(chan struct{}),
	}
}

// OnLaunchLast registers a callback for when Launch Last Profile is clicked in tray.
// Must be called before Run(). Returns ErrTrayAlreadyRunning if called after Run().
func (t *TrayIcon) OnLaunchLast(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrTrayAlreadyRunning
	}
	t.onLaunchLast = callback
	return nil
}

// OnStopAll registers a callback for when Stop All is clicked in tray.
// Must be called before Run(). Returns ErrTrayAlreadyRunning if called after Run().
func (t *TrayIcon) OnStopAll(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrTrayAlreadyRunning
	}
	t.onStopAll = callback
	return nil
}

// OnShow registers a callback for when Show Window is clicked in tray.
// Must be called before Run(). Returns ErrTrayAlreadyRunning if called after Run().
func (t *TrayIcon) OnShow(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrTrayAlreadyRunning
	}
	t.onShow = callback
	return nil
}

// OnQuit registers a callback for when Quit is clicked in tray.
// Must be called before Run(). Returns ErrTrayAlreadyRunning if called after Run().
func (t *TrayIcon) OnQuit(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrTrayAlreadyRunning
	}
	t.onQuit = callback
	return nil
}

// SetRunningCount updates the tray icon and menu based on how many
// profiles currently have a Sober instance.
func (t *TrayIcon) SetRunningCount(count int) {
	t.mu.Lock()
	t.runningCount = count
	t.mu.Unlock()
	t.updateIcon()
	t.updateMenu()
}

// SetLastProfileName sets the profile name shown on the launch menu item.
func (t *TrayIcon) SetLastProfileName(name string) {
	t.mu.Lock()
	t.lastProfileName = name
	t.mu.Unlock()
	t.updateMenu()
}

// Run starts the system tray icon. This should be called in a goroutine
// as it blocks until the tray is closed. All callbacks (OnLaunchLast, OnStopAll,
// OnShow, OnQuit) must be registered before calling Run().
// Returns ErrTrayMissingCallbacks if any callback is not set.
// Returns ErrTrayRunTwice if called more than once.
func (t *TrayIcon) Run() error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrTrayRunTwice
	}

	// Validate all required callbacks are set
	if t.onLaunchLast == nil || t.onStopAll == nil || t.onShow == nil || t.onQuit == nil {
		t.mu.Unlock()
		return ErrTrayMissingCallbacks
	}

	t.running = true
	t.mu.Unlock()

	systray.Run(t.onReady, t.onExit)
	return nil
}

// Quit closes the system tray icon and terminates the click handler goroutine.
// Safe to call multiple times.
func (t *TrayIcon) Quit() {
	t.closeOnce.Do(func() {
		close(t.done)
		systray.Quit()
	})
}

// onReady is called when the tray is ready to be configured.
func (t *TrayIcon) onReady() {
	// Set initial icon and tooltip
	systray.SetIcon(t.iconIdle)
	systray.SetTitle("Sober Profiles")
	systray.SetTooltip("Sober Profile Manager - Idle")

	// Create menu items
	t.menuStatus = systray.AddMenuItem("No instances running", "Current instance status")
	t.menuStatus.Disable()

	systray.AddSeparator()

	t.menuLaunchLast = systray.AddMenuItem("Launch Last Profile", "Launch the most recently used profile")
	t.menuLaunchLast.Disable()
	t.menuStopAll = systray.AddMenuItem("Stop All", "Terminate all Sober instances")
	t.menuStopAll.Disable()

	systray.AddSeparator()

	t.menuShow = systray.AddMenuItem("Show Window", "Show the main window")
	t.menuQuit = systray.AddMenuItem("Quit", "Quit the application")

	// Handle menu clicks in a goroutine
	go t.handleMenuClicks()

	// Apply any state set before the tray became ready
	t.updateIcon()
	t.updateMenu()

	slog.Info("System tray initialized")
}

// onExit is called when the tray is being closed.
func (t *TrayIcon) onExit() {
	slog.Info("System tray closed")
}

// handleMenuClicks processes menu item clicks.
func (t *TrayIcon) handleMenuClicks() {
	for {
		select {
		case <-t.done:
			return
		case _, ok := <-t.menuLaunchLast.ClickedCh:
			if !ok {
				return
			}
			if t.onLaunchLast != nil {
				t.onLaunchLast()
			}
		case _, ok := <-t.menuStopAll.ClickedCh:
			if !ok {
				return
			}
			if t.onStopAll != nil {
				t.onStopAll()
			}
		case _, ok := <-t.menuShow.ClickedCh:
			if !ok {
				return
			}
			if t.onShow != nil {
				t.onShow()
			}
		case _, ok := <-t.menuQuit.ClickedCh:
			if !ok {
				return
			}
			if t.onQuit != nil {
				t.onQuit()
			}
		}
	}
}

// updateIcon updates the tray icon based on current state.
func (t *TrayIcon) updateIcon() {
	if t.menuStatus == nil {
		return // Not initialized yet
	}

	t.mu.RLock()
	count := t.runningCount
	t.mu.RUnlock()

	if count > 0 {
		systray.SetIcon(t.iconActive)
		systray.SetTooltip(fmt.Sprintf("Sober Profile Manager - %d running", count))
	} else {
		systray.SetIcon(t.iconIdle)
		systray.SetTooltip("Sober Profile Manager - Idle")
	}
}

// updateMenu updates the menu items based on current state.
func (t *TrayIcon) updateMenu() {
	if t.menuStatus == nil {
		return // Not initialized yet
	}

	t.mu.RLock()
	count := t.runningCount
	lastName := t.lastProfileName
	t.mu.RUnlock()

	switch count {
	case 0:
		t.menuStatus.SetTitle("No instances running")
	case 1:
		t.menuStatus.SetTitle("1 instance running")
	default:
		t.menuStatus.SetTitle(fmt.Sprintf("%d instances running", count))
	}

	if lastName != "" {
		t.menuLaunchLast.SetTitle(fmt.Sprintf("Launch %s", lastName))
		t.menuLaunchLast.Enable()
	} else {
		t.menuLaunchLast.SetTitle("Launch Last Profile")
		t.menuLaunchLast.Disable()
	}

	if count > 0 {
		t.menuStopAll.Enable()
	} else {
		t.menuStopAll.Disable()
	}
}
