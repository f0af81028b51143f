// Package ui provides the GTK4/libadwaita user interface for sober-profile-manager.
package ui

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// PreferencesWindow shows application preferences.
type PreferencesWindow struct {
	window *adw.PreferencesWindow

	// Settings widgets
	multiInstanceSwitch *adw.SwitchRow
	autoRefreshSwitch   *adw.SwitchRow
	confirmDeleteSwitch *adw.SwitchRow
	showPathsSwitch     *adw.SwitchRow
	notificationsSwitch *adw.SwitchRow
	baseDirRow          *adw.EntryRow
	updateRow           *adw.ActionRow

	// Callbacks
	onMultiInstanceChanged func(enabled bool)
	onAutoRefreshChanged   func(enabled bool)
	onConfirmDeleteChanged func(enabled bool)
	onShowPathsChanged     func(enabled bool)
	onNotificationsChanged func(enabled bool)
	onBaseDirChanged       func(path string)
	onCheckForUpdates      func()

	// Track previous state to detect changes
	prevMultiInstance bool
	prevAutoRefresh   bool
	prevConfirmDelete bool
	prevShowPaths     bool
	prevNotifications bool
	prevBaseDir       string
}

// NewPreferencesWindow creates a new preferences window.
func NewPreferencesWindow(parent *MainWindow) *PreferencesWindow {
	pw := &PreferencesWindow{}
	pw.setupWindow(parent)
	return pw
}

// setupWindow creates the preferences window UI.
func (pw *PreferencesWindow) setupWindow(parent *MainWindow) {
	pw.window = adw.NewPreferencesWindow()
	pw.window.SetTitle("Preferences")
	pw.window.SetModal(true)
	pw.window.SetDefaultSize(480, 520)

	// Set transient parent
	if parent != nil && parent.window != nil {
		pw.window.SetTransientFor(&parent.window.Window)
	}

	// Create general page
	generalPage := adw.NewPreferencesPage()
	generalPage.SetTitle("General")
	generalPage.SetIconName("preferences-system-symbolic")

	// Behavior group
	behaviorGroup := adw.NewPreferencesGroup()
	behaviorGroup.SetTitle("Behavior")

	pw.multiInstanceSwitch = adw.NewSwitchRow()
	pw.multiInstanceSwitch.SetTitle("Multiple Instances")
	pw.multiInstanceSwitch.SetSubtitle("Allow launching while another Sober instance is running")
	behaviorGroup.Add(pw.multiInstanceSwitch)

	pw.autoRefreshSwitch = adw.NewSwitchRow()
	pw.autoRefreshSwitch.SetTitle("Auto-Refresh")
	pw.autoRefreshSwitch.SetSubtitle("Periodically refresh profile status and disk usage")
	behaviorGroup.Add(pw.autoRefreshSwitch)

	pw.confirmDeleteSwitch = adw.NewSwitchRow()
	pw.confirmDeleteSwitch.SetTitle("Confirm Deletion")
	pw.confirmDeleteSwitch.SetSubtitle("Ask before deleting a profile and its home directory")
	behaviorGroup.Add(pw.confirmDeleteSwitch)

	pw.showPathsSwitch = adw.NewSwitchRow()
	pw.showPathsSwitch.SetTitle("Show Paths")
	pw.showPathsSwitch.SetSubtitle("Show home directory paths in the profile list")
	behaviorGroup.Add(pw.showPathsSwitch)

	pw.notificationsSwitch = adw.NewSwitchRow()
	pw.notificationsSwitch.SetTitle("Launch Notifications")
	pw.notificationsSwitch.SetSubtitle("Show notifications when profiles launch or stop")
	behaviorGroup.Add(pw.notificationsSwitch)

	generalPage.Add(behaviorGroup)

	// Storage group
	storageGroup := adw.NewPreferencesGroup()
	storageGroup.SetTitle("Storage")

	pw.baseDirRow = adw.NewEntryRow()
	pw.baseDirRow.SetTitle("Profiles Base Directory")
	storageGroup.Add(pw.baseDirRow)

	generalPage.Add(storageGroup)

	// Updates group
	updatesGroup := adw.NewPreferencesGroup()
	updatesGroup.SetTitle("Updates")

	pw.updateRow = adw.NewActionRow()
	pw.updateRow.SetTitle("Check for Updates")
	checkButton := gtk.NewButtonWithLabel("Check")
	checkButton.SetVAlign(gtk.AlignCenter)
	checkButton.ConnectClicked(func() {
		if pw.onCheckForUpdates != nil {
			pw.onCheckForUpdates()
		}
	})
	pw.updateRow.AddSuffix(checkButton)
	updatesGroup.Add(pw.updateRow)

	generalPage.Add(updatesGroup)
	pw.window.Add(generalPage)

	// Handle window close to trigger callbacks
	pw.window.ConnectCloseRequest(func() bool {
		pw.handleClose()
		return false // Allow close
	})
}

// handleClose is called when the preferences window is closed.
func (pw *PreferencesWindow) handleClose() {
	if pw.multiInstanceSwitch.Active() != pw.prevMultiInstance {
		if pw.onMultiInstanceChanged != nil {
			pw.onMultiInstanceChanged(pw.multiInstanceSwitch.Active())
		}
	}

	if pw.autoRefreshSwitch.Active() != pw.prevAutoRefresh {
		if pw.onAutoRefreshChanged != nil {
			pw.onAutoRefreshChanged(pw.autoRefreshSwitch.Active())
		}
	}

	if pw.confirmDeleteSwitch.Active() != pw.prevConfirmDelete {
		if pw.onConfirmDeleteChanged != nil {
			pw.onConfirmDeleteChanged(pw.confirmDeleteSwitch.Active())
		}
	}

	if pw.showPathsSwitch.Active() != pw.prevShowPaths {
		if pw.onShowPathsChanged != nil {
			pw.onShowPathsChanged(pw.showPathsSwitch.Active())
		}
	}

	if pw.notificationsSwitch.Active() != pw.prevNotifications {
		if pw.onNotificationsChanged != nil {
			pw.onNotificationsChanged(pw.notificationsSwitch.Active())
		}
	}

	if pw.baseDirRow.Text() != pw.prevBaseDir && pw.baseDirRow.Text() != "" {
		if pw.onBaseDirChanged != nil {
			pw.onBaseDirChanged(pw.baseDirRow.Text())
		}
	}
}

// Present shows the preferences window.
func (pw *PreferencesWindow) Present() {
	pw.window.Present()
}

// SetMultiInstance sets the multiple instances toggle state.
func (pw *PreferencesWindow) SetMultiInstance(enabled bool) {
	pw.multiInstanceSwitch.SetActive(enabled)
	pw.prevMultiInstance = enabled
}

// SetAutoRefresh sets the auto-refresh toggle state.
func (pw *PreferencesWindow) SetAutoRefresh(enabled bool) {
	pw.autoRefreshSwitch.SetActive(enabled)
	pw.prevAutoRefresh = enabled
}

// SetConfirmDelete sets the confirm deletion toggle state.
func (pw *PreferencesWindow) SetConfirmDelete(enabled bool) {
	pw.confirmDeleteSwitch.SetActive(enabled)
	pw.prevConfirmDelete = enabled
}

// SetShowPaths sets the show paths toggle state.
func (pw *PreferencesWindow) SetShowPaths(enabled bool) {
	pw.showPathsSwitch.SetActive(enabled)
	pw.prevShowPaths = enabled
}

// SetNotificationsEnabled sets the launch notifications toggle state.
func (pw *PreferencesWindow) SetNotificationsEnabled(enabled bool) {
	pw.notificationsSwitch.SetActive(enabled)
	pw.prevNotifications = enabled
}

// SetBaseDirectory sets the base directory entry.
func (pw *PreferencesWindow) SetBaseDirectory(path string) {
	pw.baseDirRow.SetText(path)
	pw.prevBaseDir = path
}

// SetUpdateStatus sets the subtitle on the update check row.
func (pw *PreferencesWindow) SetUpdateStatus(status string) {
	pw.updateRow.SetSubtitle(status)
}

// OnMultiInstanceChanged registers a callback for multiple instances setting changes.
func (pw *PreferencesWindow) OnMultiInstanceChanged(callback func(enabled bool)) {
	pw.onMultiInstanceChanged = callback
}

// OnAutoRefreshChanged registers a callback for auto-refresh setting changes.
func (pw *PreferencesWindow) OnAutoRefreshChanged(callback func(enabled bool)) {
	pw.onAutoRefreshChanged = callback
}

// OnConfirmDeleteChanged registers a callback for confirm deletion setting changes.
func (pw *PreferencesWindow) OnConfirmDeleteChanged(callback func(enabled bool)) {
	pw.onConfirmDeleteChanged = callback
}

// OnShowPathsChanged registers a callback for show paths setting changes.
func (pw *PreferencesWindow) OnShowPathsChanged(callback func(enabled bool)) {
	pw.onShowPathsChanged = callback
}

// OnNotificationsChanged registers a callback for notification setting changes.
func (pw *PreferencesWindow) OnNotificationsChanged(callback func(enabled bool)) {
	pw.onNotificationsChanged = callback
}

// OnBaseDirChanged registers a callback for base directory changes.
func (pw *PreferencesWindow) OnBaseDirChanged(callback func(path string)) {
	pw.onBaseDirChanged = callback
}

// OnCheckForUpdates registers a callback for the update check button.
func (pw *PreferencesWindow) OnCheckForUpdates(callback func()) {
	pw.onCheckForUpdates = callback
}
