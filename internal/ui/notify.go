// Package ui provides the GTK4/libadwaita user interface for sober-profile-manager.
package ui

import (
	"log/slog"
	"sync/atomic"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// NotificationType identifies the type of notification to display.
type NotificationType int

const (
	// NotifyLaunched indicates a profile was launched.
	NotifyLaunched NotificationType = iota
	// NotifyStopped indicates a profile's Sober instance exited.
	NotifyStopped
	// NotifyLaunchFailed indicates a launch failure.
	NotifyLaunchFailed
)

// Notifier manages desktop notifications for launch events.
// All methods are safe for concurrent access.
type Notifier struct {
	app     *adw.Application
	enabled atomic.Bool
}

// NewNotifier creates a new notification manager.
// The app parameter should be a GTK Application that supports sending notifications.
func NewNotifier(app *adw.Application) *Notifier {
	n := &Notifier{
		app: app,
	}
	n.enabled.Store(true)
	return n
}

// SetEnabled enables or disables notifications.
// This method is safe for concurrent access.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// IsEnabled returns whether notifications are enabled.
// This method is safe for concurrent access.
func (n *Notifier) IsEnabled() bool {
	return n.enabled.Load()
}

// Notify sends a desktop notification.
// This method is safe to call from any goroutine - GTK operations are
// dispatched to the main thread via glib.IdleAdd().
func (n *Notifier) Notify(notifyType NotificationType, profileName string) {
	if !n.enabled.Load() || n.app == nil {
		return
	}

	var title, body, icon string

	switch notifyType {
	case NotifyLaunched:
		title = "Profile Launched"
		body = "Sober is running as " + profileName
		icon = "media-playback-start-symbolic"
	case NotifyStopped:
		title = "Profile Stopped"
		body = "Sober exited for " + profileName
		icon = "media-playback-stop-symbolic"
	case NotifyLaunchFailed:
		title = "Launch Failed"
		body = "Failed to launch Sober for " + profileName
		icon = "dialog-error-symbolic"
	default:
		return
	}

	// Dispatch GTK operations to main thread - GTK is not thread-safe
	glib.IdleAdd(func() {
		notification := gio.NewNotification(title)
		notification.SetBody(body)
		notification.SetIcon(gio.NewThemedIcon(icon))

		// Use a single ID so successive notifications replace each other
		notificationID := "profile-status"
		n.app.SendNotification(notificationID, notification)

		slog.Debug("Notification sent", "title", title, "body", body)
	})
}

// NotifyLaunched sends a launched notification.
func (n *Notifier) NotifyLaunched(profileName string) {
	n.Notify(NotifyLaunched, profileName)
}

// NotifyStopped sends a stopped notification.
func (n *Notifier) NotifyStopped(profileName string) {
	n.Notify(NotifyStopped, profileName)
}

// NotifyLaunchFailed sends a launch failed notification.
func (n *Notifier) NotifyLaunchFailed(profileName string) {
	n.Notify(NotifyLaunchFailed, profileName)
}
