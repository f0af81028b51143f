package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/evanovar/sober-profile-manager/internal/stats"
)

// Subtle dimming without being invisible in dark themes.
const dimmedOpacity = 0.7

// StatusDisplay shows the selected profile's status in a compact form.
type StatusDisplay struct {
	widget *gtk.Box

	// Status components
	stateLabel   *gtk.Label
	accountLabel *gtk.Label
	usageLabel   *gtk.Label
	uptimeLabel  *gtk.Label

	// State
	running bool
}

// NewStatusDisplay creates a new status display widget.
func NewStatusDisplay() *StatusDisplay {
	sd := &StatusDisplay{}
	sd.setupWidget()
	return sd
}

// setupWidget creates the compact status display UI.
// Layout: ● Running  │  account  │  125 MiB  │  1h 23m
func (sd *StatusDisplay) setupWidget() {
	sd.widget = gtk.NewBox(gtk.OrientationHorizontal, 12)
	sd.widget.SetHAlign(gtk.AlignCenter)
	sd.widget.SetMarginTop(8)
	sd.widget.SetMarginBottom(8)

	// Profile icon
	icon := gtk.NewImageFromIconName("user-home-symbolic")
	icon.SetPixelSize(20)
	sd.widget.Append(icon)

	// State label
	sd.stateLabel = gtk.NewLabel("Stopped")
	sd.stateLabel.AddCSSClass("heading")
	sd.widget.Append(sd.stateLabel)

	// Separator
	sep := gtk.NewSeparator(gtk.OrientationVertical)
	sep.SetMarginStart(4)
	sep.SetMarginEnd(4)
	sd.widget.Append(sep)

	// Account label
	sd.accountLabel = gtk.NewLabel("Not logged in")
	sd.accountLabel.SetOpacity(dimmedOpacity)
	sd.widget.Append(sd.accountLabel)

	// Disk usage label (hidden until the first poll)
	sd.usageLabel = gtk.NewLabel("")
	sd.usageLabel.SetOpacity(dimmedOpacity)
	sd.usageLabel.SetVisible(false)
	sd.widget.Append(sd.usageLabel)

	// Uptime label (visible while running)
	sd.uptimeLabel = gtk.NewLabel("")
	sd.uptimeLabel.SetOpacity(dimmedOpacity)
	sd.uptimeLabel.SetVisible(false)
	sd.widget.Append(sd.uptimeLabel)

	sd.updateStateDisplay()
}

// SetRunning updates the displayed running state.
func (sd *StatusDisplay) SetRunning(running bool) {
	glib.IdleAdd(func() {
		sd.running = running
		sd.updateStateDisplay()
	})
}

// updateStateDisplay updates the UI based on the current state.
func (sd *StatusDisplay) updateStateDisplay() {
	sd.stateLabel.RemoveCSSClass("success")

	if sd.running {
		sd.stateLabel.SetLabel("Running")
		sd.stateLabel.AddCSSClass("success")
	} else {
		sd.stateLabel.SetLabel("Stopped")
		sd.uptimeLabel.SetVisible(false)
	}
}

// SetAccount sets the logged-in account name to display.
func (sd *StatusDisplay) SetAccount(name string) {
	glib.IdleAdd(func() {
		if name == "" {
			sd.accountLabel.SetLabel("Not logged in")
		} else {
			sd.accountLabel.SetLabel(name)
		}
	})
}

// SetUsage updates the disk usage and uptime from a collector sample.
func (sd *StatusDisplay) SetUsage(u stats.ProfileUsage) {
	glib.IdleAdd(func() {
		sd.usageLabel.SetText(fmt.Sprintf("• %s", stats.FormatBytes(u.DiskBytes)))
		sd.usageLabel.SetVisible(true)

		if u.Running && u.Uptime > 0 {
			sd.uptimeLabel.SetText(fmt.Sprintf("• %s", stats.FormatDuration(u.Uptime)))
			sd.uptimeLabel.SetVisible(true)
		} else {
			sd.uptimeLabel.SetVisible(false)
		}
	})
}

// Widget returns the root GTK widget for the status display.
func (sd *StatusDisplay) Widget() gtk.Widgetter {
	return sd.widget
}
