package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

const (
	activityLogMaxLines = 500
)

// ActivityLog displays launch and kill events in a separate window.
type ActivityLog struct {
	dialog    *adw.Dialog
	logBuffer *gtk.TextBuffer
	logView   *gtk.TextView
	logLines  []string
}

// NewActivityLog creates a new activity log dialog.
func NewActivityLog() *ActivityLog {
	al := &ActivityLog{
		logLines: make([]string, 0, activityLogMaxLines),
	}
	al.setupDialog()
	return al
}

// setupDialog creates the dialog UI.
func (al *ActivityLog) setupDialog() {
	al.dialog = adw.NewDialog()
	al.dialog.SetTitle("Activity Log")
	al.dialog.SetContentWidth(700)
	al.dialog.SetContentHeight(400)

	// Create toolbar view
	toolbarView := adw.NewToolbarView()

	// Header bar with close button
	headerBar := adw.NewHeaderBar()

	// Clear button
	clearButton := gtk.NewButtonFromIconName("edit-clear-symbolic")
	clearButton.SetTooltipText("Clear Log")
	clearButton.ConnectClicked(func() {
		al.Clear()
	})
	headerBar.PackStart(clearButton)

	toolbarView.AddTopBar(headerBar)

	// Log view
	al.logBuffer = gtk.NewTextBuffer(nil)
	al.logView = gtk.NewTextViewWithBuffer(al.logBuffer)
	al.logView.SetEditable(false)
	al.logView.SetCursorVisible(false)
	al.logView.SetMonospace(true)
	al.logView.SetWrapMode(gtk.WrapWordChar)
	al.logView.SetTopMargin(8)
	al.logView.SetBottomMargin(8)
	al.logView.SetLeftMargin(12)
	al.logView.SetRightMargin(12)

	scrolledWindow := gtk.NewScrolledWindow()
	scrolledWindow.SetPolicy(gtk.PolicyAutomatic, gtk.PolicyAutomatic)
	scrolledWindow.SetChild(al.logView)

	toolbarView.SetContent(scrolledWindow)

	al.dialog.SetChild(toolbarView)
}

// Append adds a timestamped event line to the log.
func (al *ActivityLog) Append(event string) {
	line := fmt.Sprintf("%s  %s", time.Now().Format("15:04:05"), event)
	glib.IdleAdd(func() {
		al.logLines = append(al.logLines, line)

		// Trim if too many lines
		if len(al.logLines) > activityLogMaxLines {
			al.logLines = al.logLines[len(al.logLines)-activityLogMaxLines:]
		}

		// Update buffer
		al.logBuffer.SetText(strings.Join(al.logLines, "\n"))

		// Scroll to end
		end := al.logBuffer.EndIter()
		al.logView.ScrollToIter(end, 0, false, 0, 0)
	})
}

// Clear clears the log.
func (al *ActivityLog) Clear() {
	glib.IdleAdd(func() {
		al.logLines = al.logLines[:0]
		al.logBuffer.SetText("")
	})
}

// Present shows the activity log dialog.
func (al *ActivityLog) Present(parent gtk.Widgetter) {
	al.dialog.Present(parent)
}
