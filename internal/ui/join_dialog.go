package ui

import (
	"regexp"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// usernamePattern matches valid Roblox usernames: 3-20 characters of
// letters, digits, and underscores.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// JoinDialogResult represents the result of the join dialog.
type JoinDialogResult struct {
	// Username is the Roblox username entered by the user.
	Username string
	// Cancelled indicates whether the dialog was cancelled.
	Cancelled bool
}

// JoinDialog prompts for a Roblox username to follow into a game.
type JoinDialog struct {
	dialog        *adw.AlertDialog
	usernameEntry *adw.EntryRow

	// Result callback
	onResult func(result JoinDialogResult)

	// Guard flag to prevent double callback invocation
	resultSent bool
}

// isValidUsername checks if the given string is a plausible Roblox username.
func isValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// NewJoinDialog creates a new join dialog.
func NewJoinDialog() *JoinDialog {
	jd := &JoinDialog{}
	jd.setupDialog()
	return jd
}

// setupDialog creates the join dialog UI.
func (jd *JoinDialog) setupDialog() {
	jd.dialog = adw.NewAlertDialog("Join User", "")
	jd.dialog.SetBody("Enter the username of the player to join.")

	// Create username entry
	jd.usernameEntry = adw.NewEntryRow()
	jd.usernameEntry.SetTitle("Username")

	// Wrap in preferences group for proper styling
	group := adw.NewPreferencesGroup()
	group.Add(jd.usernameEntry)

	jd.dialog.SetExtraChild(group)

	// Add buttons
	jd.dialog.AddResponse("cancel", "Cancel")
	jd.dialog.AddResponse("join", "Join")
	jd.dialog.SetResponseAppearance("join", adw.ResponseSuggested)
	jd.dialog.SetDefaultResponse("join")
	jd.dialog.SetCloseResponse("cancel")

	// Handle responses
	jd.dialog.ConnectResponse(func(response string) {
		// Guard against double invocation
		if jd.resultSent {
			return
		}

		result := JoinDialogResult{
			Cancelled: response != "join",
		}

		if !result.Cancelled {
			username := jd.usernameEntry.Text()
			if !isValidUsername(username) {
				// Show error styling and keep dialog open
				jd.usernameEntry.AddCSSClass("error")
				jd.dialog.SetBody("Invalid username. Use 3-20 letters, digits, or underscores.")
				return
			}
			result.Username = username
		}

		jd.resultSent = true
		if jd.onResult != nil {
			jd.onResult(result)
		}
	})

	// Enable submit on Enter key
	jd.usernameEntry.ConnectApply(func() {
		// Guard against double invocation
		if jd.resultSent {
			return
		}

		username := jd.usernameEntry.Text()
		if !isValidUsername(username) {
			jd.usernameEntry.AddCSSClass("error")
			jd.dialog.SetBody("Invalid username. Use 3-20 letters, digits, or underscores.")
			return
		}

		jd.resultSent = true
		result := JoinDialogResult{
			Cancelled: false,
			Username:  username,
		}
		if jd.onResult != nil {
			jd.onResult(result)
		}
		jd.dialog.Close()
	})

	// Clear error styling when user starts typing
	jd.usernameEntry.ConnectChanged(func() {
		jd.usernameEntry.RemoveCSSClass("error")
		jd.dialog.SetBody("Enter the username of the player to join.")
	})
}

// Present shows the join dialog.
func (jd *JoinDialog) Present(parent gtk.Widgetter) {
	// Reset state for reuse
	jd.usernameEntry.SetText("")
	jd.usernameEntry.RemoveCSSClass("error")
	jd.dialog.SetBody("Enter the username of the player to join.")
	jd.resultSent = false
	jd.dialog.Present(parent)
}

// OnResult registers a callback for when the dialog is closed.
func (jd *JoinDialog) OnResult(callback func(result JoinDialogResult)) {
	jd.onResult = callback
}

// ShowJoinDialog is a convenience function to show a join dialog and get the result.
// It returns the username and a boolean indicating whether the dialog was cancelled.
func ShowJoinDialog(parent gtk.Widgetter, callback func(username string, cancelled bool)) {
	dialog := NewJoinDialog()
	dialog.OnResult(func(result JoinDialogResult) {
		callback(result.Username, result.Cancelled)
	})
	dialog.Present(parent)
}
