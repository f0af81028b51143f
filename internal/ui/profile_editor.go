package ui

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/evanovar/sober-profile-manager/internal/profile"
)

// ProfileEditor provides a form for editing a profile's name and note,
// alongside read-only rows showing where the profile lives and who is
// logged into it.
type ProfileEditor struct {
	widget *gtk.Box

	// Form fields
	nameRow *adw.EntryRow
	noteRow *adw.EntryRow

	// Read-only info rows
	pathRow    *adw.ActionRow
	accountRow *adw.ActionRow
	statusRow  *adw.ActionRow

	// Save button
	saveButton *gtk.Button

	// Current profile
	currentProfile *profile.Profile

	// Dirty state tracking
	isDirty    bool
	populating bool // True when populating fields to prevent false dirty state

	// Callbacks
	onSave func(p *profile.Profile, name, note string)
}

// NewProfileEditor creates a new profile editor widget.
func NewProfileEditor() *ProfileEditor {
	pe := &ProfileEditor{}
	pe.setupWidget()
	return pe
}

// setupWidget creates the profile editor UI.
func (pe *ProfileEditor) setupWidget() {
	pe.widget = gtk.NewBox(gtk.OrientationVertical, 0)

	// Create preferences page for organized groups
	prefsPage := adw.NewPreferencesPage()

	// Profile info group
	profileGroup := adw.NewPreferencesGroup()
	profileGroup.SetTitle("Profile")
	profileGroup.SetDescription("Profile name and note")

	pe.nameRow = adw.NewEntryRow()
	pe.nameRow.SetTitle("Name")
	pe.nameRow.ConnectChanged(pe.markDirty)
	profileGroup.Add(pe.nameRow)

	pe.noteRow = adw.NewEntryRow()
	pe.noteRow.SetTitle("Note")
	pe.noteRow.ConnectChanged(pe.markDirty)
	profileGroup.Add(pe.noteRow)

	prefsPage.Add(profileGroup)

	// Details group (read-only)
	detailsGroup := adw.NewPreferencesGroup()
	detailsGroup.SetTitle("Details")

	pe.pathRow = adw.NewActionRow()
	pe.pathRow.SetTitle("Home Directory")
	pe.pathRow.AddCSSClass("property")
	detailsGroup.Add(pe.pathRow)

	pe.accountRow = adw.NewActionRow()
	pe.accountRow.SetTitle("Roblox Account")
	pe.accountRow.SetSubtitle("Not logged in")
	pe.accountRow.AddCSSClass("property")
	detailsGroup.Add(pe.accountRow)

	pe.statusRow = adw.NewActionRow()
	pe.statusRow.SetTitle("Status")
	pe.statusRow.SetSubtitle("Stopped")
	pe.statusRow.AddCSSClass("property")
	detailsGroup.Add(pe.statusRow)

	prefsPage.Add(detailsGroup)

	// Add clamp for proper width
	clamp := adw.NewClamp()
	clamp.SetMaximumSize(600)
	clamp.SetChild(prefsPage)

	pe.widget.Append(clamp)

	// Save button at the bottom
	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 0)
	buttonBox.SetHAlign(gtk.AlignCenter)
	buttonBox.SetMarginTop(16)
	buttonBox.SetMarginBottom(16)

	pe.saveButton = gtk.NewButtonWithLabel("Save")
	pe.saveButton.AddCSSClass("suggested-action")
	pe.saveButton.AddCSSClass("pill")
	pe.saveButton.SetSensitive(false)
	pe.saveButton.ConnectClicked(pe.onSaveClicked)
	buttonBox.Append(pe.saveButton)

	pe.widget.Append(buttonBox)
}

// markDirty is called when any field value changes.
// It is skipped during profile population to avoid false dirty state.
func (pe *ProfileEditor) markDirty() {
	if pe.populating {
		return
	}
	if pe.currentProfile != nil && !pe.isDirty {
		pe.isDirty = true
		pe.saveButton.SetSensitive(true)
	}
}

// onSaveClicked is called when the Save button is clicked.
func (pe *ProfileEditor) onSaveClicked() {
	if pe.onSave != nil && pe.currentProfile != nil {
		pe.onSave(pe.currentProfile, pe.nameRow.Text(), pe.noteRow.Text())
		pe.isDirty = false
		pe.saveButton.SetSensitive(false)
	}
}

// SetProfile loads a profile into the editor.
func (pe *ProfileEditor) SetProfile(p *profile.Profile) {
	pe.currentProfile = p
	pe.isDirty = false
	pe.saveButton.SetSensitive(false)

	if p == nil {
		pe.clearFields()
		pe.setFieldsEnabled(false)
		return
	}

	// Set populating flag to prevent markDirty during field population
	pe.populating = true
	defer func() {
		pe.populating = false
		pe.isDirty = false
		pe.saveButton.SetSensitive(false)
	}()

	pe.setFieldsEnabled(true)

	pe.nameRow.SetText(p.Name)
	pe.noteRow.SetText(p.Note)
	pe.pathRow.SetSubtitle(p.Path)
}

// SetAccount updates the account row for the current profile.
func (pe *ProfileEditor) SetAccount(name string) {
	if name == "" {
		pe.accountRow.SetSubtitle("Not logged in")
	} else {
		pe.accountRow.SetSubtitle(name)
	}
}

// SetRunning updates the status row for the current profile.
func (pe *ProfileEditor) SetRunning(running bool) {
	if running {
		pe.statusRow.SetSubtitle("Running")
	} else {
		pe.statusRow.SetSubtitle("Stopped")
	}
}

// clearFields resets all fields to empty values.
func (pe *ProfileEditor) clearFields() {
	pe.nameRow.SetText("")
	pe.noteRow.SetText("")
	pe.pathRow.SetSubtitle("")
	pe.accountRow.SetSubtitle("Not logged in")
	pe.statusRow.SetSubtitle("Stopped")
}

// setFieldsEnabled enables or disables the editable fields.
func (pe *ProfileEditor) setFieldsEnabled(enabled bool) {
	pe.nameRow.SetSensitive(enabled)
	pe.noteRow.SetSensitive(enabled)
	pe.saveButton.SetSensitive(enabled && pe.isDirty)
}

// OnSave registers a callback for when the profile is saved.
// The callback receives the profile being edited plus the entered name and note.
func (pe *ProfileEditor) OnSave(callback func(p *profile.Profile, name, note string)) {
	pe.onSave = callback
}

// Widget returns the root GTK widget for the profile editor.
func (pe *ProfileEditor) Widget() gtk.Widgetter {
	return pe.widget
}
