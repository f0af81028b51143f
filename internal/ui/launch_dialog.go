package ui

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"

	"github.com/evanovar/sober-profile-manager/internal/config"
)

// LaunchDialog prompts for a place to launch: a place ID or game URL, an
// optional private server link code, and a list of saved favorites.
type LaunchDialog struct {
	dialog *adw.Dialog

	// Entry fields
	placeRow    *adw.EntryRow
	linkCodeRow *adw.EntryRow

	// Favorites
	favoritesGroup *adw.PreferencesGroup
	favoritesList  *gtk.ListBox
	favorites      []config.Favorite

	// Callbacks
	onLaunch         func(placeText, linkCode string)
	onAddFavorite    func(placeText, linkCode string)
	onRemoveFavorite func(name string)
}

// NewLaunchDialog creates a new launch dialog.
func NewLaunchDialog() *LaunchDialog {
	ld := &LaunchDialog{}
	ld.setupDialog()
	return ld
}

// setupDialog creates the dialog UI.
func (ld *LaunchDialog) setupDialog() {
	ld.dialog = adw.NewDialog()
	ld.dialog.SetTitle("Launch Place")
	ld.dialog.SetContentWidth(480)
	ld.dialog.SetContentHeight(520)

	toolbarView := adw.NewToolbarView()

	// Header bar with launch button
	headerBar := adw.NewHeaderBar()

	launchButton := gtk.NewButtonWithLabel("Launch")
	launchButton.AddCSSClass("suggested-action")
	launchButton.ConnectClicked(func() {
		if ld.onLaunch != nil {
			ld.onLaunch(ld.placeRow.Text(), ld.linkCodeRow.Text())
		}
		ld.dialog.Close()
	})
	headerBar.PackEnd(launchButton)

	toolbarView.AddTopBar(headerBar)

	prefsPage := adw.NewPreferencesPage()

	// Place group
	placeGroup := adw.NewPreferencesGroup()
	placeGroup.SetTitle("Place")
	placeGroup.SetDescription("Enter a place ID or paste a Roblox game URL")

	ld.placeRow = adw.NewEntryRow()
	ld.placeRow.SetTitle("Place ID or URL")
	placeGroup.Add(ld.placeRow)

	ld.linkCodeRow = adw.NewEntryRow()
	ld.linkCodeRow.SetTitle("Private Server Link Code (optional)")
	placeGroup.Add(ld.linkCodeRow)

	prefsPage.Add(placeGroup)

	// Favorites group
	ld.favoritesGroup = adw.NewPreferencesGroup()
	ld.favoritesGroup.SetTitle("Favorites")
	ld.favoritesGroup.SetDescription("Select a favorite to fill in the fields above")

	addButton := gtk.NewButtonFromIconName("list-add-symbolic")
	addButton.SetTooltipText("Add Current Place to Favorites")
	addButton.AddCSSClass("flat")
	addButton.ConnectClicked(func() {
		if ld.onAddFavorite != nil && ld.placeRow.Text() != "" {
			ld.onAddFavorite(ld.placeRow.Text(), ld.linkCodeRow.Text())
		}
	})
	ld.favoritesGroup.SetHeaderSuffix(addButton)

	ld.favoritesList = gtk.NewListBox()
	ld.favoritesList.SetSelectionMode(gtk.SelectionNone)
	ld.favoritesList.AddCSSClass("boxed-list")
	ld.favoritesGroup.Add(ld.favoritesList)

	prefsPage.Add(ld.favoritesGroup)

	scrolledWindow := gtk.NewScrolledWindow()
	scrolledWindow.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scrolledWindow.SetChild(prefsPage)

	toolbarView.SetContent(scrolledWindow)
	ld.dialog.SetChild(toolbarView)
}

// SetFavorites replaces the displayed favorites.
func (ld *LaunchDialog) SetFavorites(favorites []config.Favorite) {
	// Clear existing rows
	for {
		row := ld.favoritesList.RowAtIndex(0)
		if row == nil {
			break
		}
		ld.favoritesList.Remove(row)
	}

	ld.favorites = favorites
	ld.favoritesGroup.SetVisible(true)

	for _, fav := range favorites {
		ld.addFavoriteRow(fav)
	}
}

// addFavoriteRow adds a single favorite row to the list.
func (ld *LaunchDialog) addFavoriteRow(fav config.Favorite) {
	row := gtk.NewListBoxRow()
	row.SetActivatable(true)

	hbox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	hbox.SetMarginTop(6)
	hbox.SetMarginBottom(6)
	hbox.SetMarginStart(12)
	hbox.SetMarginEnd(6)

	nameLabel := gtk.NewLabel(fav.Name)
	nameLabel.SetXAlign(0)
	nameLabel.SetHExpand(true)
	nameLabel.SetEllipsize(pango.EllipsizeEnd)
	hbox.Append(nameLabel)

	useButton := gtk.NewButtonFromIconName("media-playback-start-symbolic")
	useButton.SetTooltipText("Use This Favorite")
	useButton.AddCSSClass("flat")
	captured := fav
	useButton.ConnectClicked(func() {
		ld.placeRow.SetText(captured.PlaceID)
		ld.linkCodeRow.SetText(captured.PrivateServerCode)
	})
	hbox.Append(useButton)

	removeButton := gtk.NewButtonFromIconName("edit-delete-symbolic")
	removeButton.SetTooltipText("Remove Favorite")
	removeButton.AddCSSClass("flat")
	removeButton.ConnectClicked(func() {
		if ld.onRemoveFavorite != nil {
			ld.onRemoveFavorite(captured.Name)
		}
	})
	hbox.Append(removeButton)

	row.SetChild(hbox)
	ld.favoritesList.Append(row)
}

// SetLastUsed pre-fills the entries with the most recently launched place.
func (ld *LaunchDialog) SetLastUsed(placeID, linkCode string) {
	ld.placeRow.SetText(placeID)
	ld.linkCodeRow.SetText(linkCode)
}

// OnLaunch registers a callback for when the launch button is clicked.
func (ld *LaunchDialog) OnLaunch(callback func(placeText, linkCode string)) {
	ld.onLaunch = callback
}

// OnAddFavorite registers a callback for when the add favorite button is clicked.
func (ld *LaunchDialog) OnAddFavorite(callback func(placeText, linkCode string)) {
	ld.onAddFavorite = callback
}

// OnRemoveFavorite registers a callback for when a favorite is removed.
func (ld *LaunchDialog) OnRemoveFavorite(callback func(name string)) {
	ld.onRemoveFavorite = callback
}

// Present shows the launch dialog.
func (ld *LaunchDialog) Present(parent gtk.Widgetter) {
	ld.dialog.Present(parent)
}
