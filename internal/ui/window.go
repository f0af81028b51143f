package ui

import (
	"context"
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/evanovar/sober-profile-manager/internal/config"
	"github.com/evanovar/sober-profile-manager/internal/profile"
	"github.com/evanovar/sober-profile-manager/internal/roblox"
	"github.com/evanovar/sober-profile-manager/internal/session"
	"github.com/evanovar/sober-profile-manager/internal/sober"
	"github.com/evanovar/sober-profile-manager/internal/stats"
)

const (
	windowDefaultWidth  = 900
	windowDefaultHeight = 600
)

// MainWindowDeps holds the dependencies required by MainWindow.
type MainWindowDeps struct {
	Profiles      *profile.Manager
	Sessions      *session.Manager
	Service       *sober.Service
	ConfigManager *config.Manager
	Tray          *TrayIcon
	Notifier      *Notifier
	// Ctx is the application-level context for launch operations.
	// When cancelled, ongoing launches should be abandoned.
	Ctx context.Context
}

// MainWindow represents the main application window with split view layout.
type MainWindow struct {
	window *adw.ApplicationWindow
	deps   *MainWindowDeps

	// UI components
	splitView     *adw.NavigationSplitView
	profileList   *ProfileList
	profileEditor *ProfileEditor
	statusDisplay *StatusDisplay
	launchButton  *gtk.Button
	activityLog   *ActivityLog

	// State
	selectedProfile *profile.Profile
}

// NewMainWindow creates a new main window instance.
func NewMainWindow(app *adw.Application, deps *MainWindowDeps) *MainWindow {
	w := &MainWindow{
		deps: deps,
	}

	w.setupWindow(app)
	w.setupLayout()
	w.setupCallbacks()
	w.loadProfiles()

	return w
}

// setupWindow creates and configures the application window.
func (w *MainWindow) setupWindow(app *adw.Application) {
	w.window = adw.NewApplicationWindow(&app.Application)
	w.window.SetTitle("Sober Profile Manager")
	w.window.SetDefaultSize(windowDefaultWidth, windowDefaultHeight)

	// Handle window close: hide instead of quit (app stays in tray)
	w.window.ConnectCloseRequest(func() bool {
		// Use IdleAdd to ensure hide happens on GTK main thread
		glib.IdleAdd(func() {
			w.window.SetVisible(false)
		})
		return true // Prevent default close behavior
	})
}

// setupLayout creates the split view layout with sidebar and content.
func (w *MainWindow) setupLayout() {
	// Create the split view
	w.splitView = adw.NewNavigationSplitView()

	// Create sidebar (profile list)
	w.profileList = NewProfileList()
	w.profileList.SetShowPaths(w.deps.ConfigManager.GetConfig().ShowPaths)
	sidebarPage := w.createSidebarPage()
	w.splitView.SetSidebar(sidebarPage)

	// Create content area (profile editor + status)
	w.profileEditor = NewProfileEditor()
	w.statusDisplay = NewStatusDisplay()
	contentPage := w.createContentPage()
	w.splitView.SetContent(contentPage)

	// Set up adaptive behavior
	w.splitView.SetMinSidebarWidth(250)
	w.splitView.SetMaxSidebarWidth(400)

	// Add breakpoint for mobile/narrow view
	breakpoint := adw.NewBreakpoint(adw.BreakpointConditionParse("max-width: 600sp"))
	breakpoint.AddSetter(w.splitView, "collapsed", true)
	w.window.AddBreakpoint(breakpoint)

	w.window.SetContent(w.splitView)
}

// createSidebarPage creates the navigation page for the sidebar.
func (w *MainWindow) createSidebarPage() *adw.NavigationPage {
	// Header bar with add button
	headerBar := adw.NewHeaderBar()

	addButton := gtk.NewButtonFromIconName("list-add-symbolic")
	addButton.SetTooltipText("Add Profile")
	addButton.ConnectClicked(w.onAddProfile)
	headerBar.PackStart(addButton)

	// Menu button
	menuButton := gtk.NewMenuButton()
	menuButton.SetIconName("open-menu-symbolic")
	menuButton.SetMenuModel(w.createMainMenu())
	headerBar.PackEnd(menuButton)

	// Toolbar view for sidebar
	toolbarView := adw.NewToolbarView()
	toolbarView.AddTopBar(headerBar)
	toolbarView.SetContent(w.profileList.Widget())

	// Create navigation page
	page := adw.NewNavigationPage(toolbarView, "Profiles")
	page.SetTag("sidebar")

	return page
}

// createContentPage creates the navigation page for the main content area.
func (w *MainWindow) createContentPage() *adw.NavigationPage {
	// Create activity log dialog
	w.activityLog = NewActivityLog()

	// Header bar
	headerBar := adw.NewHeaderBar()

	// Activity log button
	logButton := gtk.NewButtonFromIconName("utilities-terminal-symbolic")
	logButton.SetTooltipText("View Activity Log")
	logButton.ConnectClicked(func() {
		w.activityLog.Present(w.window)
	})
	headerBar.PackStart(logButton)

	// Launch Place button
	placeButton := gtk.NewButtonFromIconName("applications-games-symbolic")
	placeButton.SetTooltipText("Launch Place")
	placeButton.ConnectClicked(w.onLaunchPlaceClicked)
	headerBar.PackStart(placeButton)

	// Join User button
	joinButton := gtk.NewButtonFromIconName("system-users-symbolic")
	joinButton.SetTooltipText("Join User")
	joinButton.ConnectClicked(w.onJoinUserClicked)
	headerBar.PackStart(joinButton)

	// Launch/Stop button
	w.launchButton = gtk.NewButtonWithLabel("Launch")
	w.launchButton.AddCSSClass("suggested-action")
	w.launchButton.ConnectClicked(w.onLaunchClicked)
	headerBar.PackEnd(w.launchButton)

	// Main content box
	contentBox := gtk.NewBox(gtk.OrientationVertical, 0)

	// Add compact status display at top
	contentBox.Append(w.statusDisplay.Widget())

	// Separator
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	contentBox.Append(sep)

	// Add profile editor (scrollable, takes available space)
	scrolledWindow := gtk.NewScrolledWindow()
	scrolledWindow.SetVExpand(true)
	scrolledWindow.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scrolledWindow.SetChild(w.profileEditor.Widget())
	contentBox.Append(scrolledWindow)

	// Toolbar view
	toolbarView := adw.NewToolbarView()
	toolbarView.AddTopBar(headerBar)
	toolbarView.SetContent(contentBox)

	// Create navigation page
	page := adw.NewNavigationPage(toolbarView, "Profile")
	page.SetTag("content")

	return page
}

// createMainMenu creates the application menu model.
func (w *MainWindow) createMainMenu() *gio.Menu {
	menu := gio.NewMenu()

	// Add menu items
	menu.Append("Preferences", "app.preferences")
	menu.Append("About", "app.about")
	menu.Append("Quit", "app.quit")

	return menu
}

// setupCallbacks registers callbacks for launcher and UI events.
func (w *MainWindow) setupCallbacks() {
	// Profile selection callback
	w.profileList.OnProfileSelected(func(p *profile.Profile) {
		w.selectedProfile = p
		w.profileEditor.SetProfile(p)
		w.refreshSelectedStatus()
		// Update tray to show which profile would be launched
		if w.deps.Tray != nil && p != nil {
			w.deps.Tray.SetLastProfileName(p.Name)
		}
	})

	// Profile save callback - rename and note changes
	w.profileEditor.OnSave(func(p *profile.Profile, name, note string) {
		updated := p
		if name != p.Name {
			renamed, err := w.deps.Profiles.Rename(p.ID, name)
			if err != nil {
				w.showError("Error Renaming Profile", err.Error())
				w.profileEditor.SetProfile(p)
				return
			}
			updated = renamed
		}
		if note != updated.Note {
			noted, err := w.deps.Profiles.SetNote(updated.ID, note)
			if err != nil {
				w.showError("Error Saving Profile", err.Error())
				return
			}
			updated = noted
		}

		w.selectedProfile = updated
		w.profileEditor.SetProfile(updated)
		w.profileList.UpdateProfile(updated)
	})

	// Profile deletion callback
	w.profileList.OnProfileDeleted(func(p *profile.Profile) {
		w.onDeleteProfile(p)
	})

	// Instance state change callback
	w.deps.Service.Launcher().OnStateChange(func(profileID string, oldState, newState sober.InstanceState) {
		profileName := profileID
		if p := w.profileList.GetProfileByID(profileID); p != nil {
			profileName = p.Name
		}

		// Update UI on main thread
		glib.IdleAdd(func() {
			if w.selectedProfile != nil && w.selectedProfile.ID == profileID {
				w.statusDisplay.SetRunning(newState.IsRunning())
				w.profileEditor.SetRunning(newState.IsRunning())
				w.updateLaunchButton(newState)
			}
		})

		// Update tray
		if w.deps.Tray != nil {
			w.deps.Tray.SetRunningCount(len(w.deps.Service.Launcher().RunningProfiles()))
		}

		// Activity log and notifications
		switch newState {
		case sober.StateRunning:
			w.activityLog.Append("Launched " + profileName)
			if w.deps.Notifier != nil {
				w.deps.Notifier.NotifyLaunched(profileName)
			}
		case sober.StateStopped:
			if oldState == sober.StateRunning || oldState == sober.StateStopping {
				w.activityLog.Append("Stopped " + profileName)
				if w.deps.Notifier != nil {
					w.deps.Notifier.NotifyStopped(profileName)
				}
			}
		case sober.StateFailed:
			w.activityLog.Append("Launch failed for " + profileName)
			if w.deps.Notifier != nil {
				w.deps.Notifier.NotifyLaunchFailed(profileName)
			}
		}
	})

	// Launcher error callback
	w.deps.Service.Launcher().OnError(func(profileID string, err error) {
		glib.IdleAdd(func() {
			w.showError("Launch Error", err.Error())
		})
	})
}

// loadProfiles loads all profiles and populates the list.
func (w *MainWindow) loadProfiles() {
	result, err := w.deps.Profiles.List()
	if err != nil {
		w.showError("Error Loading Profiles", err.Error())
		return
	}

	// Log any partial load errors (corrupted or unreadable profile files)
	if len(result.Errors) > 0 {
		for _, listErr := range result.Errors {
			slog.Warn("Failed to load profile", "profile_id", listErr.ProfileID, "error", listErr.Err)
		}
	}

	w.profileList.SetProfiles(result.Profiles)

	if len(result.Profiles) == 0 {
		return
	}

	// Try to select the last used profile
	w.profileList.SelectProfile(w.startupProfileID(result.Profiles))
}

// startupProfileID returns the profile ID to select on startup.
// Uses LastProfileID from config if it still exists, otherwise the first profile.
func (w *MainWindow) startupProfileID(profiles []*profile.Profile) string {
	cfg := w.deps.ConfigManager.GetConfig()
	if cfg.LastProfileID != "" {
		for _, p := range profiles {
			if p.ID == cfg.LastProfileID {
				return cfg.LastProfileID
			}
		}
		slog.Debug("Last used profile not found, selecting first profile",
			"last_profile_id", cfg.LastProfileID)
	}

	return profiles[0].ID
}

// onAddProfile handles the add profile button click.
func (w *MainWindow) onAddProfile() {
	dialog := adw.NewAlertDialog("New Profile", "")
	dialog.SetBody("Enter a name for the new profile. A fresh home directory will be created for it.")

	nameEntry := adw.NewEntryRow()
	nameEntry.SetTitle("Name")
	group := adw.NewPreferencesGroup()
	group.Add(nameEntry)
	dialog.SetExtraChild(group)

	dialog.AddResponse("cancel", "Cancel")
	dialog.AddResponse("create", "Create")
	dialog.SetResponseAppearance("create", adw.ResponseSuggested)
	dialog.SetDefaultResponse("create")
	dialog.SetCloseResponse("cancel")

	dialog.ConnectResponse(func(response string) {
		if response != "create" {
			return
		}
		p, err := w.deps.Profiles.Create(nameEntry.Text())
		if err != nil {
			w.showError("Error Creating Profile", err.Error())
			return
		}
		w.activityLog.Append("Created profile " + p.Name)
		w.loadProfiles()
		w.profileList.SelectProfile(p.ID)
	})

	dialog.Present(w.window)
}

// onDeleteProfile handles profile deletion.
func (w *MainWindow) onDeleteProfile(p *profile.Profile) {
	if !w.deps.ConfigManager.GetConfig().ConfirmDelete {
		w.performDeleteProfile(p)
		return
	}

	// Show confirmation dialog
	dialog := adw.NewAlertDialog("Delete Profile?", "")
	dialog.SetBody("Are you sure you want to delete the profile \"" + p.Name + "\" and its home directory? This action cannot be undone.")
	dialog.AddResponse("cancel", "Cancel")
	dialog.AddResponse("delete", "Delete")
	dialog.SetResponseAppearance("delete", adw.ResponseDestructive)
	dialog.SetDefaultResponse("cancel")
	dialog.SetCloseResponse("cancel")

	dialog.ConnectResponse(func(response string) {
		if response == "delete" {
			w.performDeleteProfile(p)
		}
	})

	dialog.Present(w.window)
}

// performDeleteProfile actually deletes the profile after confirmation.
func (w *MainWindow) performDeleteProfile(p *profile.Profile) {
	// Drop the mirrored session cookie from the keyring
	if err := w.deps.Sessions.Forget(p.ID); err != nil {
		slog.Warn("Failed to delete session cookie from keyring", "error", err, "profile_id", p.ID)
	}

	// Delete profile and its home directory
	if err := w.deps.Profiles.Delete(p.ID); err != nil {
		w.showError("Error Deleting Profile", err.Error())
		return
	}

	w.activityLog.Append("Deleted profile " + p.Name)

	// Clear selection if this was the selected profile
	if w.selectedProfile != nil && w.selectedProfile.ID == p.ID {
		w.selectedProfile = nil
		w.profileEditor.SetProfile(nil)
	}

	// Refresh the list
	w.loadProfiles()
}

// onLaunchClicked handles the launch/stop button click.
func (w *MainWindow) onLaunchClicked() {
	if w.selectedProfile == nil {
		w.showError("No Profile Selected", "Please select a profile to launch.")
		return
	}

	p := w.selectedProfile
	state := w.deps.Service.Launcher().State(p.ID)

	if state.CanKill() {
		w.stopProfile(p)
	} else if state.CanLaunch() {
		w.launchProfile(p, "")
	}
}

// launchProfile starts Sober for the given profile. The launch touches the
// network and the flatpak CLI, so it runs off the main thread.
func (w *MainWindow) launchProfile(p *profile.Profile, uri string) {
	ctx := w.appContext()
	go func() {
		if err := w.deps.Service.LaunchProfile(ctx, p, uri); err != nil {
			glib.IdleAdd(func() {
				w.showError("Launch Error", err.Error())
			})
		}
	}()
}

// stopProfile terminates the Sober instance for the given profile.
func (w *MainWindow) stopProfile(p *profile.Profile) {
	ctx := w.appContext()
	go func() {
		if err := w.deps.Service.KillProfile(ctx, p); err != nil {
			glib.IdleAdd(func() {
				w.showError("Stop Error", err.Error())
			})
		}
	}()
}

// onLaunchPlaceClicked shows the launch place dialog for the selected profile.
func (w *MainWindow) onLaunchPlaceClicked() {
	if w.selectedProfile == nil {
		w.showError("No Profile Selected", "Please select a profile to launch.")
		return
	}

	p := w.selectedProfile
	cfg := w.deps.ConfigManager.GetConfig()

	dialog := NewLaunchDialog()
	dialog.SetFavorites(cfg.Favorites)
	dialog.SetLastUsed(cfg.LastPlaceID, cfg.LastPrivateServerCode)

	dialog.OnLaunch(func(placeText, linkCode string) {
		ctx := w.appContext()
		go func() {
			if err := w.deps.Service.LaunchPlace(ctx, p, placeText, "", linkCode); err != nil {
				glib.IdleAdd(func() {
					w.showError("Launch Error", err.Error())
				})
			}
		}()
	})

	dialog.OnAddFavorite(func(placeText, linkCode string) {
		w.addFavorite(dialog, placeText, linkCode)
	})

	dialog.OnRemoveFavorite(func(name string) {
		if err := w.deps.ConfigManager.RemoveFavorite(name); err != nil {
			w.showError("Error Removing Favorite", err.Error())
			return
		}
		dialog.SetFavorites(w.deps.ConfigManager.GetConfig().Favorites)
	})

	dialog.Present(w.window)
}

// addFavorite resolves the place name and saves a favorite.
// The name lookup hits the games API, so it runs off the main thread.
func (w *MainWindow) addFavorite(dialog *LaunchDialog, placeText, linkCode string) {
	ctx := w.appContext()
	go func() {
		placeID, err := roblox.ResolvePlaceID(placeText, "")
		if err != nil {
			glib.IdleAdd(func() {
				w.showError("Invalid Place", err.Error())
			})
			return
		}

		code, err := roblox.ExtractLinkCode(linkCode)
		if err != nil {
			glib.IdleAdd(func() {
				w.showError("Invalid Private Server", err.Error())
			})
			return
		}

		name := w.deps.Service.FavoriteName(ctx, placeID, code != "")
		fav := config.Favorite{
			Name:              name,
			PlaceID:           placeID,
			PrivateServerCode: code,
		}

		glib.IdleAdd(func() {
			if err := w.deps.ConfigManager.AddFavorite(fav); err != nil {
				w.showError("Error Adding Favorite", err.Error())
				return
			}
			dialog.SetFavorites(w.deps.ConfigManager.GetConfig().Favorites)
		})
	}()
}

// onJoinUserClicked shows the join user dialog for the selected profile.
func (w *MainWindow) onJoinUserClicked() {
	if w.selectedProfile == nil {
		w.showError("No Profile Selected", "Please select a profile to launch.")
		return
	}

	p := w.selectedProfile
	ShowJoinDialog(w.window, func(username string, cancelled bool) {
		if cancelled || username == "" {
			return
		}
		ctx := w.appContext()
		go func() {
			if err := w.deps.Service.JoinUser(ctx, p, username, ""); err != nil {
				glib.IdleAdd(func() {
					w.showError("Join Error", err.Error())
				})
			}
		}()
	})
}

// refreshSelectedStatus updates the status display, editor rows, and launch
// button for the currently selected profile. Running-state detection and the
// account lookup both leave the process, so they run off the main thread.
func (w *MainWindow) refreshSelectedStatus() {
	p := w.selectedProfile
	if p == nil {
		w.statusDisplay.SetRunning(false)
		w.statusDisplay.SetAccount("")
		return
	}

	state := w.deps.Service.Launcher().State(p.ID)
	w.statusDisplay.SetRunning(state.IsRunning())
	w.profileEditor.SetRunning(state.IsRunning())
	w.updateLaunchButton(state)

	ctx := w.appContext()
	go func() {
		running := w.deps.Service.IsProfileRunning(ctx, p)

		account := ""
		if identity, err := w.deps.Sessions.Identity(ctx, p.ID, p.Path); err == nil {
			account = identity.Username
		}

		glib.IdleAdd(func() {
			// The selection may have moved on while we were looking things up
			if w.selectedProfile == nil || w.selectedProfile.ID != p.ID {
				return
			}
			w.statusDisplay.SetRunning(running)
			w.statusDisplay.SetAccount(account)
			w.profileEditor.SetRunning(running)
			w.profileEditor.SetAccount(account)
		})
	}()
}

// ApplyUsage routes collector samples to the status display.
// Safe to call from the collector goroutine.
func (w *MainWindow) ApplyUsage(samples []stats.ProfileUsage) {
	glib.IdleAdd(func() {
		if w.selectedProfile == nil {
			return
		}
		for _, sample := range samples {
			if sample.ProfileID == w.selectedProfile.ID {
				w.statusDisplay.SetUsage(sample)
				return
			}
		}
	})
}

// updateLaunchButton updates the launch button based on instance state.
func (w *MainWindow) updateLaunchButton(state sober.InstanceState) {
	glib.IdleAdd(func() {
		if w.launchButton == nil {
			return
		}

		switch {
		case state.CanKill():
			w.launchButton.SetLabel("Stop")
			w.launchButton.RemoveCSSClass("suggested-action")
			w.launchButton.AddCSSClass("destructive-action")
			w.launchButton.SetSensitive(true)
		case state.CanLaunch():
			w.launchButton.SetLabel("Launch")
			w.launchButton.RemoveCSSClass("destructive-action")
			w.launchButton.AddCSSClass("suggested-action")
			w.launchButton.SetSensitive(true)
		default:
			// Transitioning - disable button
			w.launchButton.SetSensitive(false)
		}
	})
}

// appContext returns the application-level context, falling back to
// context.Background when none was provided.
func (w *MainWindow) appContext() context.Context {
	if w.deps.Ctx != nil {
		return w.deps.Ctx
	}
	return context.Background()
}

// showError displays an error dialog.
func (w *MainWindow) showError(title, message string) {
	dialog := adw.NewAlertDialog(title, message)
	dialog.AddResponse("ok", "OK")
	dialog.SetDefaultResponse("ok")
	dialog.Present(w.window)
}

// Present shows the main window.
func (w *MainWindow) Present() {
	w.window.Present()
}

// Window returns the underlying GTK window.
func (w *MainWindow) Window() *adw.ApplicationWindow {
	return w.window
}

// SetShowPaths propagates the show paths preference to the profile list.
func (w *MainWindow) SetShowPaths(show bool) {
	glib.IdleAdd(func() {
		w.profileList.SetShowPaths(show)
	})
}

// triggerLaunchLast launches the last used profile from external sources
// (e.g. the system tray).
func (w *MainWindow) triggerLaunchLast() {
	cfg := w.deps.ConfigManager.GetConfig()
	if cfg.LastProfileID == "" {
		return
	}

	p, err := w.deps.Profiles.Get(cfg.LastProfileID)
	if err != nil {
		slog.Warn("Last used profile not found", "profile_id", cfg.LastProfileID, "error", err)
		return
	}

	w.profileList.SelectProfile(p.ID)
	w.launchProfile(p, "")
}

// triggerStopAll terminates all Sober instances from external sources
// (e.g. the system tray).
func (w *MainWindow) triggerStopAll() {
	ctx := w.appContext()
	go func() {
		if err := w.deps.Service.KillAll(ctx); err != nil {
			glib.IdleAdd(func() {
				w.showError("Stop Error", err.Error())
			})
		}
	}()
}
