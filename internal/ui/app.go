// Package ui provides the GTK4/libadwaita user interface for sober-profile-manager.
package ui

import (
	"context"
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/evanovar/sober-profile-manager/internal/config"
	"github.com/evanovar/sober-profile-manager/internal/keyring"
	"github.com/evanovar/sober-profile-manager/internal/profile"
	"github.com/evanovar/sober-profile-manager/internal/roblox"
	"github.com/evanovar/sober-profile-manager/internal/session"
	"github.com/evanovar/sober-profile-manager/internal/sober"
	"github.com/evanovar/sober-profile-manager/internal/stats"
	"github.com/evanovar/sober-profile-manager/internal/update"
)

const (
	// AppID is the application identifier following reverse DNS notation.
	AppID = "com.evanovar.SoberProfileManager"
)

// Version is the application version, set at build time via ldflags.
var Version = "dev"

// App represents the main application controller.
// It manages the GTK application lifecycle and wires together all components.
type App struct {
	app    *adw.Application
	window *MainWindow
	tray   *TrayIcon

	// Services
	configManager  *config.Manager
	profileManager *profile.Manager
	sessionManager *session.Manager
	service        *sober.Service
	collector      *stats.Collector
	updateChecker  *update.Checker

	// Notification manager
	notifier *Notifier

	// Application-level context for launch operations
	ctx       context.Context
	ctxCancel context.CancelFunc
}

// NewApp creates a new application instance.
func NewApp() (*App, error) {
	// Initialize config manager
	configManager, err := config.NewManager()
	if err != nil {
		return nil, err
	}

	// Initialize profile store and manager
	profileStore, err := profile.NewStore(configManager.GetProfilesPath())
	if err != nil {
		return nil, err
	}
	profileManager := profile.NewManager(profileStore, configManager)

	// Initialize Roblox web client and session manager
	client := roblox.NewClient()
	sessionManager := session.NewManager(keyring.NewSystemKeyring(), client)

	// Initialize launcher, detector, and the launch service
	launcher := sober.NewLauncher()
	detector := sober.NewDetector()
	service := sober.NewService(launcher, detector, client, sessionManager, configManager)

	// Usage collector samples disk usage and uptime for all profiles
	collector := stats.NewCollector(stats.DefaultPollInterval, func() []stats.Target {
		result, err := profileManager.List()
		if err != nil {
			slog.Warn("Failed to list profiles for usage collection", "error", err)
			return nil
		}
		targets := make([]stats.Target, 0, len(result.Profiles))
		for _, p := range result.Profiles {
			targets = append(targets, stats.Target{ProfileID: p.ID, Path: p.Path})
		}
		return targets
	}, launcher.StartedAt)

	// Create application-level context for launch operations
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		configManager:  configManager,
		profileManager: profileManager,
		sessionManager: sessionManager,
		service:        service,
		collector:      collector,
		updateChecker:  update.NewChecker(),
		ctx:            ctx,
		ctxCancel:      cancel,
	}

	return app, nil
}

// Run starts the GTK application and blocks until it exits.
// Returns the exit code from the GTK application.
func (a *App) Run(args []string) int {
	a.app = adw.NewApplication(AppID, gio.ApplicationFlagsNone)

	a.app.ConnectActivate(func() {
		a.onActivate()
	})

	// Handle shutdown
	a.app.ConnectShutdown(func() {
		a.onShutdown()
	})

	return a.app.Run(args)
}

// onActivate is called when the application is activated.
// The window is always created so launcher callbacks are registered.
func (a *App) onActivate() {
	// Register application actions
	a.registerActions()

	// Initialize notifier and sync enabled state from saved config
	if a.notifier == nil {
		a.notifier = NewNotifier(a.app)
		cfg := a.configManager.GetConfig()
		a.notifier.SetEnabled(cfg.LaunchNotifications)
	}

	// Initialize system tray (before window so we can pass it)
	if a.tray == nil {
		a.initTray()
	}

	// Always create window to ensure launcher callbacks are registered
	// (callbacks handle tray updates, notifications, state display)
	a.ensureWindow()

	// Start the usage collector when auto-refresh is enabled
	if a.configManager.GetConfig().AutoRefresh {
		a.collector.Start()
	}

	// Keep app running even when window is hidden (tray mode)
	a.app.Hold()

	a.window.Present()
}

// registerActions registers the application-level actions for menu items.
func (a *App) registerActions() {
	// About action
	aboutAction := gio.NewSimpleAction("about", nil)
	aboutAction.ConnectActivate(func(param *glib.Variant) {
		a.ShowAboutDialog()
	})
	a.app.AddAction(aboutAction)

	// Preferences action
	prefsAction := gio.NewSimpleAction("preferences", nil)
	prefsAction.ConnectActivate(func(param *glib.Variant) {
		a.ShowPreferencesDialog()
	})
	a.app.AddAction(prefsAction)

	// Quit action
	quitAction := gio.NewSimpleAction("quit", nil)
	quitAction.ConnectActivate(func(param *glib.Variant) {
		a.Quit()
	})
	a.app.AddAction(quitAction)

	// Register keyboard shortcuts
	a.registerAccelerators()
}

// registerAccelerators sets up keyboard shortcuts for common actions.
func (a *App) registerAccelerators() {
	// Quit: Ctrl+Q
	a.app.SetAccelsForAction("app.quit", []string{"<Control>q"})

	// Preferences: Ctrl+comma (standard GNOME shortcut)
	a.app.SetAccelsForAction("app.preferences", []string{"<Control>comma"})
}

// GetService returns the launch service instance.
// This is useful for testing and external state monitoring.
func (a *App) GetService() *sober.Service {
	return a.service
}

// GetProfileManager returns the profile manager instance.
func (a *App) GetProfileManager() *profile.Manager {
	return a.profileManager
}

// GetConfigManager returns the config manager instance.
func (a *App) GetConfigManager() *config.Manager {
	return a.configManager
}

// Quit terminates the application gracefully.
func (a *App) Quit() {
	if a.app != nil {
		a.app.Quit()
	}
}

// ShowAboutDialog displays the application's about dialog.
func (a *App) ShowAboutDialog() {
	a.ensureWindow()
	if a.window == nil {
		slog.Error("Window unexpectedly nil after creation", "action", "about_dialog")
		return
	}

	about := adw.NewAboutDialog()
	about.SetApplicationName("Sober Profile Manager")
	about.SetApplicationIcon("user-home-symbolic")
	about.SetDeveloperName("evanovar")
	about.SetVersion(Version)
	about.SetWebsite("https://github.com/evanovar/sober-profile-manager")
	about.SetIssueURL("https://github.com/evanovar/sober-profile-manager/issues")
	about.SetLicenseType(gtk.LicenseGPL30)
	about.SetComments("Manage isolated profiles for the Sober Roblox runner")

	about.Present(a.window.window)
}

// ShowPreferencesDialog displays the application preferences window.
func (a *App) ShowPreferencesDialog() {
	a.ensureWindow()
	if a.window == nil {
		slog.Error("Window unexpectedly nil after creation", "action", "preferences_dialog")
		return
	}

	prefs := NewPreferencesWindow(a.window)

	// Load current values from config
	cfg := a.configManager.GetConfig()
	prefs.SetMultiInstance(cfg.MultiInstance)
	prefs.SetAutoRefresh(cfg.AutoRefresh)
	prefs.SetConfirmDelete(cfg.ConfirmDelete)
	prefs.SetShowPaths(cfg.ShowPaths)
	prefs.SetNotificationsEnabled(cfg.LaunchNotifications)
	prefs.SetBaseDirectory(cfg.BaseDirectory)

	// Also sync notifier state with config value
	if a.notifier != nil {
		a.notifier.SetEnabled(cfg.LaunchNotifications)
	}

	prefs.OnMultiInstanceChanged(func(enabled bool) {
		a.updateConfigField(func(cfg *config.Config) {
			cfg.MultiInstance = enabled
		})
		slog.Info("Multiple instances setting changed", "enabled", enabled)
	})

	prefs.OnAutoRefreshChanged(func(enabled bool) {
		a.updateConfigField(func(cfg *config.Config) {
			cfg.AutoRefresh = enabled
		})
		if enabled {
			a.collector.Start()
		} else {
			a.collector.Stop()
		}
		slog.Info("Auto-refresh setting changed", "enabled", enabled)
	})

	prefs.OnConfirmDeleteChanged(func(enabled bool) {
		a.updateConfigField(func(cfg *config.Config) {
			cfg.ConfirmDelete = enabled
		})
	})

	prefs.OnShowPathsChanged(func(enabled bool) {
		a.updateConfigField(func(cfg *config.Config) {
			cfg.ShowPaths = enabled
		})
		a.window.SetShowPaths(enabled)
	})

	prefs.OnNotificationsChanged(func(enabled bool) {
		if a.notifier != nil {
			a.notifier.SetEnabled(enabled)
		}
		a.updateConfigField(func(cfg *config.Config) {
			cfg.LaunchNotifications = enabled
		})
		slog.Info("Notifications setting changed", "enabled", enabled)
	})

	prefs.OnBaseDirChanged(func(path string) {
		a.updateConfigField(func(cfg *config.Config) {
			cfg.BaseDirectory = path
		})
		slog.Info("Base directory changed", "path", path)
	})

	prefs.OnCheckForUpdates(func() {
		prefs.SetUpdateStatus("Checking...")
		go func() {
			result, err := a.updateChecker.Check(a.ctx, Version)
			glib.IdleAdd(func() {
				switch {
				case err != nil:
					prefs.SetUpdateStatus("Check failed: " + err.Error())
				case result.UpdateAvailable:
					prefs.SetUpdateStatus("Version " + result.LatestVersion + " is available")
				default:
					prefs.SetUpdateStatus("You are up to date")
				}
			})
		}()
	})

	prefs.Present()
}

// updateConfigField atomically updates a single config field and persists the change.
// The mutator function receives the current config and should modify the desired field.
// This uses UpdateField to avoid read-modify-write race conditions.
func (a *App) updateConfigField(mutator func(cfg *config.Config)) {
	if err := a.configManager.UpdateField(mutator); err != nil {
		slog.Error("Failed to persist config change", "error", err)
	}
}

// initTray initializes the system tray icon and its callbacks.
func (a *App) initTray() {
	a.tray = NewTrayIcon()

	// Set up tray callbacks (errors logged but not propagated - these are programmer errors
	// that should never occur since callbacks are always set before Run)
	if err := a.tray.OnLaunchLast(func() {
		glib.IdleAdd(func() {
			a.ensureWindow()
			if a.window == nil {
				slog.Error("Window unexpectedly nil after creation", "action", "tray_launch_last")
				return
			}
			a.window.triggerLaunchLast()
		})
	}); err != nil {
		slog.Error("Failed to register tray OnLaunchLast callback", "error", err)
	}

	if err := a.tray.OnStopAll(func() {
		glib.IdleAdd(func() {
			if a.window != nil {
				a.window.triggerStopAll()
			} else {
				// Direct stop via service when window doesn't exist
				if err := a.service.KillAll(a.ctx); err != nil {
					slog.Error("Tray stop all error", "error", err)
				}
			}
		})
	}); err != nil {
		slog.Error("Failed to register tray OnStopAll callback", "error", err)
	}

	if err := a.tray.OnShow(func() {
		glib.IdleAdd(func() {
			a.ensureWindow()
			if a.window == nil {
				slog.Error("Window unexpectedly nil after creation", "action", "tray_show")
				return
			}
			a.window.Present()
		})
	}); err != nil {
		slog.Error("Failed to register tray OnShow callback", "error", err)
	}

	if err := a.tray.OnQuit(func() {
		glib.IdleAdd(func() {
			a.Quit()
		})
	}); err != nil {
		slog.Error("Failed to register tray OnQuit callback", "error", err)
	}

	// Show the last used profile on the launch menu item
	if cfg := a.configManager.GetConfig(); cfg.LastProfileID != "" {
		if p, err := a.profileManager.Get(cfg.LastProfileID); err == nil {
			a.tray.SetLastProfileName(p.Name)
		}
	}

	// Start tray in background (error logged but not fatal - tray is optional)
	go func() {
		if err := a.tray.Run(); err != nil {
			slog.Error("Tray icon error", "error", err)
		}
	}()
}

// onShutdown handles application shutdown, cleaning up resources.
func (a *App) onShutdown() {
	slog.Info("Application shutting down")

	// Cancel the application context to abandon in-flight operations
	if a.ctxCancel != nil {
		a.ctxCancel()
	}

	// Stop the usage collector
	a.collector.Stop()

	// Running Sober instances are not terminated on exit

	// Stop system tray
	if a.tray != nil {
		a.tray.Quit()
	}

	slog.Info("Shutdown complete")
}

// ensureWindow creates the main window if it doesn't exist.
// This enables lazy window creation for tray-only startup.
// Note: NewMainWindow always returns a valid pointer, but callers check
// for nil as a defensive measure in case of GTK threading issues.
func (a *App) ensureWindow() {
	if a.window == nil {
		a.window = NewMainWindow(a.app, &MainWindowDeps{
			Profiles:      a.profileManager,
			Sessions:      a.sessionManager,
			Service:       a.service,
			ConfigManager: a.configManager,
			Tray:          a.tray,
			Notifier:      a.notifier,
			Ctx:           a.ctx,
		})

		// Route collector samples to the status display
		a.collector.OnUsage(a.window.ApplyUsage)
	}
}
