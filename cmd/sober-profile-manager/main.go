// Package main provides the entry point for the sober-profile-manager application.
// sober-profile-manager is a GTK4/libadwaita desktop utility that manages isolated
// home-directory profiles for the Sober flatpak, a Roblox runner for Linux.
package main

import (
	"log/slog"
	"os"

	"github.com/evanovar/sober-profile-manager/internal/logging"
	"github.com/evanovar/sober-profile-manager/internal/ui"
)

func main() {
	// Initialize structured logging
	logging.SetupFromEnv()

	app, err := ui.NewApp()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Run the application
	if code := app.Run(os.Args); code > 0 {
		os.Exit(code)
	}
}
