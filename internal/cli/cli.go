// Package cli implements the command line companion to the GUI.
package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/evanovar/sober-profile-manager/internal/config"
	"github.com/evanovar/sober-profile-manager/internal/keyring"
	"github.com/evanovar/sober-profile-manager/internal/profile"
	"github.com/evanovar/sober-profile-manager/internal/roblox"
	"github.com/evanovar/sober-profile-manager/internal/session"
	"github.com/evanovar/sober-profile-manager/internal/sober"
)

// CLI is the top-level command grammar.
var CLI struct {
	Ls      LsCmd      `cmd:"" help:"List profiles"`
	Add     AddCmd     `cmd:"" help:"Create a new profile"`
	Rm      RmCmd      `cmd:"" help:"Delete a profile and its home directory"`
	Rename  RenameCmd  `cmd:"" help:"Rename a profile"`
	Note    NoteCmd    `cmd:"" help:"Show or set a profile's note"`
	Launch  LaunchCmd  `cmd:"" help:"Launch Sober with a profile"`
	Join    JoinCmd    `cmd:"" help:"Launch a profile into the game another user is playing"`
	Kill    KillCmd    `cmd:"" help:"Stop a profile's Sober instance"`
	Running RunningCmd `cmd:"" help:"Show which profiles have a running instance"`
}

// CommandContext carries the wired-up services into command Run methods.
type CommandContext struct {
	Context  context.Context
	Config   *config.Manager
	Profiles *profile.Manager
	Service  *sober.Service
	Sessions *session.Manager
}

// Run parses the arguments and dispatches to the selected command.
func Run(args []string) error {
	kctx, err := kong.Must(&CLI).Parse(args[1:])
	if err != nil {
		return err
	}

	cfg, err := config.NewManager()
	if err != nil {
		return err
	}

	store, err := profile.NewStore(cfg.GetProfilesPath())
	if err != nil {
		return err
	}
	profiles := profile.NewManager(store, cfg)

	client := roblox.NewClient()
	sessions := session.NewManager(keyring.NewSystemKeyring(), client)
	service := sober.NewService(sober.NewLauncher(), sober.NewDetector(), client, sessions, cfg)

	return kctx.Run(CommandContext{
		Context:  context.Background(),
		Config:   cfg,
		Profiles: profiles,
		Service:  service,
		Sessions: sessions,
	})
}
