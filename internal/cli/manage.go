package cli

import (
	"fmt"
	"log/slog"
)

type AddCmd struct {
	Name string `arg:"" help:"Name of the new profile"`
}

func (cmd *AddCmd) Run(common CommandContext) error {
	p, err := common.Profiles.Create(cmd.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Created profile %q at %s\n", p.Name, p.Path)
	return nil
}

type RmCmd struct {
	Name string `arg:"" help:"Name of the profile to delete"`
}

func (cmd *RmCmd) Run(common CommandContext) error {
	p, err := common.Profiles.FindByName(cmd.Name)
	if err != nil {
		return err
	}

	if err := common.Profiles.Delete(p.ID); err != nil {
		return err
	}
	if err := common.Sessions.Forget(p.ID); err != nil {
		slog.Debug("Failed to drop keyring entry", "profile", p.ID, "error", err)
	}

	fmt.Printf("Deleted profile %q\n", p.Name)
	return nil
}

type RenameCmd struct {
	Name    string `arg:"" help:"Current profile name"`
	NewName string `arg:"" help:"New profile name"`
}

func (cmd *RenameCmd) Run(common CommandContext) error {
	p, err := common.Profiles.FindByName(cmd.Name)
	if err != nil {
		return err
	}

	renamed, err := common.Profiles.Rename(p.ID, cmd.NewName)
	if err != nil {
		return err
	}

	fmt.Printf("Renamed %q to %q\n", cmd.Name, renamed.Name)
	return nil
}

type NoteCmd struct {
	Name string  `arg:"" help:"Profile name"`
	Note *string `arg:"" optional:"" help:"Note text; omit to show the current note, pass '' to clear it"`
}

func (cmd *NoteCmd) Run(common CommandContext) error {
	p, err := common.Profiles.FindByName(cmd.Name)
	if err != nil {
		return err
	}

	if cmd.Note == nil {
		if p.Note == "" {
			fmt.Printf("Profile %q has no note\n", p.Name)
		} else {
			fmt.Println(p.Note)
		}
		return nil
	}

	if _, err := common.Profiles.SetNote(p.ID, *cmd.Note); err != nil {
		return err
	}
	fmt.Printf("Updated note for %q\n", p.Name)
	return nil
}
