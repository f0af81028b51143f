package cli

import (
	"fmt"
)

type LaunchCmd struct {
	Name     string `arg:"" help:"Profile to launch"`
	Place    string `help:"Place ID or game page URL to join" short:"g"`
	LinkCode string `help:"Private server link code or share URL" short:"c"`
}

func (cmd *LaunchCmd) Run(common CommandContext) error {
	p, err := common.Profiles.FindByName(cmd.Name)
	if err != nil {
		return err
	}

	if cmd.Place == "" && cmd.LinkCode == "" {
		if err := common.Service.LaunchProfile(common.Context, p, ""); err != nil {
			return err
		}
		fmt.Printf("Launched Sober with profile %q\n", p.Name)
		return nil
	}

	if err := common.Service.LaunchPlace(common.Context, p, "", cmd.Place, cmd.LinkCode); err != nil {
		return err
	}
	fmt.Printf("Launched Sober with profile %q into place\n", p.Name)
	return nil
}

type JoinCmd struct {
	Name     string `arg:"" help:"Profile to launch"`
	User     string `arg:"" help:"Roblox username to follow into their game"`
	LinkCode string `help:"Private server link code, for when the target's server is hidden" short:"c"`
}

func (cmd *JoinCmd) Run(common CommandContext) error {
	p, err := common.Profiles.FindByName(cmd.Name)
	if err != nil {
		return err
	}

	if err := common.Service.JoinUser(common.Context, p, cmd.User, cmd.LinkCode); err != nil {
		return err
	}
	fmt.Printf("Launched Sober with profile %q joining %s\n", p.Name, cmd.User)
	return nil
}

type KillCmd struct {
	Name string `arg:"" optional:"" help:"Profile to stop; omit with --all to stop everything"`
	All  bool   `help:"Stop all Sober instances" short:"a"`
}

func (cmd *KillCmd) Run(common CommandContext) error {
	if cmd.All {
		if err := common.Service.KillAll(common.Context); err != nil {
			return err
		}
		fmt.Println("Stopped all Sober instances")
		return nil
	}

	if cmd.Name == "" {
		return fmt.Errorf("pass a profile name or --all")
	}

	p, err := common.Profiles.FindByName(cmd.Name)
	if err != nil {
		return err
	}

	if err := common.Service.KillProfile(common.Context, p); err != nil {
		return err
	}
	fmt.Printf("Stopped Sober instance for %q\n", p.Name)
	return nil
}

type RunningCmd struct{}

func (cmd *RunningCmd) Run(common CommandContext) error {
	result, err := common.Profiles.List()
	if err != nil {
		return err
	}

	any := false
	for _, p := range result.Profiles {
		if common.Service.IsProfileRunning(common.Context, p) {
			fmt.Println(p.Name)
			any = true
		}
	}
	if !any {
		fmt.Println("No running instances")
	}
	return nil
}
