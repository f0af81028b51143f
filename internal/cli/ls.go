package cli

import (
	"fmt"
	"strings"

	"github.com/evanovar/sober-profile-manager/internal/stats"
)

type LsCmd struct {
	Paths bool `help:"Show profile home directories" short:"p"`
	Size  bool `help:"Show disk usage per profile (slower)" short:"s"`
}

func (cmd *LsCmd) Run(common CommandContext) error {
	result, err := common.Profiles.List()
	if err != nil {
		return err
	}

	for _, e := range result.Errors {
		fmt.Printf("warning: skipped %s: %v\n", e.ProfileID, e.Err)
	}

	if len(result.Profiles) == 0 {
		fmt.Println("No profiles. Create one with: sober-profile-manager-cli add <name>")
		return nil
	}

	sb := strings.Builder{}
	for _, p := range result.Profiles {
		sb.WriteString(p.Name)

		var tags []string
		if common.Service.IsProfileRunning(common.Context, p) {
			tags = append(tags, "running")
		}
		if common.Sessions.LoggedIn(p.ID, p.Path) {
			tags = append(tags, "logged in")
		}
		if common.Profiles.DirMissing(p) {
			tags = append(tags, "directory missing")
		}
		if cmd.Size {
			tags = append(tags, stats.FormatBytes(stats.DirSize(p.Path)))
		}
		if len(tags) > 0 {
			sb.WriteString(" (" + strings.Join(tags, ", ") + ")")
		}

		if cmd.Paths {
			sb.WriteString("\n    " + p.Path)
		}
		if p.Note != "" {
			sb.WriteString("\n    " + p.Note)
		}
		sb.WriteString("\n")
	}

	fmt.Print(sb.String())
	return nil
}
