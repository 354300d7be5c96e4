package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jrsteele09/eero-client/models"
	"github.com/spf13/pflag"
)

func profileTable(profiles ...models.Profile) table {
	t := table{header: []string{"ID", "Name", "Paused", "Devices", "Schedule"}}
	for i := range profiles {
		p := &profiles[i]
		t.add(p.ProfileID(), p.Name, yesNo(p.Paused), strconv.Itoa(p.TotalDevices()), yesNo(p.ScheduleEnabled))
	}
	return t
}

func (a *App) profilesCommand() *Command {
	return &Command{
		Name:    "profiles",
		Summary: "List profiles",
		Flags:   a.flagSet("profiles", nil),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			profiles, err := c.GetProfiles(ctx, a.networkID, false)
			if err != nil {
				return err
			}
			return a.print(profiles, func() table { return profileTable(profiles...) })
		},
	}
}

func (a *App) profileCommand() *Command {
	return &Command{
		Name:    "profile",
		Summary: "Show a profile",
		Usage:   "<id>",
		MinArgs: 1,
		Flags:   a.flagSet("profile", nil),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			profile, err := c.GetProfile(ctx, a.networkID, args[0], false)
			if err != nil {
				return err
			}
			return a.print(profile, func() table { return profileTable(*profile) })
		},
	}
}

func (a *App) pauseProfileCommand() *Command {
	var unpause bool
	return &Command{
		Name:    "pause-profile",
		Summary: "Pause internet access for a profile, or resume it with --unpause",
		Usage:   "<id> [--unpause]",
		MinArgs: 1,
		Flags: a.flagSet("pause-profile", func(fs *pflag.FlagSet) {
			fs.BoolVar(&unpause, "unpause", false, "resume internet access")
		}),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			ok, err := c.PauseProfile(ctx, a.networkID, args[0], !unpause)
			if err != nil {
				return err
			}
			verb := "paused"
			if unpause {
				verb = "resumed"
			}
			return a.outcome(ok, fmt.Sprintf("Profile %s %s", args[0], verb))
		},
	}
}
