package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/eero-client/api"
	"github.com/jrsteele09/eero-client/internal/utils"
	"github.com/jrsteele09/eero-client/models"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

func (a *App) accountCommand() *Command {
	return &Command{
		Name:    "account",
		Summary: "Show the account",
		Flags:   a.flagSet("account", nil),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			account, err := c.GetAccount(ctx, false)
			if err != nil {
				return err
			}
			return a.print(account, func() table {
				t := table{header: []string{"ID", "Name", "Email", "Phone", "Premium"}}
				t.add(account.AccountID(), account.Name, contact(account.Email), contact(account.Phone), account.PremiumStatus)
				return t
			})
		},
	}
}

func contact(v *models.ContactValue) string {
	if v == nil {
		return ""
	}
	return v.Value
}

func (a *App) networksCommand() *Command {
	return &Command{
		Name:    "networks",
		Summary: "List networks",
		Flags:   a.flagSet("networks", nil),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			networks, err := c.GetNetworks(ctx, false)
			if err != nil {
				return err
			}
			preferred := c.PreferredNetworkID()
			return a.print(networks, func() table {
				t := table{header: []string{"", "ID", "Name", "Status"}}
				for i := range networks {
					n := &networks[i]
					marker := ""
					if n.NetworkID() == preferred {
						marker = "*"
					}
					t.add(marker, n.NetworkID(), n.Label(), string(n.NormalizedStatus()))
				}
				return t
			})
		},
	}
}

func (a *App) networkCommand() *Command {
	return &Command{
		Name:    "network",
		Summary: "Show a network's details",
		Usage:   "[id]",
		Flags:   a.flagSet("network", nil),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			network, err := c.GetNetwork(ctx, a.targetNetwork(args), false)
			if err != nil {
				return err
			}
			return a.print(network, func() table {
				start, end := network.DHCP.Range()
				t := table{header: []string{"Field", "Value"}}
				t.add("ID", network.NetworkID())
				t.add("Name", network.Label())
				t.add("Status", string(network.NormalizedStatus()))
				t.add("Public IP", network.PublicAddress())
				t.add("ISP", network.ISP())
				t.add("Guest network", yesNo(network.GuestNetworkEnabled()))
				if start != "" {
					t.add("DHCP range", start+" - "+end)
				}
				return t
			})
		},
	}
}

// targetNetwork returns the network named by a positional arg, else --network.
func (a *App) targetNetwork(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.networkID
}

func (a *App) setNetworkCommand() *Command {
	return &Command{
		Name:    "set-network",
		Summary: "Set the preferred network",
		Usage:   "<id>",
		MinArgs: 1,
		Flags:   a.flagSet("set-network", nil),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			if err := c.SetPreferredNetworkID(ctx, args[0]); err != nil {
				return err
			}
			a.status.Success("Preferred network set to %s", args[0])
			return nil
		},
	}
}

func (a *App) guestNetworkCommand() *Command {
	var enable, disable bool
	var name, password string
	return &Command{
		Name:    "guest-network",
		Summary: "Turn the guest network on or off",
		Usage:   "--enable|--disable [--name <ssid>] [--password <password>]",
		Flags: a.flagSet("guest-network", func(fs *pflag.FlagSet) {
			fs.BoolVar(&enable, "enable", false, "turn the guest network on")
			fs.BoolVar(&disable, "disable", false, "turn the guest network off")
			fs.StringVar(&name, "name", "", "guest network name")
			fs.StringVar(&password, "password", "", "guest network password")
		}),
		Run: func(ctx context.Context, _ []string) error {
			if enable == disable {
				return &UsageError{Message: "exactly one of --enable or --disable is required"}
			}
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			update := api.GuestNetworkUpdate{Enabled: enable}
			if name != "" {
				update.Name = utils.Ptr(name)
			}
			if password != "" {
				update.Password = utils.Ptr(password)
			}
			ok, err := c.SetGuestNetwork(ctx, a.networkID, update)
			if err != nil {
				return err
			}
			return a.outcome(ok, fmt.Sprintf("Guest network %s", enabledWord(enable)))
		},
	}
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// outcome reports a mutation's result. A rejected mutation is an error so the exit code shows it.
func (a *App) outcome(ok bool, success string) error {
	if !ok {
		return errors.Errorf("%s: not accepted by the eero API", strings.ToLower(success[:1])+success[1:])
	}
	a.status.Success("%s", success)
	return nil
}

func (a *App) speedTestCommand() *Command {
	return &Command{
		Name:    "speedtest",
		Summary: "Run a speed test",
		Flags:   a.flagSet("speedtest", nil),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			result, err := c.RunSpeedTest(ctx, a.networkID)
			if err != nil {
				return err
			}
			a.status.Success("Speed test started")
			return a.print(result, nil)
		},
	}
}

func (a *App) rebootNetworkCommand() *Command {
	var yes bool
	return &Command{
		Name:    "reboot-network",
		Summary: "Reboot every eero on the network",
		Flags: a.flagSet("reboot-network", func(fs *pflag.FlagSet) {
			fs.BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
		}),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			networkID, err := c.ResolveNetworkID(ctx, a.networkID)
			if err != nil {
				return err
			}
			if ok, err := a.confirm(fmt.Sprintf("Reboot network %s?", networkID), yes); err != nil || !ok {
				return err
			}
			ok, err := c.RebootNetwork(ctx, networkID)
			if err != nil {
				return err
			}
			return a.outcome(ok, "Network reboot started")
		},
	}
}

// confirm asks before a disruptive action. Without a terminal --yes is required.
func (a *App) confirm(question string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !a.prompt.Interactive() {
		return false, &UsageError{Message: "confirmation required, pass --yes"}
	}
	ok, err := a.prompt.Confirm(question, false)
	if err != nil {
		return false, err
	}
	if !ok {
		a.status.Info("Cancelled")
	}
	return ok, nil
}

func (a *App) diagnosticsCommand() *Command {
	var run bool
	return &Command{
		Name:    "diagnostics",
		Summary: "Show the latest diagnostics report, or run a new one",
		Flags: a.flagSet("diagnostics", func(fs *pflag.FlagSet) {
			fs.BoolVar(&run, "run", false, "start a new diagnostics run")
		}),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			var diagnostics *models.Diagnostics
			if run {
				diagnostics, err = c.RunDiagnostics(ctx, a.networkID)
			} else {
				diagnostics, err = c.GetDiagnostics(ctx, a.networkID)
			}
			if err != nil {
				return err
			}
			return a.print(diagnostics, func() table {
				t := table{header: []string{"Status", "Timestamp", "Error"}}
				t.add(string(diagnostics.Status), diagnostics.Timestamp, diagnostics.Error)
				return t
			})
		},
	}
}
