package cli

import (
	"context"
	"fmt"

	"github.com/jrsteele09/eero-client/models"
	"github.com/spf13/pflag"
)

func deviceTable(devices ...models.Device) table {
	t := table{header: []string{"ID", "Name", "IP", "MAC", "Status", "Connection", "Profile"}}
	for i := range devices {
		d := &devices[i]
		profile := ""
		if d.Profile != nil {
			profile = d.Profile.Name
		}
		ip := d.IP
		if ip == "" {
			ip = d.IPv4
		}
		t.add(d.DeviceID(), d.Name(), ip, d.MAC, string(d.Status()), d.ConnectionType, profile)
	}
	return t
}

func (a *App) devicesCommand() *Command {
	return &Command{
		Name:    "devices",
		Summary: "List devices on the network",
		Flags:   a.flagSet("devices", nil),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			devices, err := c.GetDevices(ctx, a.networkID, false)
			if err != nil {
				return err
			}
			return a.print(devices, func() table { return deviceTable(devices...) })
		},
	}
}

func (a *App) deviceCommand() *Command {
	return &Command{
		Name:    "device",
		Summary: "Show a device",
		Usage:   "<id>",
		MinArgs: 1,
		Flags:   a.flagSet("device", nil),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			device, err := c.GetDevice(ctx, a.networkID, args[0], false)
			if err != nil {
				return err
			}
			return a.print(device, func() table { return deviceTable(*device) })
		},
	}
}

func (a *App) renameDeviceCommand() *Command {
	return &Command{
		Name:    "rename-device",
		Summary: "Set a device's nickname",
		Usage:   "<id> <name>",
		MinArgs: 2,
		Flags:   a.flagSet("rename-device", nil),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			ok, err := c.SetDeviceNickname(ctx, a.networkID, args[0], args[1])
			if err != nil {
				return err
			}
			return a.outcome(ok, fmt.Sprintf("Device %s renamed to %q", args[0], args[1]))
		},
	}
}

func (a *App) blockDeviceCommand() *Command {
	var unblock bool
	return &Command{
		Name:    "block-device",
		Summary: "Block a device, or unblock it with --unblock",
		Usage:   "<id> [--unblock]",
		MinArgs: 1,
		Flags: a.flagSet("block-device", func(fs *pflag.FlagSet) {
			fs.BoolVar(&unblock, "unblock", false, "unblock the device")
		}),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			ok, err := c.BlockDevice(ctx, a.networkID, args[0], !unblock)
			if err != nil {
				return err
			}
			verb := "blocked"
			if unblock {
				verb = "unblocked"
			}
			return a.outcome(ok, fmt.Sprintf("Device %s %s", args[0], verb))
		},
	}
}

func (a *App) blacklistCommand() *Command {
	return &Command{
		Name:    "blacklist",
		Summary: "List blacklisted devices, or add and remove one",
		Usage:   "[add|remove <device>]",
		Flags:   a.flagSet("blacklist", nil),
		Run: func(ctx context.Context, _ []string) error {
			return a.listObjects(ctx, func(ctx context.Context, networkID string) ([]models.Object, error) {
				return a.client.GetBlacklist(ctx, networkID)
			})
		},
		Subcommands: []*Command{
			a.blacklistChange("add", "Add a device to the blacklist"),
			a.blacklistChange("remove", "Remove a device from the blacklist"),
		},
	}
}

func (a *App) blacklistChange(name, summary string) *Command {
	return &Command{
		Name:    name,
		Summary: summary,
		Usage:   "<device>",
		MinArgs: 1,
		Flags:   a.flagSet(name, nil),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			change, done := c.AddToBlacklist, "added to"
			if name == "remove" {
				change, done = c.RemoveFromBlacklist, "removed from"
			}
			ok, err := change(ctx, a.networkID, args[0])
			if err != nil {
				return err
			}
			return a.outcome(ok, fmt.Sprintf("Device %s %s the blacklist", args[0], done))
		},
	}
}
