package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jrsteele09/eero-client/models"
	"github.com/spf13/pflag"
)

func eeroTable(eeros ...models.Eero) table {
	t := table{header: []string{"ID", "Location", "Model", "Status", "Gateway", "Clients", "Firmware"}}
	for i := range eeros {
		e := &eeros[i]
		t.add(e.EeroID(), e.LocationName(), e.Model, e.Status, yesNo(e.IsGateway()), strconv.Itoa(e.ConnectedClientsCount), e.OSVersion)
	}
	return t
}

func (a *App) eerosCommand() *Command {
	return &Command{
		Name:    "eeros",
		Summary: "List the eeros on the network",
		Flags:   a.flagSet("eeros", nil),
		Run: func(ctx context.Context, _ []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			eeros, err := c.GetEeros(ctx, a.networkID, false)
			if err != nil {
				return err
			}
			return a.print(eeros, func() table { return eeroTable(eeros...) })
		},
	}
}

func (a *App) eeroCommand() *Command {
	return &Command{
		Name:    "eero",
		Summary: "Show an eero by id, serial, MAC address or location",
		Usage:   "<id>",
		MinArgs: 1,
		Flags:   a.flagSet("eero", nil),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			eero, err := c.GetEero(ctx, a.networkID, args[0], false)
			if err != nil {
				return err
			}
			return a.print(eero, func() table { return eeroTable(*eero) })
		},
	}
}

func (a *App) rebootEeroCommand() *Command {
	var yes bool
	return &Command{
		Name:    "reboot-eero",
		Summary: "Reboot one eero",
		Usage:   "<id> [--yes]",
		MinArgs: 1,
		Flags: a.flagSet("reboot-eero", func(fs *pflag.FlagSet) {
			fs.BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
		}),
		Run: func(ctx context.Context, args []string) error {
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			eero, err := c.GetEero(ctx, a.networkID, args[0], false)
			if err != nil {
				return err
			}
			if ok, err := a.confirm(fmt.Sprintf("Reboot eero %s (%s)?", eero.EeroID(), eero.LocationName()), yes); err != nil || !ok {
				return err
			}
			ok, err := c.RebootEero(ctx, a.networkID, eero.EeroID())
			if err != nil {
				return err
			}
			return a.outcome(ok, fmt.Sprintf("Reboot of eero %s started", eero.EeroID()))
		},
	}
}
