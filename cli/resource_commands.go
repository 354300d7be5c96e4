package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jrsteele09/eero-client/api"
	"github.com/jrsteele09/eero-client/models"
)

// maxListColumns caps the brief table of loose list resources.
const maxListColumns = 6

type objectGetter func(ctx context.Context, networkID string) (models.Object, error)

type objectLister func(ctx context.Context, networkID string) ([]models.Object, error)

// resourceCommand reads one loose network resource.
func (a *App) resourceCommand(name, summary, resource string) *Command {
	return &Command{
		Name:    name,
		Summary: summary,
		Flags:   a.flagSet(name, nil),
		Run: func(ctx context.Context, _ []string) error {
			return a.showObject(ctx, func(ctx context.Context, networkID string) (models.Object, error) {
				return a.client.GetResource(ctx, networkID, resource)
			})
		},
	}
}

func (a *App) showObject(ctx context.Context, get objectGetter) error {
	if _, err := a.connect(ctx); err != nil {
		return err
	}
	object, err := get(ctx, a.networkID)
	if err != nil {
		return err
	}
	return a.print(object, func() table { return objectTable(object) })
}

func (a *App) listObjects(ctx context.Context, list objectLister) error {
	if _, err := a.connect(ctx); err != nil {
		return err
	}
	objects, err := list(ctx, a.networkID)
	if err != nil {
		return err
	}
	return a.print(objects, func() table { return objectsTable(objects) })
}

// objectTable lists top level fields, nested values as compact JSON.
func objectTable(object models.Object) table {
	t := table{header: []string{"Field", "Value"}}
	for _, key := range sortedKeys(object) {
		t.add(key, cell(object[key]))
	}
	return t
}

// objectsTable shows one row per object with the scalar fields they share.
func objectsTable(objects []models.Object) table {
	seen := map[string]bool{}
	for _, object := range objects {
		for key, value := range object {
			switch value.(type) {
			case map[string]any, []any:
			default:
				seen[key] = true
			}
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	if len(columns) > maxListColumns {
		columns = columns[:maxListColumns]
	}

	t := table{header: columns}
	for _, object := range objects {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = cell(object[column])
		}
		t.add(row...)
	}
	return t
}

func sortedKeys(object models.Object) []string {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func cell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return yesNo(value)
	case map[string]any, []any:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(data)
	default:
		return fmt.Sprint(value)
	}
}

func (a *App) resourceCommands() []*Command {
	return []*Command{
		a.resourceCommand("settings", "Show network settings", api.SettingsResource),
		a.resourceCommand("insights", "Show network insights", api.InsightsResource),
		a.resourceCommand("routing", "Show routing configuration", api.RoutingResource),
		a.resourceCommand("thread", "Show Thread network details", api.ThreadResource),
		a.resourceCommand("support", "Show support information", api.SupportResource),
		a.resourceCommand("updates", "Show firmware update status", api.UpdatesResource),
		a.transferCommand(),
		a.resourceCommand("ac-compat", "Show AC compatibility", api.ACCompatResource),
		a.listCommand("reservations", "List DHCP reservations", func(ctx context.Context, networkID string) ([]models.Object, error) {
			return a.client.GetReservations(ctx, networkID)
		}),
		a.listCommand("forwards", "List port forwards", func(ctx context.Context, networkID string) ([]models.Object, error) {
			return a.client.GetForwards(ctx, networkID)
		}),
		a.listCommand("burst-reporters", "List burst reporters", func(ctx context.Context, networkID string) ([]models.Object, error) {
			return a.client.GetBurstReporters(ctx, networkID)
		}),
		a.ouiCheckCommand(),
		a.resourceCommand("password", "Show the network password", api.PasswordResource),
	}
}

func (a *App) listCommand(name, summary string, list objectLister) *Command {
	return &Command{
		Name:    name,
		Summary: summary,
		Flags:   a.flagSet(name, nil),
		Run: func(ctx context.Context, _ []string) error {
			return a.listObjects(ctx, list)
		},
	}
}

func (a *App) transferCommand() *Command {
	return &Command{
		Name:    "transfer",
		Summary: "Show data transfer statistics for the network or one device",
		Usage:   "[device]",
		Flags:   a.flagSet("transfer", nil),
		Run: func(ctx context.Context, args []string) error {
			deviceID := ""
			if len(args) > 0 {
				deviceID = args[0]
			}
			return a.showObject(ctx, func(ctx context.Context, networkID string) (models.Object, error) {
				return a.client.GetTransfer(ctx, networkID, deviceID)
			})
		},
	}
}

func (a *App) ouiCheckCommand() *Command {
	return &Command{
		Name:    "ouicheck",
		Summary: "Show OUI check results, or look up a MAC address",
		Usage:   "[mac]",
		Flags:   a.flagSet("ouicheck", nil),
		Run: func(ctx context.Context, args []string) error {
			return a.showObject(ctx, func(ctx context.Context, networkID string) (models.Object, error) {
				if len(args) > 0 {
					return a.client.CheckOUI(ctx, networkID, args[0])
				}
				return a.client.GetOUICheck(ctx, networkID)
			})
		},
	}
}
