package cli

import (
	"context"
	"fmt"
	"runtime"
)

func (a *App) versionCommand() *Command {
	return &Command{
		Name:    "version",
		Summary: "Show the version",
		Flags:   a.flagSet("version", nil),
		Run: func(_ context.Context, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if isTerminal(a.out) {
				a.banner()
			}
			info := struct {
				Version string `json:"version" yaml:"version"`
				Go      string `json:"go" yaml:"go"`
				OS      string `json:"os" yaml:"os"`
				Arch    string `json:"arch" yaml:"arch"`
			}{a.version, runtime.Version(), runtime.GOOS, runtime.GOARCH}
			return a.print(info, func() table {
				return table{header: []string{"Version", "Go", "Platform"}, rows: [][]string{{info.Version, info.Go, fmt.Sprintf("%s/%s", info.OS, info.Arch)}}}
			})
		},
	}
}
