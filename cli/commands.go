package cli

func (a *App) commands() *Command {
	subcommands := []*Command{
		a.loginCommand(),
		a.logoutCommand(),
		a.resendCommand(),
		a.clearAuthCommand(),
		a.statusCommand(),
		a.accountCommand(),
		a.networksCommand(),
		a.networkCommand(),
		a.setNetworkCommand(),
		a.eerosCommand(),
		a.eeroCommand(),
		a.rebootEeroCommand(),
		a.rebootNetworkCommand(),
		a.devicesCommand(),
		a.deviceCommand(),
		a.renameDeviceCommand(),
		a.blockDeviceCommand(),
		a.profilesCommand(),
		a.profileCommand(),
		a.pauseProfileCommand(),
		a.guestNetworkCommand(),
		a.speedTestCommand(),
		a.diagnosticsCommand(),
	}
	subcommands = append(subcommands, a.resourceCommands()...)
	subcommands = append(subcommands, a.blacklistCommand(), a.versionCommand())

	return &Command{
		Name:        appName,
		Summary:     "Manage an eero home network from the command line",
		Flags:       a.flagSet(appName, nil),
		Subcommands: subcommands,
	}
}
