package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version        kong.VersionFlag  `short:"v" help:"Show version"`
	Play           PlayCmd           `cmd:"" help:"Play a game at the terminal against bots"`
	Simulate       SimulateCmd       `cmd:"" help:"Run bot-vs-bot sessions and report standings"`
	ValidateConfig ValidateConfigCmd `cmd:"validate-config" help:"Check a table configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tablegames"),
		kong.Description("Turn-based card game engine: blackjack, survival 21 and a party game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
