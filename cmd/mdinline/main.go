package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdinline/cmd/mdinline/commands"
	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("mdinline"),
		kong.Description("Render inline markdown into styled text and image runs."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()}, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
