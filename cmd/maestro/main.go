package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/robinvdvleuten/maestro/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	app struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	ctx := kong.Parse(&app,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("maestro"),
		kong.Description("Money Maestro: track banks, accounts and transactions from the terminal."),
		kong.UsageOnError(),
		kong.Bind(&app.Globals),
	)

	res := cli.ResultOf(ctx.Run())
	if res.Err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "maestro: error: %s\n", res.Err)
	}
	os.Exit(res.ExitCode)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	cli.Version, cli.CommitSHA = Version, CommitSHA
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
