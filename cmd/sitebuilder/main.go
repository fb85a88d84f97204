package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/campuseats/sitebuilder/cmd/sitebuilder/commands"
	"github.com/campuseats/sitebuilder/internal/foundation/errors"
)

var version = "dev"

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("sitebuilder"),
		kong.Description("Compile JSONC restaurant data into a static HTML site."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(&commands.Global{}, cli); err != nil {
		adapter := errors.NewCLIAdapter(cli.Verbose)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}
