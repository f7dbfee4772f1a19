// Command pf manages personal finance project files, in JSON or SQLite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/cmd"
	"github.com/etnz/folio/internal/config"
	"github.com/etnz/folio/internal/logger"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
)

func main() {
	// handles COMP_LINE and COMP_INSTALL, and exits when completing.
	cmd.Completion().Complete("pf")

	c, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	cmd.Configure(c)

	commander := subcommands.NewCommander(flag.CommandLine, "pf")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	status := commander.Execute(context.Background())

	store.Shutdown()
	logger.Sync()
	os.Exit(int(status))
}
