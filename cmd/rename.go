package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type renameCmd struct {
	name string
}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a project" }
func (*renameCmd) Usage() string {
	return `pf rename -name <name> [<file>]

  Renames the project in place. Price histories and FX rates of SQLite files are neither
  read nor rewritten.
`
}

func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New name of the project.")
}

func (c *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(stderr, "Error: -name is required")
		return subcommands.ExitUsageError
	}
	file, err := openFile(f.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	old := file.Project.Name
	file.Project.Name = c.name
	file.Project.Touch()
	if err := file.Save(); err != nil {
		fmt.Fprintf(stderr, "Error saving %q: %v\n", file.Path, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Renamed %q to %q\n", old, c.name)
	return subcommands.ExitSuccess
}
