package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/internal/logger"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
)

type newCmd struct {
	name  string
	force bool
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create an empty project file" }
func (*newCmd) Usage() string {
	return `pf new [-name <name>] [-force] [<file>]

  Creates an empty project. The format follows the file extension: .sqlite, .sqlite3
  and .db files are SQLite databases, anything else is JSON.
  The project is named after the file by default.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the project.")
	f.BoolVar(&c.force, "force", false, "Overwrite an existing file.")
}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, err := fileArg(f.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if _, err := os.Stat(path); err == nil && !c.force {
		fmt.Fprintf(stderr, "Error: %q already exists, use -force to overwrite it\n", path)
		return subcommands.ExitFailure
	}

	name := c.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	file := folio.NewFile(path, name, store.WithLogger(logger.Get()))
	defer file.Close()
	if err := file.Save(); err != nil {
		fmt.Fprintf(stderr, "Error creating %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Created project %q (%s) in %s\n", file.Project.Name, file.Format, path)
	return subcommands.ExitSuccess
}
