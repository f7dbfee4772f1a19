package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type convertCmd struct {
	out string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "write a project file in another format" }
func (*convertCmd) Usage() string {
	return `pf convert -out <file> [<file>]

  Writes the project to the -out file. The output format follows its extension, so a JSON
  project is converted to SQLite with:

  $ pf convert -out household.sqlite household.json
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "", "Path of the converted file.")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.out == "" {
		fmt.Fprintln(stderr, "Error: -out is required")
		return subcommands.ExitUsageError
	}
	file, err := openFile(f.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	from, format := file.Path, file.Format
	if err := file.SaveAs(c.out); err != nil {
		fmt.Fprintf(stderr, "Error converting %q: %v\n", from, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Converted %s (%s) to %s (%s)\n", from, format, file.Path, file.Format)
	return subcommands.ExitSuccess
}
