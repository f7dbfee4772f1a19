package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the project files of a directory" }
func (*listCmd) Usage() string {
	return `pf list [<dir>]

  Lists the project files found in dir and its subdirectories, the current directory by
  default. Hidden directories are skipped.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	root := "."
	switch f.NArg() {
	case 0:
	case 1:
		root = f.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: too many arguments: %q\n", f.Args()[1:])
		return subcommands.ExitUsageError
	}

	paths, err := folio.FindProjects(root)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(paths) == 0 {
		fmt.Fprintf(stderr, "No project file found in %q\n", root)
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	b.WriteString("| File | Name | Format | Modified |\n")
	b.WriteString("|:---|:---|:---|:---|\n")
	for _, path := range paths {
		// only the light data is needed
		file, err := folio.OpenFile(path)
		if err != nil {
			fmt.Fprintf(&b, "| %s | unreadable: %v | | |\n", path, err)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", path, file.Project.Name, file.Format, file.Project.Modified)
		file.Close()
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
