package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type verifyCmd struct{}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "check a project file" }
func (*verifyCmd) Usage() string {
	return `pf verify [<file>]

  Reads the whole project and reports its inconsistencies: unknown portfolios, securities
  or cash accounts, invalid dates, and foreign currency transactions without an FX rate.
  The file is never modified.

  Exits with a failure status if the file cannot be read or has issues.
`
}

func (c *verifyCmd) SetFlags(f *flag.FlagSet) {}

func (c *verifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	file, err := openFile(f.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	if err := file.Hydrate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var version string
	if st := file.Store(); st != nil {
		if version, err = st.SchemaVersion(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	stats, err := sectionStats(file)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading sections of %q: %v\n", file.Path, err)
		return subcommands.ExitFailure
	}

	v := renderer.NewVerification(file.Path, string(file.Format), version, file.Project, stats)
	printMarkdown(renderer.RenderVerification(v))
	if len(v.Issues) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
