package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
)

type infoCmd struct {
	full bool
}

func (*infoCmd) Name() string     { return "info" }
func (*infoCmd) Synopsis() string { return "display a summary of a project file" }
func (*infoCmd) Usage() string {
	return `pf info [-full] [<file>]

  Displays the project metadata, settings and content counts. For SQLite files, the stored
  sections are listed with their size, digest and whether they were read.

  Price histories and FX rates of SQLite files are only read with -full.
`
}

func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.full, "full", false, "Read all the data and list securities, cash accounts and FX rates.")
}

func (c *infoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	file, err := openFile(f.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	if c.full {
		if err := file.Hydrate(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	stats, err := sectionStats(file)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading sections of %q: %v\n", file.Path, err)
		return subcommands.ExitFailure
	}

	info := renderer.NewInfo(file.Path, string(file.Format), file.Deferred, file.Project, stats)
	printMarkdown(renderer.RenderInfo(info, renderer.InfoRenderOptions{Full: c.full}))
	return subcommands.ExitSuccess
}

// sectionStats returns the stored sections of a SQLite file, nil for JSON files.
func sectionStats(file *folio.File) ([]store.SectionStat, error) {
	st := file.Store()
	if st == nil {
		return nil, nil
	}
	return st.Sections()
}
