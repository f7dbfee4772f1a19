package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type queryCmd struct {
	path string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over a project" }
func (*queryCmd) Usage() string {
	return `pf query -path <jsonpath> [<file>]

  Prints, as JSON, the result of a JSONPath expression evaluated over the project document
  in its JSON form.

Usage Examples:
# Names of the portfolios.
$ pf query -path '$.portfolios[*].name' household.sqlite

# Closing prices of a security.
$ pf query -path '$.securities.US0378331005.priceHistory' household.sqlite
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", "$", "JSONPath expression.")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// jsonpath evaluates over the generic JSON values.
	var buf bytes.Buffer
	if err := folio.EncodeProject(&buf, file.Project); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := jsonpath.Get(c.path, doc)
	if err != nil {
		fmt.Fprintf(stderr, "Error evaluating %q: %v\n", c.path, err)
		return subcommands.ExitFailure
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s\n", out)
	return subcommands.ExitSuccess
}
