// Package cmd implements the pf subcommands to manage project files.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio"
	"github.com/etnz/folio/internal/config"
	"github.com/etnz/folio/internal/logger"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
)

// Commands are the pf subcommands, with the group they are listed in.
var Commands = []struct {
	Command subcommands.Command
	Group   string
}{
	{&newCmd{}, "files"},
	{&infoCmd{}, "files"},
	{&listCmd{}, "files"},
	{&convertCmd{}, "files"},
	{&renameCmd{}, "files"},
	{&verifyCmd{}, "files"},
	{&queryCmd{}, "files"},
	{&topicCmd{}, "help"},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var (
	cfg = &config.Config{Lazy: true, File: "portfolio.json"}

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Configure applies the configuration to the commands, the logger and the storage engine.
func Configure(c *config.Config) {
	cfg = c
	logger.Init(c.Env, c.Verbose)
	store.SetScratchDir(c.ScratchDir)
}

// fileArg returns the project file named on the command line, or the configured one.
func fileArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		if cfg.File == "" {
			return "", errors.New("no project file given")
		}
		return cfg.File, nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("too many arguments: %q", args[1:])
	}
}

// openFile opens the project file named on the command line. The heavy data is read right
// away unless the configuration allows lazy loading.
func openFile(args []string) (*folio.File, error) {
	path, err := fileArg(args)
	if err != nil {
		return nil, err
	}
	f, err := folio.OpenFile(path, store.WithLogger(logger.Get()))
	if err != nil {
		return nil, err
	}
	if !cfg.Lazy {
		if err := f.Hydrate(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// printMarkdown prints md styled for the terminal, or as is if styling fails or is disabled.
func printMarkdown(md string) {
	if !cfg.Plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				md = out
			}
		}
	}
	fmt.Fprint(stdout, md)
}
