package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/folio"
	"github.com/etnz/folio/internal/config"
	"github.com/etnz/folio/internal/testutil"
	"github.com/etnz/folio/project"
	"github.com/etnz/folio/store"
)

func TestMain(m *testing.M) {
	code := m.Run()
	_ = store.Shutdown()
	os.Exit(code)
}

// run executes pf with args and returns its exit status, stdout and stderr.
func run(t *testing.T, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldCfg, oldOut, oldErr := cfg, stdout, stderr
	cfg = &config.Config{Lazy: true, Plain: true, File: filepath.Join(t.TempDir(), "default.json")}
	stdout, stderr = &out, &errOut
	defer func() { cfg, stdout, stderr = oldCfg, oldOut, oldErr }()

	fs := flag.NewFlagSet("pf", flag.ContinueOnError)
	require.NoError(t, fs.Parse(args))
	commander := subcommands.NewCommander(fs, "pf")
	commander.Error = &errOut
	commander.Output = &out
	Register(commander)
	status := commander.Execute(context.Background())
	return status, out.String(), errOut.String()
}

// writeProject writes p to path in the format given by its extension.
func writeProject(t *testing.T, path string, p *project.Project) {
	t.Helper()
	res, err := folio.Save(filepath.Base(path), p, nil)
	require.NoError(t, err)
	if res.Store != nil {
		res.Store.Close()
	}
	require.NoError(t, os.WriteFile(path, res.Data, 0644))
}

// readProject reads the whole project stored in path.
func readProject(t *testing.T, path string) *folio.File {
	t.Helper()
	f, err := folio.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	require.NoError(t, f.Hydrate())
	return f
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "household.sqlite")

	status, out, _ := run(t, "new", "-name", "Household", path)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, `Created project "Household" (sqlite)`)

	f := readProject(t, path)
	assert.Equal(t, folio.FormatSQLite, f.Format)
	assert.Equal(t, "Household", f.Project.Name)
	assert.True(t, project.IsValidID(f.Project.ID))

	status, _, errOut := run(t, "new", path)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "already exists")

	status, _, _ = run(t, "new", "-force", path)
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "household", readProject(t, path).Project.Name)
}

func TestNew_DefaultFile(t *testing.T) {
	status, out, _ := run(t, "new")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, `Created project "default" (json)`)
}

func TestNew_TooManyArguments(t *testing.T) {
	status, _, errOut := run(t, "new", "a.json", "b.json")
	assert.Equal(t, subcommands.ExitUsageError, status)
	assert.Contains(t, errOut, "too many arguments")
}

func TestInfo(t *testing.T) {
	p := testutil.SampleProject()
	path := filepath.Join(t.TempDir(), "p.sqlite")
	writeProject(t, path, p)

	status, out, _ := run(t, "info", path)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# "+p.Name)
	assert.Contains(t, out, "| Format | sqlite (heavy data deferred) |")
	assert.Contains(t, out, "## Storage")
	assert.Contains(t, out, "| security_price_history |")
	assert.Contains(t, out, "| deferred |")
	assert.NotContains(t, out, "## Securities")

	status, out, _ = run(t, "info", "-full", path)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "| Format | sqlite |")
	assert.Contains(t, out, "## Securities")
	assert.Contains(t, out, "| US0378331005 | AAPL | Apple Inc. | EQUITY | 3 | 2024-01-04..2024-01-08 | 169.8 |")
	assert.NotContains(t, out, "| deferred |")
}

func TestInfo_MissingFile(t *testing.T) {
	status, _, errOut := run(t, "info", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "cannot read project file")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	p := testutil.SampleProject()
	src := filepath.Join(dir, "p.json")
	writeProject(t, src, p)

	sqlite := filepath.Join(dir, "p.sqlite")
	status, out, _ := run(t, "convert", "-out", sqlite, src)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "(json) to "+sqlite+" (sqlite)")
	assert.Equal(t, p, readProject(t, sqlite).Project)

	// back to JSON, the heavy data deferred by the lazy open must be read.
	back := filepath.Join(dir, "back.json")
	status, _, _ = run(t, "convert", "-out", back, sqlite)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, p, readProject(t, back).Project)
}

func TestConvert_RequiresOut(t *testing.T) {
	status, _, errOut := run(t, "convert", "p.json")
	assert.Equal(t, subcommands.ExitUsageError, status)
	assert.Contains(t, errOut, "-out is required")
}

func TestRename_KeepsHeavyData(t *testing.T) {
	p := testutil.SampleProject()
	path := filepath.Join(t.TempDir(), "p.sqlite")
	writeProject(t, path, p)

	status, out, _ := run(t, "rename", "-name", "Family", path)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, `to "Family"`)

	got := readProject(t, path).Project
	assert.Equal(t, "Family", got.Name)
	assert.NotEqual(t, p.Modified, got.Modified)
	assert.Equal(t, p.Securities, got.Securities)
	assert.Equal(t, p.FXData, got.FXData)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	clean := filepath.Join(dir, "clean.sqlite")
	writeProject(t, clean, testutil.SampleProject())

	status, out, _ := run(t, "verify", clean)
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "schema version "+store.SchemaVersion)
	assert.Contains(t, out, "No issues found.")

	p := testutil.SampleProject()
	p.Transactions[1].ISIN = "XX0000000000"
	broken := filepath.Join(dir, "broken.json")
	writeProject(t, broken, p)

	status, out, _ = run(t, "verify", broken)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, out, `unknown security "XX0000000000"`)
}

func TestQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.sqlite")
	writeProject(t, path, testutil.SampleProject())

	status, out, _ := run(t, "query", "-path", "$.portfolios[*].name", path)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.JSONEq(t, `["Broker", "Savings"]`, out)

	// heavy data is read before the query.
	status, out, _ = run(t, "query", "-path", "$.securities.IE00B4L5Y983.priceHistory", path)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.JSONEq(t, `{"2024-02-01": 80, "2024-02-02": 80.4}`, out)

	status, _, errOut := run(t, "query", "-path", "$.nowhere", path)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "$.nowhere")
}

func TestList(t *testing.T) {
	root := t.TempDir()
	writeProject(t, filepath.Join(root, "a.json"), project.New("A"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	writeProject(t, filepath.Join(root, "sub", "b.sqlite"), project.New("B"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden"), 0755))
	writeProject(t, filepath.Join(root, ".hidden", "c.json"), project.New("C"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.db"), []byte(strings.Repeat("not a database ", 100)), 0644))

	status, out, _ := run(t, "list", root)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "| "+filepath.Join(root, "a.json")+" | A | json |")
	assert.Contains(t, out, "| "+filepath.Join(root, "sub", "b.sqlite")+" | B | sqlite |")
	assert.Contains(t, out, "| "+filepath.Join(root, "broken.db")+" | unreadable: ")
	assert.NotContains(t, out, "c.json")
}

func TestTopic(t *testing.T) {
	status, out, _ := run(t, "topic", "formats")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# File formats")

	status, _, errOut := run(t, "topic", "nope")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "Error reading doc")
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, cmd := range Commands {
		assert.Contains(t, c.Sub, cmd.Command.Name())
	}
	assert.Len(t, c.Sub, len(Commands))
}
