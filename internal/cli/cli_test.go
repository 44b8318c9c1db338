package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/service"
)

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs one command line against a fresh command tree rooted in dir
func execute(t *testing.T, dir string, stdin string, args ...string) cmdResult {
	t.Helper()
	a := &app{
		version:   "test",
		clipboard: &fakeClipboard{},
		now:       func() time.Time { return time.Date(2024, 5, 1, 9, 5, 7, 0, time.UTC) },
	}
	t.Cleanup(a.teardown)

	cmd := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--dir", dir, "--log-level", "error"}, args...))

	err := cmd.Execute()
	a.teardown()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "", "generate", "architecture", "--set", "details=")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Materials: Stucco in white.")
	assert.NotContains(t, res.stdout, "Details:")

	res = execute(t, dir, "", "generate", "Facade", "-s", "windows=4", "-s", "features=")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Windows: 4 rectangular windows.")
}

func TestGenerateWarnsOnFallback(t *testing.T) {
	res := execute(t, t.TempDir(), "", "generate", "facade", "--set", "windows=42")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Windows: 2 rectangular windows.")
	assert.Contains(t, res.stderr, "windows")
}

func TestGenerateRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "", "generate", "architecture", "--set", "color")
	assert.True(t, errors.IsCode(res.err, errors.ErrCodeInvalidInput), "%v", res.err)

	res = execute(t, dir, "", "generate", "poetry")
	assert.True(t, errors.IsCode(res.err, errors.ErrCodeConfiguration), "%v", res.err)

	res = execute(t, dir, "", "generate", "architecture", "--set", "windows=3")
	assert.True(t, errors.IsCode(res.err, errors.ErrCodeConfiguration), "%v", res.err)
}

func TestGenerateJSON(t *testing.T) {
	res := execute(t, t.TempDir(), "", "generate", "marketing", "--set", "product=X", "--format", "json")
	require.NoError(t, res.err)

	var doc models.ExportDocument
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, models.CategoryMarketing, doc.Category)
	assert.Equal(t, "X", doc.Fields["product"])
	assert.Equal(t, "2024-05-01T09:05:07Z", doc.Generated)
}

func TestGenerateToFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "prompt.txt")

	res := execute(t, dir, "", "generate", "custom", "--set", "custom_prompt=hello", "-o", out, "--no-history")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	res = execute(t, dir, "", "history", "--format", "json")
	require.NoError(t, res.err)
	assert.Equal(t, "[]\n", res.stdout)
}

func TestGenerateDiff(t *testing.T) {
	res := execute(t, t.TempDir(), "", "generate", "architecture", "--expand", "--diff")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "1 line(s) added, 0 removed")
}

func TestTemplatesCommands(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "", "templates", "list", "-C", "architecture")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No templates in Architecture")

	res = execute(t, dir, "", "templates", "save", "Warm", "-C", "architecture", "--set", "color=terracotta")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `Saved template "Warm" in Architecture`)

	res = execute(t, dir, "", "tpl", "ls", "-C", "architecture")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Warm")

	res = execute(t, dir, "", "templates", "show", "Warm", "-C", "architecture")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "color: terracotta")
	assert.Less(t, strings.Index(res.stdout, "style:"), strings.Index(res.stdout, "color:"))

	res = execute(t, dir, "", "generate", "architecture", "--template", "Warm")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Materials: Stucco in terracotta.")

	res = execute(t, dir, "", "templates", "delete", "Warm", "-C", "architecture")
	require.NoError(t, res.err)

	res = execute(t, dir, "", "templates", "rm", "Warm", "-C", "architecture")
	assert.True(t, errors.IsCode(res.err, errors.ErrCodeNotFound), "%v", res.err)
}

func TestTemplatesSeedAndSearch(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "", "templates", "seed")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Added 3 standard template(s)")

	res = execute(t, dir, "", "templates", "search", "loft", "-C", "facade")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Industrial Loft")
}

func TestHistoryCommand(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, execute(t, dir, "", "generate", "architecture").err)
	require.NoError(t, execute(t, dir, "", "generate", "facade").err)

	res := execute(t, dir, "", "history", "--format", "json")
	require.NoError(t, res.err)
	var entries []models.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, models.CategoryArchitecture, entries[0].Category)
	assert.Equal(t, models.CategoryFacade, entries[1].Category)

	res = execute(t, dir, "", "history", "--raw", "-n", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "## Facade")
	assert.NotContains(t, res.stdout, "## Architecture")

	res = execute(t, dir, "", "history", "--format", "xml")
	assert.True(t, errors.IsCode(res.err, errors.ErrCodeInvalidInput), "%v", res.err)

	require.NoError(t, execute(t, dir, "", "history", "--clear").err)
	res = execute(t, dir, "", "history", "--raw")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No prompts generated yet")
}

func TestProcessCommand(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "a  b   c\n  l2 \n", "process", "--optimize")
	require.NoError(t, res.err)
	assert.Equal(t, "a b  c\nl2\n", res.stdout)

	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("1\n2\n3\n4"), 0644))
	res = execute(t, dir, "", "process", input, "--shorten", "--lines", "2")
	require.NoError(t, res.err)
	assert.Equal(t, "1\n2\n[...]\n", res.stdout)

	res = execute(t, dir, "", "process", filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.IsCode(res.err, errors.ErrCodeIOFailure), "%v", res.err)
}

func TestSchemaAndCategories(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "", "categories")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "source-code")
	assert.Equal(t, 7, strings.Count(res.stdout, "fields\n"))

	res = execute(t, dir, "", "schema", "facade", "--format", "json")
	require.NoError(t, res.err)
	var fields []models.FieldSpec
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &fields))
	var windows models.FieldSpec
	for _, f := range fields {
		if f.Name == "windows" {
			windows = f
		}
	}
	assert.Equal(t, models.KindBoundedInteger, windows.Kind)
	assert.Equal(t, 10, windows.Max)

	res = execute(t, dir, "", "schema", "facade")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "range=1..10")
}

func TestInitAndVersion(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "", "init", "--seed")
	require.NoError(t, res.err)
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	assert.Contains(t, res.stdout, "Added 3 standard template(s)")

	res = execute(t, dir, "", "init")
	assert.True(t, errors.IsCode(res.err, errors.ErrCodeInvalidInput), "%v", res.err)
	require.NoError(t, execute(t, dir, "", "init", "--force").err)

	res = execute(t, dir, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "pocket-composer test\n", res.stdout)
}

func TestRootStartsTUI(t *testing.T) {
	dir := t.TempDir()
	var started bool
	a := &app{
		clipboard: &fakeClipboard{},
		runTUI: func(svc *service.Service, logger *zap.Logger) error {
			started = svc != nil
			return nil
		},
	}
	t.Cleanup(a.teardown)

	cmd := newRootCmd(a)
	cmd.SetArgs([]string{"--dir", dir})
	require.NoError(t, cmd.Execute())
	assert.True(t, started)
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"color=red", " details = ", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, []assignment{{"color", "red"}, {"details", " "}, {"note", "a=b"}}, got)

	_, err = parseAssignments([]string{"=red"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}
