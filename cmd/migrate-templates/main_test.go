package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyTemplates = `{
  "Loft": {
    "style": "industrial",
    "windows": 6
  }
}
`

func runMigrate(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newMigrateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeLegacy(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "prompt_templates.json")
	require.NoError(t, os.WriteFile(path, []byte(legacyTemplates), 0644))
	return dir, path
}

func TestMigrateConfirmed(t *testing.T) {
	dir, path := writeLegacy(t)

	out, err := runMigrate(t, "y\n", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "  - Loft")
	assert.Contains(t, out, "Migration completed!")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "industrial", doc["Facade"]["Loft"]["style"])

	out, err = runMigrate(t, "", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "already holds categories")
}

func TestMigrateCancelled(t *testing.T) {
	dir, path := writeLegacy(t)

	out, err := runMigrate(t, "n\n", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Migration cancelled")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, legacyTemplates, string(data))
}

func TestMigrateWithConfigAndYes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.json")
	require.NoError(t, os.WriteFile(path, []byte(legacyTemplates), 0644))
	configPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("templates_file: mine.json\nlegacy_category: Architecture\n"), 0644))

	out, err := runMigrate(t, "", "--dir", dir, "--config", configPath, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "filed under Architecture")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Architecture": {`)
}

func TestMigrateMissingFile(t *testing.T) {
	out, err := runMigrate(t, "", "--dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "migration not needed")
}
