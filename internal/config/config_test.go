package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "prompt_templates.json"), cfg.TemplatesPath())
	assert.Equal(t, models.CategoryFacade, cfg.Legacy())
	assert.Equal(t, 500, cfg.History.MaxEntries)
	assert.Equal(t, 20, cfg.History.DisplayLimit)
	assert.Equal(t, 5, cfg.PostProcess.TruncateLines)
	assert.Equal(t, filepath.Join(dir, "prompt_history.json"), cfg.HistoryPath())
	assert.Equal(t, ".", cfg.ExportDir())
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
legacy_category: architecture
history:
  backend: sqlite
  max_entries: 50
logging:
  level: debug
  file: /var/log/composer.log
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryArchitecture, cfg.Legacy())
	assert.Equal(t, 50, cfg.History.MaxEntries)
	assert.Equal(t, 20, cfg.History.DisplayLimit)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.HistoryPath())
	assert.Equal(t, "/var/log/composer.log", cfg.LogPath())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"backend", func(c *Config) { c.History.Backend = "redis" }},
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
		{"legacy category", func(c *Config) { c.LegacyCategory = "Poetry" }},
		{"max entries", func(c *Config) { c.History.MaxEntries = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(cfg)
			assert.True(t, errors.IsCode(cfg.Validate(), errors.ErrCodeConfiguration))
		})
	}
}

func TestInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("history: [nope"), 0644))
	_, err := Load("", dir)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := Default(dir)
	cfg.History.Backend = "sqlite"
	path := filepath.Join(dir, FileName)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDataDirPrecedence(t *testing.T) {
	t.Setenv(EnvDataDir, "/from/env")

	dir, err := DataDir("/from/flag")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", dir)

	dir, err = DataDir("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env", dir)
}
