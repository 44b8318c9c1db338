package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

const (
	// EnvDataDir overrides the default data directory
	EnvDataDir = "POCKET_COMPOSER_DIR"
	// FileName is the config file name inside the data directory
	FileName = "config.yaml"
)

// Config holds the user settings of pocket-composer
type Config struct {
	TemplatesFile  string            `yaml:"templates_file"`
	LegacyCategory string            `yaml:"legacy_category"`
	History        HistoryConfig     `yaml:"history"`
	PostProcess    PostProcessConfig `yaml:"postprocess"`
	Export         ExportConfig      `yaml:"export"`
	Logging        LoggingConfig     `yaml:"logging"`

	// DataDir is where relative paths resolve; it is not read from the file
	DataDir string `yaml:"-"`
}

// HistoryConfig selects and bounds the history backend
type HistoryConfig struct {
	Backend      string `yaml:"backend"`
	File         string `yaml:"file"`
	SQLitePath   string `yaml:"sqlite_path"`
	MaxEntries   int    `yaml:"max_entries"`
	DisplayLimit int    `yaml:"display_limit"`
}

// PostProcessConfig tunes the prompt transforms
type PostProcessConfig struct {
	TruncateLines int `yaml:"truncate_lines"`
}

// ExportConfig sets where exports go when no path is given
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration for dataDir
func Default(dataDir string) *Config {
	return &Config{
		TemplatesFile:  "prompt_templates.json",
		LegacyCategory: string(models.CategoryFacade),
		History: HistoryConfig{
			Backend:      "json",
			File:         "prompt_history.json",
			SQLitePath:   "history.db",
			MaxEntries:   500,
			DisplayLimit: 20,
		},
		PostProcess: PostProcessConfig{TruncateLines: 5},
		Export:      ExportConfig{Dir: "."},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join("logs", "composer.log"),
		},
		DataDir: dataDir,
	}
}

// DataDir returns the data directory: flag value, then $POCKET_COMPOSER_DIR, then ~/.pocket-composer
func DataDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return env, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pocket-composer"), nil
}

// Load reads the config file at path over the defaults. A missing file yields the defaults.
func Load(path, dataDir string) (*Config, error) {
	cfg := Default(dataDir)
	if path == "" {
		path = filepath.Join(dataDir, FileName)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.IOFailure("read config", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigurationError("invalid config file %s: %v", path, err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot honour
func (c *Config) Validate() error {
	switch strings.ToLower(c.History.Backend) {
	case "json", "sqlite":
	default:
		return errors.ConfigurationError("unknown history backend %q (use json or sqlite)", c.History.Backend)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.ConfigurationError("unknown log level %q", c.Logging.Level)
	}

	if _, ok := models.ParseCategory(c.LegacyCategory); !ok {
		return errors.ConfigurationError("unknown legacy category %q", c.LegacyCategory)
	}
	if c.History.MaxEntries <= 0 {
		return errors.ConfigurationError("history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	if c.History.DisplayLimit <= 0 {
		return errors.ConfigurationError("history.display_limit must be positive, got %d", c.History.DisplayLimit)
	}
	if c.TemplatesFile == "" {
		return errors.ConfigurationError("templates_file must not be empty")
	}
	return nil
}

// Save writes the config as YAML to path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.IOFailure("create config directory", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.IOFailure("write config", err)
	}
	return nil
}

// Legacy returns the parsed legacy category
func (c *Config) Legacy() models.Category {
	cat, ok := models.ParseCategory(c.LegacyCategory)
	if !ok {
		return models.CategoryFacade
	}
	return cat
}

// Path resolves p against the data directory unless it is absolute
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// TemplatesPath returns the absolute template file path
func (c *Config) TemplatesPath() string { return c.Path(c.TemplatesFile) }

// HistoryPath returns the path of the configured history backend
func (c *Config) HistoryPath() string {
	if strings.EqualFold(c.History.Backend, "sqlite") {
		return c.Path(c.History.SQLitePath)
	}
	return c.Path(c.History.File)
}

// LogPath returns the absolute log file path
func (c *Config) LogPath() string { return c.Path(c.Logging.File) }

// ExportDir returns the directory default export names are placed in.
// "." keeps the working directory.
func (c *Config) ExportDir() string {
	if c.Export.Dir == "" || c.Export.Dir == "." {
		return "."
	}
	return c.Path(c.Export.Dir)
}
