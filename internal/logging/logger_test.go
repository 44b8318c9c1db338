package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		"INFO":    "info",
		"warning": "warn",
		"error":   "error",
		"":        "info",
	}
	for in, want := range tests {
		lvl, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", in, err)
		}
		if lvl.String() != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, lvl, want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "composer.log")
	logger, err := New("info", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("generated prompt", zap.String("category", "Architecture"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), `"category":"Architecture"`) {
		t.Errorf("Expected structured JSON field, got %s", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("Debug entry should be filtered at info level")
	}
}
