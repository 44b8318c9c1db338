package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger at level writing to outputs ("stderr", "stdout" or file paths).
// Console encoding is used for the terminal and JSON for files.
func New(level string, outputs ...string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	var cfg zap.Config
	if toTerminal(outputs) {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Sampling = nil
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = []string{"stderr"}

	for _, out := range outputs {
		if isStream(out) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return cfg.Build()
}

// ParseLevel maps debug, info, warn and error to zap levels
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

func toTerminal(outputs []string) bool {
	for _, out := range outputs {
		if !isStream(out) {
			return false
		}
	}
	return true
}

func isStream(out string) bool {
	return out == "stderr" || out == "stdout"
}
