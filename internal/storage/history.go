package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

const (
	// DefaultHistoryMaxEntries bounds what a history backend keeps
	DefaultHistoryMaxEntries = 500
	// DefaultHistoryDisplay is how many entries front ends show
	DefaultHistoryDisplay = 20
)

// History backends
const (
	HistoryBackendJSON   = "json"
	HistoryBackendSQLite = "sqlite"
)

// HistoryStore is an append-only, retention-bounded log of generated prompts
type HistoryStore interface {
	// Record appends an entry, assigning ID and Date when unset
	Record(entry models.HistoryEntry) error
	// Recent returns the newest n entries oldest first; n <= 0 returns everything kept
	Recent(n int) ([]models.HistoryEntry, error)
	Clear() error
	Close() error
}

// HistoryOptions configures OpenHistory
type HistoryOptions struct {
	Backend    string
	Path       string
	MaxEntries int
	Logger     *zap.Logger
}

// OpenHistory opens the configured history backend
func OpenHistory(opts HistoryOptions) (HistoryStore, error) {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultHistoryMaxEntries
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	switch strings.ToLower(opts.Backend) {
	case "", HistoryBackendJSON:
		return NewJSONHistory(opts.Path, opts.MaxEntries, opts.Logger), nil
	case HistoryBackendSQLite:
		return NewSQLiteHistory(opts.Path, opts.MaxEntries, opts.Logger)
	default:
		return nil, errors.ConfigurationError("unknown history backend %q", opts.Backend)
	}
}

// stamp fills the generated fields of an entry
func stamp(entry models.HistoryEntry) models.HistoryEntry {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	return entry
}

// FormatHistoryMarkdown renders entries newest first as a markdown document
func FormatHistoryMarkdown(entries []models.HistoryEntry) string {
	if len(entries) == 0 {
		return "# Prompt history\n\n_No prompts generated yet._\n"
	}

	var b strings.Builder
	b.WriteString("# Prompt history\n")
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(&b, "\n## %s\n\n", e.Category)
		fmt.Fprintf(&b, "*%s*\n\n", e.Date.Local().Format("2006-01-02 15:04:05"))
		b.WriteString("```\n")
		b.WriteString(strings.TrimRight(e.Prompt, "\n"))
		b.WriteString("\n```\n")
	}
	return b.String()
}
