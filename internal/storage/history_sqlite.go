package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

// SQLiteHistory keeps the history in a SQLite table
type SQLiteHistory struct {
	db         *sql.DB
	maxEntries int
	logger     *zap.Logger
}

// NewSQLiteHistory opens (creating if needed) the history database at path
func NewSQLiteHistory(path string, maxEntries int, logger *zap.Logger) (*SQLiteHistory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxEntries <= 0 {
		maxEntries = DefaultHistoryMaxEntries
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.IOFailure("create history directory", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.IOFailure("open history database", err)
	}

	h := &SQLiteHistory{db: db, maxEntries: maxEntries, logger: logger.Named("history")}
	if err := h.init(); err != nil {
		db.Close()
		return nil, errors.IOFailure("initialize history database", err)
	}
	return h, nil
}

// init creates the history table if it doesn't exist
func (h *SQLiteHistory) init() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			seq       INTEGER PRIMARY KEY AUTOINCREMENT,
			id        TEXT NOT NULL UNIQUE,
			category  TEXT NOT NULL,
			date      TEXT NOT NULL,
			prompt    TEXT NOT NULL
		);
	`)
	return err
}

// Record inserts an entry and deletes everything beyond the retention limit
func (h *SQLiteHistory) Record(entry models.HistoryEntry) error {
	entry = stamp(entry)

	tx, err := h.db.Begin()
	if err != nil {
		return errors.IOFailure("begin history transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO history (id, category, date, prompt) VALUES (?, ?, ?, ?)`,
		entry.ID, string(entry.Category), entry.Date.Format(time.RFC3339Nano), entry.Prompt,
	); err != nil {
		return errors.IOFailure("insert history entry", err)
	}

	if _, err := tx.Exec(
		`DELETE FROM history WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`,
		h.maxEntries,
	); err != nil {
		return errors.IOFailure("trim history", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.IOFailure("commit history entry", err)
	}
	return nil
}

// Recent returns the newest n entries oldest first
func (h *SQLiteHistory) Recent(n int) ([]models.HistoryEntry, error) {
	limit := n
	if limit <= 0 {
		limit = -1
	}

	rows, err := h.db.Query(
		`SELECT id, category, date, prompt FROM history ORDER BY seq DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, errors.IOFailure("query history", err)
	}
	defer rows.Close()

	var newestFirst []models.HistoryEntry
	for rows.Next() {
		var (
			entry    models.HistoryEntry
			category string
			date     string
		)
		if err := rows.Scan(&entry.ID, &category, &date, &entry.Prompt); err != nil {
			return nil, errors.IOFailure("scan history entry", err)
		}
		entry.Category = models.Category(category)
		entry.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			h.logger.Warn("Unparseable history date", zap.String("id", entry.ID), zap.String("date", date))
		}
		newestFirst = append(newestFirst, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.IOFailure("read history", err)
	}

	entries := make([]models.HistoryEntry, len(newestFirst))
	for i, e := range newestFirst {
		entries[len(newestFirst)-1-i] = e
	}
	return entries, nil
}

// Clear removes every entry
func (h *SQLiteHistory) Clear() error {
	if _, err := h.db.Exec(`DELETE FROM history`); err != nil {
		return errors.IOFailure("clear history", err)
	}
	return nil
}

// Close closes the database
func (h *SQLiteHistory) Close() error {
	if err := h.db.Close(); err != nil {
		return fmt.Errorf("failed to close history database: %w", err)
	}
	return nil
}
