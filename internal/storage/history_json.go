package storage

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

// JSONHistory keeps the history as a JSON array rewritten on every append
type JSONHistory struct {
	filePath   string
	maxEntries int
	logger     *zap.Logger
}

// NewJSONHistory creates a JSON file history
func NewJSONHistory(filePath string, maxEntries int, logger *zap.Logger) *JSONHistory {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxEntries <= 0 {
		maxEntries = DefaultHistoryMaxEntries
	}
	return &JSONHistory{
		filePath:   filePath,
		maxEntries: maxEntries,
		logger:     logger.Named("history"),
	}
}

// load reads all entries. A missing file is an empty history.
func (h *JSONHistory) load() ([]models.HistoryEntry, error) {
	data, err := os.ReadFile(h.filePath)
	if os.IsNotExist(err) {
		return []models.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, errors.IOFailure("read history", err)
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.CorruptedFileError(h.filePath, err)
	}
	return entries, nil
}

func (h *JSONHistory) save(entries []models.HistoryEntry) error {
	data, err := encodeJSON(entries)
	if err != nil {
		return errors.IOFailure("encode history", err)
	}
	if err := writeFileAtomic(h.filePath, data); err != nil {
		return errors.IOFailure("write history", err)
	}
	return nil
}

// Record appends an entry and trims the file to the retention limit.
// A corrupt history file is moved aside and a fresh one started.
func (h *JSONHistory) Record(entry models.HistoryEntry) error {
	entries, err := h.load()
	if errors.IsCode(err, errors.ErrCodeFileCorrupted) {
		backup := h.filePath + ".corrupt"
		h.logger.Warn("History file is corrupted, starting a new one",
			zap.String("path", h.filePath),
			zap.String("backup", backup),
			zap.Error(err))
		if renameErr := os.Rename(h.filePath, backup); renameErr != nil {
			return errors.IOFailure("move corrupt history aside", renameErr)
		}
		entries, err = []models.HistoryEntry{}, nil
	}
	if err != nil {
		return err
	}

	entries = append(entries, stamp(entry))
	if len(entries) > h.maxEntries {
		entries = entries[len(entries)-h.maxEntries:]
	}
	return h.save(entries)
}

// Recent returns the newest n entries oldest first
func (h *JSONHistory) Recent(n int) ([]models.HistoryEntry, error) {
	entries, err := h.load()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Clear removes every entry
func (h *JSONHistory) Clear() error {
	if err := os.Remove(h.filePath); err != nil && !os.IsNotExist(err) {
		return errors.IOFailure("clear history", err)
	}
	return nil
}

// Close is a no-op; the file is not held open
func (h *JSONHistory) Close() error {
	return nil
}
