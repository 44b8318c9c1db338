package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

// ExportFormat selects how the active prompt is written
type ExportFormat string

const (
	ExportText ExportFormat = "text"
	ExportJSON ExportFormat = "json"
)

// ParseFormat accepts text, txt and json, case-insensitively
func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return ExportText, nil
	case "json":
		return ExportJSON, nil
	default:
		return "", errors.InvalidInputError(fmt.Sprintf("unknown export format %q (use text or json)", s))
	}
}

// FormatFromPath picks JSON for a .json destination and text otherwise
func FormatFromPath(path string) ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportJSON
	}
	return ExportText
}

// Extension returns the file extension without the dot
func (f ExportFormat) Extension() string {
	if f == ExportJSON {
		return "json"
	}
	return "txt"
}

// DefaultExportName builds prompt_<category>_<YYYYMMDD_HHMMSS>.<ext>
func DefaultExportName(category models.Category, t time.Time, format ExportFormat) string {
	slug := strings.ReplaceAll(category.Slug(), "-", "_")
	return fmt.Sprintf("prompt_%s_%s.%s", slug, t.Format("20060102_150405"), format.Extension())
}

// NewExportDocument snapshots the prompt and its field values
func NewExportDocument(category models.Category, prompt string, fields models.FieldValues, at time.Time) models.ExportDocument {
	if fields == nil {
		fields = models.FieldValues{}
	}
	return models.ExportDocument{
		Category:  category,
		Generated: at.Format(time.RFC3339),
		Prompt:    prompt,
		Fields:    fields.Clone(),
	}
}

// EncodeExport renders the document: the literal prompt for text, the whole document for JSON
func EncodeExport(doc models.ExportDocument, format ExportFormat) ([]byte, error) {
	switch format {
	case ExportJSON:
		encoded, err := encodeJSON(doc)
		if err != nil {
			return nil, errors.IOFailure("encode export", err)
		}
		return encoded, nil
	case ExportText:
		return []byte(doc.Prompt), nil
	default:
		return nil, errors.InvalidInputError(fmt.Sprintf("unknown export format %q", format))
	}
}

// Export writes the encoded document to destination
func Export(doc models.ExportDocument, destination string, format ExportFormat) error {
	data, err := EncodeExport(doc, format)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(destination, data); err != nil {
		return errors.IOFailure("write export", err).WithContext("destination", destination)
	}
	return nil
}
