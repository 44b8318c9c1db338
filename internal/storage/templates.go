package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
)

// FileFormat is the on-disk layout of the template file
type FileFormat string

const (
	// FormatLegacy is {templateName: {field: value}} for a single category
	FormatLegacy FileFormat = "legacy"
	// FormatMulti is {category: {templateName: {field: value}}}
	FormatMulti FileFormat = "multi"
)

// LoadStatus tells callers why a load produced the templates it did
type LoadStatus string

const (
	LoadMissing   LoadStatus = "missing"
	LoadOK        LoadStatus = "ok"
	LoadRecovered LoadStatus = "recovered"
)

// LoadResult describes the outcome of TemplateStore.Load
type LoadResult struct {
	Templates models.TemplateSet
	Status    LoadStatus
	Format    FileFormat
	// Cause is set when Status is LoadRecovered
	Cause error
}

// TemplateStore persists saved templates to a single JSON file.
// The whole file is rewritten on every mutation.
type TemplateStore struct {
	path           string
	legacyCategory models.Category
	logger         *zap.Logger

	templates models.TemplateSet
	format    FileFormat

	// bytes and contents of the last load or save, for byte-stable round trips
	raw      []byte
	snapshot models.TemplateSet
}

// NewTemplateStore creates a store for path. Legacy single-category files are read into legacyCategory.
func NewTemplateStore(path string, legacyCategory models.Category, logger *zap.Logger) *TemplateStore {
	if legacyCategory == "" {
		legacyCategory = models.CategoryFacade
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateStore{
		path:           path,
		legacyCategory: legacyCategory,
		logger:         logger.Named("templates"),
		templates:      models.TemplateSet{},
		format:         FormatMulti,
	}
}

// Path returns the backing file path
func (s *TemplateStore) Path() string {
	return s.path
}

// Format returns the layout that the next save will use for an unchanged category set
func (s *TemplateStore) Format() FileFormat {
	return s.format
}

// Load reads the template file. It never fails: a missing file gives an empty set
// and an unreadable or malformed file gives an empty set with Status LoadRecovered.
func (s *TemplateStore) Load() LoadResult {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.reset(FormatMulti)
		return LoadResult{Templates: models.TemplateSet{}, Status: LoadMissing, Format: FormatMulti}
	}
	if err != nil {
		return s.recover(errors.IOFailure("read templates", err))
	}

	set, format, err := decodeTemplates(data, s.legacyCategory)
	if err != nil {
		return s.recover(errors.CorruptedFileError(s.path, err))
	}

	s.templates = set
	s.format = format
	s.raw = data
	s.snapshot = set.Clone()

	for _, cat := range set.Categories() {
		if _, ok := models.ParseCategory(string(cat)); !ok {
			s.logger.Warn("Template file holds an unknown category", zap.String("category", string(cat)))
		}
	}
	s.logger.Debug("Loaded templates",
		zap.String("path", s.path),
		zap.String("format", string(format)),
		zap.Int("count", set.Count()))

	return LoadResult{Templates: set.Clone(), Status: LoadOK, Format: format}
}

func (s *TemplateStore) recover(cause *errors.AppError) LoadResult {
	s.logger.Warn("Template file could not be loaded, starting with no templates",
		zap.String("path", s.path),
		zap.Error(cause))
	s.reset(FormatMulti)
	return LoadResult{Templates: models.TemplateSet{}, Status: LoadRecovered, Format: FormatMulti, Cause: cause}
}

func (s *TemplateStore) reset(format FileFormat) {
	s.templates = models.TemplateSet{}
	s.format = format
	s.raw = nil
	s.snapshot = nil
}

// Save writes the whole set and, on success, makes it the store's state.
// On failure the store is left untouched and an IO_FAILURE error is returned.
func (s *TemplateStore) Save(set models.TemplateSet) error {
	format := s.formatFor(set)

	var data []byte
	if s.raw != nil && format == s.format && reflect.DeepEqual(set, s.snapshot) {
		data = s.raw
	} else {
		var err error
		data, err = encodeTemplates(set, format, s.legacyCategory)
		if err != nil {
			return errors.IOFailure("encode templates", err)
		}
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return errors.IOFailure("write templates", err)
	}

	if format != s.format {
		s.logger.Info("Template file upgraded", zap.String("from", string(s.format)), zap.String("to", string(format)))
	}
	s.templates = set.Clone()
	s.format = format
	s.raw = data
	s.snapshot = set.Clone()
	return nil
}

// formatFor keeps a legacy file legacy until it holds templates of a second category
func (s *TemplateStore) formatFor(set models.TemplateSet) FileFormat {
	if s.format != FormatLegacy {
		return s.format
	}
	for _, cat := range set.Categories() {
		if cat != s.legacyCategory && len(set[cat]) > 0 {
			return FormatMulti
		}
	}
	return FormatLegacy
}

// Upgrade rewrites a legacy file in the multi-category layout. It returns false
// when the file already uses that layout.
func (s *TemplateStore) Upgrade() (bool, error) {
	if s.format != FormatLegacy {
		return false, nil
	}
	data, err := encodeTemplates(s.templates, FormatMulti, s.legacyCategory)
	if err != nil {
		return false, errors.IOFailure("encode templates", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return false, errors.IOFailure("write templates", err)
	}

	s.logger.Info("Template file upgraded", zap.String("from", string(FormatLegacy)), zap.String("to", string(FormatMulti)))
	s.format = FormatMulti
	s.raw = data
	s.snapshot = s.templates.Clone()
	return true, nil
}

// Upsert inserts or overwrites one template and persists the store
func (s *TemplateStore) Upsert(category models.Category, name string, values models.FieldValues) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.InvalidInputError("template name must not be empty")
	}

	next := s.templates.Clone()
	next.Put(category, name, values.Clone())
	if err := s.Save(next); err != nil {
		return err
	}

	s.logger.Debug("Saved template", zap.String("category", string(category)), zap.String("name", name))
	return nil
}

// Delete removes one template. An absent template returns false and leaves the file alone.
func (s *TemplateStore) Delete(category models.Category, name string) (bool, error) {
	if _, ok := s.templates.Get(category, name); !ok {
		return false, nil
	}

	next := s.templates.Clone()
	next.Remove(category, name)
	if err := s.Save(next); err != nil {
		return false, err
	}

	s.logger.Debug("Deleted template", zap.String("category", string(category)), zap.String("name", name))
	return true, nil
}

// Get returns a copy of one template's values
func (s *TemplateStore) Get(category models.Category, name string) (models.FieldValues, bool) {
	values, ok := s.templates.Get(category, name)
	if !ok {
		return nil, false
	}
	return values.Clone(), true
}

// Names returns the sorted template names of category
func (s *TemplateStore) Names(category models.Category) []string {
	return s.templates.Names(category)
}

// List returns the templates of category sorted by name
func (s *TemplateStore) List(category models.Category) []models.SavedTemplate {
	names := s.templates.Names(category)
	out := make([]models.SavedTemplate, 0, len(names))
	for _, name := range names {
		out = append(out, models.SavedTemplate{
			Category: category,
			Name:     name,
			Values:   s.templates[category][name].Clone(),
		})
	}
	return out
}

// All returns a deep copy of every template
func (s *TemplateStore) All() models.TemplateSet {
	return s.templates.Clone()
}

func decodeTemplates(data []byte, legacyCategory models.Category) (models.TemplateSet, FileFormat, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, "", fmt.Errorf("invalid template JSON: %w", err)
	}
	if dec.More() {
		return nil, "", fmt.Errorf("unexpected data after template JSON")
	}

	set := models.TemplateSet{}
	if isMultiCategory(doc) {
		for cat, byName := range doc {
			inner := make(map[string]models.FieldValues, len(byName))
			for name, values := range byName {
				fields, ok := values.(map[string]interface{})
				if !ok {
					return nil, "", fmt.Errorf("template %q in %q is not an object", name, cat)
				}
				inner[name] = models.FieldValues(fields)
			}
			set[models.Category(cat)] = inner
		}
		return set, FormatMulti, nil
	}

	inner := make(map[string]models.FieldValues, len(doc))
	for name, values := range doc {
		inner[name] = models.FieldValues(values)
	}
	set[legacyCategory] = inner
	return set, FormatLegacy, nil
}

// isMultiCategory reports whether the document holds no scalar second-level value.
// A legacy template maps field names to strings, numbers or booleans; null proves nothing.
func isMultiCategory(doc map[string]map[string]interface{}) bool {
	for _, byName := range doc {
		for _, v := range byName {
			switch v.(type) {
			case string, json.Number, float64, bool:
				return false
			}
		}
	}
	return true
}

func encodeTemplates(set models.TemplateSet, format FileFormat, legacyCategory models.Category) ([]byte, error) {
	if format == FormatLegacy {
		inner := set[legacyCategory]
		if inner == nil {
			inner = map[string]models.FieldValues{}
		}
		return encodeJSON(inner)
	}

	doc := make(map[string]map[string]models.FieldValues, len(set))
	for cat, byName := range set {
		doc[string(cat)] = byName
	}
	return encodeJSON(doc)
}
