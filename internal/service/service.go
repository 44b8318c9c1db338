// Package service is the composition engine behind both front ends.
//
// The Service owns the active category, the live field values, the active
// prompt and the template and history stores. Front ends call its methods
// synchronously; none of them registers callbacks or touches widgets.
// Every mutation builds its new state first and swaps it in only after any
// store write succeeded.
package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/dpshade/pocket-composer/internal/clipboard"
	"github.com/dpshade/pocket-composer/internal/config"
	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/postprocess"
	"github.com/dpshade/pocket-composer/internal/renderer"
	"github.com/dpshade/pocket-composer/internal/schema"
	"github.com/dpshade/pocket-composer/internal/storage"
	"github.com/dpshade/pocket-composer/internal/validation"
)

// Options configures NewService
type Options struct {
	Config *config.Config
	Logger *zap.Logger
	// Clipboard defaults to the system clipboard
	Clipboard clipboard.Writer
	// Now defaults to time.Now
	Now func() time.Time
	// NoHistory skips recording generated prompts
	NoHistory bool
}

// Service provides the engine operations
type Service struct {
	cfg       *config.Config
	logger    *zap.Logger
	storage   *storage.Storage
	templates *storage.TemplateStore
	history   storage.HistoryStore
	clipboard clipboard.Writer
	now       func() time.Time
	noHistory bool

	loadResult storage.LoadResult

	category models.Category
	values   models.FieldValues
	prompt   string
	warnings []*errors.AppError
}

// NewService opens the stores described by the config and starts on the first category
func NewService(opts Options) (*Service, error) {
	cfg := opts.Config
	if cfg == nil {
		dir, err := config.DataDir("")
		if err != nil {
			return nil, err
		}
		cfg = config.Default(dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.System{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	store, err := storage.NewStorage(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := store.InitLibrary(); err != nil {
		return nil, errors.IOFailure("create data directory", err)
	}

	history, err := storage.OpenHistory(storage.HistoryOptions{
		Backend:    cfg.History.Backend,
		Path:       cfg.HistoryPath(),
		MaxEntries: cfg.History.MaxEntries,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	templates := storage.NewTemplateStore(cfg.TemplatesPath(), cfg.Legacy(), logger)

	svc := &Service{
		cfg:        cfg,
		logger:     logger,
		storage:    store,
		templates:  templates,
		history:    history,
		clipboard:  clip,
		now:        now,
		noHistory:  opts.NoHistory,
		loadResult: templates.Load(),
	}

	if err := svc.SwitchCategory(models.AllCategories[0]); err != nil {
		history.Close()
		return nil, err
	}

	logger.Debug("Service ready",
		zap.String("data_dir", cfg.DataDir),
		zap.String("templates_status", string(svc.loadResult.Status)),
		zap.String("history_backend", cfg.History.Backend))

	return svc, nil
}

// Close releases the history backend
func (s *Service) Close() error {
	return s.history.Close()
}

// Config returns the active configuration
func (s *Service) Config() *config.Config {
	return s.cfg
}

// GetBaseDir returns the data directory
func (s *Service) GetBaseDir() string {
	return s.storage.GetBaseDir()
}

// TemplateLoadResult tells whether templates were missing, loaded or recovered from a corrupt file
func (s *Service) TemplateLoadResult() storage.LoadResult {
	return s.loadResult
}

// ListCategories returns every category in display order
func (s *Service) ListCategories() []models.Category {
	return schema.Categories()
}

// SchemaFor returns the fields of category
func (s *Service) SchemaFor(category models.Category) ([]models.FieldSpec, error) {
	return schema.For(category)
}

// Category returns the active category
func (s *Service) Category() models.Category {
	return s.category
}

// SwitchCategory makes category active with its default values. The prompt is cleared.
func (s *Service) SwitchCategory(category models.Category) error {
	defaults, err := schema.Defaults(category)
	if err != nil {
		return err
	}

	s.category = category
	s.values = defaults
	s.prompt = ""
	s.warnings = nil
	return nil
}

// GetValues returns a copy of the live values
func (s *Service) GetValues() models.FieldValues {
	return s.values.Clone()
}

// SetValues replaces the live values. Fields left out take their defaults;
// fields the category does not declare are dropped and reported.
func (s *Service) SetValues(values models.FieldValues) ([]*errors.AppError, error) {
	next, err := schema.Defaults(s.category)
	if err != nil {
		return nil, err
	}

	var warnings []*errors.AppError
	for name, value := range values {
		if _, known := next[name]; !known {
			warnings = append(warnings, errors.ValidationWarning(name,
				fmt.Sprintf("Field '%s' is not part of %s and was ignored", name, s.category)))
			continue
		}
		next[name] = value
	}

	s.values = next
	return warnings, nil
}

// SetField sets one live value as entered; it is validated when the prompt is generated
func (s *Service) SetField(name string, value interface{}) error {
	if err := validation.CheckField(s.category, name); err != nil {
		return err
	}
	next := s.values.Clone()
	next[name] = value
	s.values = next
	return nil
}

// Generate composes the prompt from the live values, makes it the active prompt and records it in history.
// A history failure is logged and does not fail the generation.
func (s *Service) Generate() (string, error) {
	prompt, result, err := renderer.ComposeDetailed(s.category, s.values)
	if err != nil {
		return "", err
	}

	s.prompt = prompt
	s.warnings = result.Warnings

	for _, w := range result.Warnings {
		s.logger.Debug("Field fell back to default",
			zap.String("category", string(s.category)),
			zap.Any("field", w.Context["field"]),
			zap.String("reason", w.Message))
	}

	if !s.noHistory {
		if err := s.history.Record(models.HistoryEntry{
			Category: s.category,
			Date:     s.now(),
			Prompt:   prompt,
		}); err != nil {
			s.logger.Warn("Failed to record history", zap.String("category", string(s.category)), zap.Error(err))
		}
	}

	s.logger.Info("Generated prompt", zap.String("category", string(s.category)), zap.Int("length", len(prompt)))
	return prompt, nil
}

// Warnings returns the validation warnings of the last generation
func (s *Service) Warnings() []*errors.AppError {
	return s.warnings
}

// Prompt returns the active prompt
func (s *Service) Prompt() string {
	return s.prompt
}

// SetPrompt replaces the active prompt, e.g. after the user edited the preview
func (s *Service) SetPrompt(prompt string) {
	s.prompt = prompt
}

// Optimize normalizes the active prompt. An empty prompt is left alone.
func (s *Service) Optimize() string {
	if strings.TrimSpace(s.prompt) == "" {
		return s.prompt
	}
	s.prompt = postprocess.Normalize(s.prompt)
	return s.prompt
}

// Shorten truncates the active prompt to the configured number of lines
func (s *Service) Shorten() string {
	s.prompt = postprocess.Truncate(s.prompt, s.cfg.PostProcess.TruncateLines)
	return s.prompt
}

// Expand appends the category's elaboration clause to the active prompt
func (s *Service) Expand() string {
	s.prompt = postprocess.Expand(s.category, s.prompt)
	return s.prompt
}

// SaveTemplate stores the live values under name in the active category
func (s *Service) SaveTemplate(name string) error {
	return s.templates.Upsert(s.category, name, s.values)
}

// LoadTemplate replaces the live values with a saved template
func (s *Service) LoadTemplate(name string) ([]*errors.AppError, error) {
	values, ok := s.templates.Get(s.category, name)
	if !ok {
		return nil, errors.NotFoundError(fmt.Sprintf("template %q in %s", name, s.category))
	}
	return s.SetValues(values)
}

// DeleteTemplate removes a saved template and reports whether it existed
func (s *Service) DeleteTemplate(name string) (bool, error) {
	return s.templates.Delete(s.category, name)
}

// ListTemplates returns the saved templates of the active category sorted by name
func (s *Service) ListTemplates() []models.SavedTemplate {
	return s.templates.List(s.category)
}

// GetTemplate returns one saved template of the active category
func (s *Service) GetTemplate(name string) (models.SavedTemplate, error) {
	values, ok := s.templates.Get(s.category, name)
	if !ok {
		return models.SavedTemplate{}, errors.NotFoundError(fmt.Sprintf("template %q in %s", name, s.category))
	}
	return models.SavedTemplate{Category: s.category, Name: name, Values: values}, nil
}

// SearchTemplates fuzzy-matches query against the names and values of the active category's templates
func (s *Service) SearchTemplates(query string) []models.SavedTemplate {
	templates := s.ListTemplates()
	if strings.TrimSpace(query) == "" {
		return templates
	}

	// Create searchable strings for each template
	searchStrings := make([]string, len(templates))
	for i, t := range templates {
		searchStrings[i] = fmt.Sprintf("%s %s", t.Name, t.Description())
	}

	matches := fuzzy.Find(query, searchStrings)

	results := make([]models.SavedTemplate, 0, len(matches))
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}
	return results
}

// SeedTemplates adds the standard templates that are missing
func (s *Service) SeedTemplates() (int, error) {
	return s.templates.SeedDefaults()
}

// ExportDocument snapshots the active prompt with its resolved field values
func (s *Service) ExportDocument() (models.ExportDocument, error) {
	if strings.TrimSpace(s.prompt) == "" {
		return models.ExportDocument{}, errors.InvalidInputError("no prompt to export; generate one first")
	}

	fields := s.values.Clone()
	if resolved, err := validation.Resolve(s.category, s.values); err == nil {
		fields = resolved.Values
	}
	return storage.NewExportDocument(s.category, s.prompt, fields, s.now()), nil
}

// ExportTo writes the active prompt to path and returns the path written.
// An empty path builds a default name in the export directory; an empty format is inferred from the path.
func (s *Service) ExportTo(path string, format storage.ExportFormat) (string, error) {
	doc, err := s.ExportDocument()
	if err != nil {
		return "", err
	}

	if path == "" {
		if format == "" {
			format = storage.ExportText
		}
		path = filepath.Join(s.cfg.ExportDir(), storage.DefaultExportName(s.category, s.now(), format))
	}
	if format == "" {
		format = storage.FormatFromPath(path)
	}

	if err := storage.Export(doc, path, format); err != nil {
		return "", err
	}

	s.logger.Info("Exported prompt", zap.String("path", path), zap.String("format", string(format)))
	return path, nil
}

// History returns the newest n entries oldest first; n <= 0 uses the configured display limit
func (s *Service) History(n int) ([]models.HistoryEntry, error) {
	if n <= 0 {
		n = s.cfg.History.DisplayLimit
	}
	return s.history.Recent(n)
}

// ClearHistory removes every history entry
func (s *Service) ClearHistory() error {
	return s.history.Clear()
}

// CopyToClipboard copies the active prompt and returns a status message
func (s *Service) CopyToClipboard() (string, error) {
	if strings.TrimSpace(s.prompt) == "" {
		return "", errors.InvalidInputError("no prompt to copy; generate one first")
	}
	return clipboard.CopyWithFallback(s.clipboard, s.prompt)
}
