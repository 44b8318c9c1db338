package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/validation"
)

// Renderer composes prompts from field values using one fixed template per category
type Renderer struct {
	templates map[models.Category]*template.Template
}

var defaultRenderer = NewRenderer()

// NewRenderer parses every category template
func NewRenderer() *Renderer {
	r := &Renderer{templates: make(map[models.Category]*template.Template, len(promptTemplates))}
	for cat, text := range promptTemplates {
		r.templates[cat] = template.Must(
			template.New(cat.Slug()).Funcs(funcs).Option("missingkey=error").Parse(text),
		)
	}
	return r
}

// Compose renders the prompt for category with the default renderer
func Compose(category models.Category, values models.FieldValues) (string, error) {
	return defaultRenderer.Compose(category, values)
}

// ComposeDetailed renders with the default renderer and also returns the validation result
func ComposeDetailed(category models.Category, values models.FieldValues) (string, *validation.Result, error) {
	return defaultRenderer.ComposeDetailed(category, values)
}

// Compose renders the prompt text. Missing fields take their defaults.
func (r *Renderer) Compose(category models.Category, values models.FieldValues) (string, error) {
	text, _, err := r.ComposeDetailed(category, values)
	return text, err
}

// ComposeDetailed renders the prompt text and returns the resolved values and warnings
func (r *Renderer) ComposeDetailed(category models.Category, values models.FieldValues) (string, *validation.Result, error) {
	resolved, err := validation.Resolve(category, values)
	if err != nil {
		return "", nil, err
	}

	// Free-form prompts are passed through untouched
	if category == models.CategoryCustom {
		return resolved.Values.String("custom_prompt"), resolved, nil
	}

	tmpl, ok := r.templates[category]
	if !ok {
		return "", nil, errors.ConfigurationError("no prompt template for category %q", category)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}(resolved.Values)); err != nil {
		return "", nil, errors.Wrap(err, errors.ErrCodeInternalError, fmt.Sprintf("failed to execute %s template", category))
	}

	return buf.String(), resolved, nil
}

var funcs = template.FuncMap{
	"lower":   func(v interface{}) string { return strings.ToLower(models.FormatValue(v)) },
	"trim":    func(v interface{}) string { return strings.TrimSpace(models.FormatValue(v)) },
	"plural":  plural,
	"article": article,
}

// plural picks the singular form for a count of exactly one
func plural(n interface{}, singular, pluralForm string) string {
	if count, ok := models.ParseInt(n); ok && count == 1 {
		return singular
	}
	return pluralForm
}

// article prefixes a word with "a" or "an"
func article(v interface{}) string {
	word := models.FormatValue(v)
	if word == "" {
		return word
	}
	switch strings.ToLower(word[:1]) {
	case "a", "e", "i", "o", "u":
		return "an " + word
	}
	return "a " + word
}
