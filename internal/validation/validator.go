// Package validation resolves raw field values against a category's schema.
//
// SYSTEM ARCHITECTURE ROLE:
// This module sits between the live field values and prompt composition. It
// turns whatever the front end or a saved template supplied into a complete,
// typed value set so composition is total.
//
// KEY RESPONSIBILITIES:
// - Fill missing fields with their schema defaults (silently)
// - Replace empty required fields and unusable numbers with defaults, reporting a warning
// - Coerce textual booleans and integers into their native types
// - Report, and drop, fields the category does not declare
//
// INTEGRATION POINTS:
// - internal/schema: field declarations and defaults
// - internal/renderer: Compose resolves values before executing a template
// - internal/service: SetField checks field names with CheckField
// - internal/errors: every finding is a VALIDATION_WARNING AppError
//
// Validation never fails a composition. The only error Resolve returns is a
// ConfigurationError for an unknown category.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/schema"
)

// Result is the outcome of resolving one value set
type Result struct {
	Category models.Category
	Values   models.FieldValues
	Warnings []*errors.AppError
}

// HasWarnings reports whether any field fell back or was dropped
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// WarningMessages returns the warning texts in field order
func (r *Result) WarningMessages() []string {
	msgs := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		msgs[i] = w.Message
	}
	return msgs
}

func (r *Result) warn(field, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, errors.ValidationWarning(field, fmt.Sprintf(format, args...)))
}

// Resolve returns the complete, typed value set for category.
// Resolved values are string for text kinds, bool for booleans and int for bounded integers.
func Resolve(category models.Category, values models.FieldValues) (*Result, error) {
	fields, err := schema.For(category)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Category: category,
		Values:   make(models.FieldValues, len(fields)),
	}

	known := make(map[string]bool, len(fields))
	for _, field := range fields {
		known[field.Name] = true
		raw, exists := values[field.Name]
		if !exists || raw == nil {
			result.Values[field.Name] = field.Default
			continue
		}
		result.Values[field.Name] = resolveField(field, raw, result)
	}

	var unknown []string
	for name := range values {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		result.warn(name, "Field '%s' is not part of %s and was ignored", name, category)
	}

	return result, nil
}

func resolveField(field models.FieldSpec, raw interface{}, result *Result) interface{} {
	switch field.Kind {
	case models.KindBoolean:
		b, ok := models.ParseBool(raw)
		if !ok {
			result.warn(field.Name, "Field '%s' expects yes/no, got %q; using default", field.Name, models.FormatValue(raw))
			return field.DefaultBool()
		}
		return b

	case models.KindBoundedInteger:
		n, ok := models.ParseInt(raw)
		if !ok {
			result.warn(field.Name, "Field '%s' expects a whole number, got %q; using %d",
				field.Name, models.FormatValue(raw), field.DefaultInt())
			return field.DefaultInt()
		}
		if !field.InRange(n) {
			result.warn(field.Name, "Field '%s' must be between %d and %d, got %d; using %d",
				field.Name, field.Min, field.Max, n, field.DefaultInt())
			return field.DefaultInt()
		}
		return n

	default:
		s := models.FormatValue(raw)
		if field.Required && strings.TrimSpace(s) == "" {
			result.warn(field.Name, "Field '%s' is required; using default %q", field.Name, field.DefaultString())
			return field.DefaultString()
		}
		return s
	}
}

// CheckField returns a ConfigurationError when category does not declare name
func CheckField(category models.Category, name string) error {
	_, err := schema.Field(category, name)
	return err
}

// Coerce converts a single raw value the way Resolve would, returning the warning if it fell back
func Coerce(category models.Category, name string, raw interface{}) (interface{}, *errors.AppError, error) {
	field, err := schema.Field(category, name)
	if err != nil {
		return nil, nil, err
	}
	result := &Result{Category: category}
	value := resolveField(field, raw, result)
	if result.HasWarnings() {
		return value, result.Warnings[0], nil
	}
	return value, nil, nil
}
