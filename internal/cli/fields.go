package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/service"
	"github.com/dpshade/pocket-composer/internal/validation"
)

type assignment struct {
	name  string
	value string
}

// parseAssignments splits repeated --set name=value flags, keeping their order
func parseAssignments(sets []string) ([]assignment, error) {
	out := make([]assignment, 0, len(sets))
	for _, set := range sets {
		name, value, ok := strings.Cut(set, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.InvalidInputError(fmt.Sprintf("--set expects name=value, got %q", set))
		}
		out = append(out, assignment{name: name, value: value})
	}
	return out, nil
}

// applyAssignments coerces each value against the active category and stores it.
// Values that fall back to a default are reported on w.
func (a *app) applyAssignments(svc *service.Service, assignments []assignment, w io.Writer) error {
	for _, as := range assignments {
		value, warning, err := validation.Coerce(svc.Category(), as.name, as.value)
		if err != nil {
			return err
		}
		if warning != nil {
			a.warn(w, warning)
		}
		if err := svc.SetField(as.name, value); err != nil {
			return err
		}
	}
	return nil
}

func parseCategoryArg(arg string) (models.Category, error) {
	cat, ok := models.ParseCategory(arg)
	if !ok {
		return "", errors.ConfigurationError("unknown category %q (run 'pocket-composer categories')", arg)
	}
	return cat, nil
}

func sortedKeys(values models.FieldValues) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
