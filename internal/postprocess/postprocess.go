// Package postprocess holds the text transforms applied to a composed prompt.
//
// The transforms are deliberately shallow: Normalize makes exactly one pass
// over doubled spaces and periods, and Expand appends its clause every time it
// is called. Front ends that want a fixed point must apply them repeatedly.
package postprocess

import (
	"strings"

	"github.com/dpshade/pocket-composer/internal/models"
)

const (
	// DefaultTruncateLines is used when a non-positive line count is requested
	DefaultTruncateLines = 5

	// TruncationMarker is appended as its own line after truncation
	TruncationMarker = "[...]"
)

var expansions = map[models.Category]string{
	models.CategoryArchitecture:     "Additional details: Highly detailed textures, realistic materials, correct lighting conditions.",
	models.CategoryFacade:           "Additional details: Highly detailed textures, realistic materials, correct lighting conditions.",
	models.CategoryImageDescription: "Image quality: Professional photography, balanced exposure, natural colors, high sharpness.",
	models.CategorySourceCode:       "Code quality: Well structured, well documented, efficient, maintainable, scalable.",
	models.CategoryAIArt:            "Artistic quality: Atmospheric, expressive, unique, technically flawless.",
	models.CategoryMarketing:        "Marketing effectiveness: Persuasive, clear, audience-focused, action-driving.",
}

// Normalize collapses doubled spaces and periods once, trims every line and drops blank lines
func Normalize(text string) string {
	out := strings.ReplaceAll(text, "  ", " ")
	out = strings.ReplaceAll(out, "..", ".")

	var kept []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Truncate keeps the first k lines of text and appends the marker line
func Truncate(text string, k int) string {
	lines := strings.Split(text, "\n")
	if k <= 0 {
		k = DefaultTruncateLines
	}
	if len(lines) <= k {
		return text
	}
	return strings.Join(TruncateLines(lines, k), "\n")
}

// TruncateLines keeps the first k lines and appends the marker; k <= 0 means DefaultTruncateLines.
// Inputs of at most k lines are returned unchanged.
func TruncateLines(lines []string, k int) []string {
	if k <= 0 {
		k = DefaultTruncateLines
	}
	if len(lines) <= k {
		return lines
	}
	out := make([]string, 0, k+1)
	out = append(out, lines[:k]...)
	return append(out, TruncationMarker)
}

// Expand appends the elaboration clause of category on a new line.
// Categories without a clause return text unchanged.
func Expand(category models.Category, text string) string {
	clause, ok := ExpansionClause(category)
	if !ok {
		return text
	}
	return text + "\n" + clause
}

// ExpansionClause returns the clause Expand appends for category
func ExpansionClause(category models.Category) (string, bool) {
	clause, ok := expansions[category]
	return clause, ok
}
