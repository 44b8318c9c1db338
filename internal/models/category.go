package models

import (
	"strings"
)

// Category is a named prompt domain with its own field schema and composition template
type Category string

const (
	CategoryArchitecture     Category = "Architecture"
	CategoryFacade           Category = "Facade"
	CategoryImageDescription Category = "Image Description"
	CategorySourceCode       Category = "Source Code"
	CategoryAIArt            Category = "AI Art"
	CategoryMarketing        Category = "Marketing"
	CategoryCustom           Category = "Custom"
)

// AllCategories lists every category in display order
var AllCategories = []Category{
	CategoryArchitecture,
	CategoryFacade,
	CategoryImageDescription,
	CategorySourceCode,
	CategoryAIArt,
	CategoryMarketing,
	CategoryCustom,
}

// String returns the display name
func (c Category) String() string {
	return string(c)
}

// Slug returns the lower-case, hyphenated form used on the command line and in file names
func (c Category) Slug() string {
	return Slugify(string(c))
}

// ParseCategory resolves a display name or slug, case-insensitively
func ParseCategory(s string) (Category, bool) {
	needle := Slugify(s)
	if needle == "" {
		return "", false
	}
	for _, c := range AllCategories {
		if c.Slug() == needle {
			return c, true
		}
	}
	return "", false
}

// Slugify lower-cases s and joins its words with hyphens
func Slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(fields, "-")
}
