package models

import (
	"fmt"
	"sort"
	"strings"
)

// TemplateSet is the two-level saved template mapping: category -> template name -> values
type TemplateSet map[Category]map[string]FieldValues

// Clone deep-copies the set so it can be mutated before being swapped in
func (s TemplateSet) Clone() TemplateSet {
	out := make(TemplateSet, len(s))
	for cat, byName := range s {
		copied := make(map[string]FieldValues, len(byName))
		for name, values := range byName {
			copied[name] = values.Clone()
		}
		out[cat] = copied
	}
	return out
}

// Get returns the values saved under category/name
func (s TemplateSet) Get(category Category, name string) (FieldValues, bool) {
	values, ok := s[category][name]
	return values, ok
}

// Put inserts or overwrites one template
func (s TemplateSet) Put(category Category, name string, values FieldValues) {
	if s[category] == nil {
		s[category] = make(map[string]FieldValues)
	}
	s[category][name] = values
}

// Remove deletes one template and reports whether it existed.
// A category left without templates is dropped.
func (s TemplateSet) Remove(category Category, name string) bool {
	byName, ok := s[category]
	if !ok {
		return false
	}
	if _, ok := byName[name]; !ok {
		return false
	}
	delete(byName, name)
	if len(byName) == 0 {
		delete(s, category)
	}
	return true
}

// Names returns the template names of a category in sorted order
func (s TemplateSet) Names(category Category) []string {
	names := make([]string, 0, len(s[category]))
	for name := range s[category] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories returns the categories that hold templates, sorted
func (s TemplateSet) Categories() []Category {
	cats := make([]Category, 0, len(s))
	for cat := range s {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// Count returns the total number of templates
func (s TemplateSet) Count() int {
	n := 0
	for _, byName := range s {
		n += len(byName)
	}
	return n
}

// SavedTemplate is a named snapshot of field values for one category
type SavedTemplate struct {
	Category Category    `json:"category"`
	Name     string      `json:"name"`
	Values   FieldValues `json:"values"`
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (t SavedTemplate) FilterValue() string {
	return t.Name
}

// Title satisfies the list.Item interface
func (t SavedTemplate) Title() string {
	return t.Name
}

// Description satisfies the list.Item interface
func (t SavedTemplate) Description() string {
	keys := make([]string, 0, len(t.Values))
	for k := range t.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		val := strings.TrimSpace(t.Values.String(k))
		if val == "" {
			continue
		}
		val = strings.ReplaceAll(val, "\n", " ")
		parts = append(parts, fmt.Sprintf("%s=%s", k, val))
	}
	desc := strings.Join(parts, " • ")

	// Leave space for list indicator and margins
	const maxLength = 100
	if len([]rune(desc)) > maxLength {
		desc = string([]rune(desc)[:maxLength-3]) + "..."
	}
	return desc
}
