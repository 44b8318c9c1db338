package models

// FieldKind is the input kind of a field
type FieldKind string

const (
	KindTextLine       FieldKind = "text-line"
	KindMultiLineText  FieldKind = "multi-line-text"
	KindChoice         FieldKind = "choice"
	KindBoolean        FieldKind = "boolean"
	KindBoundedInteger FieldKind = "bounded-integer"
)

// FieldSpec is the static declaration of one input
type FieldSpec struct {
	Name     string    `json:"name" yaml:"name"`
	Label    string    `json:"label" yaml:"label"`
	Kind     FieldKind `json:"kind" yaml:"kind"`
	Default  any       `json:"default" yaml:"default"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Min      int       `json:"min,omitempty" yaml:"min,omitempty"`
	Max      int       `json:"max,omitempty" yaml:"max,omitempty"`
	Required bool      `json:"required" yaml:"required"`

	// Placeholder is shown by front ends while the input is empty
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// IsText reports whether the field holds free or chosen text
func (f FieldSpec) IsText() bool {
	return f.Kind == KindTextLine || f.Kind == KindMultiLineText || f.Kind == KindChoice
}

// DefaultString returns the default as a string for text kinds
func (f FieldSpec) DefaultString() string {
	s, _ := f.Default.(string)
	return s
}

// DefaultBool returns the default of a boolean field
func (f FieldSpec) DefaultBool() bool {
	b, _ := f.Default.(bool)
	return b
}

// DefaultInt returns the default of a bounded-integer field
func (f FieldSpec) DefaultInt() int {
	n, _ := f.Default.(int)
	return n
}

// InRange reports whether n lies within the field's bounds
func (f FieldSpec) InRange(n int) bool {
	return n >= f.Min && n <= f.Max
}
