package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/pocket-composer/internal/models"
)

// formField is one schema field and the widget that edits it
type formField struct {
	spec   models.FieldSpec
	input  textinput.Model
	area   textarea.Model
	toggle bool
}

func (f *formField) multiline() bool {
	return f.spec.Kind == models.KindMultiLineText
}

// FieldForm edits the live values of one category. It is rebuilt on every category switch.
type FieldForm struct {
	fields  []*formField
	focused int
	width   int
	height  int
}

// NewFieldForm builds a widget per field, filled from values
func NewFieldForm(fields []models.FieldSpec, values models.FieldValues) *FieldForm {
	f := &FieldForm{width: 60, height: 20}
	for _, spec := range fields {
		f.fields = append(f.fields, newFormField(spec))
	}
	f.SetValues(values)
	if len(f.fields) > 0 {
		f.focus(0)
	}
	return f
}

func newFormField(spec models.FieldSpec) *formField {
	field := &formField{spec: spec}

	switch spec.Kind {
	case models.KindMultiLineText:
		ta := textarea.New()
		ta.Placeholder = spec.Placeholder
		ta.CharLimit = 0
		ta.ShowLineNumbers = false
		ta.SetWidth(60)
		ta.SetHeight(3)
		field.area = ta

	case models.KindBoolean:
		// toggled with space

	default:
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder
		ti.CharLimit = 300
		ti.Width = 50
		if spec.Kind == models.KindBoundedInteger {
			ti.CharLimit = 4
			ti.Width = 6
			ti.Placeholder = fmt.Sprintf("%d-%d", spec.Min, spec.Max)
		}
		if spec.Kind == models.KindChoice && len(spec.Options) > 0 {
			// Tab moves between fields, so suggestions are accepted with ctrl+space or right
			keyMap := textinput.DefaultKeyMap
			keyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+@", "right"))
			ti.KeyMap = keyMap
			ti.ShowSuggestions = true
			ti.SetSuggestions(spec.Options)
		}
		field.input = ti
	}
	return field
}

// SetValues fills every widget from values; missing fields show their default
func (f *FieldForm) SetValues(values models.FieldValues) {
	for _, field := range f.fields {
		raw, ok := values[field.spec.Name]
		if !ok {
			raw = field.spec.Default
		}
		switch field.spec.Kind {
		case models.KindBoolean:
			b, ok := models.ParseBool(raw)
			if !ok {
				b = field.spec.DefaultBool()
			}
			field.toggle = b
		case models.KindMultiLineText:
			field.area.SetValue(models.FormatValue(raw))
		default:
			field.input.SetValue(models.FormatValue(raw))
		}
	}
}

// Values returns the values as entered: strings for text and integers, bools for toggles
func (f *FieldForm) Values() models.FieldValues {
	values := make(models.FieldValues, len(f.fields))
	for _, field := range f.fields {
		values[field.spec.Name] = field.value()
	}
	return values
}

func (field *formField) value() interface{} {
	switch field.spec.Kind {
	case models.KindBoolean:
		return field.toggle
	case models.KindMultiLineText:
		return field.area.Value()
	default:
		return field.input.Value()
	}
}

// FocusedName returns the name of the focused field
func (f *FieldForm) FocusedName() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focused].spec.Name
}

// IsInTextArea reports whether the focused field consumes enter and arrow keys
func (f *FieldForm) IsInTextArea() bool {
	return len(f.fields) > 0 && f.fields[f.focused].multiline()
}

// Update handles form keys. It returns the name of the field whose value changed, if any.
func (f *FieldForm) Update(msg tea.Msg) (string, tea.Cmd) {
	if len(f.fields) == 0 {
		return "", nil
	}
	field := f.fields[f.focused]

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			f.nextField()
			return "", nil
		case "shift+tab":
			f.prevField()
			return "", nil
		case "enter":
			if !field.multiline() {
				f.nextField()
				return "", nil
			}
		case "down":
			if field.spec.Kind != models.KindChoice && !field.multiline() {
				f.nextField()
				return "", nil
			}
		case "up":
			if field.spec.Kind != models.KindChoice && !field.multiline() {
				f.prevField()
				return "", nil
			}
		}

		if field.spec.Kind == models.KindBoolean {
			switch msg.String() {
			case " ", "space", "x":
				field.toggle = !field.toggle
			case "y":
				field.toggle = true
			case "n":
				field.toggle = false
			default:
				return "", nil
			}
			return field.spec.Name, nil
		}
	}

	before := field.value()
	var cmd tea.Cmd
	if field.multiline() {
		field.area, cmd = field.area.Update(msg)
	} else if field.spec.Kind != models.KindBoolean {
		field.input, cmd = field.input.Update(msg)
	}
	if field.value() != before {
		return field.spec.Name, cmd
	}
	return "", cmd
}

func (f *FieldForm) focus(i int) {
	f.fields[f.focused].blur()
	f.focused = i
	f.fields[i].focus()
}

func (field *formField) focus() {
	switch field.spec.Kind {
	case models.KindBoolean:
	case models.KindMultiLineText:
		field.area.Focus()
	default:
		field.input.Focus()
	}
}

func (field *formField) blur() {
	switch field.spec.Kind {
	case models.KindBoolean:
	case models.KindMultiLineText:
		field.area.Blur()
	default:
		field.input.Blur()
	}
}

func (f *FieldForm) nextField() {
	f.focus((f.focused + 1) % len(f.fields))
}

func (f *FieldForm) prevField() {
	f.focus((f.focused + len(f.fields) - 1) % len(f.fields))
}

// Resize updates form dimensions based on the space the layout gives it
func (f *FieldForm) Resize(width, height int) {
	f.width = width
	f.height = height
	for _, field := range f.fields {
		switch field.spec.Kind {
		case models.KindBoolean, models.KindBoundedInteger:
		case models.KindMultiLineText:
			field.area.SetWidth(max(10, width-4))
		default:
			field.input.Width = max(10, width-6)
		}
	}
}

// View renders the fields around the focused one that fit the form height
func (f *FieldForm) View() string {
	if len(f.fields) == 0 {
		return StyleTextDim.Render("No fields")
	}

	start, end := f.visibleRange()
	var rows []string
	if start > 0 {
		rows = append(rows, StyleTextDim.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		rows = append(rows, f.renderField(i, f.fields[i]))
	}
	if end < len(f.fields) {
		rows = append(rows, StyleTextDim.Render(fmt.Sprintf("  ↓ %d more", len(f.fields)-end)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// visibleRange grows a window around the focused field until the form height is used
func (f *FieldForm) visibleRange() (int, int) {
	start, end := f.focused, f.focused+1
	used := f.fields[f.focused].height()
	for {
		grew := false
		if end < len(f.fields) && used+f.fields[end].height() <= f.height {
			used += f.fields[end].height()
			end++
			grew = true
		}
		if start > 0 && used+f.fields[start-1].height() <= f.height {
			start--
			used += f.fields[start].height()
			grew = true
		}
		if !grew {
			return start, end
		}
	}
}

// height is the rows a field takes: label, widget and a blank line
func (field *formField) height() int {
	if field.multiline() {
		return field.area.Height() + 2
	}
	return 3
}

func (f *FieldForm) renderField(i int, field *formField) string {
	label := field.spec.Label
	if !field.spec.Required && field.spec.Kind != models.KindBoolean {
		label += " (optional)"
	}
	if field.spec.Kind == models.KindBoundedInteger {
		label += fmt.Sprintf(" [%d-%d]", field.spec.Min, field.spec.Max)
	}

	var b strings.Builder
	if i == f.focused {
		b.WriteString(StyleFormLabelFocused.Render("▶ " + label))
	} else {
		b.WriteString(StyleFormLabel.Render("  " + label))
	}
	b.WriteString("\n")

	switch field.spec.Kind {
	case models.KindBoolean:
		box := "[ ] no"
		if field.toggle {
			box = "[x] yes"
		}
		if i == f.focused {
			box = StyleFocused.Render(box)
		}
		b.WriteString("  " + box)
	case models.KindMultiLineText:
		b.WriteString(field.area.View())
	default:
		b.WriteString(field.input.View())
	}
	b.WriteString("\n")
	return b.String()
}
