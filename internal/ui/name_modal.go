package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ModalPurpose tells the model what to do with a submitted name
type ModalPurpose int

const (
	PurposeSaveTemplate ModalPurpose = iota
	PurposeExport
)

// NameModal asks for a single line of text: a template name or an export path
type NameModal struct {
	input      textinput.Model
	purpose    ModalPurpose
	title      string
	help       string
	allowEmpty bool
	isActive   bool
	submitted  bool
	value      string
	width      int
}

// NewNameModal creates an inactive modal
func NewNameModal() *NameModal {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 50

	return &NameModal{input: input}
}

// Open activates the modal for purpose with an initial value.
// Names may be offered as suggestions, e.g. existing template names for overwriting.
func (m *NameModal) Open(purpose ModalPurpose, initial string, suggestions []string) {
	m.purpose = purpose
	m.isActive = true
	m.submitted = false
	m.value = ""

	switch purpose {
	case PurposeExport:
		m.title = "Export Prompt"
		m.help = "Empty path writes prompt_<category>_<time>.txt; a .json path exports JSON"
		m.input.Placeholder = "path/to/prompt.txt"
		m.allowEmpty = true
	default:
		m.title = "Save Template"
		m.help = "An existing name is overwritten"
		m.input.Placeholder = "Template name"
		m.allowEmpty = false
	}

	keyMap := textinput.DefaultKeyMap
	keyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("tab", "right"))
	m.input.KeyMap = keyMap
	m.input.ShowSuggestions = len(suggestions) > 0
	m.input.SetSuggestions(suggestions)

	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
}

// Update handles input for the modal
func (m *NameModal) Update(msg tea.Msg) tea.Cmd {
	if !m.isActive {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			m.Close()
			return nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			value := strings.TrimSpace(m.input.Value())
			if value == "" && !m.allowEmpty {
				return nil
			}
			m.value = value
			m.submitted = true
			m.isActive = false
			m.input.Blur()
			return nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// Close deactivates the modal without submitting
func (m *NameModal) Close() {
	m.isActive = false
	m.submitted = false
	m.value = ""
	m.input.SetValue("")
	m.input.Blur()
}

// View renders the modal
func (m *NameModal) View() string {
	if !m.isActive {
		return ""
	}

	var content []string
	content = append(content, StyleTitle.Render(m.title), "")
	content = append(content, m.input.View(), "")
	content = append(content, StyleFormHelp.Render(m.help))
	content = append(content, StyleFormHelp.Render("Enter: confirm • Tab/→: accept suggestion • Esc: cancel"))

	style := StyleModal
	if m.width > 0 {
		style = style.Width(min(70, m.width-4))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// IsActive returns whether the modal is active
func (m *NameModal) IsActive() bool {
	return m.isActive
}

// IsSubmitted returns whether the modal was confirmed
func (m *NameModal) IsSubmitted() bool {
	return m.submitted
}

// Purpose returns what the modal was opened for
func (m *NameModal) Purpose() ModalPurpose {
	return m.purpose
}

// Consume returns the submitted value and resets the submitted state
func (m *NameModal) Consume() string {
	value := m.value
	m.submitted = false
	m.value = ""
	m.input.SetValue("")
	return value
}

// Resize updates the modal dimensions
func (m *NameModal) Resize(width, height int) {
	m.width = width
	m.input.Width = max(10, min(60, width-12))
}
