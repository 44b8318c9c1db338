package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/dpshade/pocket-composer/internal/errors"
	"github.com/dpshade/pocket-composer/internal/models"
	"github.com/dpshade/pocket-composer/internal/renderer"
	"github.com/dpshade/pocket-composer/internal/schema"
	"github.com/dpshade/pocket-composer/internal/service"
	"github.com/dpshade/pocket-composer/internal/storage"
	"github.com/dpshade/pocket-composer/internal/validation"
)

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewCompose ViewMode = iota
	ViewTemplates
	ViewHistory
)

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	logger   *zap.Logger
	errors   *errors.TUIErrorHandler
	viewMode ViewMode

	// UI components
	form            *FieldForm
	preview         viewport.Model
	templateList    list.Model
	historyView     viewport.Model
	nameModal       *NameModal
	help            help.Model
	keys            KeyMap
	glamourRenderer *glamour.TermRenderer

	// generated is false while the preview shows a draft of unsaved form edits
	generated bool

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusRole    string
	statusTimeout int

	showExpandedHelp bool
}

// KeyMap defines all key bindings
type KeyMap struct {
	NextCategory key.Binding
	PrevCategory key.Binding
	Generate     key.Binding
	Optimize     key.Binding
	Shorten      key.Binding
	Expand       key.Binding
	Save         key.Binding
	Load         key.Binding
	Delete       key.Binding
	Export       key.Binding
	Copy         key.Binding
	History      key.Binding
	Reset        key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	Back         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.NextCategory, k.Save, k.Load, k.Copy, k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Optimize, k.Shorten, k.Expand},
		{k.NextCategory, k.PrevCategory, k.Reset},
		{k.Save, k.Load, k.Export, k.Copy},
		{k.History, k.ScrollUp, k.ScrollDown},
		{k.Help, k.Quit},
	}
}

var keys = KeyMap{
	NextCategory: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("Ctrl+n", "next category"),
	),
	PrevCategory: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("Ctrl+p", "previous category"),
	),
	Generate: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("Ctrl+g", "generate"),
	),
	Optimize: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("Ctrl+o", "optimize"),
	),
	Shorten: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("Ctrl+t", "shorten"),
	),
	Expand: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("Ctrl+e", "expand"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+s", "save template"),
	),
	Load: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("Ctrl+l", "templates"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("Ctrl+d", "delete template"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("Ctrl+x", "export"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("Ctrl+y", "copy"),
	),
	History: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("Ctrl+r", "history"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("Ctrl+u", "reset to defaults"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PgUp", "scroll preview"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("PgDn", "scroll preview"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+c", "quit"),
	),
}

// Run starts the TUI on the alternate screen and blocks until it exits
func Run(svc *service.Service, logger *zap.Logger) error {
	m, err := NewModel(svc, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewModel creates a new TUI model on the engine's active category
func NewModel(svc *service.Service, logger *zap.Logger) (*Model, error) {
	// Initialize adaptive colors based on terminal background
	initializeColors()

	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("tui")

	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = StyleTitle

	vp := viewport.New(60, 20)
	vp.Style = lipgloss.NewStyle()

	history := viewport.New(80, 20)
	history.Style = lipgloss.NewStyle()

	mdRenderer, err := createGlamourRenderer(78)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	m := &Model{
		service:         svc,
		logger:          logger,
		errors:          errors.NewTUIErrorHandler(false, logger),
		viewMode:        ViewCompose,
		preview:         vp,
		templateList:    l,
		historyView:     history,
		nameModal:       NewNameModal(),
		help:            help.New(),
		keys:            keys,
		glamourRenderer: mdRenderer,
		width:           100,
		height:          30,
	}
	m.rebuildForm()
	m.resize(m.width, m.height)

	if result := svc.TemplateLoadResult(); result.Cause != nil {
		m.setError(result.Cause)
	}
	return m, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("pocket-composer")
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

// clearStatusCmd returns a command that clears the status message after a delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// The modal captures every key while open
		if m.nameModal.IsActive() {
			cmd := m.nameModal.Update(msg)
			if m.nameModal.IsSubmitted() {
				return m, m.submitModal()
			}
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showExpandedHelp = !m.showExpandedHelp
			return m, nil
		}

		switch m.viewMode {
		case ViewTemplates:
			return m.updateTemplates(msg)
		case ViewHistory:
			return m.updateHistory(msg)
		default:
			return m.updateCompose(msg)
		}
	}

	// Cursor blinks and other widget messages
	var cmd tea.Cmd
	switch {
	case m.nameModal.IsActive():
		cmd = m.nameModal.Update(msg)
	case m.viewMode == ViewTemplates:
		m.templateList, cmd = m.templateList.Update(msg)
	case m.viewMode == ViewCompose:
		_, cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextCategory):
		return m, m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		return m, m.cycleCategory(-1)

	case key.Matches(msg, m.keys.Generate):
		return m, m.generate()

	case key.Matches(msg, m.keys.Optimize):
		return m, m.postProcess("Optimized", m.service.Optimize)
	case key.Matches(msg, m.keys.Shorten):
		return m, m.postProcess("Shortened", m.service.Shorten)
	case key.Matches(msg, m.keys.Expand):
		return m, m.postProcess("Expanded", m.service.Expand)

	case key.Matches(msg, m.keys.Save):
		var names []string
		for _, t := range m.service.ListTemplates() {
			names = append(names, t.Name)
		}
		m.nameModal.Open(PurposeSaveTemplate, "", names)
		return m, nil
	case key.Matches(msg, m.keys.Load):
		m.openTemplates()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		if strings.TrimSpace(m.service.Prompt()) == "" {
			return m, m.setStatus("Generate a prompt first (Ctrl+g)", "info")
		}
		m.nameModal.Open(PurposeExport, "", nil)
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		status, err := m.service.CopyToClipboard()
		if err != nil {
			return m, m.setError(err)
		}
		return m, m.setStatus(status, "success")
	case key.Matches(msg, m.keys.History):
		return m, m.openHistory()

	case key.Matches(msg, m.keys.Reset):
		if _, err := m.service.SetValues(nil); err != nil {
			return m, m.setError(err)
		}
		m.form.SetValues(m.service.GetValues())
		m.generated = false
		m.refreshPreview()
		return m, m.setStatus("Reset to defaults", "info")

	case key.Matches(msg, m.keys.ScrollUp):
		m.preview.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.preview.HalfViewDown()
		return m, nil
	}

	changed, cmd := m.form.Update(msg)
	if changed != "" {
		return m, tea.Batch(cmd, m.applyField(changed))
	}
	return m, cmd
}

// applyField stores one form value in the engine. Integers are stored typed,
// with out-of-range input replaced by the field default and reported.
func (m *Model) applyField(name string) tea.Cmd {
	value := m.form.Values()[name]

	var status tea.Cmd
	if spec, err := schema.Field(m.service.Category(), name); err == nil && spec.Kind == models.KindBoundedInteger {
		coerced, warning, err := validation.Coerce(m.service.Category(), name, value)
		if err != nil {
			return m.setError(err)
		}
		value = coerced
		if warning != nil {
			status = m.setError(warning)
		}
	}

	if err := m.service.SetField(name, value); err != nil {
		return m.setError(err)
	}
	m.generated = false
	m.refreshPreview()
	return status
}

func (m Model) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing a filter owns the keyboard
	if m.templateList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.templateList, cmd = m.templateList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back) && m.templateList.FilterState() == list.Unfiltered:
		m.viewMode = ViewCompose
		return m, nil

	case msg.String() == "enter":
		selected, ok := m.templateList.SelectedItem().(models.SavedTemplate)
		if !ok {
			return m, nil
		}
		warnings, err := m.service.LoadTemplate(selected.Name)
		if err != nil {
			return m, m.setError(err)
		}
		m.form.SetValues(m.service.GetValues())
		m.generated = false
		m.refreshPreview()
		m.viewMode = ViewCompose
		if len(warnings) > 0 {
			return m, m.setError(warnings[0])
		}
		return m, m.setStatus(fmt.Sprintf("Loaded template %q", selected.Name), "success")

	case key.Matches(msg, m.keys.Delete):
		selected, ok := m.templateList.SelectedItem().(models.SavedTemplate)
		if !ok {
			return m, nil
		}
		removed, err := m.service.DeleteTemplate(selected.Name)
		if err != nil {
			return m, m.setError(err)
		}
		m.refreshTemplateList()
		if !removed {
			return m, m.setStatus(fmt.Sprintf("Template %q was already gone", selected.Name), "warning")
		}
		return m, m.setStatus(fmt.Sprintf("Deleted template %q", selected.Name), "success")
	}

	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.History) {
		m.viewMode = ViewCompose
		return m, nil
	}
	var cmd tea.Cmd
	m.historyView, cmd = m.historyView.Update(msg)
	return m, cmd
}

// generate composes the active prompt and reports fallbacks as a warning
func (m *Model) generate() tea.Cmd {
	if _, err := m.service.Generate(); err != nil {
		return m.setError(err)
	}
	m.generated = true
	m.refreshPreview()

	warnings := m.service.Warnings()
	if len(warnings) > 0 {
		m.errors.HandleError(warnings[0])
		return m.setStatus(fmt.Sprintf("Generated with %d warning(s): %s", len(warnings), warnings[0].Message), "warning")
	}
	return m.setStatus("Prompt generated", "success")
}

func (m *Model) postProcess(label string, step func() string) tea.Cmd {
	if strings.TrimSpace(m.service.Prompt()) == "" || !m.generated {
		return m.setStatus("Generate a prompt first (Ctrl+g)", "info")
	}
	step()
	m.refreshPreview()
	return m.setStatus(label, "success")
}

func (m *Model) cycleCategory(delta int) tea.Cmd {
	cats := m.service.ListCategories()
	idx := 0
	for i, cat := range cats {
		if cat == m.service.Category() {
			idx = i
		}
	}
	next := cats[(idx+delta+len(cats))%len(cats)]
	if err := m.service.SwitchCategory(next); err != nil {
		return m.setError(err)
	}
	m.rebuildForm()
	return nil
}

func (m *Model) submitModal() tea.Cmd {
	value := m.nameModal.Consume()

	switch m.nameModal.Purpose() {
	case PurposeExport:
		path, err := m.service.ExportTo(value, "")
		if err != nil {
			return m.setError(err)
		}
		return m.setStatus("Exported to "+path, "success")
	default:
		if err := m.service.SaveTemplate(value); err != nil {
			return m.setError(err)
		}
		return m.setStatus(fmt.Sprintf("Saved template %q", value), "success")
	}
}

func (m *Model) openTemplates() {
	m.refreshTemplateList()
	m.templateList.ResetFilter()
	m.templateList.Title = fmt.Sprintf("%s templates", m.service.Category())
	m.viewMode = ViewTemplates
}

func (m *Model) refreshTemplateList() {
	templates := m.service.ListTemplates()
	items := make([]list.Item, len(templates))
	for i, t := range templates {
		items[i] = t
	}
	m.templateList.SetItems(items)
}

func (m *Model) openHistory() tea.Cmd {
	entries, err := m.service.History(0)
	if err != nil {
		return m.setError(err)
	}

	md := storage.FormatHistoryMarkdown(entries)
	content, err := m.glamourRenderer.Render(md)
	if err != nil {
		m.logger.Warn("Markdown rendering failed", zap.Error(err))
		content = md
	}
	m.historyView.SetContent(content)
	m.historyView.GotoTop()
	m.viewMode = ViewHistory
	return nil
}

// rebuildForm recreates the form for the active category
func (m *Model) rebuildForm() {
	fields, err := m.service.SchemaFor(m.service.Category())
	if err != nil {
		m.setError(err)
		return
	}
	m.form = NewFieldForm(fields, m.service.GetValues())
	m.generated = false
	m.resize(m.width, m.height)
}

// refreshPreview shows the active prompt, or a draft of the form values before generation
func (m *Model) refreshPreview() {
	content := m.service.Prompt()
	if !m.generated {
		draft, err := renderer.Compose(m.service.Category(), m.service.GetValues())
		if err != nil {
			draft = ""
		}
		content = draft
	}
	wrapped := lipgloss.NewStyle().Width(max(10, m.preview.Width)).Render(content)
	m.preview.SetContent(wrapped)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	// Reserve space for: title (1) + tabs (1) + spacing (1) + status (1) + help (2)
	const reservedHeight = 6
	bodyHeight := max(5, height-reservedHeight)
	formWidth := max(30, width*2/5)
	previewWidth := max(20, width-formWidth-2)

	if m.form != nil {
		m.form.Resize(formWidth, bodyHeight)
	}
	// Border and padding of the content container, plus its title line
	m.preview.Width = max(10, previewWidth-4)
	m.preview.Height = max(3, bodyHeight-3)

	m.templateList.SetSize(width, bodyHeight)
	m.historyView.Width = width
	m.historyView.Height = bodyHeight
	m.nameModal.Resize(width, height)

	if r, err := createGlamourRenderer(max(40, width-4)); err == nil {
		m.glamourRenderer = r
	}
	m.refreshPreview()
}

func (m *Model) setStatus(text, role string) tea.Cmd {
	m.statusMsg = text
	m.statusRole = role
	m.statusTimeout = 5
	return clearStatusCmd()
}

// setError logs err and shows it on the status line in the colour of its severity
func (m *Model) setError(err error) tea.Cmd {
	m.errors.HandleError(err)
	return m.setStatus(m.errors.FormatError(err), m.errors.SeverityRole(err))
}

// View renders the current view
func (m Model) View() string {
	if m.nameModal.IsActive() {
		return CenterModal(m.nameModal.View(), m.width, m.height)
	}

	cats := m.service.ListCategories()
	names := make([]string, len(cats))
	active := 0
	for i, cat := range cats {
		names[i] = cat.String()
		if cat == m.service.Category() {
			active = i
		}
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		StyleTitle.Render("Pocket Composer"),
		CreateCategoryTabs(names, active),
	)

	var body, helpView string
	switch m.viewMode {
	case ViewTemplates:
		body = m.templateList.View()
		helpView = CreateContextualHelp(
			[]string{"Enter: load", "Ctrl+d: delete", "/: filter", "Esc: back"},
			[]string{"↑/↓: move • Ctrl+c: quit"},
			m.showExpandedHelp, m.width)
	case ViewHistory:
		body = m.historyView.View()
		helpView = CreateContextualHelp(
			[]string{"↑/↓: scroll", "Esc: back"},
			[]string{"PgUp/PgDn: page • Ctrl+c: quit"},
			m.showExpandedHelp, m.width)
	default:
		body = m.renderComposeView()
		m.help.ShowAll = m.showExpandedHelp
		helpView = m.help.View(m.keys)
	}

	status := ""
	if m.statusMsg != "" {
		status = CreateStatus(m.statusMsg, m.statusRole)
	}

	return AddMainPadding(lipgloss.JoinVertical(lipgloss.Left, header, "", body, status, helpView))
}

func (m Model) renderComposeView() string {
	title := StyleSubtitle.Render("Prompt")
	if !m.generated {
		title = StyleDraft.Render("Draft (Ctrl+g to generate)")
	}
	preview := StyleContentContainer.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.preview.View()))

	form := lipgloss.NewStyle().Width(max(30, m.width*2/5)).Render(m.form.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, form, preview)
}
