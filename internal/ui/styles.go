package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Design System Colors - Adaptive based on terminal background
var (
	// Primary brand colors (work well on both light and dark)
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	// Semantic colors
	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color
	ColorInfo    lipgloss.Color

	// Neutral colors (contrast-adaptive)
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
	ColorBorder    lipgloss.Color
)

// Component Styles, rebuilt by initializeColors
var (
	StyleTitle     lipgloss.Style
	StyleSubtitle  lipgloss.Style
	StyleText      lipgloss.Style
	StyleTextMuted lipgloss.Style
	StyleTextDim   lipgloss.Style

	StyleFocused    lipgloss.Style
	StyleSelected   lipgloss.Style
	StyleUnselected lipgloss.Style

	StyleSuccess lipgloss.Style
	StyleWarning lipgloss.Style
	StyleError   lipgloss.Style
	StyleInfo    lipgloss.Style

	StyleModal            lipgloss.Style
	StyleContentContainer lipgloss.Style
	StyleFormLabel        lipgloss.Style
	StyleFormLabelFocused lipgloss.Style
	StyleFormHelp         lipgloss.Style
	StyleDraft            lipgloss.Style
)

func init() {
	setDarkThemeColors()
	buildStyles()
}

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	switch os.Getenv("GLAMOUR_STYLE") {
	case "light":
		setLightThemeColors()
	case "dark":
		setDarkThemeColors()
	default:
		if lipgloss.HasDarkBackground() {
			setDarkThemeColors()
		} else {
			setLightThemeColors()
		}
	}
	buildStyles()
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")   // Bright magenta/pink
	ColorSecondary = lipgloss.Color("33")  // Bright cyan/blue
	ColorAccent = lipgloss.Color("214")    // Bright orange/yellow
	ColorSuccess = lipgloss.Color("10")    // Bright green
	ColorWarning = lipgloss.Color("11")    // Bright yellow
	ColorError = lipgloss.Color("9")       // Bright red
	ColorInfo = lipgloss.Color("12")       // Bright blue
	ColorText = lipgloss.Color("252")      // Near white
	ColorTextMuted = lipgloss.Color("244") // Light gray
	ColorTextDim = lipgloss.Color("240")   // Medium gray
	ColorBorder = lipgloss.Color("238")    // Dark gray
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")   // Darker magenta for contrast
	ColorSecondary = lipgloss.Color("24")  // Darker cyan
	ColorAccent = lipgloss.Color("130")    // Darker orange
	ColorSuccess = lipgloss.Color("22")    // Dark green
	ColorWarning = lipgloss.Color("136")   // Dark yellow/orange
	ColorError = lipgloss.Color("160")     // Dark red
	ColorInfo = lipgloss.Color("24")       // Dark blue
	ColorText = lipgloss.Color("232")      // Near black
	ColorTextMuted = lipgloss.Color("240") // Dark gray
	ColorTextDim = lipgloss.Color("244")   // Medium gray
	ColorBorder = lipgloss.Color("248")    // Light gray
}

func buildStyles() {
	StyleTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	StyleSubtitle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Padding(0, 1)

	StyleText = lipgloss.NewStyle().Foreground(ColorText)
	StyleTextMuted = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleTextDim = lipgloss.NewStyle().Foreground(ColorTextDim)

	// Interactive states
	StyleFocused = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")). // Pure white
		Background(ColorSecondary).
		Bold(true).
		Padding(0, 1)

	StyleSelected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(ColorAccent).
		Bold(true).
		Padding(0, 1)

	StyleUnselected = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	// Status and feedback
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Padding(0, 1)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).Padding(0, 1)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true).Padding(0, 1)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true).Padding(0, 1)

	// Layout styles
	StyleModal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	StyleContentContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	// Form styles
	StyleFormLabel = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	StyleFormLabelFocused = lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true)

	StyleFormHelp = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Italic(true)

	StyleDraft = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)
}

// CreateCategoryTabs renders the category bar with the active one highlighted
func CreateCategoryTabs(names []string, active int) string {
	tabs := make([]string, len(names))
	for i, name := range names {
		if i == active {
			tabs[i] = StyleSelected.Render(name)
		} else {
			tabs[i] = StyleUnselected.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Context-aware help creation with proper row display and smart truncation
func CreateContextualHelp(essential []string, additional []string, showExpanded bool, width int) string {
	var lines []string

	// First row: essential keybinds + F1 hint if there are additional keys
	firstRowParts := essential
	if len(additional) > 0 && !showExpanded {
		firstRowParts = append(firstRowParts, "F1 for more")
	}

	lines = append(lines, truncateLine(strings.Join(firstRowParts, " • "), width))
	if showExpanded {
		for _, row := range additional {
			lines = append(lines, truncateLine(row, width))
		}
	}

	return StyleTextDim.Render(strings.Join(lines, "\n"))
}

// truncateLine keeps text within width-4 cells, cutting on character boundaries
func truncateLine(text string, width int) string {
	if width <= 7 {
		return text
	}
	return ansi.Truncate(text, width-4, "...")
}

// CreateStatus renders text in the style of a status role: success, warning, error or info
func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "warning":
		return StyleWarning.Render(text)
	case "error":
		return StyleError.Render(text)
	case "info":
		return StyleInfo.Render(text)
	default:
		return StyleText.Render(text)
	}
}

// Modal centering helper
func CenterModal(content string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// Add consistent padding to main content (left only, no top padding)
func AddMainPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(1).Render(content)
}
