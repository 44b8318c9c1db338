package ui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// createGlamourRenderer creates a glamour renderer with improved contrast handling
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	// Check for environment variable override first
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	// Limited color terminals get auto-style; otherwise pick by background
	var styleOption glamour.TermRendererOption
	switch {
	case profile != termenv.TrueColor && profile != termenv.ANSI256:
		styleOption = glamour.WithAutoStyle()
	case lipgloss.HasDarkBackground():
		styleOption = glamour.WithStandardStyle("dark")
	default:
		styleOption = glamour.WithStandardStyle("light")
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// RenderMarkdown renders md for the terminal wrapped at width
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := createGlamourRenderer(width)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
