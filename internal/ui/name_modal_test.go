package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNameModalSaveRequiresName(t *testing.T) {
	modal := NewNameModal()
	modal.Open(PurposeSaveTemplate, "", []string{"Warm"})

	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if modal.IsSubmitted() || !modal.IsActive() {
		t.Fatal("Expected empty name to be rejected")
	}

	modal.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" Cold ")})
	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !modal.IsSubmitted() {
		t.Fatal("Expected modal to be submitted")
	}
	if modal.IsActive() {
		t.Error("Expected modal to close on submit")
	}
	if got := modal.Consume(); got != "Cold" {
		t.Errorf("Expected trimmed name 'Cold', got %q", got)
	}
	if modal.IsSubmitted() {
		t.Error("Consume should reset the submitted state")
	}
}

func TestNameModalExportAllowsEmptyPath(t *testing.T) {
	modal := NewNameModal()
	modal.Open(PurposeExport, "", nil)

	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !modal.IsSubmitted() {
		t.Fatal("Expected empty export path to submit")
	}
	if modal.Purpose() != PurposeExport {
		t.Errorf("Expected export purpose, got %v", modal.Purpose())
	}
	if got := modal.Consume(); got != "" {
		t.Errorf("Expected empty path, got %q", got)
	}
}

func TestNameModalEscapeCancels(t *testing.T) {
	modal := NewNameModal()
	modal.Open(PurposeSaveTemplate, "Draft", nil)

	modal.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if modal.IsActive() || modal.IsSubmitted() {
		t.Error("Expected escape to close without submitting")
	}
	if modal.View() != "" {
		t.Error("Inactive modal should render nothing")
	}
}
