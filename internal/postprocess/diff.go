package postprocess

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp classifies one line of a diff
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a line-level diff
type DiffLine struct {
	Op   DiffOp
	Text string
}

// Prefix returns the unified-diff style marker for the line
func (l DiffLine) Prefix() string {
	switch l.Op {
	case DiffInsert:
		return "+ "
	case DiffDelete:
		return "- "
	default:
		return "  "
	}
}

// Diff compares two prompt versions line by line
func Diff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(terminate(before), terminate(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}
	return out
}

// FormatDiff renders a diff as text with +/- prefixes
func FormatDiff(lines []DiffLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Prefix())
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// DiffStats counts inserted and deleted lines
func DiffStats(lines []DiffLine) (inserted, deleted int) {
	for _, l := range lines {
		switch l.Op {
		case DiffInsert:
			inserted++
		case DiffDelete:
			deleted++
		}
	}
	return inserted, deleted
}

// terminate ends text with a newline so the last line compares like the others
func terminate(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
