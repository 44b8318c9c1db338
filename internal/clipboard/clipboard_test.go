package clipboard

import (
	stderrors "errors"
	"runtime"
	"strings"
	"testing"

	"github.com/dpshade/pocket-composer/internal/errors"
)

type fakeWriter struct {
	got string
	err error
}

func (f *fakeWriter) WriteAll(text string) error {
	f.got = text
	return f.err
}

func TestCopyWithFallbackSuccess(t *testing.T) {
	w := &fakeWriter{}
	msg, err := CopyWithFallback(w, "prompt text")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if msg != "Copied to clipboard!" {
		t.Errorf("Expected 'Copied to clipboard!', got '%s'", msg)
	}
	if w.got != "prompt text" {
		t.Errorf("Writer received %q", w.got)
	}
}

func TestCopyWithFallbackWrapsFailures(t *testing.T) {
	w := &fakeWriter{err: stderrors.New("exit status 1")}
	_, err := CopyWithFallback(w, "prompt text")
	if !errors.IsCode(err, errors.ErrCodeClipboardUnavailable) {
		t.Fatalf("Expected CLIPBOARD_UNAVAILABLE, got %v", err)
	}
	if errors.GetAppError(err).IsFatal() {
		t.Error("Clipboard failures should not be fatal")
	}
}

func TestGetInstallInstructions(t *testing.T) {
	instructions := GetInstallInstructions()
	if instructions == "" {
		t.Error("Install instructions should not be empty")
	}

	switch runtime.GOOS {
	case "linux":
		if !strings.Contains(instructions, "xclip") {
			t.Error("Linux instructions should mention xclip")
		}
	case "darwin":
		if !strings.Contains(instructions, "pbcopy") {
			t.Error("macOS instructions should mention pbcopy")
		}
	}
}
