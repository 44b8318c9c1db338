package clipboard

import (
	"fmt"
	"runtime"

	atotto "github.com/atotto/clipboard"

	"github.com/dpshade/pocket-composer/internal/errors"
)

// Writer puts text on a clipboard
type Writer interface {
	WriteAll(text string) error
}

// System is the operating system clipboard
type System struct{}

// WriteAll copies text to the system clipboard
func (System) WriteAll(text string) error {
	if atotto.Unsupported {
		return unavailable(nil)
	}
	if err := atotto.WriteAll(text); err != nil {
		return unavailable(err)
	}
	return nil
}

// CopyWithFallback attempts to copy to clipboard and returns a status message
func CopyWithFallback(w Writer, text string) (string, error) {
	if w == nil {
		w = System{}
	}
	if err := w.WriteAll(text); err != nil {
		if errors.IsCode(err, errors.ErrCodeClipboardUnavailable) {
			return "", err
		}
		return "", unavailable(err)
	}
	return "Copied to clipboard!", nil
}

func unavailable(cause error) *errors.AppError {
	appErr := errors.NewAppError(errors.ErrCodeClipboardUnavailable, "Clipboard is not available").
		WithDetails(GetInstallInstructions()).
		WithContext("os", runtime.GOOS)
	appErr.Cause = cause
	return appErr
}

// GetInstallInstructions returns installation instructions for clipboard utilities
func GetInstallInstructions() string {
	switch runtime.GOOS {
	case "linux":
		return "Install a clipboard utility:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	case "darwin":
		return "pbcopy should be available by default on macOS"
	case "windows":
		return "clip should be available by default on Windows"
	default:
		return fmt.Sprintf("Clipboard not supported on %s", runtime.GOOS)
	}
}
