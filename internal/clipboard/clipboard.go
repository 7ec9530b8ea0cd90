// Package clipboard copies text to the system clipboard through the
// platform's native tool.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable means no clipboard tool could be found.
var ErrUnavailable = errors.New("no clipboard tool found")

// Copy places text on the system clipboard.
func Copy(text string) error {
	cmd, err := command()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return nil
}

// Available reports whether a clipboard tool can be found.
func Available() bool {
	_, err := command()
	return err == nil
}

func command() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		if path, err := exec.LookPath("pbcopy"); err == nil {
			return exec.Command(path), nil
		}
	case "windows":
		return exec.Command("cmd", "/c", "clip"), nil
	default:
		// Wayland first, then the X11 tools.
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			if path, err := exec.LookPath("wl-copy"); err == nil {
				return exec.Command(path), nil
			}
		}
		if path, err := exec.LookPath("xclip"); err == nil {
			return exec.Command(path, "-selection", "clipboard"), nil
		}
		if path, err := exec.LookPath("xsel"); err == nil {
			return exec.Command(path, "--clipboard", "--input"), nil
		}
	}
	return nil, ErrUnavailable
}
